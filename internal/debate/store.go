package debate

import "context"

// ConversationStore — узкий контракт хранения бесед по ключу.
// Ошибки бэкенда намеренно схлопнуты: Save возвращает false, Get и ListIDs
// отвечают "отсутствует". Вызывающий не различает "записи нет" и
// "хранилище недоступно" — это осознанное упрощение (см. DESIGN.md).
type ConversationStore interface {
	// Save сохраняет снимок беседы с настроенным TTL.
	// Возвращает false при любой ошибке, никогда не паникует.
	Save(ctx context.Context, conv Conversation) bool

	// Get возвращает беседу по id. Второй результат false, если записи
	// нет, данные повреждены или хранилище недоступно.
	Get(ctx context.Context, id string) (Conversation, bool)

	// ListIDs возвращает идентификаторы известных бесед.
	// nil, если бесед нет или хранилище недоступно.
	ListIDs(ctx context.Context) []string
}
