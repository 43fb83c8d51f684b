package llm

import "context"

// Message — сообщение в wire-формате chat-completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client минимальный публичный интерфейс клиента генерации текста.
// Каждый вызов несёт полный список сообщений: серверной сессии нет,
// транскрипт — это и есть контракт API. structured=true требует от движка
// машинно-разбираемый JSON-объект вместо свободного текста.
type Client interface {
	Complete(ctx context.Context, messages []Message, structured bool) (string, error)
}
