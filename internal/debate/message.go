package debate

import "time"

// Роли сообщений в транскрипте.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// RoleBot — внешнее имя роли assistant в ответах API.
	RoleBot = "bot"
)

// Message представляет одно сообщение беседы.
// Порядок сообщений значим: именно этот список уходит в движок генерации.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // текст сообщения
}

// Conversation — беседа с зафиксированной постурой.
// Инварианты: ID и Posture неизменны после создания; Messages[0] — системная
// директива, она никогда не удаляется и не меняется; Messages только растёт;
// LastUpdated обновляется при каждом сохраняемом изменении.
type Conversation struct {
	ID          string    `json:"conversation_id"`
	Posture     string    `json:"posture"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// ChatRequest входящий запрос чата. Пустой ConversationID означает
// начало новой беседы.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse исходящий ответ: до пяти последних видимых сообщений,
// от новых к старым.
type ChatResponse struct {
	ConversationID string    `json:"conversation_id"`
	Message        []Message `json:"message"`
}
