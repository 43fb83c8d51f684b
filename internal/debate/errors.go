package debate

import "errors"

var (
	// ErrConversationNotFound возвращается, когда беседа с указанным id
	// не существует или истекла по TTL.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrPostureExtraction возвращается, когда из первого сообщения
	// пользователя не удалось извлечь постуру.
	ErrPostureExtraction = errors.New("posture extraction failed")
)
