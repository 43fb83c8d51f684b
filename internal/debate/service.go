package debate

import (
	"context"
	"fmt"
	"time"

	"discutidor/internal/llm"
	"log/slog"

	"github.com/google/uuid"
)

// visibleHistoryLimit — фиксированный контракт внешнего интерфейса:
// наружу отдаются не более пяти последних сообщений.
const visibleHistoryLimit = 5

// Service управляет жизненным циклом бесед: извлекает постуру из первого
// сообщения, создаёт беседу с системной директивой, продолжает существующие
// беседы и форматирует ответ. Генерацию текста делегирует llm.Client,
// хранение — ConversationStore.
//
// Известное ограничение: два одновременных запроса к одной беседе могут
// прочитать один снимок и перезаписать друг друга (выигрывает последняя
// запись). Блокировок по id нет — это принятое поведение.
type Service struct {
	client llm.Client
	store  ConversationStore
	logger *slog.Logger
}

// ServiceConfig конфигурация для создания Service.
type ServiceConfig struct {
	Client llm.Client
	Store  ConversationStore
	Logger *slog.Logger
}

// NewService создаёт новый сервис бесед.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		client: cfg.Client,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// Chat — основная операция. Пустой conversationID начинает новую беседу:
// извлечение постуры, инициализация, первый ответ. Непустой — продолжает
// существующую. Оба пути завершаются форматированием ответа.
func (s *Service) Chat(ctx context.Context, message string, conversationID string) (ChatResponse, error) {
	var (
		conv Conversation
		err  error
	)
	if conversationID == "" {
		conv, err = s.newConversation(ctx, message)
	} else {
		conv, err = s.continueConversation(ctx, conversationID, message)
	}
	if err != nil {
		return ChatResponse{}, err
	}
	return formatResponse(conv), nil
}

// ListConversations возвращает идентификаторы известных бесед.
func (s *Service) ListConversations(ctx context.Context) []string {
	return s.store.ListIDs(ctx)
}

// GetConversation возвращает полный транскрипт беседы по id.
func (s *Service) GetConversation(ctx context.Context, id string) (Conversation, error) {
	conv, ok := s.store.Get(ctx, id)
	if !ok {
		return Conversation{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return conv, nil
}

func (s *Service) newConversation(ctx context.Context, message string) (Conversation, error) {
	posture, err := s.extractPosture(ctx, message)
	if err != nil {
		return Conversation{}, err
	}
	if s.logger != nil {
		s.logger.Info("posture extracted", slog.String("posture", posture))
	}

	now := time.Now().UTC()
	conv := Conversation{
		ID:      uuid.NewString(),
		Posture: posture,
		Messages: []Message{
			{Role: RoleSystem, Content: directivePrompt(posture)},
			{Role: RoleUser, Content: message},
		},
		CreatedAt:   now,
		LastUpdated: now,
	}
	s.save(ctx, conv)

	return s.generateReply(ctx, conv)
}

func (s *Service) continueConversation(ctx context.Context, id string, message string) (Conversation, error) {
	conv, ok := s.store.Get(ctx, id)
	if !ok {
		return Conversation{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}

	conv.Messages = append(conv.Messages, Message{Role: RoleUser, Content: message})
	return s.generateReply(ctx, conv)
}

// extractPosture извлекает постуру из первого сообщения пользователя.
// Запрос уходит со structured=true, ответ разбирается как JSON-объект
// { "posture": str }. Любой сбой терминален, повторов нет.
func (s *Service) extractPosture(ctx context.Context, message string) (string, error) {
	prompt := []llm.Message{
		{Role: RoleSystem, Content: postureExtractionPrompt},
		{Role: RoleUser, Content: message},
	}

	content, err := s.client.Complete(ctx, prompt, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostureExtraction, err)
	}

	var payload struct {
		Posture string `json:"posture"`
	}
	if err := llm.UnmarshalObject(content, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostureExtraction, err)
	}
	if payload.Posture == "" {
		return "", fmt.Errorf("%w: missing posture field", ErrPostureExtraction)
	}
	return payload.Posture, nil
}

// generateReply отправляет полный текущий транскрипт в движок, добавляет
// ответ ассистента и сохраняет беседу. При ошибке генерации беседа не
// сохраняется: в хранилище не попадает частичный аппенд.
func (s *Service) generateReply(ctx context.Context, conv Conversation) (Conversation, error) {
	answer, err := s.client.Complete(ctx, toWire(conv.Messages), false)
	if err != nil {
		return Conversation{}, fmt.Errorf("generate reply: %w", err)
	}

	conv.Messages = append(conv.Messages, Message{Role: RoleAssistant, Content: answer})
	conv.LastUpdated = time.Now().UTC()
	s.save(ctx, conv)

	return conv, nil
}

// save сохраняет беседу best-effort: отказ хранилища логируется, но не
// прерывает операцию (доступность важнее долговечности).
func (s *Service) save(ctx context.Context, conv Conversation) {
	if s.store.Save(ctx, conv) {
		return
	}
	if s.logger != nil {
		s.logger.Warn("conversation not persisted",
			slog.String("conversation_id", conv.ID))
	}
}

func toWire(messages []Message) []llm.Message {
	wire := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, llm.Message{Role: m.Role, Content: m.Content})
	}
	return wire
}

// formatResponse отбрасывает системную директиву, берёт последние пять
// сообщений и разворачивает их от новых к старым. Роль assistant наружу
// отдаётся как bot.
func formatResponse(conv Conversation) ChatResponse {
	visible := conv.Messages[1:]
	if len(visible) > visibleHistoryLimit {
		visible = visible[len(visible)-visibleHistoryLimit:]
	}

	history := make([]Message, 0, len(visible))
	for i := len(visible) - 1; i >= 0; i-- {
		m := visible[i]
		role := m.Role
		if role == RoleAssistant {
			role = RoleBot
		}
		history = append(history, Message{Role: role, Content: m.Content})
	}

	return ChatResponse{
		ConversationID: conv.ID,
		Message:        history,
	}
}
