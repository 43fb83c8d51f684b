package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"discutidor/internal/debate"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// DebateService операции ядра, нужные HTTP-слою.
type DebateService interface {
	Chat(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error)
	ListConversations(ctx context.Context) []string
	GetConversation(ctx context.Context, id string) (debate.Conversation, error)
}

// ChatHandler отображает HTTP-запросы на операции сервиса бесед
// и доменные ошибки на статус-коды.
type ChatHandler struct {
	service DebateService
	logger  *slog.Logger
}

func NewChatHandler(service DebateService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// Chat обрабатывает POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req debate.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "validation_error", "cannot parse request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "validation_error", "message is required")
		return
	}

	resp, err := h.service.Chat(r.Context(), req.Message, req.ConversationID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debate.ErrConversationNotFound):
		h.logger.Error("conversation not found", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusNotFound, "conversation_not_found", err.Error())
	case errors.Is(err, debate.ErrPostureExtraction):
		h.logger.Error("posture extraction failed", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusInternalServerError, "posture_extraction_failed", err.Error())
	default:
		h.logger.Error("chat failed", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusInternalServerError, "internal_error",
			"Error en la conversación, inténtalo de nuevo.")
	}
}

// Conversations обрабатывает GET /conversations. Пустой список намеренно
// отдаётся как пустой объект — контракт исходного API.
func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	ids := h.service.ListConversations(r.Context())
	var payload any = ids
	if ids == nil {
		payload = struct{}{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"conversations": payload})
}

// Conversation обрабатывает GET /conversations/{id}: полный транскрипт.
func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.service.GetConversation(r.Context(), id)
	if err != nil {
		if errors.Is(err, debate.ErrConversationNotFound) {
			WriteJSONError(w, http.StatusNotFound, "conversation_not_found", err.Error())
			return
		}
		h.logger.Error("get conversation failed", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, conv)
}
