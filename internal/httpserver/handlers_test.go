package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"discutidor/internal/debate"
)

// stubService реализует DebateService для тестов.
type stubService struct {
	chatFunc func(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error)
	listFunc func(ctx context.Context) []string
	getFunc  func(ctx context.Context, id string) (debate.Conversation, error)
}

func (s *stubService) Chat(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error) {
	if s.chatFunc != nil {
		return s.chatFunc(ctx, message, conversationID)
	}
	return debate.ChatResponse{}, errors.New("not implemented")
}

func (s *stubService) ListConversations(ctx context.Context) []string {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil
}

func (s *stubService) GetConversation(ctx context.Context, id string) (debate.Conversation, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, id)
	}
	return debate.Conversation{}, errors.New("not implemented")
}

func newTestRouter(service DebateService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(RouterDeps{
		Logger: logger,
		Chat:   NewChatHandler(service, logger),
	})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint_Success(t *testing.T) {
	service := &stubService{
		chatFunc: func(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error) {
			if message != "defiende los gatos" {
				t.Errorf("unexpected message: %q", message)
			}
			if conversationID != "" {
				t.Errorf("expected empty conversation id, got %q", conversationID)
			}
			return debate.ChatResponse{
				ConversationID: "conv1",
				Message: []debate.Message{
					{Role: debate.RoleBot, Content: "¡Claro!"},
					{Role: debate.RoleUser, Content: "defiende los gatos"},
				},
			}, nil
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/chat", `{"message": "defiende los gatos"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp debate.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if resp.ConversationID != "conv1" {
		t.Fatalf("unexpected conversation id: %q", resp.ConversationID)
	}
	if len(resp.Message) != 2 || resp.Message[0].Role != debate.RoleBot {
		t.Fatalf("unexpected history: %+v", resp.Message)
	}
}

func TestChatEndpoint_PassesConversationID(t *testing.T) {
	var gotID string
	service := &stubService{
		chatFunc: func(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error) {
			gotID = conversationID
			return debate.ChatResponse{ConversationID: conversationID}, nil
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/chat",
		`{"message": "sigo", "conversation_id": "conv42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "conv42" {
		t.Fatalf("expected conversation id to be passed through, got %q", gotID)
	}
}

func TestChatEndpoint_InvalidBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/chat", "{no es json")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/chat", `{"message": "   "}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestChatEndpoint_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"not found":          {err: debate.ErrConversationNotFound, status: http.StatusNotFound},
		"posture extraction": {err: debate.ErrPostureExtraction, status: http.StatusInternalServerError},
		"generic":            {err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			service := &stubService{
				chatFunc: func(ctx context.Context, message string, conversationID string) (debate.ChatResponse, error) {
					return debate.ChatResponse{}, tc.err
				},
			}
			router := newTestRouter(service)

			rec := doRequest(t, router, http.MethodPost, "/api/v1/chat", `{"message": "hola"}`)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestConversationsEndpoint_EmptyObjectWhenAbsent(t *testing.T) {
	router := newTestRouter(&stubService{
		listFunc: func(ctx context.Context) []string { return nil },
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/conversations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if got := strings.TrimSpace(string(payload["conversations"])); got != "{}" {
		t.Fatalf("expected empty object, got %s", got)
	}
}

func TestConversationsEndpoint_ListsIDs(t *testing.T) {
	router := newTestRouter(&stubService{
		listFunc: func(ctx context.Context) []string { return []string{"a", "b"} },
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/conversations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Conversations []string `json:"conversations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if len(payload.Conversations) != 2 {
		t.Fatalf("expected 2 ids, got %v", payload.Conversations)
	}
}

func TestConversationEndpoint_Found(t *testing.T) {
	router := newTestRouter(&stubService{
		getFunc: func(ctx context.Context, id string) (debate.Conversation, error) {
			if id != "conv1" {
				t.Errorf("unexpected id: %q", id)
			}
			return debate.Conversation{ID: id, Posture: "p"}, nil
		},
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/conversations/conv1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var conv debate.Conversation
	if err := json.Unmarshal(rec.Body.Bytes(), &conv); err != nil {
		t.Fatalf("cannot parse response: %v", err)
	}
	if conv.Posture != "p" {
		t.Fatalf("unexpected posture: %q", conv.Posture)
	}
}

func TestConversationEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(&stubService{
		getFunc: func(ctx context.Context, id string) (debate.Conversation, error) {
			return debate.Conversation{}, debate.ErrConversationNotFound
		},
	})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/conversations/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLivenessEndpoints(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := doRequest(t, router, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Discutidor") {
		t.Fatalf("liveness message missing: %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/ping", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("unexpected ping response: %d %s", rec.Code, rec.Body.String())
	}
}
