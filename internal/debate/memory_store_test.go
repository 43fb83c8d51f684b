package debate

import (
	"context"
	"sort"
	"testing"
	"time"
)

func sampleConversation(id string) Conversation {
	now := time.Now().UTC()
	return Conversation{
		ID:      id,
		Posture: "los libros son mejores que las películas",
		Messages: []Message{
			{Role: RoleSystem, Content: "directiva"},
			{Role: RoleUser, Content: "hola"},
			{Role: RoleAssistant, Content: "respuesta"},
		},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func TestMemoryStore_GetEmpty(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	if _, ok := store.Get(context.Background(), "ghost"); ok {
		t.Fatalf("expected not found")
	}
}

func TestMemoryStore_SaveAndGetRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	original := sampleConversation("conv1")
	if !store.Save(ctx, original) {
		t.Fatalf("Save must succeed for memory store")
	}

	got, ok := store.Get(ctx, "conv1")
	if !ok {
		t.Fatalf("expected conversation to be found")
	}
	if got.ID != original.ID || got.Posture != original.Posture {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Messages) != len(original.Messages) {
		t.Fatalf("expected %d messages, got %d", len(original.Messages), len(got.Messages))
	}
	for i := range original.Messages {
		if got.Messages[i] != original.Messages[i] {
			t.Fatalf("message %d mismatch: %+v", i, got.Messages[i])
		}
	}
	if !got.CreatedAt.Equal(original.CreatedAt) || !got.LastUpdated.Equal(original.LastUpdated) {
		t.Fatalf("timestamps must round trip")
	}
}

func TestMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	store.Save(ctx, sampleConversation("conv1"))

	got, _ := store.Get(ctx, "conv1")
	got.Messages[0].Content = "mutado"
	got.Messages = append(got.Messages, Message{Role: RoleUser, Content: "extra"})

	again, _ := store.Get(ctx, "conv1")
	if again.Messages[0].Content != "directiva" {
		t.Fatalf("stored snapshot must not be affected by caller mutations")
	}
	if len(again.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(again.Messages))
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	store.Save(ctx, sampleConversation("conv1"))

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	if _, ok := store.Get(ctx, "conv1"); !ok {
		t.Fatalf("conversation must survive within TTL")
	}

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, ok := store.Get(ctx, "conv1"); ok {
		t.Fatalf("conversation must expire after TTL")
	}
	if ids := store.ListIDs(ctx); ids != nil {
		t.Fatalf("expired conversations must not be listed, got %v", ids)
	}
}

func TestMemoryStore_TTLZeroNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	store.Save(ctx, sampleConversation("conv1"))

	store.now = func() time.Time { return base.Add(1000 * time.Hour) }
	if _, ok := store.Get(ctx, "conv1"); !ok {
		t.Fatalf("conversation with ttl=0 must never expire")
	}
}

func TestMemoryStore_ListIDs(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if ids := store.ListIDs(ctx); ids != nil {
		t.Fatalf("expected nil for empty store, got %v", ids)
	}

	store.Save(ctx, sampleConversation("a"))
	store.Save(ctx, sampleConversation("b"))

	ids := store.ListIDs(ctx)
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
