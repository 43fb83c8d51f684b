package debate

import (
	"context"
	"sync"
	"time"
)

// storedConversation хранит снимок беседы и момент последней записи для TTL.
type storedConversation struct {
	conv        Conversation
	lastTouched time.Time
}

// MemoryStore потокобезопасное in-memory хранилище бесед с ленивой
// очисткой по TTL. Используется в тестах и в режиме CONVERSATION_STORE=memory.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]storedConversation
	ttl           time.Duration
	now           func() time.Time
}

// NewMemoryStore создаёт новое in-memory хранилище.
// Если ttl == 0, беседы никогда не истекают.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]storedConversation),
		ttl:           ttl,
		now:           time.Now,
	}
}

// Save сохраняет копию беседы и обновляет lastTouched. Никогда не
// возвращает false: in-memory запись не может отказать.
func (s *MemoryStore) Save(ctx context.Context, conv Conversation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[conv.ID] = storedConversation{
		conv:        copyConversation(conv),
		lastTouched: s.now(),
	}
	return true
}

// Get возвращает копию беседы. Ленивая очистка: истёкшая запись
// удаляется, и возвращается false.
func (s *MemoryStore) Get(ctx context.Context, id string) (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.conversations[id]
	if !ok {
		return Conversation{}, false
	}
	if s.expired(data) {
		delete(s.conversations, id)
		return Conversation{}, false
	}
	return copyConversation(data.conv), true
}

// ListIDs возвращает идентификаторы неистёкших бесед, nil если их нет.
func (s *MemoryStore) ListIDs(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for id, data := range s.conversations {
		if s.expired(data) {
			delete(s.conversations, id)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *MemoryStore) expired(data storedConversation) bool {
	return s.ttl > 0 && s.now().Sub(data.lastTouched) > s.ttl
}

// copyConversation делает глубокую копию, чтобы изменения снаружи
// не затрагивали сохранённый снимок.
func copyConversation(conv Conversation) Conversation {
	messages := make([]Message, len(conv.Messages))
	copy(messages, conv.Messages)
	conv.Messages = messages
	return conv
}
