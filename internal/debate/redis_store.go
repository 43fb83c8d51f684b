package debate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"
)

// conversationKeyPrefix — неймспейс ключей бесед в Redis.
const conversationKeyPrefix = "conversation:"

// RedisStore хранит сериализованные беседы в Redis под ключами
// conversation:<id> с истечением по TTL. Любая ошибка Redis логируется
// и схлопывается в "отсутствует" согласно контракту ConversationStore.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore создаёт хранилище поверх готового клиента Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore) Save(ctx context.Context, conv Conversation) bool {
	data, err := json.Marshal(conv)
	if err != nil {
		s.logError("marshal conversation", conv.ID, err)
		return false
	}

	if err := s.client.Set(ctx, conversationKey(conv.ID), data, s.ttl).Err(); err != nil {
		s.logError("save conversation", conv.ID, err)
		return false
	}
	return true
}

func (s *RedisStore) Get(ctx context.Context, id string) (Conversation, bool) {
	data, err := s.client.Get(ctx, conversationKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logError("get conversation", id, err)
		}
		return Conversation{}, false
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		// Повреждённая запись неотличима от отсутствующей.
		s.logError("unmarshal conversation", id, err)
		return Conversation{}, false
	}
	return conv, true
}

func (s *RedisStore) ListIDs(ctx context.Context) []string {
	keys, err := s.client.Keys(ctx, conversationKeyPrefix+"*").Result()
	if err != nil {
		s.logError("list conversations", "", err)
		return nil
	}
	if len(keys) == 0 {
		return nil
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, conversationKeyPrefix))
	}
	return ids
}

func (s *RedisStore) logError(op string, id string, err error) {
	if s.logger == nil {
		return
	}
	attrs := []any{slog.String("error", err.Error())}
	if id != "" {
		attrs = append(attrs, slog.String("conversation_id", id))
	}
	s.logger.Error("redis: "+op, attrs...)
}

func conversationKey(id string) string {
	return conversationKeyPrefix + id
}
