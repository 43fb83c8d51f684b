package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	DeepSeek       DeepSeekConfig
	Store          StoreConfig
}

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type StoreConfig struct {
	// Type выбирает бэкенд хранилища бесед: "redis" или "memory".
	Type            string
	RedisURL        string
	ConversationTTL time.Duration
}

func Load() (Config, error) {
	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.DeepSeek = DeepSeekConfig{
		APIKey:  getEnv("DEEPSEEK_API_KEY", ""),
		BaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		Model:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
	}

	// TTL по умолчанию — 1 120 000 секунд ("2 недели" в исходном сервисе).
	ttl, err := parseDuration(getEnv("CONVERSATION_TTL", "1120000s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONVERSATION_TTL: %w", err)
	}

	cfg.Store = StoreConfig{
		Type:            getEnv("CONVERSATION_STORE", "redis"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ConversationTTL: ttl,
	}

	return cfg, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}
