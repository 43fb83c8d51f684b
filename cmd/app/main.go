package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"discutidor/internal/config"
	"discutidor/internal/debate"
	"discutidor/internal/httpserver"
	"discutidor/internal/llm"
	"discutidor/internal/transport"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)
	llmClient := llm.NewDeepSeekClient(cfg.DeepSeek, httpClient, logger)

	var store debate.ConversationStore
	switch strings.ToLower(cfg.Store.Type) {
	case "memory":
		store = debate.NewMemoryStore(cfg.Store.ConversationTTL)
	default:
		opts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			log.Fatalf("failed to parse redis url: %v", err)
		}
		opts.DialTimeout = 5 * time.Second
		opts.ReadTimeout = 5 * time.Second
		opts.WriteTimeout = 5 * time.Second
		opts.MaxRetries = 1
		store = debate.NewRedisStore(redis.NewClient(opts), cfg.Store.ConversationTTL, logger)
	}

	service := debate.NewService(debate.ServiceConfig{
		Client: llmClient,
		Store:  store,
		Logger: logger,
	})

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger: logger,
		Chat:   httpserver.NewChatHandler(service, logger),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", slog.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
