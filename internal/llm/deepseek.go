package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"discutidor/internal/config"
	"discutidor/internal/retry"
	"log/slog"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 3750
)

// DeepSeekClient клиент chat-completion API DeepSeek.
// Транспортные сбои (429/5xx, обрывы соединения) повторяются политикой
// retry; для вызывающего любой итоговый сбой — одна ошибка без деталей.
type DeepSeekClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	policy      retry.Policy
	logger      *slog.Logger
}

// NewDeepSeekClient создаёт клиент с настройками из конфигурации.
func NewDeepSeekClient(cfg config.DeepSeekConfig, httpClient *http.Client, logger *slog.Logger) Client {
	return &DeepSeekClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		httpClient:  httpClient,
		policy:      retry.DefaultPolicy(),
		logger:      logger,
	}
}

func (c *DeepSeekClient) Complete(ctx context.Context, messages []Message, structured bool) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("messages are empty")
	}

	requestBody := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if structured {
		requestBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	buf, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	resp, body, err := retry.DoHTTP(ctx, c.policy, c.logger, func(ctx context.Context) (*http.Response, []byte, error) {
		return c.doRequest(ctx, buf)
	})
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("empty response from model")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *DeepSeekClient) doRequest(ctx context.Context, payload []byte) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/chat/completions", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, body, nil
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}
