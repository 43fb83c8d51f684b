// Package retry повторяет исходящие HTTP-запросы при преходящих сбоях
// (429/5xx, обрывы соединения) с экспоненциальной задержкой и джиттером.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"log/slog"
)

const (
	defaultBaseDelay      = 500 * time.Millisecond
	defaultMaxDelay       = 8 * time.Second
	defaultMultiplier     = 2.0
	defaultMaxAttempts    = 3
	defaultJitterFraction = 0.30
)

type Sleeper func(ctx context.Context, d time.Duration) error
type NowFunc func() time.Time
type RandFunc func() float64

type Policy struct {
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	MaxAttempts    int
	JitterFraction float64
	Sleep          Sleeper
	Now            NowFunc
	Rand           RandFunc
}

func DefaultPolicy() Policy {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return Policy{
		BaseDelay:      defaultBaseDelay,
		MaxDelay:       defaultMaxDelay,
		Multiplier:     defaultMultiplier,
		MaxAttempts:    defaultMaxAttempts,
		JitterFraction: defaultJitterFraction,
		Sleep:          defaultSleep,
		Now:            time.Now,
		Rand:           rng.Float64,
	}
}

// HTTPStatusError преходящий HTTP-статус, из-за которого запрос повторялся.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("transient status %d", e.StatusCode)
}

// ExhaustedError сигнализирует, что попытки исчерпаны.
type ExhaustedError struct {
	Cause    error
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry attempts exhausted after %d: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// DoHTTP выполняет do до MaxAttempts раз, повторяя только преходящие сбои.
// Непреходящие ошибки и ответы с нетранзиентным статусом возвращаются сразу.
func DoHTTP(ctx context.Context, policy Policy, logger *slog.Logger, do func(ctx context.Context) (*http.Response, []byte, error)) (*http.Response, []byte, error) {
	policy = withDefaults(policy)

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		resp, body, err := do(ctx)
		if err != nil {
			if !isRetryableNetErr(ctx, err) {
				return resp, body, err
			}
			if attempt == policy.MaxAttempts {
				return resp, body, &ExhaustedError{Cause: err, Attempts: attempt}
			}
			delay := policy.jitterDelay(policy.backoffDelay(attempt))
			logRetry(logger, attempt+1, policy.MaxAttempts, 0, delay, err.Error())
			if err := policy.Sleep(ctx, delay); err != nil {
				return nil, nil, err
			}
			continue
		}

		if resp == nil {
			return nil, nil, errors.New("nil response from http client")
		}

		status := resp.StatusCode
		if !isRetryableStatus(status) {
			return resp, body, nil
		}
		if attempt == policy.MaxAttempts {
			return resp, body, &ExhaustedError{
				Cause:    &HTTPStatusError{StatusCode: status},
				Attempts: attempt,
			}
		}

		delay := policy.backoffDelay(attempt)
		if retryAfter, ok := parseRetryAfter(resp.Header, policy.Now()); ok {
			delay = minDuration(retryAfter, policy.MaxDelay)
		} else {
			delay = policy.jitterDelay(delay)
		}
		logRetry(logger, attempt+1, policy.MaxAttempts, status, delay, "")
		if err := policy.Sleep(ctx, delay); err != nil {
			return nil, nil, err
		}
	}

	return nil, nil, errors.New("retry attempts exhausted")
}

func withDefaults(p Policy) Policy {
	if p.BaseDelay == 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.MaxDelay == 0 {
		p.MaxDelay = defaultMaxDelay
	}
	if p.Multiplier == 0 {
		p.Multiplier = defaultMultiplier
	}
	if p.MaxAttempts == 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.JitterFraction == 0 {
		p.JitterFraction = defaultJitterFraction
	}
	if p.Sleep == nil {
		p.Sleep = defaultSleep
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Rand == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		p.Rand = rng.Float64
	}
	return p
}

func (p Policy) backoffDelay(retryIndex int) time.Duration {
	if retryIndex < 1 {
		retryIndex = 1
	}
	delay := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(retryIndex-1))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	return time.Duration(delay)
}

func (p Policy) jitterDelay(delay time.Duration) time.Duration {
	if delay <= 0 || p.JitterFraction <= 0 {
		return delay
	}
	factor := 1 + (p.Rand()*2-1)*p.JitterFraction
	adjusted := float64(delay) * factor
	if adjusted < 0 {
		adjusted = 0
	}
	return time.Duration(adjusted)
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(header http.Header, now time.Time) (time.Duration, bool) {
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, true
		}
		return time.Duration(seconds) * time.Second, true
	}
	if parsed, err := http.ParseTime(value); err == nil {
		delay := parsed.Sub(now)
		if delay < 0 {
			delay = 0
		}
		return delay, true
	}
	return 0, false
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func isRetryableNetErr(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection reset")
}

func logRetry(logger *slog.Logger, attempt int, maxAttempts int, status int, delay time.Duration, reason string) {
	if logger == nil {
		return
	}
	args := []any{
		slog.Int("attempt", attempt),
		slog.Int("max_attempts", maxAttempts),
		slog.Duration("retry_in", delay),
	}
	if status > 0 {
		args = append(args, slog.Int("status", status))
	}
	if reason != "" {
		args = append(args, slog.String("reason", reason))
	}
	logger.Warn("retrying request", args...)
}

func minDuration(a, b time.Duration) time.Duration {
	if a <= b {
		return a
	}
	return b
}
