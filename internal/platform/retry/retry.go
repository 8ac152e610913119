// Package retry runs upstream calls with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"
)

// Config controls retry behavior.
type Config struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Retryable decides whether an error is worth another attempt.
	// Nil means IsTransient.
	Retryable func(error) bool

	// Logger receives one debug line per retry. Nil means slog.Default.
	Logger *slog.Logger
}

// DefaultConfig is suitable for most HTTP calls.
var DefaultConfig = Config{
	MaxRetries:  3,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Do calls fn until it succeeds, returns a non-retryable error, the retries run
// out, or ctx is done. The last error from fn is returned when retries run out.
func Do[T any](ctx context.Context, rc Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	retryable := rc.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := rc.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, err
		}

		if attempt < maxRetries {
			wait := Backoff(rc, attempt)
			logger.DebugContext(ctx, "retrying",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", maxRetries+1),
				slog.Duration("wait", wait),
				slog.Any("error", err))
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

// Backoff returns the wait before the retry following the given zero-based attempt:
// InitialWait * Multiplier^attempt, capped at MaxWait, scaled by a jitter factor in [0.5, 1.0).
func Backoff(rc Config, attempt int) time.Duration {
	multiplier := rc.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	wait := float64(rc.InitialWait) * math.Pow(multiplier, float64(attempt))
	if rc.MaxWait > 0 && wait > float64(rc.MaxWait) {
		wait = float64(rc.MaxWait)
	}

	rngMu.Lock()
	jitter := 0.5 + rng.Float64()*0.5
	rngMu.Unlock()

	return time.Duration(wait * jitter)
}

// StatusError reports an HTTP response whose status code signals failure.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return "unexpected status " + http.StatusText(e.StatusCode)
}

// IsRetryableStatus returns true for HTTP status codes worth retrying.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsTransient returns true for connection failures, timeouts and retryable HTTP statuses.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// net.Error includes OpError, so check after OpError
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
