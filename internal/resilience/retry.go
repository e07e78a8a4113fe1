package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/motscan/motscan/internal/logger"
)

// Default retry settings.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultMaxDelay   = 30 * time.Second
)

// RetryHandler executes functions with exponential backoff.
type RetryHandler struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	logger     logger.Interface

	// sleep is swappable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryHandler creates a retry handler.
func NewRetryHandler(maxRetries int, baseDelay, maxDelay time.Duration, log logger.Interface) *RetryHandler {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	return &RetryHandler{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   maxDelay,
		logger:     log,
		sleep:      sleepCtx,
	}
}

// ExecuteWithRetry invokes fn up to maxRetries+1 times. After each failure
// except the last it sleeps min(baseDelay*2^attempt, maxDelay). Errors that
// classify as permanent are returned immediately without further attempts.
func (r *RetryHandler) ExecuteWithRetry(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}

		if attempt == r.maxRetries {
			break
		}

		delay := r.backoff(attempt)
		r.logger.Debug("retrying after failure",
			"attempt", attempt+1,
			"max_retries", r.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}

	r.logger.Warn("retries exhausted", "attempts", r.maxRetries+1, "error", lastErr)
	return fmt.Errorf("retries exhausted after %d attempts: %w", r.maxRetries+1, lastErr)
}

// backoff computes the delay before the next attempt.
func (r *RetryHandler) backoff(attempt int) time.Duration {
	delay := r.baseDelay << uint(attempt)
	if delay > r.maxDelay || delay <= 0 {
		return r.maxDelay
	}
	return delay
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
