package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motscan/motscan/internal/logger"
)

// recordingSleep captures backoff delays instead of sleeping.
func recordingSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestExecuteWithRetry_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(3, time.Second, time.Minute, logger.NewNoOp())
	var delays []time.Duration
	r.sleep = recordingSleep(&delays)

	calls := 0
	err := r.ExecuteWithRetry(t.Context(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestExecuteWithRetry_TransientFailuresThenSuccess(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(3, time.Second, time.Minute, logger.NewNoOp())
	var delays []time.Duration
	r.sleep = recordingSleep(&delays)

	calls := 0
	err := r.ExecuteWithRetry(t.Context(), func(context.Context) error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503, URL: "http://example.com"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestExecuteWithRetry_Exhaustion(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(2, time.Second, time.Minute, logger.NewNoOp())
	var delays []time.Duration
	r.sleep = recordingSleep(&delays)

	calls := 0
	wrapped := &HTTPError{StatusCode: 500, URL: "http://example.com"}
	err := r.ExecuteWithRetry(t.Context(), func(context.Context) error {
		calls++
		return wrapped
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "maxRetries+1 attempts")
	assert.Len(t, delays, 2, "no sleep after the final attempt")
	var httpErr *HTTPError
	assert.ErrorAs(t, err, &httpErr, "original error stays unwrappable")
}

func TestExecuteWithRetry_PermanentErrorShortCircuits(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(3, time.Second, time.Minute, logger.NewNoOp())
	var delays []time.Duration
	r.sleep = recordingSleep(&delays)

	notFound := &HTTPError{StatusCode: 404, URL: "http://example.com/gone"}
	calls := 0
	err := r.ExecuteWithRetry(t.Context(), func(context.Context) error {
		calls++
		return notFound
	})

	assert.Equal(t, notFound, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestExecuteWithRetry_BackoffIsCapped(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(5, time.Second, 3*time.Second, logger.NewNoOp())
	var delays []time.Duration
	r.sleep = recordingSleep(&delays)

	_ = r.ExecuteWithRetry(t.Context(), func(context.Context) error {
		return &HTTPError{StatusCode: 500, URL: "http://example.com"}
	})

	require.Len(t, delays, 5)
	for i, d := range delays {
		assert.LessOrEqual(t, d, 3*time.Second, "delay %d exceeds the cap", i)
		if i > 0 {
			assert.GreaterOrEqual(t, d, delays[i-1], "delays never decrease")
		}
	}
}

func TestExecuteWithRetry_CancelledContextStopsRetrying(t *testing.T) {
	t.Parallel()

	r := NewRetryHandler(3, time.Second, time.Minute, logger.NewNoOp())

	ctx, cancel := context.WithCancel(t.Context())
	calls := 0
	err := r.ExecuteWithRetry(ctx, func(context.Context) error {
		calls++
		cancel()
		return &HTTPError{StatusCode: 500, URL: "http://example.com"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
