// Package resilience wraps network calls with retry, circuit breaking and
// per-source health tracking.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// ErrCircuitOpen is returned when a call is rejected because the source's
// circuit breaker is open. It is the only error this package raises on its
// own; everything else comes from the wrapped call.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// HTTPError represents a non-2xx HTTP response.
type HTTPError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.URL)
}

// Retryable reports whether the status code is worth retrying.
// 429 and 5xx responses are treated as transient; other 4xx are permanent.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// IsRetryable classifies an error for the retry handler. Timeouts, refused
// connections and transient HTTP statuses are retried; permanent HTTP errors
// are not. Unknown errors default to retryable so a flaky parse or read does
// not permanently fail a source.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	return true
}
