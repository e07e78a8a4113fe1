package resilience

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError_Retryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{410, false},
	}

	for _, tt := range tests {
		err := &HTTPError{StatusCode: tt.status, URL: "http://example.com"}
		assert.Equal(t, tt.want, err.Retryable(), "status %d", tt.status)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 404}))
	assert.True(t, IsRetryable(&HTTPError{StatusCode: 503}))
	assert.True(t, IsRetryable(fmt.Errorf("fetch: %w", &HTTPError{StatusCode: 503})),
		"classification sees through wrapping")
	assert.True(t, IsRetryable(syscall.ECONNREFUSED))
	assert.True(t, IsRetryable(errors.New("unexpected parse failure")),
		"unknown errors default to retryable")
}
