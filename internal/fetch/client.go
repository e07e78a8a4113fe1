// Package fetch implements URL discovery and article retrieval for
// configured sources.
package fetch

import (
	"net/http"
	"sync"
	"time"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

var (
	sharedClient     *http.Client
	sharedClientOnce sync.Once
)

// SharedClient returns the process-wide HTTP client, creating it on first
// use. The client pools connections and is safe for concurrent use; the
// timeout applies independently to each request.
func SharedClient(timeout time.Duration) *http.Client {
	sharedClientOnce.Do(func() {
		sharedClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	})
	return sharedClient
}
