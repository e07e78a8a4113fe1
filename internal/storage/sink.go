// Package storage persists raw articles and word-frequency facts. Two sinks
// implement the same interface: an append-only daily CSV file and a
// Postgres store keeping historical article snapshots.
package storage

import (
	"context"

	"github.com/motscan/motscan/internal/domain"
)

// Sink consumes article and word-fact records. Implementations serialize
// concurrent writes to the same destination themselves.
type Sink interface {
	// SaveArticle persists the raw article together with its word facts.
	// The operation is atomic per article: either everything lands or the
	// sink is left as it was.
	SaveArticle(ctx context.Context, article *domain.RawArticle, words []domain.WordFrequencyRecord) error

	// Close releases the sink's resources.
	Close() error
}
