package storage

import (
	"fmt"

	"github.com/motscan/motscan/internal/config"
	"github.com/motscan/motscan/internal/logger"
)

// New creates the sink selected by configuration. Failing to open the sink
// is a bootstrap failure: the run cannot start without storage.
func New(cfg config.StorageConfig, log logger.Interface) (Sink, error) {
	switch cfg.Backend {
	case config.StorageCSV:
		return NewCSVSink(cfg.CSV.Dir, log)
	case config.StoragePostgres:
		return NewPostgresSink(cfg.Database, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
