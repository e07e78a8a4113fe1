// Package common provides shared initialization for command implementations.
package common

import (
	"fmt"

	"github.com/motscan/motscan/internal/config"
	"github.com/motscan/motscan/internal/logger"
	"github.com/motscan/motscan/internal/sources"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger  logger.Interface
	Config  *config.Config
	Sources []sources.Config
}

// NewCommandDeps loads configuration, builds the logger and loads the
// sources file. Any failure here is a bootstrap failure and should stop the
// process with a non-zero exit.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("failed to create logger: %w", err)
	}

	srcs, err := sources.NewLoader(cfg.SourcesFile).LoadSources()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("failed to load sources: %w", err)
	}

	return CommandDeps{Logger: log, Config: cfg, Sources: srcs}, nil
}
