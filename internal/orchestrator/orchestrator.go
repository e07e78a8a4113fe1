// Package orchestrator drives the fetch -> validate -> extract -> store
// pipeline across all configured sources, tolerating partial failure.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/motscan/motscan/internal/config"
	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/fetch"
	"github.com/motscan/motscan/internal/logger"
	"github.com/motscan/motscan/internal/metrics"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/sources"
	"github.com/motscan/motscan/internal/storage"
)

// Orchestrator composes the resilience layer, the word-frequency engine and
// the storage sink per source and across sources. It owns all concurrency;
// one source's failure never aborts its siblings.
type Orchestrator struct {
	cfg        *config.Config
	client     fetch.SourceClient
	validator  fetch.ContentValidator
	fixtures   *fetch.FixtureLoader
	resilience *resilience.Controller
	sink       storage.Sink
	metrics    *metrics.Metrics
	logger     logger.Interface
}

// New creates an orchestrator. The resilience controller is owned here and
// injected into every run, so no run shares hidden global state.
func New(
	cfg *config.Config,
	client fetch.SourceClient,
	validator fetch.ContentValidator,
	fixtures *fetch.FixtureLoader,
	ctrl *resilience.Controller,
	sink storage.Sink,
	m *metrics.Metrics,
	log logger.Interface,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		client:     client,
		validator:  validator,
		fixtures:   fixtures,
		resilience: ctrl,
		sink:       sink,
		metrics:    m,
		logger:     log.WithComponent("orchestrator"),
	}
}

// Resilience exposes the controller for reporting.
func (o *Orchestrator) Resilience() *resilience.Controller {
	return o.resilience
}

// ProcessAllSources runs every enabled source, several concurrently up to
// min(len(configs), MaxConcurrentSources). A panicking or failing source is
// converted into a zero result for that source only.
func (o *Orchestrator) ProcessAllSources(ctx context.Context, configs []sources.Config) domain.RunResult {
	run := domain.RunResult{StartedAt: time.Now()}
	if len(configs) == 0 {
		return run
	}

	limit := o.cfg.Crawl.MaxConcurrentSources
	if len(configs) < limit {
		limit = len(configs)
	}

	results := make([]domain.ProcessingResult, len(configs))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, src := range configs {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, src sources.Config) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx] = o.runSourceSafely(ctx, src)
		}(i, src)
	}

	wg.Wait()

	run.Sources = results
	run.Elapsed = time.Since(run.StartedAt)

	o.finishRun(run)
	return run
}

// runSourceSafely isolates one source's run, converting a panic into a zero
// result so sibling sources are unaffected.
func (o *Orchestrator) runSourceSafely(ctx context.Context, src sources.Config) (result domain.ProcessingResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("source processing panicked", "source", src.Name, "panic", fmt.Sprint(r))
			result = domain.ProcessingResult{
				Source: src.Name,
				Err:    fmt.Errorf("source panicked: %v", r),
			}
		}
	}()

	return o.ProcessSource(ctx, src)
}

// finishRun logs totals and flags suspicious sources. Low yield is flagged,
// never fatal.
func (o *Orchestrator) finishRun(run domain.RunResult) {
	for _, r := range run.Sources {
		healthy := o.resilience.Health().IsSourceHealthy(r.Source)
		gauge := 0.0
		if healthy {
			gauge = 1.0
		}
		o.metrics.SourceHealthy.WithLabelValues(r.Source).Set(gauge)

		if r.LowYield() {
			o.logger.Warn("source yield below threshold",
				"source", r.Source,
				"processed", r.Processed,
				"attempted", r.Attempted,
			)
		}
	}

	o.logger.Info("run complete",
		"sources", len(run.Sources),
		"processed", run.TotalProcessed(),
		"attempted", run.TotalAttempted(),
		"elapsed", run.Elapsed,
	)
}
