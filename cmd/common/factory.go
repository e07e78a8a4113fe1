package common

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/motscan/motscan/internal/fetch"
	"github.com/motscan/motscan/internal/metrics"
	"github.com/motscan/motscan/internal/orchestrator"
	"github.com/motscan/motscan/internal/report"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/storage"
)

var (
	pipelineMetrics     *metrics.Metrics
	pipelineMetricsOnce sync.Once
)

// scanMetrics registers the pipeline collectors exactly once, so repeated
// scheduler runs share them instead of re-registering.
func scanMetrics() *metrics.Metrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = metrics.New(prometheus.DefaultRegisterer)
	})
	return pipelineMetrics
}

// RunScan performs one full ingestion run: build the pipeline, process all
// sources, render the summary. Per-source failures are reported but never
// returned; only a bootstrap failure (e.g. storage unreachable) yields an
// error.
func RunScan(ctx context.Context, deps CommandDeps) error {
	sink, err := storage.New(deps.Config.Storage, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			deps.Logger.Error("failed to close storage", "error", closeErr)
		}
	}()

	orch := buildOrchestrator(deps, sink)
	run := orch.ProcessAllSources(ctx, deps.Sources)

	report.NewRenderer(os.Stdout).Render(run, orch.Resilience().Health().Snapshot())
	return nil
}

// buildOrchestrator wires the fetch clients, resilience controller and
// metrics into an orchestrator.
func buildOrchestrator(deps CommandDeps, sink storage.Sink) *orchestrator.Orchestrator {
	cfg := deps.Config
	httpClient := fetch.SharedClient(cfg.Crawl.FetchTimeout)

	return orchestrator.New(
		cfg,
		fetch.NewHTTPSourceClient(httpClient, cfg.UserAgent, cfg.Crawl.MaxURLsPerSource, deps.Logger),
		fetch.NewHTTPContentValidator(httpClient, cfg.UserAgent, deps.Logger),
		fetch.NewFixtureLoader(cfg.FixturesDir, deps.Logger),
		resilience.NewController(cfg.Circuit, cfg.Retry, deps.Logger),
		sink,
		scanMetrics(),
		deps.Logger,
	)
}
