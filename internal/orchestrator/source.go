package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/sources"
	"github.com/motscan/motscan/internal/wordfreq"
)

// Early termination: once failures within a source's batch reach the
// minimum and the failure ratio crosses the cutoff, the source's remaining
// fetches are cancelled. Other sources are untouched.
const (
	earlyTermMinFailures  = 5
	earlyTermFailureRatio = 0.8
)

// ProcessSource runs one source end to end and returns its aggregate
// counts. A disabled source returns (0,0) immediately with no network
// activity.
func (o *Orchestrator) ProcessSource(ctx context.Context, src sources.Config) domain.ProcessingResult {
	result := domain.ProcessingResult{Source: src.Name}
	if !src.Enabled {
		o.logger.Debug("source disabled, skipping", "source", src.Name)
		return result
	}

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
	}()

	log := o.logger.WithSource(src.Name)

	if !o.cfg.OfflineMode && o.resilience.Degradation().ShouldSkipSource(src.Name) {
		log.Warn("skipping unhealthy source",
			"success_rate", o.resilience.Health().Record(src.Name).SuccessRate(),
		)
		result.Degraded = true
		return result
	}

	docs, attempted, err := o.acquireContent(ctx, src)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			log.Warn("source degraded for this run, circuit open")
			result.Degraded = true
		} else {
			log.Error("failed to acquire content", "error", err)
			result.Err = err
		}
		return result
	}

	engine := wordfreq.NewEngine(wordfreq.Options{
		MinWordLength:       src.Text.MinWordLength,
		MaxWordLength:       src.Text.MaxWordLength,
		AdditionalStopwords: src.Text.AdditionalStopwords,
		MinWordFrequency:    src.Text.MinWordFrequency,
	})

	// Every dispatched fetch counts as attempted, whether or not it
	// produced a document; a source whose fetches all fail must not look
	// untouched.
	result.Attempted = attempted
	for _, doc := range docs {
		if o.processArticle(ctx, src, engine, doc) == outcomeStored {
			result.Processed++
		}
	}

	log.Info("source processed",
		"processed", result.Processed,
		"attempted", result.Attempted,
		"elapsed", time.Since(start),
	)
	return result
}

// acquireContent returns the documents to process for a source together
// with the number of per-URL attempts made to obtain them. Offline mode
// loads fixtures directly and never touches the resilience layer; live mode
// discovers URLs through the controller, then fans out to a bounded fetch
// pool.
func (o *Orchestrator) acquireContent(ctx context.Context, src sources.Config) ([]*domain.Document, int, error) {
	if o.cfg.OfflineMode {
		fixtures, err := o.fixtures.LoadFixtures(src.Name)
		if err != nil {
			return nil, 0, err
		}
		docs := make([]*domain.Document, 0, len(fixtures))
		for _, f := range fixtures {
			docs = append(docs, f.Doc)
		}
		return docs, len(docs), nil
	}

	var urls []string
	err := o.resilience.Execute(ctx, src.Name, func(c context.Context) error {
		discovered, derr := o.client.GetArticleURLs(c, src)
		if derr != nil {
			return derr
		}
		urls = discovered
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Unreliable sources get proportionally smaller batches.
	if reduced := o.resilience.Degradation().ReducedCount(src.Name, len(urls)); reduced < len(urls) {
		o.logger.Warn("reducing batch for degraded source",
			"source", src.Name,
			"discovered", len(urls),
			"reduced", reduced,
		)
		urls = urls[:reduced]
	}

	docs, attempts := o.fetchAll(ctx, src, urls)
	return docs, attempts, nil
}

// fetchAll fetches the batch through a bounded worker pool and returns the
// surviving documents together with the number of fetches actually tried.
// Results are collected as they complete; order is not preserved. When the
// failure threshold is crossed all still-pending fetches for this source
// are cancelled, and the cancelled URLs are not counted as attempts.
func (o *Orchestrator) fetchAll(ctx context.Context, src sources.Config, urls []string) ([]*domain.Document, int) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		docs     []*domain.Document
		attempts int
		failures int
	)

	sem := make(chan struct{}, o.cfg.Crawl.MaxConcurrentFetches)
	var wg sync.WaitGroup

	delay := o.dispatchDelay(src)

	for i, url := range urls {
		if fetchCtx.Err() != nil {
			break
		}
		if i > 0 && delay > 0 {
			select {
			case <-fetchCtx.Done():
			case <-time.After(delay):
			}
			if fetchCtx.Err() != nil {
				break
			}
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(url string) {
			defer wg.Done()
			defer func() { <-sem }()

			if fetchCtx.Err() != nil {
				return
			}

			doc, fetchErr := o.fetchOne(fetchCtx, src, url)

			mu.Lock()
			defer mu.Unlock()

			attempts++
			if fetchErr != nil {
				failures++
				if failures >= earlyTermMinFailures &&
					float64(failures)/float64(attempts) > earlyTermFailureRatio {
					o.logger.Warn("early termination, cancelling remaining fetches",
						"source", src.Name,
						"failures", failures,
						"attempts", attempts,
					)
					cancel()
				}
				return
			}
			docs = append(docs, doc)
		}(url)
	}

	wg.Wait()
	return docs, attempts
}

// fetchOne fetches a single URL through the resilience controller and
// records its duration.
func (o *Orchestrator) fetchOne(ctx context.Context, src sources.Config, url string) (*domain.Document, error) {
	start := time.Now()

	var doc *domain.Document
	err := o.resilience.Execute(ctx, src.Name, func(c context.Context) error {
		fetched, ferr := o.validator.Fetch(c, url)
		if ferr != nil {
			return ferr
		}
		doc = fetched
		return nil
	})

	o.metrics.FetchDuration.WithLabelValues(src.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		o.logger.Debug("fetch failed", "source", src.Name, "url", url, "error", err)
		return nil, err
	}
	return doc, nil
}

// dispatchDelay derives the inter-fetch delay from the source's rate limit,
// stretched while the source accumulates consecutive failures.
func (o *Orchestrator) dispatchDelay(src sources.Config) time.Duration {
	base, err := time.ParseDuration(src.RateLimit)
	if err != nil || base <= 0 {
		return 0
	}
	return o.resilience.Degradation().AdaptiveDelay(src.Name, base)
}
