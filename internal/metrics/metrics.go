// Package metrics provides Prometheus instrumentation for the ingestion
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for articles_total.
const (
	OutcomeStored            = "stored"
	OutcomeSkippedValidation = "skipped_validation"
	OutcomeFailed            = "failed"
)

// Metrics holds the pipeline's Prometheus collectors. Construct once per
// process and inject; nothing is registered globally.
type Metrics struct {
	ArticlesTotal  *prometheus.CounterVec
	WordsExtracted *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	SourceHealthy  *prometheus.GaugeVec
}

// New registers all collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ArticlesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "motscan_articles_total",
				Help: "Articles handled per source, by terminal outcome.",
			},
			[]string{"source", "outcome"},
		),
		WordsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "motscan_words_extracted_total",
				Help: "Word-frequency records extracted per source.",
			},
			[]string{"source"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "motscan_fetch_duration_seconds",
				Help:    "Duration of article fetches.",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"source"},
		),
		SourceHealthy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "motscan_source_healthy",
				Help: "Whether the source is currently considered healthy (1) or degraded (0).",
			},
			[]string{"source"},
		),
	}
}

// NewDefault registers against a fresh private registry. Handy in tests and
// when no scrape endpoint is exposed.
func NewDefault() *Metrics {
	return New(prometheus.NewRegistry())
}
