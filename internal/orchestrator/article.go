package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/metrics"
	"github.com/motscan/motscan/internal/sources"
	"github.com/motscan/motscan/internal/wordfreq"
)

// outcome is the terminal state of one document.
type outcome int

const (
	// outcomeStored means the article and its word facts were persisted.
	outcomeStored outcome = iota
	// outcomeSkippedValidation means the page structure did not yield an
	// article. Not retried, not a network failure.
	outcomeSkippedValidation
	// outcomeFailed means extraction or storage failed.
	outcomeFailed
)

// processArticle runs parse -> extract -> store for one document. Failures
// are swallowed here: they surface only as "attempted but not processed" in
// the source's counts.
func (o *Orchestrator) processArticle(
	ctx context.Context,
	src sources.Config,
	engine *wordfreq.Engine,
	doc *domain.Document,
) (result outcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("article processing panicked",
				"source", src.Name,
				"url", doc.URL,
				"panic", fmt.Sprint(r),
			)
			o.metrics.ArticlesTotal.WithLabelValues(src.Name, metrics.OutcomeFailed).Inc()
			result = outcomeFailed
		}
	}()

	article, err := o.validator.ValidateAndExtract(doc, src)
	if err != nil {
		o.logger.Debug("article skipped by validation",
			"source", src.Name,
			"url", doc.URL,
			"error", err,
		)
		o.metrics.ArticlesTotal.WithLabelValues(src.Name, metrics.OutcomeSkippedValidation).Inc()
		return outcomeSkippedValidation
	}

	words, err := o.extractWords(article, engine)
	if err != nil {
		o.metrics.ArticlesTotal.WithLabelValues(src.Name, metrics.OutcomeFailed).Inc()
		return outcomeFailed
	}

	if saveErr := o.sink.SaveArticle(ctx, article, words); saveErr != nil {
		o.logger.Error("failed to store article",
			"source", src.Name,
			"url", article.URL,
			"error", saveErr,
		)
		o.metrics.ArticlesTotal.WithLabelValues(src.Name, metrics.OutcomeFailed).Inc()
		return outcomeFailed
	}

	o.metrics.ArticlesTotal.WithLabelValues(src.Name, metrics.OutcomeStored).Inc()
	o.metrics.WordsExtracted.WithLabelValues(src.Name).Add(float64(len(words)))
	return outcomeStored
}

// extractWords runs the word-frequency engine over the article text. Text
// that fails quality validation skips extraction but keeps the raw article
// storable with zero word facts.
func (o *Orchestrator) extractWords(article *domain.RawArticle, engine *wordfreq.Engine) ([]domain.WordFrequencyRecord, error) {
	stats, err := engine.Analyze(article.Text)
	if err != nil {
		if errors.Is(err, wordfreq.ErrTextQuality) {
			o.logger.Debug("text failed quality validation, storing raw article only",
				"url", article.URL,
				"error", err,
			)
			return nil, nil
		}
		return nil, err
	}

	records := make([]domain.WordFrequencyRecord, 0, len(stats))
	for _, st := range stats {
		records = append(records, domain.WordFrequencyRecord{
			Word:              st.Word,
			Frequency:         st.Count,
			Context:           st.Context,
			ArticleID:         article.ID,
			Source:            article.Site,
			ArticleDate:       article.ArticleDate,
			ScrapedAt:         article.ScrapedAt,
			PositionInArticle: st.Position,
		})
	}
	return records, nil
}
