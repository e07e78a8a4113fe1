// Package wordfreq turns raw article text into quality-filtered
// word-frequency statistics with sentence context. Every function is pure:
// no I/O, and identical input always yields identical output for a given
// configuration.
package wordfreq

import "sort"

// Outlier filtering defaults. A word whose count exceeds
// max(totalTokens*OutlierRatio, OutlierFloor) is treated as a parsing
// artifact rather than genuine vocabulary. The threshold is a heuristic
// carried over from production data; keep it configurable rather than
// second-guessing it.
const (
	DefaultOutlierRatio = 0.1
	DefaultOutlierFloor = 10
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	// MinWordLength and MaxWordLength bound token length.
	MinWordLength int
	MaxWordLength int
	// AdditionalStopwords extend the base French list, per site.
	AdditionalStopwords []string
	// MinWordFrequency drops words seen fewer times than this.
	MinWordFrequency int
	// OutlierRatio and OutlierFloor parameterize outlier filtering.
	OutlierRatio float64
	OutlierFloor int
}

// WordStat is one word's statistics within a single article.
type WordStat struct {
	Word string
	// Count is the number of occurrences after filtering.
	Count int
	// Context is the first sentence the word appeared in, possibly empty.
	Context string
	// Position is the rank of the word by first occurrence in the text.
	Position int
}

// Engine runs the validate -> clean -> tokenize -> count -> filter ->
// context pipeline.
type Engine struct {
	opts      Options
	stopwords map[string]struct{}
	junk      map[string]struct{}
}

// NewEngine creates an engine for the given options.
func NewEngine(opts Options) *Engine {
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = DefaultMinWordLength
	}
	if opts.MaxWordLength <= 0 {
		opts.MaxWordLength = DefaultMaxWordLength
	}
	if opts.MinWordFrequency <= 0 {
		opts.MinWordFrequency = 1
	}
	if opts.OutlierRatio <= 0 {
		opts.OutlierRatio = DefaultOutlierRatio
	}
	if opts.OutlierFloor <= 0 {
		opts.OutlierFloor = DefaultOutlierFloor
	}

	stop := make(map[string]struct{}, len(baseStopwords)+len(opts.AdditionalStopwords))
	for _, w := range baseStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range opts.AdditionalStopwords {
		stop[CleanText(w)] = struct{}{}
	}

	junk := make(map[string]struct{}, len(junkWords))
	for _, w := range junkWords {
		junk[w] = struct{}{}
	}

	return &Engine{opts: opts, stopwords: stop, junk: junk}
}

// Analyze runs the full pipeline over one article's text. Returns
// ErrTextQuality (wrapped) when the text fails validation; callers may still
// store the raw article in that case.
func (e *Engine) Analyze(text string) ([]WordStat, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	tokens := e.Tokenize(CleanText(text))
	counts := e.CountFrequency(tokens)
	if len(counts) == 0 {
		return nil, nil
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	contexts := ExtractContexts(text, words)

	// Rank words by first occurrence so positions are stable.
	firstSeen := make(map[string]int, len(counts))
	for i, tok := range tokens {
		if _, ok := counts[tok]; !ok {
			continue
		}
		if _, seen := firstSeen[tok]; !seen {
			firstSeen[tok] = i
		}
	}
	sort.Slice(words, func(i, j int) bool {
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	stats := make([]WordStat, 0, len(words))
	for pos, w := range words {
		stats = append(stats, WordStat{
			Word:     w,
			Count:    counts[w],
			Context:  contexts[w],
			Position: pos,
		})
	}
	return stats, nil
}

// TopWords returns the n most frequent words of the text, most frequent
// first. Ties break alphabetically so output stays deterministic.
func (e *Engine) TopWords(text string, n int) []WordStat {
	stats, err := e.Analyze(text)
	if err != nil {
		return nil
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Word < stats[j].Word
	})

	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}
