package wordfreq

import "math"

// CountFrequency counts token occurrences and drops outliers: any word whose
// count exceeds max(totalTokens*OutlierRatio, OutlierFloor) is assumed to be
// a parsing artifact (navigation text, repeated boilerplate) rather than
// genuine vocabulary. Words below the configured minimum frequency are also
// dropped.
func (e *Engine) CountFrequency(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	cutoff := e.outlierCutoff(len(tokens))
	for word, count := range counts {
		if count > cutoff || count < e.opts.MinWordFrequency {
			delete(counts, word)
		}
	}

	return counts
}

// outlierCutoff returns the maximum plausible count for a document of the
// given token total.
func (e *Engine) outlierCutoff(totalTokens int) int {
	byRatio := math.Floor(float64(totalTokens) * e.opts.OutlierRatio)
	return int(math.Max(byRatio, float64(e.opts.OutlierFloor)))
}
