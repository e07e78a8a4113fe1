package wordfreq

import (
	"strings"
	"unicode"
)

// Token length defaults.
const (
	DefaultMinWordLength = 4
	DefaultMaxWordLength = 50
)

// maxDigitRatio drops tokens that are mostly digits (dates, ids, scores).
const maxDigitRatio = 0.6

// Tokenize splits cleaned text into analysis-worthy tokens. Drops tokens
// outside the configured length bounds, numeric-heavy tokens, stopwords and
// known junk words. Residual punctuation is stripped and every filter
// re-applied afterwards, so a stripped token never resurfaces a filtered
// word.
func (e *Engine) Tokenize(cleanedText string) []string {
	fields := strings.Fields(cleanedText)
	tokens := make([]string, 0, len(fields))

	for _, tok := range fields {
		if len(tok) < e.opts.MinWordLength || len(tok) > e.opts.MaxWordLength {
			continue
		}
		if isNumericHeavy(tok) {
			continue
		}
		if _, junk := e.junk[tok]; junk {
			continue
		}
		if _, stop := e.stopwords[tok]; stop {
			continue
		}

		// Apostrophes and hyphens survive cleaning; strip leftovers at
		// the edges ("l'article" cleans to a token starting with "l'").
		tok = strings.Trim(tok, "'-")
		if idx := strings.Index(tok, "'"); idx >= 0 {
			tok = tok[idx+1:]
		}
		if len(tok) < e.opts.MinWordLength {
			continue
		}
		if isNumericHeavy(tok) {
			continue
		}
		if _, junk := e.junk[tok]; junk {
			continue
		}
		if _, stop := e.stopwords[tok]; stop {
			continue
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

// isNumericHeavy reports whether a token is purely numeric or has a digit
// ratio above the cutoff.
func isNumericHeavy(tok string) bool {
	digits := 0
	for _, r := range tok {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits == len(tok) {
		return true
	}
	return float64(digits)/float64(len(tok)) > maxDigitRatio
}
