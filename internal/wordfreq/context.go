package wordfreq

import (
	"regexp"
	"strings"
)

// MaxContextLength caps stored sentence contexts.
const MaxContextLength = 200

// minSentenceLength discards fragments left over after cleanup.
const minSentenceLength = 10

// sentenceBoundary splits on terminal punctuation followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// ExtractContexts finds, for each target word, the first sentence of the
// original text containing it. A word keeps its first context for good:
// later sentences never reassign it. Words that are mostly digits are
// skipped. Every returned context is non-empty and at most MaxContextLength
// characters.
func ExtractContexts(originalText string, words []string) map[string]string {
	contexts := make(map[string]string, len(words))
	if originalText == "" || len(words) == 0 {
		return contexts
	}

	pending := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" || isNumericHeavy(w) {
			continue
		}
		pending[w] = struct{}{}
	}

	for _, raw := range sentenceBoundary.Split(originalText, -1) {
		if len(pending) == 0 {
			break
		}

		sentence := cleanSentence(raw)
		if len([]rune(sentence)) < minSentenceLength {
			continue
		}

		sentenceWords := make(map[string]struct{})
		for _, tok := range strings.Fields(CleanText(sentence)) {
			sentenceWords[tok] = struct{}{}
		}

		for word := range pending {
			if _, ok := sentenceWords[word]; !ok {
				continue
			}
			contexts[word] = truncate(sentence, MaxContextLength)
			delete(pending, word)
		}
	}

	return contexts
}

// cleanSentence strips markup leftovers a sentence can carry out of a
// scraped page.
func cleanSentence(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, `"""`, " ")
	s = strings.ReplaceAll(s, "#", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, ".,;:!?-–—·«»\" ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
