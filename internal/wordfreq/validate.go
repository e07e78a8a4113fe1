package wordfreq

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrTextQuality flags text rejected by validation. Word extraction is
// skipped for such documents; the raw article may still be stored.
var ErrTextQuality = errors.New("text failed quality validation")

// Validation bounds.
const (
	minTextLength  = 10
	maxTextLength  = 1_000_000
	minWordCount   = 5
	minUniqueRatio = 0.3
	minAlphaRatio  = 0.5
)

// ValidateText rejects text that is too short, too long, too repetitive or
// not mostly alphabetic. Returns nil when the text is usable.
func ValidateText(text string) error {
	runeCount := len([]rune(text))
	if runeCount < minTextLength {
		return fmt.Errorf("%w: too short (%d chars)", ErrTextQuality, runeCount)
	}
	if runeCount > maxTextLength {
		return fmt.Errorf("%w: too long (%d chars)", ErrTextQuality, runeCount)
	}

	words := strings.Fields(text)
	if len(words) < minWordCount {
		return fmt.Errorf("%w: too few words (%d)", ErrTextQuality, len(words))
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}
	uniqueRatio := float64(len(unique)) / float64(len(words))
	if uniqueRatio < minUniqueRatio {
		return fmt.Errorf("%w: low vocabulary diversity (%.2f)", ErrTextQuality, uniqueRatio)
	}

	alpha := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	alphaRatio := float64(alpha) / float64(runeCount)
	if alphaRatio < minAlphaRatio {
		return fmt.Errorf("%w: mostly non-alphabetic (%.2f)", ErrTextQuality, alphaRatio)
	}

	return nil
}
