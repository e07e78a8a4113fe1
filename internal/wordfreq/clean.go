package wordfreq

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes characters and strips combining marks, turning
// é/è/ê/ë into e, à/â/ä into a and so on.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanText normalizes raw text for tokenization: lowercase, accents folded
// to ASCII, everything outside [a-z0-9 '-] stripped, whitespace collapsed.
// Idempotent: cleaning already-clean text changes nothing.
func CleanText(text string) string {
	lowered := strings.ToLower(text)

	folded, _, err := transform.String(foldAccents, lowered)
	if err != nil {
		// Malformed input falls through unfolded; the allowlist below
		// still drops anything non-ASCII.
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
