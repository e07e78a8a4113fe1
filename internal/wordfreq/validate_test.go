package wordfreq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateText_AcceptsRealSentence(t *testing.T) {
	t.Parallel()

	err := ValidateText("Le chat mange une pomme rouge dans le jardin.")
	require.NoError(t, err)
}

func TestValidateText_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"too short", "court"},
		{"too few words", "seulement trois mots"},
		{"low uniqueness", strings.Repeat("spam ", 20)},
		{"mostly numeric", "12345 67890 13579 24680 11223 44556 77889 90011"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateText(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTextQuality)
		})
	}
}

func TestValidateText_TooLong(t *testing.T) {
	t.Parallel()

	// Varied words keep the uniqueness ratio from triggering first.
	var b strings.Builder
	for b.Len() <= maxTextLength {
		b.WriteString("mot")
		b.WriteString(strings.Repeat("a", b.Len()%7+1))
		b.WriteString(" ")
	}

	err := ValidateText(b.String())
	require.ErrorIs(t, err, ErrTextQuality)
}
