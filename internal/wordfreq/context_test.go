package wordfreq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContexts_FirstSentenceWins(t *testing.T) {
	t.Parallel()

	text := "Le chat dort sur le mur. La pomme est rouge et belle. La pomme tombe de l'arbre."
	contexts := ExtractContexts(text, []string{"pomme", "chat"})

	assert.Equal(t, "La pomme est rouge et belle", contexts["pomme"])
	assert.Equal(t, "Le chat dort sur le mur", contexts["chat"])
}

func TestExtractContexts_WholeTokenMatchOnly(t *testing.T) {
	t.Parallel()

	text := "Les pommes sont rouges cette saison. Rien d'autre ici vraiment."
	contexts := ExtractContexts(text, []string{"pomme"})

	// "pommes" is a different token; the singular never appears.
	assert.NotContains(t, contexts, "pomme")
}

func TestExtractContexts_SkipsShortFragmentsAndNumericWords(t *testing.T) {
	t.Parallel()

	text := "Oui. La pomme est rouge et belle aujourd'hui."
	contexts := ExtractContexts(text, []string{"pomme", "12345"})

	assert.Equal(t, "La pomme est rouge et belle aujourd'hui", contexts["pomme"])
	assert.NotContains(t, contexts, "12345")
}

func TestExtractContexts_TruncatesLongSentences(t *testing.T) {
	t.Parallel()

	long := "La pomme " + strings.Repeat("vraiment tres grosse et rouge ", 12) + "pousse ici."
	contexts := ExtractContexts(long, []string{"pomme"})

	require.Contains(t, contexts, "pomme")
	assert.LessOrEqual(t, len([]rune(contexts["pomme"])), MaxContextLength)
	assert.True(t, strings.HasPrefix(contexts["pomme"], "La pomme"))
}

func TestExtractContexts_EmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractContexts("", []string{"pomme"}))
	assert.Empty(t, ExtractContexts("La pomme est rouge et belle.", nil))
}
