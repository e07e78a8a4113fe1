package wordfreq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountFrequency(t *testing.T) {
	t.Parallel()

	e := NewEngine(Options{})
	counts := e.CountFrequency([]string{"pomme", "pomme", "jardin", "fleur", "arbre"})

	assert.Equal(t, map[string]int{
		"pomme":  2,
		"jardin": 1,
		"fleur":  1,
		"arbre":  1,
	}, counts)
}

func TestCountFrequency_DropsOutliers(t *testing.T) {
	t.Parallel()

	e := NewEngine(Options{})

	// 11 repeats in a 15-token document exceeds the floor of 10.
	tokens := make([]string, 0, 15)
	for range 11 {
		tokens = append(tokens, "navigation")
	}
	tokens = append(tokens, "pomme", "jardin", "fleur", "arbre")

	counts := e.CountFrequency(tokens)
	assert.NotContains(t, counts, "navigation")
	assert.Equal(t, 1, counts["pomme"])
}

func TestCountFrequency_RatioCutoffOnLargeDocuments(t *testing.T) {
	t.Parallel()

	e := NewEngine(Options{})

	// 210 tokens: the ratio cutoff (21) overtakes the floor.
	tokens := make([]string, 0, 210)
	for range 21 {
		tokens = append(tokens, "gouvernement")
	}
	for range 22 {
		tokens = append(tokens, "boilerplate")
	}
	for i := 0; len(tokens) < 210; i++ {
		tokens = append(tokens, []string{"pomme", "jardin", "fleur", "arbre"}[i%4])
	}

	counts := e.CountFrequency(tokens)
	assert.Equal(t, 21, counts["gouvernement"], "count at the cutoff is kept")
	assert.NotContains(t, counts, "boilerplate", "count above the cutoff is dropped")
}

func TestCountFrequency_MinWordFrequency(t *testing.T) {
	t.Parallel()

	e := NewEngine(Options{MinWordFrequency: 2})
	counts := e.CountFrequency([]string{"pomme", "pomme", "jardin"})

	assert.Equal(t, map[string]int{"pomme": 2}, counts)
}

func TestCountFrequency_Empty(t *testing.T) {
	t.Parallel()

	e := NewEngine(Options{})
	assert.Empty(t, e.CountFrequency(nil))
}
