package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSources(t *testing.T) {
	t.Parallel()

	path := writeSourcesFile(t, `
sources:
  - name: lemonde
    enabled: true
    url: https://www.lemonde.fr
    rate_limit: 2s
    selectors:
      list:
        links: a.article__link
      article:
        title: h1.article__title
        body: article.article__content
    text:
      additional_stopwords: [lemonde, monde]
      min_word_length: 5
`)

	configs, err := NewLoader(path).LoadSources()
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	assert.Equal(t, "lemonde", cfg.Name)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "https://www.lemonde.fr", cfg.URL)
	assert.Equal(t, "2s", cfg.RateLimit)
	assert.Equal(t, "a.article__link", cfg.Selectors.List.Links)
	assert.Equal(t, []string{"lemonde", "monde"}, cfg.Text.AdditionalStopwords)
	assert.Equal(t, 5, cfg.Text.MinWordLength)
}

func TestLoadSources_AppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeSourcesFile(t, `
sources:
  - name: lefigaro
    url: https://www.lefigaro.fr
`)

	configs, err := NewLoader(path).LoadSources()
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, DefaultMinWordFrequency, cfg.Text.MinWordFrequency)
	assert.Equal(t, DefaultMinWordLength, cfg.Text.MinWordLength)
	assert.Equal(t, DefaultMaxWordLength, cfg.Text.MaxWordLength)
}

func TestLoadSources_DropsInvalidSources(t *testing.T) {
	t.Parallel()

	path := writeSourcesFile(t, `
sources:
  - name: missing-url
  - name: bad-scheme
    url: ftp://example.com
  - name: bad-rate-limit
    url: https://example.com
    rate_limit: quickly
  - name: lemonde
    url: https://www.lemonde.fr
`)

	configs, err := NewLoader(path).LoadSources()
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "lemonde", configs[0].Name)
}

func TestLoadSources_AllInvalid(t *testing.T) {
	t.Parallel()

	path := writeSourcesFile(t, `
sources:
  - name: missing-url
`)

	_, err := NewLoader(path).LoadSources()
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestLoadSources_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeSourcesFile(t, "sources: []\n")

	_, err := NewLoader(path).LoadSources()
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestLoadSources_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yml")).LoadSources()
	assert.Error(t, err)
}
