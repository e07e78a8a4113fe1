// Package sources provides source configuration types and loading.
package sources

// Config represents a single news source. It is immutable once loaded.
type Config struct {
	Name      string          `mapstructure:"name"`
	Enabled   bool            `mapstructure:"enabled"`
	URL       string          `mapstructure:"url"`
	RateLimit string          `mapstructure:"rate_limit"`
	Selectors SourceSelectors `mapstructure:"selectors"`
	Text      TextOptions     `mapstructure:"text"`
}

// SourceSelectors defines the CSS selectors for a source.
type SourceSelectors struct {
	List    ListSelectors    `mapstructure:"list"`
	Article ArticleSelectors `mapstructure:"article"`
}

// ListSelectors defines the CSS selectors used on the source's listing page.
type ListSelectors struct {
	// Container narrows link discovery to a region of the page.
	Container string `mapstructure:"container"`
	// Links selects anchors pointing at articles.
	Links string `mapstructure:"links"`
}

// ArticleSelectors defines the CSS selectors used for article extraction.
type ArticleSelectors struct {
	Title         string   `mapstructure:"title"`
	Body          string   `mapstructure:"body"`
	PublishedTime string   `mapstructure:"published_time"`
	Exclude       []string `mapstructure:"exclude"`
}

// TextOptions holds the per-site word-analysis settings.
type TextOptions struct {
	// AdditionalStopwords extend the base French stopword list.
	AdditionalStopwords []string `mapstructure:"additional_stopwords"`
	// MinWordFrequency drops words seen fewer times than this.
	MinWordFrequency int `mapstructure:"min_word_frequency"`
	// MinWordLength and MaxWordLength bound token length.
	MinWordLength int `mapstructure:"min_word_length"`
	MaxWordLength int `mapstructure:"max_word_length"`
}

// Defaults applied by the loader when a field is unset.
const (
	DefaultMinWordFrequency = 1
	DefaultMinWordLength    = 4
	DefaultMaxWordLength    = 50
	DefaultRateLimit        = "1s"
)
