package domain

import "time"

// WordFrequencyRecord is one word-frequency fact extracted from a single
// article. Records are created once per distinct word per article and never
// mutated afterwards.
type WordFrequencyRecord struct {
	// Word is the cleaned, lowercase form.
	Word string `json:"word" db:"word"`
	// Frequency is the number of occurrences within the article.
	Frequency int `json:"frequency" db:"frequency"`
	// Context is the first sentence the word appeared in, truncated to
	// wordfreq.MaxContextLength runes. May be empty when no sentence
	// matched.
	Context string `json:"context,omitempty" db:"context"`
	// ArticleID references the RawArticle the word was extracted from.
	ArticleID string `json:"article_id" db:"article_id"`
	// Source is the site the article came from.
	Source string `json:"source" db:"source"`
	// ArticleDate is the publication date of the article, if known.
	ArticleDate time.Time `json:"article_date" db:"article_date"`
	// ScrapedAt is when the article was fetched.
	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
	// PositionInArticle is the rank of the word by first occurrence.
	PositionInArticle int `json:"position_in_article" db:"position_in_article"`
}
