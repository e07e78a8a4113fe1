// Package domain provides domain models used across the application.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a fetched page before validation and extraction.
type Document struct {
	// Body is the raw response body.
	Body []byte
	// URL is the final URL after redirects.
	URL string
	// StatusCode is the HTTP status the body was served with.
	StatusCode int
}

// RawArticle represents an article as scraped from a source, before any
// word analysis. Articles are append-only: the same URL may be stored many
// times across runs to keep historical snapshots.
type RawArticle struct {
	// Unique identifier for this scrape of the article.
	ID string `json:"id" db:"id"`
	// URL the article was fetched from.
	URL string `json:"url" db:"url"`
	// Site is the source name the article belongs to.
	Site string `json:"site" db:"site"`
	// Title of the article, if the extractor found one.
	Title string `json:"title" db:"title"`
	// Text is the extracted article text used for word analysis.
	Text string `json:"text" db:"text"`
	// RawHTML is the original page markup.
	RawHTML string `json:"raw_html" db:"raw_html"`
	// ArticleDate is the publication date, if known.
	ArticleDate time.Time `json:"article_date" db:"article_date"`
	// ScrapedAt is when the article was fetched.
	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
	// ContentLength is the size of the raw HTML in bytes.
	ContentLength int `json:"content_length" db:"content_length"`
}

// NewRawArticle creates a RawArticle with a fresh ID and scrape timestamp.
func NewRawArticle(url, site string) *RawArticle {
	return &RawArticle{
		ID:        uuid.NewString(),
		URL:       url,
		Site:      site,
		ScrapedAt: time.Now().UTC(),
	}
}
