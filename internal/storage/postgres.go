package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/motscan/motscan/internal/config"
	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/logger"
)

const (
	// defaultMaxOpenConns is the default maximum number of open connections.
	defaultMaxOpenConns = 25
	// defaultMaxIdleConns is the default maximum number of idle connections.
	defaultMaxIdleConns = 5
	// defaultConnMaxLifetime is the default maximum connection lifetime.
	defaultConnMaxLifetime = 5 * time.Minute
	// defaultPingTimeout is the timeout for the startup ping.
	defaultPingTimeout = 5 * time.Second
)

// schema creates the tables on first use. Duplicates of the same URL are
// permitted in raw_articles so repeated scrapes keep historical snapshots.
const schema = `
CREATE TABLE IF NOT EXISTS raw_articles (
	id             UUID PRIMARY KEY,
	url            TEXT NOT NULL,
	site           TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	raw_html       TEXT NOT NULL,
	scraped_at     TIMESTAMPTZ NOT NULL,
	article_date   TIMESTAMPTZ,
	content_length INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS word_frequencies (
	id                  BIGSERIAL PRIMARY KEY,
	article_id          UUID NOT NULL REFERENCES raw_articles(id),
	word                TEXT NOT NULL,
	frequency           INTEGER NOT NULL,
	context             TEXT NOT NULL DEFAULT '',
	source              TEXT NOT NULL,
	article_date        TIMESTAMPTZ,
	scraped_at          TIMESTAMPTZ NOT NULL,
	position_in_article INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_word_frequencies_word ON word_frequencies (word);
CREATE INDEX IF NOT EXISTS idx_raw_articles_url ON raw_articles (url);
`

const insertArticle = `
INSERT INTO raw_articles (id, url, site, title, raw_html, scraped_at, article_date, content_length)
VALUES (:id, :url, :site, :title, :raw_html, :scraped_at, :article_date, :content_length)`

const insertWord = `
INSERT INTO word_frequencies (article_id, word, frequency, context, source, article_date, scraped_at, position_in_article)
VALUES (:article_id, :word, :frequency, :context, :source, :article_date, :scraped_at, :position_in_article)`

// NewPostgresConnection creates a new PostgreSQL database connection.
func NewPostgresConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// PostgresSink stores articles and word facts in Postgres, one transaction
// per article.
type PostgresSink struct {
	db     *sqlx.DB
	logger logger.Interface
}

// NewPostgresSink connects and ensures the schema exists.
func NewPostgresSink(cfg config.DatabaseConfig, log logger.Interface) (*PostgresSink, error) {
	db, err := NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	if _, execErr := db.Exec(schema); execErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", execErr)
	}

	return &PostgresSink{db: db, logger: log.WithComponent("postgres_sink")}, nil
}

// articleRow maps a RawArticle to named query parameters, turning the zero
// article date into NULL.
type articleRow struct {
	ID            string       `db:"id"`
	URL           string       `db:"url"`
	Site          string       `db:"site"`
	Title         string       `db:"title"`
	RawHTML       string       `db:"raw_html"`
	ScrapedAt     time.Time    `db:"scraped_at"`
	ArticleDate   sql.NullTime `db:"article_date"`
	ContentLength int          `db:"content_length"`
}

// wordRow maps a WordFrequencyRecord to named query parameters.
type wordRow struct {
	ArticleID   string       `db:"article_id"`
	Word        string       `db:"word"`
	Frequency   int          `db:"frequency"`
	Context     string       `db:"context"`
	Source      string       `db:"source"`
	ArticleDate sql.NullTime `db:"article_date"`
	ScrapedAt   time.Time    `db:"scraped_at"`
	Position    int          `db:"position_in_article"`
}

// SaveArticle inserts the article and all its word facts in one
// transaction, rolling back on any failure.
func (s *PostgresSink) SaveArticle(ctx context.Context, article *domain.RawArticle, words []domain.WordFrequencyRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := articleRow{
		ID:            article.ID,
		URL:           article.URL,
		Site:          article.Site,
		Title:         article.Title,
		RawHTML:       article.RawHTML,
		ScrapedAt:     article.ScrapedAt,
		ArticleDate:   nullTime(article.ArticleDate),
		ContentLength: article.ContentLength,
	}
	if _, execErr := tx.NamedExecContext(ctx, insertArticle, row); execErr != nil {
		return fmt.Errorf("insert raw article: %w", execErr)
	}

	for i := range words {
		w := &words[i]
		wr := wordRow{
			ArticleID:   w.ArticleID,
			Word:        w.Word,
			Frequency:   w.Frequency,
			Context:     w.Context,
			Source:      w.Source,
			ArticleDate: nullTime(w.ArticleDate),
			ScrapedAt:   w.ScrapedAt,
			Position:    w.PositionInArticle,
		}
		if _, execErr := tx.NamedExecContext(ctx, insertWord, wr); execErr != nil {
			return fmt.Errorf("insert word fact %q: %w", w.Word, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit article: %w", commitErr)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}

// nullTime converts a possibly-zero time to its SQL representation.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
