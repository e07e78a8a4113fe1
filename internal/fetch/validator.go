package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/logger"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/sources"
)

// ErrValidationFailed flags a page whose structure did not match the
// source's selectors and that readability could not salvage either. Such
// pages are skipped, never retried.
var ErrValidationFailed = errors.New("page failed content validation")

// minFallbackTextRunes is the shortest readability salvage accepted as
// article content. Structureless pages tend to yield a few words of
// navigation text; treating those as articles would poison the word counts.
const minFallbackTextRunes = 50

// ContentValidator fetches documents and extracts article content.
type ContentValidator interface {
	Fetch(ctx context.Context, rawURL string) (*domain.Document, error)
	ValidateAndExtract(doc *domain.Document, src sources.Config) (*domain.RawArticle, error)
}

// HTTPContentValidator implements ContentValidator over HTTP with goquery
// selector extraction and a readability fallback.
type HTTPContentValidator struct {
	client    *http.Client
	userAgent string
	logger    logger.Interface
}

// NewHTTPContentValidator creates a content validator.
func NewHTTPContentValidator(client *http.Client, userAgent string, log logger.Interface) *HTTPContentValidator {
	return &HTTPContentValidator{
		client:    client,
		userAgent: userAgent,
		logger:    log.WithComponent("content_validator"),
	}
}

// Fetch retrieves a single article page. Non-2xx responses become
// HTTPError so the resilience layer can classify them.
func (v *HTTPContentValidator) Fetch(ctx context.Context, rawURL string) (*domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &resilience.HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	return &domain.Document{
		Body:       body,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}, nil
}

// ValidateAndExtract turns a fetched document into a RawArticle using the
// source's article selectors, falling back to readability extraction when
// the selectors match nothing usable.
func (v *HTTPContentValidator) ValidateAndExtract(doc *domain.Document, src sources.Config) (*domain.RawArticle, error) {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	article := domain.NewRawArticle(doc.URL, src.Name)
	article.RawHTML = string(doc.Body)
	article.ContentLength = len(doc.Body)
	article.Title = v.extractTitle(gq, src)
	article.ArticleDate = v.extractPublishedTime(gq, src)
	article.Text = v.extractBody(gq, src)

	if article.Text == "" {
		article.Text, article.Title = v.readabilityFallback(doc, article.Title)
	}
	if article.Text == "" {
		v.logger.Debug("no extractable content", "url", doc.URL, "source", src.Name)
		return nil, fmt.Errorf("%w: empty body for %s", ErrValidationFailed, doc.URL)
	}

	return article, nil
}

// extractTitle tries the configured selector, then the page title.
func (v *HTTPContentValidator) extractTitle(gq *goquery.Document, src sources.Config) string {
	if sel := src.Selectors.Article.Title; sel != "" {
		if title := strings.TrimSpace(gq.Find(sel).First().Text()); title != "" {
			return title
		}
	}
	return strings.TrimSpace(gq.Find("title").First().Text())
}

// extractPublishedTime reads a machine-readable datetime attribute when the
// source exposes one. Unknown formats leave the date zero.
func (v *HTTPContentValidator) extractPublishedTime(gq *goquery.Document, src sources.Config) time.Time {
	sel := src.Selectors.Article.PublishedTime
	if sel == "" {
		sel = "time[datetime]"
	}

	attr, ok := gq.Find(sel).First().Attr("datetime")
	if !ok {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, parseErr := time.Parse(layout, attr); parseErr == nil {
			return t
		}
	}
	return time.Time{}
}

// extractBody pulls article text via the configured body selector, removing
// excluded regions first.
func (v *HTTPContentValidator) extractBody(gq *goquery.Document, src sources.Config) string {
	sel := src.Selectors.Article.Body
	if sel == "" {
		return ""
	}

	body := gq.Find(sel)
	if body.Length() == 0 {
		return ""
	}

	for _, exclude := range src.Selectors.Article.Exclude {
		body.Find(exclude).Remove()
	}

	var parts []string
	body.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n")
}

// readabilityFallback extracts content heuristically when selectors miss.
func (v *HTTPContentValidator) readabilityFallback(doc *domain.Document, title string) (text, newTitle string) {
	pageURL, err := url.Parse(doc.URL)
	if err != nil {
		return "", title
	}

	article, err := readability.FromReader(bytes.NewReader(doc.Body), pageURL)
	if err != nil {
		return "", title
	}

	text = strings.TrimSpace(article.TextContent)
	if len([]rune(text)) < minFallbackTextRunes {
		return "", title
	}

	v.logger.Debug("used readability fallback", "url", doc.URL)
	if title == "" {
		title = article.Title
	}
	return text, title
}
