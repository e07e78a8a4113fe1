package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/motscan/motscan/internal/logger"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/sources"
)

// DefaultMaxURLs bounds URL discovery per source.
const DefaultMaxURLs = 8

// SourceClient discovers article URLs for a source.
type SourceClient interface {
	GetArticleURLs(ctx context.Context, src sources.Config) ([]string, error)
}

// HTTPSourceClient discovers article links from a source's listing page.
type HTTPSourceClient struct {
	client    *http.Client
	userAgent string
	maxURLs   int
	logger    logger.Interface
}

// NewHTTPSourceClient creates a source client backed by the given HTTP client.
func NewHTTPSourceClient(client *http.Client, userAgent string, maxURLs int, log logger.Interface) *HTTPSourceClient {
	if maxURLs <= 0 {
		maxURLs = DefaultMaxURLs
	}
	return &HTTPSourceClient{
		client:    client,
		userAgent: userAgent,
		maxURLs:   maxURLs,
		logger:    log.WithComponent("source_client"),
	}
}

// GetArticleURLs fetches the source's listing page and extracts article
// links using the source's list selectors. Relative links are resolved
// against the page URL; duplicates are dropped; the result is bounded.
func (c *HTTPSourceClient) GetArticleURLs(ctx context.Context, src sources.Config) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &resilience.HTTPError{StatusCode: resp.StatusCode, URL: src.URL}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	return c.extractLinks(doc, base, src), nil
}

// extractLinks pulls article hrefs out of the listing page.
func (c *HTTPSourceClient) extractLinks(doc *goquery.Document, base *url.URL, src sources.Config) []string {
	scope := doc.Selection
	if container := src.Selectors.List.Container; container != "" {
		if s := doc.Find(container); s.Length() > 0 {
			scope = s
		}
	}

	linkSelector := src.Selectors.List.Links
	if linkSelector == "" {
		linkSelector = "a[href]"
	}

	seen := make(map[string]struct{})
	urls := make([]string, 0, c.maxURLs)

	scope.Find(linkSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" || href[0] == '#' {
			return true
		}

		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		abs.Fragment = ""

		key := abs.String()
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		urls = append(urls, key)

		return len(urls) < c.maxURLs
	})

	c.logger.Debug("discovered article urls", "source", src.Name, "count", len(urls))
	return urls
}
