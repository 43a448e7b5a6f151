// Package news fetches headlines by scraping Google News search
// results. Topic shorthands expand to canonical queries before the
// search runs.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
)

const (
	// SearchURL is the Google News search endpoint
	SearchURL = "https://www.google.com/search"

	// NewsCacheTTL keeps scraped headlines for an hour
	NewsCacheTTL = time.Hour

	// MaxArticles caps how many headlines one scrape collects
	MaxArticles = 10

	// DisplayLimit caps how many headlines the rendered output shows
	DisplayLimit = 5

	// browserUserAgent is sent instead of the default agent so the
	// search page returns full HTML.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// topicQueries maps topic shorthands to canonical search queries.
var topicQueries = map[string]string{
	"trichy":        "Trichy news today",
	"sports":        "sports news today",
	"technology":    "technology news today",
	"tech":          "technology news today",
	"cinema":        "cinema news today",
	"movies":        "movies news today",
	"finance":       "finance news",
	"business":      "business news today",
	"politics":      "politics news today",
	"health":        "health news today",
	"entertainment": "entertainment news today",
	"world":         "world news today",
	"india":         "india news today",
}

// skipURLFragments mark links that are navigation rather than articles.
var skipURLFragments = []string{
	"google.com/search",
	"javascript:",
	"/search",
	"maps.google",
	"youtube.com",
	"images.google",
}

// Article is one scraped headline
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Rank   int    `json:"rank"`
}

// Client scrapes news headlines
type Client struct {
	*base.Client

	searchURL string
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return base.WithCache(c)
}

// NewClient creates a new news client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:    base.NewClient(opts...),
		searchURL: SearchURL,
	}
}

// SetEndpoint overrides the search URL, used in tests
func (c *Client) SetEndpoint(searchURL string) {
	c.searchURL = searchURL
}

// ResolveTopic expands a user query to a canonical search query. The
// boolean reports whether a known topic shorthand matched.
func ResolveTopic(query string) (string, bool) {
	cleaned := stripFillers(query)
	for topic, canonical := range topicQueries {
		if strings.Contains(cleaned, topic) {
			return canonical, true
		}
	}
	return cleaned, false
}

func stripFillers(query string) string {
	s := strings.ToLower(strings.TrimSpace(query))
	s = strings.ReplaceAll(s, "today", "")
	s = strings.ReplaceAll(s, "latest", "")
	return strings.TrimSpace(s)
}

// FetchNews scrapes headlines for a search query. Results are cached
// for an hour per query.
func (c *Client) FetchNews(ctx context.Context, query string) ([]Article, error) {
	search := stripFillers(query)
	if search == "" {
		return nil, apperrors.NewValidationError("query", query, "cannot be empty")
	}

	cacheKey := "news:" + search
	if cached, ok := c.Cache.Get(cacheKey); ok {
		c.Logger.Debug("cache hit", "query", search)
		return cached.([]Article), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		return c.scrape(ctx, search)
	})
	if err != nil {
		return nil, err
	}

	articles := result.([]Article)
	if len(articles) > 0 {
		c.Cache.Set(cacheKey, articles, NewsCacheTTL)
	}
	return articles, nil
}

func (c *Client) scrape(ctx context.Context, search string) ([]Article, error) {
	params := url.Values{}
	params.Set("q", search)
	params.Set("tbm", "nws")

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:       c.searchURL + "?" + params.Encode(),
		UserAgent: browserUserAgent,
		Accept:    "text/html",
	})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("news search error %d", statusCode)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news page: %w", err)
	}
	c.RecordSuccess()

	var articles []Article
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")
		if !looksLikeArticle(title, href) {
			return true
		}

		href = unwrapRedirect(href)
		if !strings.HasPrefix(href, "http") {
			return true
		}

		articles = append(articles, Article{
			Title:  title,
			URL:    href,
			Source: "News Source",
			Rank:   len(articles) + 1,
		})
		return len(articles) < MaxArticles
	})

	c.Logger.Debug("scraped headlines", "query", search, "count", len(articles))
	return articles, nil
}

// looksLikeArticle filters anchors by title length and URL shape.
func looksLikeArticle(title, href string) bool {
	if len(title) <= 20 || len(title) >= 300 {
		return false
	}
	if len(href) <= 10 {
		return false
	}
	lower := strings.ToLower(href)
	for _, frag := range skipURLFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	return true
}

// unwrapRedirect extracts the destination from a Google redirect link.
func unwrapRedirect(href string) string {
	marker := "/url?q="
	idx := strings.Index(href, marker)
	if idx < 0 {
		return href
	}
	dest := href[idx+len(marker):]
	if amp := strings.Index(dest, "&"); amp >= 0 {
		dest = dest[:amp]
	}
	if unescaped, err := url.QueryUnescape(dest); err == nil {
		return unescaped
	}
	return dest
}
