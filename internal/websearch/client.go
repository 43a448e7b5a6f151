// Package websearch answers free-form queries through the DuckDuckGo
// Instant Answer API. Results combine the topic abstract, any direct
// answer, and related-topic links into one ranked list.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
)

const (
	// APIURL is the DuckDuckGo Instant Answer endpoint
	APIURL = "https://api.duckduckgo.com"

	// SearchCacheTTL keeps search results for an hour
	SearchCacheTTL = time.Hour

	// MaxResults caps the ranked result list
	MaxResults = 10
)

// Search is one completed search
type Search struct {
	Query    string   `json:"query"`
	Answer   string   `json:"answer,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Results  []Result `json:"results"`
}

// Client performs instant-answer searches
type Client struct {
	*base.Client

	apiURL string
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

// NewClient creates a new web search client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client: base.NewClient(opts...),
		apiURL: APIURL,
	}
}

// SetEndpoint overrides the API URL, used in tests
func (c *Client) SetEndpoint(apiURL string) {
	c.apiURL = apiURL
}

// Search runs an instant-answer query and returns the ranked results.
func (c *Client) Search(ctx context.Context, query string) (*Search, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query", "", "cannot be empty")
	}

	cacheKey := "search:" + strings.ToLower(query)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		c.Logger.Debug("cache hit", "query", query)
		return cached.(*Search), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	search := result.(*Search)
	c.Cache.Set(cacheKey, search, SearchCacheTTL)
	return search, nil
}

func (c *Client) search(ctx context.Context, query string) (*Search, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: c.apiURL + "/?" + params.Encode()})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("search API error %d: %s", statusCode, string(body))
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	c.RecordSuccess()

	search := &Search{
		Query:    query,
		Answer:   answer.Answer,
		Abstract: answer.AbstractText,
		Results:  rankResults(&answer),
	}
	c.Logger.Debug("search complete", "query", query, "results", len(search.Results))
	return search, nil
}

// rankResults flattens the instant answer into a deduplicated ranked
// list. The abstract link comes first, then related topics in API
// order, capped at MaxResults.
func rankResults(answer *instantAnswer) []Result {
	var results []Result
	seen := make(map[string]struct{})

	add := func(title, link, snippet string) {
		if len(results) >= MaxResults || link == "" || title == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		results = append(results, Result{
			Rank:    len(results) + 1,
			Title:   title,
			URL:     link,
			Snippet: snippet,
		})
	}

	if answer.AbstractURL != "" {
		title := answer.Heading
		if title == "" {
			title = answer.AbstractSource
		}
		add(title, answer.AbstractURL, answer.AbstractText)
	}
	if answer.Redirect != "" {
		add(answer.Heading, answer.Redirect, "")
	}
	addTopics(answer.RelatedTopics, add)

	return results
}

func addTopics(topics []relatedTopic, add func(title, link, snippet string)) {
	for _, topic := range topics {
		if len(topic.Topics) > 0 {
			addTopics(topic.Topics, add)
			continue
		}
		add(topicTitle(topic.Text), topic.FirstURL, topic.Text)
	}
}

// topicTitle takes the leading phrase of a related-topic text, which
// runs up to the first " - " separator when one is present.
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	return text
}
