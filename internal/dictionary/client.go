// Package dictionary looks up English word definitions, phonetics, and
// usage examples via dictionaryapi.dev.
package dictionary

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
	// APIURL is the dictionaryapi.dev English entries endpoint
	APIURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

	// EntryCacheTTL keeps definitions for a day; they rarely change
	EntryCacheTTL = 24 * time.Hour
)

// Client provides access to dictionaryapi.dev
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

// NewClient creates a new dictionary client
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...), apiURL: APIURL}
}

// SetEndpoint overrides the upstream URL, used in tests
func (c *Client) SetEndpoint(apiURL string) {
	c.apiURL = apiURL
}

// Lookup fetches the first dictionary entry for a word.
func (c *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, apperrors.NewValidationError("word", "", "cannot be empty")
	}

	cacheKey := "entry:" + word
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(*Entry), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: c.apiURL + url.PathEscape(word)})
		if err != nil {
			return nil, err
		}
		if statusCode == http.StatusNotFound {
			c.RecordSuccess()
			return nil, apperrors.NewNotFoundError("dictionary", "word", word)
		}
		if statusCode >= 400 {
			c.RecordSuccess()
			return nil, fmt.Errorf("dictionary API error %d: %s", statusCode, string(body))
		}

		var entries []apiEntry
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse dictionary response: %w", err)
		}
		c.RecordSuccess()

		if len(entries) == 0 {
			return nil, apperrors.NewNotFoundError("dictionary", "word", word)
		}
		return simplify(entries[0], word), nil
	})
	if err != nil {
		return nil, err
	}

	entry := result.(*Entry)
	c.Cache.Set(cacheKey, entry, EntryCacheTTL)
	return entry, nil
}

func simplify(e apiEntry, fallback string) *Entry {
	entry := &Entry{Word: e.Word}
	if entry.Word == "" {
		entry.Word = fallback
	}

	for _, ph := range e.Phonetics {
		if ph.Text != "" {
			entry.Phonetic = ph.Text
			break
		}
	}

	for _, m := range e.Meanings {
		meaning := Meaning{PartOfSpeech: m.PartOfSpeech}
		if meaning.PartOfSpeech == "" {
			meaning.PartOfSpeech = "unknown"
		}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, Definition{
				Definition: d.Definition,
				Example:    d.Example,
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}
	return entry
}
