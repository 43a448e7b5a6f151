// Package translate translates text via the MyMemory API. Queries use
// the "text in language" form ("Hello world in Spanish").
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
)

const (
	// APIURL is the MyMemory translation endpoint
	APIURL = "https://api.mymemory.translated.net/get"

	// TranslationCacheTTL keeps finished translations for a day
	TranslationCacheTTL = 24 * time.Hour
)

// queryRegex splits "some text in French". The text group is greedy so
// "come to my home in French" keeps the sentence intact and binds the
// last connector.
var queryRegex = regexp.MustCompile(`(?i)(.+)\s+(?:in|to|into)\s+([a-zA-Z\s\-]+)$`)

// myMemoryResponse is the MyMemory API response
type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

// Translation is one completed translation
type Translation struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	TargetName string `json:"target_name"`
	TargetCode string `json:"target_code"`
}

// Client provides access to the MyMemory API
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

// NewClient creates a new MyMemory client
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...), apiURL: APIURL}
}

// SetEndpoint overrides the upstream URL, used in tests
func (c *Client) SetEndpoint(apiURL string) {
	c.apiURL = apiURL
}

// ParseQuery splits a "text in language" query into its parts.
func ParseQuery(query string) (text, language string, err error) {
	match := queryRegex.FindStringSubmatch(query)
	if match == nil {
		return "", "", apperrors.NewValidationError("query", query, "expected format like 'Hello world in Spanish'")
	}

	text = strings.TrimSpace(match[1])
	text = strings.NewReplacer(`"`, "", "'", "").Replace(text)
	return text, strings.TrimSpace(match[2]), nil
}

// Translate translates text into the target language code.
func (c *Client) Translate(ctx context.Context, text, targetCode string) (string, error) {
	cacheKey := "translate:" + targetCode + ":" + text
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		params := url.Values{}
		params.Set("q", text)
		params.Set("langpair", "en|"+targetCode)

		body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: c.apiURL + "?" + params.Encode()})
		if err != nil {
			return nil, err
		}
		if statusCode >= 400 {
			c.RecordSuccess()
			return nil, fmt.Errorf("translation API error %d: %s", statusCode, string(body))
		}

		var resp myMemoryResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse translation response: %w", err)
		}
		c.RecordSuccess()

		translated := strings.TrimSpace(resp.ResponseData.TranslatedText)
		if translated == "" {
			return nil, apperrors.NewNotFoundError("translate", "translation", text)
		}
		return translated, nil
	})
	if err != nil {
		return "", err
	}

	translated := result.(string)
	c.Cache.Set(cacheKey, translated, TranslationCacheTTL)
	return translated, nil
}
