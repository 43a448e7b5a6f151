// Package currency converts between currencies using the fawazahmed0
// exchange-rate CDN, with the Frankfurter API as a fallback when the CDN
// is unavailable.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
)

const (
	// PrimaryURL is the fawazahmed0 currency CDN
	PrimaryURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"

	// FallbackURL is the Frankfurter API
	FallbackURL = "https://api.frankfurter.dev/v1"

	// RateCacheTTL keeps exchange rates for an hour
	RateCacheTTL = time.Hour
)

// Client provides exchange rates with a primary/fallback strategy
type Client struct {
	*base.Client

	primaryURL  string
	fallbackURL string
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

// NewClient creates a new currency client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:      base.NewClient(opts...),
		primaryURL:  PrimaryURL,
		fallbackURL: FallbackURL,
	}
}

// SetEndpoints overrides the upstream URLs, used in tests
func (c *Client) SetEndpoints(primary, fallback string) {
	c.primaryURL = primary
	c.fallbackURL = fallback
}

// SupportedCurrencies returns the master code->name list from the CDN.
// A CDN outage degrades to an empty map so conversion can still proceed.
func (c *Client) SupportedCurrencies(ctx context.Context) map[string]string {
	const cacheKey = "currencies"
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(map[string]string)
	}

	var list map[string]string
	if err := c.getJSON(ctx, c.primaryURL+"/currencies.min.json", &list); err != nil {
		c.Logger.Warn("currency list unavailable", "error", err)
		return map[string]string{}
	}

	c.Cache.Set(cacheKey, list, RateCacheTTL)
	return list
}

// Rates returns the exchange rate table for a base currency, keyed by
// lowercase target code. Cache, then the CDN, then Frankfurter.
func (c *Client) Rates(ctx context.Context, baseCode string) (map[string]float64, error) {
	baseCode = strings.ToLower(baseCode)

	cacheKey := "rates:" + baseCode
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(map[string]float64), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		// Primary: the CDN keys the table by the base code itself.
		var primary map[string]json.RawMessage
		if err := c.getJSON(ctx, c.primaryURL+"/currencies/"+baseCode+".min.json", &primary); err == nil {
			if raw, ok := primary[baseCode]; ok {
				var rates map[string]float64
				if json.Unmarshal(raw, &rates) == nil && len(rates) > 0 {
					return rates, nil
				}
			}
		}

		// Fallback: Frankfurter with uppercase codes.
		var fb frankfurterResponse
		if err := c.getJSON(ctx, c.fallbackURL+"/latest?base="+strings.ToUpper(baseCode), &fb); err != nil {
			return nil, err
		}
		if len(fb.Rates) == 0 {
			return nil, apperrors.NewNotFoundError("currency", "rate", baseCode)
		}
		rates := make(map[string]float64, len(fb.Rates))
		for k, v := range fb.Rates {
			rates[strings.ToLower(k)] = v
		}
		return rates, nil
	})
	if err != nil {
		return nil, err
	}

	rates := result.(map[string]float64)
	c.Cache.Set(cacheKey, rates, RateCacheTTL)
	return rates, nil
}

// Convert performs a single conversion between two ISO codes.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	if supported := c.SupportedCurrencies(ctx); len(supported) > 0 {
		if _, ok := supported[from]; !ok {
			return nil, apperrors.NewValidationError("from", strings.ToUpper(from), "not a supported currency")
		}
		if _, ok := supported[to]; !ok {
			return nil, apperrors.NewValidationError("to", strings.ToUpper(to), "not a supported currency")
		}
	}

	rates, err := c.Rates(ctx, from)
	if err != nil {
		return nil, err
	}
	rate, ok := rates[to]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency", "rate", strings.ToUpper(from)+"->"+strings.ToUpper(to))
	}

	return &Conversion{
		Amount:    amount,
		From:      strings.ToUpper(from),
		To:        strings.ToUpper(to),
		Rate:      rate,
		Converted: amount * rate,
		Symbol:    Symbol(strings.ToUpper(to)),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, result any) error {
	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: reqURL})
	if err != nil {
		return err
	}

	if statusCode >= 400 {
		c.RecordSuccess()
		return fmt.Errorf("currency API error %d: %s", statusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse currency response: %w", err)
	}

	c.RecordSuccess()
	return nil
}
