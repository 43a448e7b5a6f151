// Package timezone converts times between places. Places resolve through
// a country table, the IANA zone database, and finally the Open-Meteo
// geocoding API for city names.
package timezone

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
	// GeocodingURL is the Open-Meteo geocoding endpoint
	GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	// ZoneCacheTTL keeps resolved city zones for a day
	ZoneCacheTTL = 24 * time.Hour
)

// timeFormats accepted for an explicit conversion time, tried in order.
var timeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// geocodeResponse is the Open-Meteo geocoding API response
type geocodeResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	} `json:"results"`
}

// Conversion is one completed timezone conversion
type Conversion struct {
	FromPlace string `json:"from_place"`
	ToPlace   string `json:"to_place"`
	FromZone  string `json:"from_zone"`
	ToZone    string `json:"to_zone"`
	FromTime  string `json:"from_time"`
	ToTime    string `json:"to_time"`
}

// Client resolves places to zones and converts times between them
type Client struct {
	*base.Client

	geocodingURL string
	now          func() time.Time
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

// NewClient creates a new timezone client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:       base.NewClient(opts...),
		geocodingURL: GeocodingURL,
		now:          time.Now,
	}
}

// SetEndpoint overrides the geocoding URL, used in tests
func (c *Client) SetEndpoint(geocoding string) {
	c.geocodingURL = geocoding
}

// SetClock overrides the wall clock, used in tests
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// ResolveZone maps a place (country, region, IANA zone, or city) to a
// loaded time.Location.
func (c *Client) ResolveZone(ctx context.Context, place string) (*time.Location, error) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return nil, apperrors.NewValidationError("place", "", "cannot be empty")
	}

	// Country and region table first.
	if zone, ok := countryZones[key]; ok {
		return time.LoadLocation(zone)
	}

	// A literal IANA zone name ("Europe/Paris", "UTC").
	if loc, err := time.LoadLocation(place); err == nil {
		return loc, nil
	}

	// City lookup via geocoding.
	zone, err := c.cityZone(ctx, key)
	if err != nil {
		return nil, err
	}
	return time.LoadLocation(zone)
}

func (c *Client) cityZone(ctx context.Context, city string) (string, error) {
	cacheKey := "zone:" + city
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: c.geocodingURL + "?" + params.Encode()})
	if err != nil {
		return "", err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return "", fmt.Errorf("geocoding API error %d: %s", statusCode, string(body))
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	c.RecordSuccess()

	if len(resp.Results) == 0 || resp.Results[0].Timezone == "" {
		return "", apperrors.NewNotFoundError("timezone", "place", city)
	}

	zone := resp.Results[0].Timezone
	c.Cache.Set(cacheKey, zone, ZoneCacheTTL)
	return zone, nil
}

// Convert translates a time between two places. An empty timeStr means
// "now" in the source zone.
func (c *Client) Convert(ctx context.Context, fromPlace, toPlace, timeStr string) (*Conversion, error) {
	fromLoc, err := c.ResolveZone(ctx, fromPlace)
	if err != nil {
		return nil, err
	}
	toLoc, err := c.ResolveZone(ctx, toPlace)
	if err != nil {
		return nil, err
	}

	var t time.Time
	if timeStr == "" {
		t = c.now().In(fromLoc)
	} else {
		t, err = parseUserTime(timeStr, fromLoc)
		if err != nil {
			return nil, err
		}
	}

	const layout = "2006-01-02 15:04:05 MST"
	return &Conversion{
		FromPlace: strings.TrimSpace(fromPlace),
		ToPlace:   strings.TrimSpace(toPlace),
		FromZone:  fromLoc.String(),
		ToZone:    toLoc.String(),
		FromTime:  t.Format(layout),
		ToTime:    t.In(toLoc).Format(layout),
	}, nil
}

func parseUserTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("time", s, "use YYYY-MM-DD, YYYY-MM-DD HH:MM, or YYYY-MM-DD HH:MM:SS")
}
