// Package weather reports current conditions and rain status for a city
// using the Open-Meteo geocoding and forecast APIs.
package weather

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

	// ForecastURL is the Open-Meteo forecast endpoint
	ForecastURL = "https://api.open-meteo.com/v1/forecast"

	// GeocodeCacheTTL keeps resolved coordinates for a day; cities don't move
	GeocodeCacheTTL = 24 * time.Hour

	// ReportCacheTTL keeps weather reports briefly
	ReportCacheTTL = 5 * time.Minute
)

// Client provides access to the Open-Meteo APIs
type Client struct {
	*base.Client

	geocodingURL string
	forecastURL  string
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

// NewClient creates a new Open-Meteo client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:       base.NewClient(opts...),
		geocodingURL: GeocodingURL,
		forecastURL:  ForecastURL,
	}
}

// SetEndpoints overrides the upstream URLs, used in tests
func (c *Client) SetEndpoints(geocoding, forecast string) {
	c.geocodingURL = geocoding
	c.forecastURL = forecast
}

// Geocode resolves a city name to coordinates, keeping the first match.
func (c *Client) Geocode(ctx context.Context, city string) (*Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("city", "", "cannot be empty")
	}

	cacheKey := "geocode:" + strings.ToLower(city)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(*Location), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		params := url.Values{}
		params.Set("name", city)
		params.Set("count", "1")
		params.Set("language", "en")
		params.Set("format", "json")

		var resp geocodeResponse
		if err := c.getJSON(ctx, c.geocodingURL+"?"+params.Encode(), &resp); err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			return nil, apperrors.NewNotFoundError("weather", "city", city)
		}

		r := resp.Results[0]
		country := r.Country
		if country == "" {
			country = "Unknown"
		}
		return &Location{
			Name:      r.Name,
			Country:   country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Timezone:  r.Timezone,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	loc := result.(*Location)
	c.Cache.Set(cacheKey, loc, GeocodeCacheTTL)
	return loc, nil
}

// CurrentReport fetches the current conditions for a city.
func (c *Client) CurrentReport(ctx context.Context, city string) (*Report, error) {
	loc, err := c.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:%.4f:%.4f", loc.Latitude, loc.Longitude)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(*Report), nil
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	params.Set("current", "precipitation,weather_code,temperature_2m")
	params.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	condition, raining := describeWeatherCode(resp.Current.WeatherCode)
	report := &Report{
		Location:      *loc,
		LocalTime:     strings.ReplaceAll(resp.Current.Time, "T", " "),
		Condition:     condition,
		Raining:       raining,
		Precipitation: resp.Current.Precipitation,
		Temperature:   resp.Current.Temperature,
	}

	c.Cache.Set(cacheKey, report, ReportCacheTTL)
	return report, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, result any) error {
	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: reqURL})
	if err != nil {
		return err
	}

	if statusCode >= 400 {
		c.RecordSuccess()
		return fmt.Errorf("weather API error %d: %s", statusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse weather response: %w", err)
	}

	c.RecordSuccess()
	return nil
}
