// Package geo looks up places and routes on the OpenStreetMap stack:
// Nominatim for geocoding, Overpass for nearby landmarks, and OSRM for
// driving routes. Nominatim usage policy requires at least 1.1 seconds
// between calls, which the client enforces.
package geo

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
)

const (
	// NominatimURL is the OSM geocoding endpoint
	NominatimURL = "https://nominatim.openstreetmap.org"

	// OSRMURL is the public OSRM routing endpoint
	OSRMURL = "https://router.project-osrm.org"

	// NominatimMinInterval is the required gap between Nominatim calls
	NominatimMinInterval = 1100 * time.Millisecond

	// GeoCacheTTL keeps lookups for an hour
	GeoCacheTTL = time.Hour

	earthRadiusKm = 6371.0
)

// OverpassEndpoints are tried in order until one answers.
var OverpassEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.fr/api/interpreter",
}

// Client talks to the OpenStreetMap services
type Client struct {
	*base.Client

	nominatimURL string
	overpassURLs []string
	osrmURL      string

	mu           sync.Mutex
	lastCall     time.Time
	now          func() time.Time
	sleep        func(context.Context, time.Duration) error
	rateInterval time.Duration
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

// NewClient creates a new geo client
func NewClient(opts ...ClientOption) *Client {
	return &Client{
		Client:       base.NewClient(opts...),
		nominatimURL: NominatimURL,
		overpassURLs: OverpassEndpoints,
		osrmURL:      OSRMURL,
		now:          time.Now,
		sleep:        sleepCtx,
		rateInterval: NominatimMinInterval,
	}
}

// SetEndpoints overrides the service URLs, used in tests. The test
// clock runs without the rate-limit delay.
func (c *Client) SetEndpoints(nominatim, osrm string, overpass []string) {
	c.nominatimURL = nominatim
	c.osrmURL = osrm
	c.overpassURLs = overpass
	c.rateInterval = 0
}

// waitNominatim blocks until the minimum interval since the previous
// Nominatim call has passed.
func (c *Client) waitNominatim(ctx context.Context) error {
	c.mu.Lock()
	elapsed := c.now().Sub(c.lastCall)
	wait := c.rateInterval - elapsed
	c.lastCall = c.now().Add(max(wait, 0))
	c.mu.Unlock()

	if wait > 0 {
		return c.sleep(ctx, wait)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	x := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(x))
}
