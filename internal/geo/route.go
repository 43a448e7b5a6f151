package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
)

// osrmRouteThresholdKm decides when to ask OSRM for a driving route.
// Anything longer falls back to the great-circle estimate.
const osrmRouteThresholdKm = 500

// osrmResponse is the OSRM route API response
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route is a computed route between two places
type Route struct {
	Start      string   `json:"start"`
	End        string   `json:"end"`
	DistanceKm float64  `json:"distance_km"`
	Hours      float64  `json:"hours"`
	Via        []string `json:"via,omitempty"`
	RouteType  string   `json:"route_type"`
}

// Route computes distance and travel time between two places. Short
// hops go through OSRM for a real driving route; long distances use
// the great-circle estimate with places sampled along the line.
func (c *Client) Route(ctx context.Context, start, end string) (*Route, error) {
	from, err := c.Geocode(ctx, start)
	if err != nil {
		return nil, err
	}
	to, err := c.Geocode(ctx, end)
	if err != nil {
		return nil, err
	}

	straightKm := haversineKm(from.Lat, from.Lon, to.Lat, to.Lon)
	if straightKm < osrmRouteThresholdKm {
		if route, err := c.drivingRoute(ctx, from, to); err == nil {
			return route, nil
		} else if ctx.Err() != nil {
			return nil, err
		} else {
			c.Logger.Debug("driving route unavailable, using great circle", "error", err)
		}
	}

	return c.greatCircleRoute(ctx, from, to, straightKm), nil
}

func (c *Client) drivingRoute(ctx context.Context, from, to *Place) (*Route, error) {
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.osrmURL, from.Lon, from.Lat, to.Lon, to.Lat)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{URL: reqURL})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("osrm error %d", statusCode)
	}

	var resp osrmResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse osrm response: %w", err)
	}
	c.RecordSuccess()

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return nil, fmt.Errorf("osrm returned no route (code %q)", resp.Code)
	}

	r := resp.Routes[0]
	return &Route{
		Start:      from.Name,
		End:        to.Name,
		DistanceKm: math.Round(r.Distance/1000*10) / 10,
		Hours:      math.Round(r.Duration/3600*10) / 10,
		Via:        c.routeTowns(ctx, r.Geometry.Coordinates),
		RouteType:  "driving",
	}, nil
}

// routeTowns samples the route geometry and reverse geocodes up to
// four towns along the way.
func (c *Client) routeTowns(ctx context.Context, coords [][]float64) []string {
	if len(coords) <= 2 {
		return nil
	}

	samples := min(5, len(coords)-2)
	step := max(1, (len(coords)-2)/samples)

	var towns []string
	seen := make(map[string]struct{})
	for i := 0; i < samples && len(towns) < 4; i++ {
		idx := 1 + i*step
		if idx >= len(coords) || len(coords[idx]) < 2 {
			break
		}
		lon, lat := coords[idx][0], coords[idx][1]

		place, err := c.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			continue
		}
		name := settlementName(place.Address)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		towns = append(towns, name)
	}
	return towns
}

func settlementName(address map[string]string) string {
	for _, key := range []string{"town", "village", "county", "municipality", "city", "country"} {
		if v := address[key]; v != "" {
			return v
		}
	}
	return ""
}

// greatCircleRoute estimates a long-distance route, sampling points
// along the line for intermediate place names.
func (c *Client) greatCircleRoute(ctx context.Context, from, to *Place, straightKm float64) *Route {
	points := min(10, max(5, int(straightKm/500)))

	var via []string
	seen := make(map[string]struct{})
	for i := 1; i < points && len(via) < 8; i++ {
		ratio := float64(i) / float64(points)
		lat := from.Lat + (to.Lat-from.Lat)*ratio
		lon := from.Lon + (to.Lon-from.Lon)*ratio

		place, err := c.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			continue
		}
		name := settlementName(place.Address)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		via = append(via, name)
	}

	// Mixed-transport average of 80 km/h.
	return &Route{
		Start:      from.Name,
		End:        to.Name,
		DistanceKm: math.Round(straightKm*10) / 10,
		Hours:      math.Round(straightKm/80*10) / 10,
		Via:        via,
		RouteType:  "great_circle",
	}
}
