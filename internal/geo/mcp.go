package geo

import (
	"context"
	"fmt"
	"math"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// LocateMCP is the MCP wrapper for place lookups. The resolved address
// comes back with the most notable landmark nearby when one exists.
func (c *Client) LocateMCP(ctx context.Context, args LocateArgs) (LocateResult, error) {
	place, err := c.Geocode(ctx, args.Place)
	if err != nil {
		return LocateResult{}, err
	}

	result := LocateResult{Place: place}
	landmark, err := c.NearbyLandmark(ctx, place.Lat, place.Lon, args.RadiusKm)
	if err == nil {
		result.Landmark = landmark
	} else if !apperrors.IsNotFound(err) {
		c.Logger.Debug("landmark lookup failed", "place", args.Place, "error", err)
	}
	return result, nil
}

// RouteMCP is the MCP wrapper for route lookups
func (c *Client) RouteMCP(ctx context.Context, args RouteArgs) (RouteResult, error) {
	start, end, err := splitRouteQuery(args.Query)
	if err != nil {
		return RouteResult{}, err
	}

	route, err := c.Route(ctx, start, end)
	if err != nil {
		return RouteResult{}, err
	}

	via := "direct route"
	if len(route.Via) > 0 {
		via = strings.Join(route.Via, ", ")
	}

	return RouteResult{
		Start:      route.Start,
		End:        route.End,
		DistanceKm: route.DistanceKm,
		Hours:      route.Hours,
		Via:        via,
		RouteType:  route.RouteType,
		Modes:      travelModes(route.DistanceKm),
		Suggestion: fmt.Sprintf("Route: %d km; via %s; ~%.1f hours",
			int(math.Round(route.DistanceKm)), via, route.Hours),
	}, nil
}

func splitRouteQuery(query string) (start, end string, err error) {
	lower := strings.ToLower(query)
	idx := strings.Index(lower, " to ")
	if strings.TrimSpace(query) == "" || idx < 0 {
		return "", "", apperrors.NewValidationError("query", query, "use '<start> to <end>'")
	}

	start = strings.TrimSpace(query[:idx])
	end = strings.TrimSpace(query[idx+len(" to "):])
	if start == "" || end == "" {
		return "", "", apperrors.NewValidationError("query", query, "both places are required")
	}
	return start, end, nil
}

// travelModes estimates hours per transport mode. Sea travel only
// shows up for distances over 100 km.
func travelModes(distanceKm float64) []TravelMode {
	round := func(h float64) float64 { return math.Round(h*10) / 10 }

	modes := []TravelMode{
		{Mode: "Car/Bus/Truck", Hours: round(distanceKm / 80), Cost: "Low to Medium"},
		{Mode: "Train/Railway", Hours: round(distanceKm / 100), Cost: "Low to Medium"},
		{Mode: "Airplane", Hours: round(distanceKm/800 + 1), Cost: "High"},
	}
	if distanceKm > 100 {
		modes = append(modes, TravelMode{Mode: "Ship/Boat", Hours: round(distanceKm / 40), Cost: "Medium"})
	}
	return modes
}
