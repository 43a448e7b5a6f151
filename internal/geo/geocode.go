package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// nominatimResult is one candidate from the Nominatim search API.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	DisplayName string            `json:"display_name"`
	Importance  float64           `json:"importance"`
	Address     map[string]string `json:"address"`
}

// Place is a resolved location
type Place struct {
	Name       string            `json:"name"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Class      string            `json:"class,omitempty"`
	Type       string            `json:"type,omitempty"`
	Importance float64           `json:"importance,omitempty"`
	Address    map[string]string `json:"address,omitempty"`
}

// Geocode resolves a place name to its best candidate. Several query
// variants are tried so small villages and named institutions resolve
// even when the bare query misses.
func (c *Client) Geocode(ctx context.Context, place string) (*Place, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, apperrors.NewValidationError("place", "", "cannot be empty")
	}

	cacheKey := "geocode:" + strings.ToLower(place)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		c.Logger.Debug("cache hit", "place", place)
		return cached.(*Place), nil
	}

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (any, error) {
		return c.findBest(ctx, place)
	})
	if err != nil {
		return nil, err
	}

	best := result.(*Place)
	c.Cache.Set(cacheKey, best, GeoCacheTTL)
	return best, nil
}

func (c *Client) findBest(ctx context.Context, place string) (*Place, error) {
	var (
		best      *nominatimResult
		bestScore = int(-1 << 30)
	)

	for _, variant := range queryVariants(place) {
		results, err := c.searchNominatim(ctx, variant, 10)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			c.Logger.Debug("variant search failed", "variant", variant, "error", err)
			continue
		}
		for i := range results {
			if score := scoreResult(&results[i]); score > bestScore {
				bestScore = score
				best = &results[i]
			}
		}
		// A confident hit ends the variant loop early.
		if best != nil && bestScore >= 100 {
			break
		}
	}

	if best == nil {
		return nil, apperrors.NewNotFoundError("geo", "place", place)
	}
	return toPlace(best)
}

// queryVariants expands a place query into alternates that help small
// settlements resolve.
func queryVariants(place string) []string {
	variants := []string{place, place + ", village", place + ", hamlet"}

	lower := strings.ToLower(place)
	for _, keyword := range []string{"college", "institute", "school", "university"} {
		if strings.Contains(lower, keyword) {
			words := strings.Fields(place)
			if len(words) >= 2 {
				variants = append(variants, strings.Join(words[:2], " "), strings.Join(words[len(words)-2:], " "))
			}
			break
		}
	}

	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if len(v) <= 2 {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// scoreResult ranks a geocoding candidate. Settlements beat roads,
// villages and hamlets stay competitive with cities, and transit hubs
// get a boost.
func scoreResult(res *nominatimResult) int {
	score := 0
	class := strings.ToLower(res.Class)
	typ := strings.ToLower(res.Type)
	display := strings.ToLower(res.DisplayName)

	switch typ {
	case "city", "town", "municipality", "administrative":
		score += 100
	case "village", "hamlet", "neighbourhood", "suburb":
		score += 80
	case "bus_station":
		score += 50
	case "road", "street", "path", "pedestrian", "footway", "residential":
		score -= 50
	}

	score += int(res.Importance * 50)

	if res.Address["postcode"] != "" {
		score += 5
	}
	if strings.Contains(class, "bus") || strings.Contains(typ, "bus") || strings.Contains(display, "bus") {
		score += 40
	}
	return score
}

func (c *Client) searchNominatim(ctx context.Context, query string, limit int) ([]nominatimResult, error) {
	if err := c.waitNominatim(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:     c.nominatimURL + "/search?" + params.Encode(),
		Headers: map[string]string{"Accept-Language": "en"},
	})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("nominatim error %d: %s", statusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse nominatim response: %w", err)
	}
	c.RecordSuccess()
	return results, nil
}

// ReverseGeocode resolves coordinates to the nearest address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	cacheKey := fmt.Sprintf("rev:%.6f,%.6f", lat, lon)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(*Place), nil
	}

	if err := c.waitNominatim(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:     c.nominatimURL + "/reverse?" + params.Encode(),
		Headers: map[string]string{"Accept-Language": "en"},
	})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("nominatim error %d: %s", statusCode, string(body))
	}

	var res nominatimResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to parse nominatim response: %w", err)
	}
	c.RecordSuccess()

	if res.DisplayName == "" {
		return nil, apperrors.NewNotFoundError("geo", "coordinates", cacheKey)
	}

	place, err := toPlace(&res)
	if err != nil {
		return nil, err
	}
	c.Cache.Set(cacheKey, place, GeoCacheTTL)
	return place, nil
}

func toPlace(res *nominatimResult) (*Place, error) {
	lat, err := strconv.ParseFloat(res.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", res.Lat, err)
	}
	lon, err := strconv.ParseFloat(res.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", res.Lon, err)
	}
	return &Place{
		Name:       res.DisplayName,
		Lat:        lat,
		Lon:        lon,
		Class:      res.Class,
		Type:       res.Type,
		Importance: res.Importance,
		Address:    res.Address,
	}, nil
}
