package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"github.com/deskfit/deskfit-mcp-server/internal/base"
	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// overpassResponse is the Overpass API response
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Landmark is a notable place near a coordinate
type Landmark struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbyLandmark finds the most notable named feature around a point.
// The search widens up to 10x the requested radius before giving up,
// and each Overpass endpoint is tried in turn.
func (c *Client) NearbyLandmark(ctx context.Context, lat, lon, radiusKm float64) (*Landmark, error) {
	if radiusKm <= 0 {
		radiusKm = 10
	}

	cacheKey := fmt.Sprintf("landmark:%.5f:%.5f:%g", lat, lon, radiusKm)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		return cached.(*Landmark), nil
	}

	radii := []float64{radiusKm, math.Min(50, radiusKm*3), math.Min(100, radiusKm*10)}
	for _, radius := range radii {
		query := landmarkQuery(lat, lon, int(radius*1000))

		for _, endpoint := range c.overpassURLs {
			resp, err := c.queryOverpass(ctx, endpoint, query)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				c.Logger.Debug("overpass endpoint failed", "endpoint", endpoint, "error", err)
				continue
			}

			if best := bestLandmark(resp.Elements, lat, lon); best != nil {
				c.Cache.Set(cacheKey, best, GeoCacheTTL)
				return best, nil
			}
			// An endpoint answered with nothing inside this radius.
			break
		}
	}

	return nil, apperrors.NewNotFoundError("geo", "landmark", fmt.Sprintf("%.5f,%.5f", lat, lon))
}

// landmarkQuery selects named tourism, historic, amenity, and natural
// features plus anything with a Wikipedia tag.
func landmarkQuery(lat, lon float64, radiusM int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, tag := range []string{"tourism", "historic", "amenity", "natural"} {
		fmt.Fprintf(&b, `node(around:%d,%f,%f)[%q];`, radiusM, lat, lon, tag)
		fmt.Fprintf(&b, `way(around:%d,%f,%f)[%q];`, radiusM, lat, lon, tag)
	}
	fmt.Fprintf(&b, `node(around:%d,%f,%f)["name"]["wikipedia"];`, radiusM, lat, lon)
	fmt.Fprintf(&b, `way(around:%d,%f,%f)["name"]["wikipedia"];`, radiusM, lat, lon)
	b.WriteString(");out center tags;")
	return b.String()
}

func (c *Client) queryOverpass(ctx context.Context, endpoint, query string) (*overpassResponse, error) {
	form := url.Values{}
	form.Set("data", query)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:         endpoint,
		Method:      "POST",
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		c.RecordSuccess()
		return nil, fmt.Errorf("overpass error %d", statusCode)
	}

	var resp overpassResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}
	c.RecordSuccess()
	return &resp, nil
}

// bestLandmark scores candidates and returns the winner. Wikipedia
// presence dominates, category tags add smaller bonuses, and ties go
// to the closer feature.
func bestLandmark(elements []overpassElement, lat, lon float64) *Landmark {
	type scored struct {
		landmark Landmark
		score    int
	}

	var candidates []scored
	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}

		elLat, elLon := el.Lat, el.Lon
		if el.Type != "node" {
			if el.Center == nil {
				continue
			}
			elLat, elLon = el.Center.Lat, el.Center.Lon
		}

		score := 0
		if el.Tags["wikipedia"] != "" || el.Tags["wikidata"] != "" {
			score += 100
		}
		if el.Tags["tourism"] != "" {
			score += 15
		}
		if el.Tags["historic"] != "" {
			score += 15
		}
		if el.Tags["amenity"] != "" {
			score += 8
		}
		if el.Tags["natural"] != "" {
			score += 10
		}
		if el.Tags["building"] != "" {
			score += 5
		}
		if el.Tags["office"] != "" {
			score += 5
		}

		candidates = append(candidates, scored{
			landmark: Landmark{
				Name:       name,
				Type:       landmarkType(el.Tags),
				Lat:        elLat,
				Lon:        elLon,
				DistanceKm: math.Round(haversineKm(lat, lon, elLat, elLon)*100) / 100,
			},
			score: score,
		})
	}

	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].landmark.DistanceKm < candidates[j].landmark.DistanceKm
	})
	return &candidates[0].landmark
}

func landmarkType(tags map[string]string) string {
	for _, tag := range []string{"tourism", "historic", "amenity", "natural"} {
		if v := tags[tag]; v != "" {
			return v
		}
	}
	return "landmark"
}
