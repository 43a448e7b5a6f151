package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

const cityResult = `[
	{"lat":"10.7905","lon":"78.7047","class":"place","type":"road","display_name":"Some Road, Tiruchirappalli","importance":0.2,"address":{}},
	{"lat":"10.8050","lon":"78.6856","class":"place","type":"city","display_name":"Tiruchirappalli, Tamil Nadu, India","importance":0.6,"address":{"postcode":"620001"}}
]`

// nominatimHandler serves canned /search and /reverse responses.
func nominatimHandler(t *testing.T, searches *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			if searches != nil {
				searches.Add(1)
			}
			q := r.URL.Query().Get("q")
			switch {
			case strings.Contains(q, "trichy"):
				_, _ = w.Write([]byte(cityResult))
			case strings.Contains(q, "paris"):
				_, _ = w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522","class":"place","type":"city","display_name":"Paris, France","importance":0.9,"address":{}}]`))
			case strings.Contains(q, "london"):
				_, _ = w.Write([]byte(`[{"lat":"51.5074","lon":"-0.1278","class":"place","type":"city","display_name":"London, UK","importance":0.9,"address":{}}]`))
			case strings.Contains(q, "sydney"):
				_, _ = w.Write([]byte(`[{"lat":"-33.8688","lon":"151.2093","class":"place","type":"city","display_name":"Sydney, Australia","importance":0.9,"address":{}}]`))
			default:
				_, _ = w.Write([]byte(`[]`))
			}
		case strings.HasPrefix(r.URL.Path, "/reverse"):
			_, _ = w.Write([]byte(`{"lat":"10.9","lon":"78.5","display_name":"Midtown, Tamil Nadu","address":{"town":"Midtown"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestHaversineKm(t *testing.T) {
	// Paris to London is roughly 344 km.
	got := haversineKm(48.8566, 2.3522, 51.5074, -0.1278)
	if got < 330 || got > 355 {
		t.Errorf("expected ~344 km, got %.1f", got)
	}
	if d := haversineKm(10, 20, 10, 20); d != 0 {
		t.Errorf("zero distance expected, got %f", d)
	}
}

func TestScoreResult(t *testing.T) {
	tests := []struct {
		name string
		res  nominatimResult
		want int
	}{
		{"city", nominatimResult{Type: "city", Importance: 0.6}, 130},
		{"village", nominatimResult{Type: "village", Importance: 0.2}, 90},
		{"road penalized", nominatimResult{Type: "road", Importance: 0.2}, -40},
		{"postcode bonus", nominatimResult{Type: "town", Address: map[string]string{"postcode": "620001"}}, 105},
		{"bus keyword", nominatimResult{Type: "bus_station", DisplayName: "Central Bus Stand"}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreResult(&tt.res); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestQueryVariants(t *testing.T) {
	variants := queryVariants("chennai")
	if len(variants) != 3 || variants[0] != "chennai" {
		t.Errorf("unexpected variants: %v", variants)
	}

	variants = queryVariants("national engineering college trichy")
	found := false
	for _, v := range variants {
		if v == "national engineering" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected leading-words variant, got %v", variants)
	}
}

func TestGeocode(t *testing.T) {
	var searches atomic.Int32
	srv := httptest.NewServer(nominatimHandler(t, &searches))
	defer srv.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(srv.URL, "", nil)

	place, err := c.Geocode(context.Background(), "trichy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(place.Name, "Tiruchirappalli") {
		t.Errorf("road outscored the city: %+v", place)
	}
	if math.Abs(place.Lat-10.8050) > 1e-9 {
		t.Errorf("unexpected latitude: %f", place.Lat)
	}

	// Confident city match stops after the first variant, and the
	// second call hits the cache.
	if _, err := c.Geocode(context.Background(), "TRICHY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := searches.Load(); got != 1 {
		t.Errorf("expected 1 search request, got %d", got)
	}
}

func TestGeocode_NotFound(t *testing.T) {
	srv := httptest.NewServer(nominatimHandler(t, nil))
	defer srv.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(srv.URL, "", nil)

	_, err := c.Geocode(context.Background(), "xyzzy")
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(nominatimHandler(t, nil))
	defer srv.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(srv.URL, "", nil)

	place, err := c.ReverseGeocode(context.Background(), 10.9, 78.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Address["town"] != "Midtown" {
		t.Errorf("unexpected address: %+v", place)
	}
}

func TestWaitNominatim(t *testing.T) {
	c := NewClient()
	defer c.Close()

	var slept []time.Duration
	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := c.waitNominatim(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// First call passes immediately; each following call queues behind
	// the 1.1s interval.
	if len(slept) != 2 {
		t.Fatalf("expected 2 sleeps, got %v", slept)
	}
	if slept[0] != NominatimMinInterval || slept[1] != 2*NominatimMinInterval {
		t.Errorf("unexpected sleep schedule: %v", slept)
	}
}

func TestNearbyLandmark(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer dead.Close()

	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostFormValue("data") == "" {
			t.Error("expected form-encoded overpass query")
		}
		_, _ = w.Write([]byte(`{"elements":[
			{"type":"node","lat":10.81,"lon":78.69,"tags":{"name":"Local Cafe","amenity":"cafe"}},
			{"type":"way","center":{"lat":10.83,"lon":78.70},"tags":{"name":"Rockfort Temple","historic":"monument","wikipedia":"en:Rockfort"}}
		]}`))
	}))
	defer live.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints("", "", []string{dead.URL, live.URL})

	landmark, err := c.NearbyLandmark(context.Background(), 10.80, 78.68, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landmark.Name != "Rockfort Temple" {
		t.Errorf("wikipedia-tagged landmark should win, got %+v", landmark)
	}
	if landmark.Type != "historic" {
		t.Errorf("unexpected type: %s", landmark.Type)
	}
	if landmark.DistanceKm <= 0 {
		t.Error("expected a positive distance")
	}
}

func TestNearbyLandmark_NotFound(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer empty.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints("", "", []string{empty.URL})

	_, err := c.NearbyLandmark(context.Background(), 0, 0, 10)
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRoute_Driving(t *testing.T) {
	nominatim := httptest.NewServer(nominatimHandler(t, nil))
	defer nominatim.Close()

	osrm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{
			"distance":344000,
			"duration":12600,
			"geometry":{"coordinates":[[2.35,48.85],[1.5,49.5],[0.5,50.5],[-0.12,51.50]]}
		}]}`))
	}))
	defer osrm.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(nominatim.URL, osrm.URL, nil)

	route, err := c.Route(context.Background(), "paris", "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.RouteType != "driving" {
		t.Errorf("expected driving route, got %s", route.RouteType)
	}
	if route.DistanceKm != 344.0 {
		t.Errorf("expected 344.0 km, got %f", route.DistanceKm)
	}
	if route.Hours != 3.5 {
		t.Errorf("expected 3.5 hours, got %f", route.Hours)
	}
	// Intermediate towns come from reverse geocoding, deduplicated.
	if len(route.Via) != 1 || route.Via[0] != "Midtown" {
		t.Errorf("unexpected via list: %v", route.Via)
	}
}

func TestRoute_GreatCircle(t *testing.T) {
	nominatim := httptest.NewServer(nominatimHandler(t, nil))
	defer nominatim.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(nominatim.URL, "", nil)

	route, err := c.Route(context.Background(), "london", "sydney")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.RouteType != "great_circle" {
		t.Errorf("expected great_circle route, got %s", route.RouteType)
	}
	// London to Sydney is about 17000 km.
	if route.DistanceKm < 16000 || route.DistanceKm > 18000 {
		t.Errorf("unexpected distance: %f", route.DistanceKm)
	}
}

func TestSplitRouteQuery(t *testing.T) {
	start, end, err := splitRouteQuery("Chennai to New York")
	if err != nil || start != "Chennai" || end != "New York" {
		t.Errorf("got (%q, %q, %v)", start, end, err)
	}

	for _, bad := range []string{"", "just one place", " to london"} {
		if _, _, err := splitRouteQuery(bad); !apperrors.IsValidation(err) {
			t.Errorf("%q: expected ValidationError, got %v", bad, err)
		}
	}
}

func TestTravelModes(t *testing.T) {
	modes := travelModes(80)
	if len(modes) != 3 {
		t.Errorf("short distance should skip sea travel: %+v", modes)
	}

	modes = travelModes(800)
	if len(modes) != 4 {
		t.Fatalf("expected 4 modes, got %+v", modes)
	}
	if modes[0].Hours != 10.0 {
		t.Errorf("expected 10h by road, got %f", modes[0].Hours)
	}
	if modes[2].Hours != 2.0 {
		t.Errorf("expected 2h by air, got %f", modes[2].Hours)
	}
}

func TestLocateMCP(t *testing.T) {
	nominatim := httptest.NewServer(nominatimHandler(t, nil))
	defer nominatim.Close()

	overpass := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[{"type":"node","lat":10.83,"lon":78.70,"tags":{"name":"Rockfort Temple","historic":"monument"}}]}`))
	}))
	defer overpass.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(nominatim.URL, "", []string{overpass.URL})

	result, err := c.LocateMCP(context.Background(), LocateArgs{Place: "trichy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Place == nil || !strings.HasPrefix(result.Place.Name, "Tiruchirappalli") {
		t.Errorf("unexpected place: %+v", result.Place)
	}
	if result.Landmark == nil || result.Landmark.Name != "Rockfort Temple" {
		t.Errorf("unexpected landmark: %+v", result.Landmark)
	}
}

func TestRouteMCP(t *testing.T) {
	nominatim := httptest.NewServer(nominatimHandler(t, nil))
	defer nominatim.Close()

	osrm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":320000,"duration":14400,"geometry":{"coordinates":[]}}]}`))
	}))
	defer osrm.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoints(nominatim.URL, osrm.URL, nil)

	result, err := c.RouteMCP(context.Background(), RouteArgs{Query: "paris to london"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Via != "direct route" {
		t.Errorf("expected direct route, got %q", result.Via)
	}
	if len(result.Modes) != 4 {
		t.Errorf("expected 4 travel modes for 320 km, got %+v", result.Modes)
	}
	if !strings.Contains(result.Suggestion, "320 km") {
		t.Errorf("unexpected suggestion: %q", result.Suggestion)
	}

	if _, err := c.RouteMCP(context.Background(), RouteArgs{Query: "nowhere"}); !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
