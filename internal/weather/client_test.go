package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

const geocodeBody = `{"results":[{"name":"London","latitude":51.50853,"longitude":-0.12574,"country":"United Kingdom","timezone":"Europe/London"}]}`

const forecastBody = `{"current":{"time":"2024-01-15T12:00","precipitation":0.4,"weather_code":61,"temperature_2m":7.3}}`

func newTestClient(t *testing.T, geocodeHandler, forecastHandler http.HandlerFunc) *Client {
	t.Helper()
	geoSrv := httptest.NewServer(geocodeHandler)
	t.Cleanup(geoSrv.Close)
	fcSrv := httptest.NewServer(forecastHandler)
	t.Cleanup(fcSrv.Close)

	c := NewClient()
	t.Cleanup(c.Close)
	c.SetEndpoints(geoSrv.URL, fcSrv.URL)
	return c
}

func TestGeocode(t *testing.T) {
	var gotQuery atomic.Value
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.Query().Get("name"))
			_, _ = w.Write([]byte(geocodeBody))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	loc, err := c.Geocode(context.Background(), "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "London" || loc.Country != "United Kingdom" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if loc.Latitude == 0 || loc.Longitude == 0 {
		t.Error("expected coordinates")
	}
	if gotQuery.Load() != "london" {
		t.Errorf("expected name=london in query, got %v", gotQuery.Load())
	}
}

func TestGeocode_NotFound(t *testing.T) {
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	_, err := c.Geocode(context.Background(), "atlantis")
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestGeocode_EmptyCity(t *testing.T) {
	c := NewClient()
	defer c.Close()

	_, err := c.Geocode(context.Background(), "   ")
	if !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestGeocode_Cached(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(geocodeBody))
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)

	for i := 0; i < 3; i++ {
		if _, err := c.Geocode(context.Background(), "London"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls.Load())
	}
}

func TestCurrentReport(t *testing.T) {
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(geocodeBody))
		},
		func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("current"); !strings.Contains(got, "precipitation") {
				t.Errorf("expected precipitation in current params, got %q", got)
			}
			_, _ = w.Write([]byte(forecastBody))
		},
	)

	report, err := c.CurrentReport(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Raining {
		t.Error("expected raining for WMO code 61")
	}
	if report.Condition != "Rain" {
		t.Errorf("expected condition Rain, got %q", report.Condition)
	}
	if report.LocalTime != "2024-01-15 12:00" {
		t.Errorf("expected T replaced by space, got %q", report.LocalTime)
	}
	if report.Temperature != 7.3 {
		t.Errorf("expected temperature 7.3, got %v", report.Temperature)
	}
}

func TestCheckRainMCP(t *testing.T) {
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(geocodeBody))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(forecastBody))
		},
	)

	result, err := c.CheckRainMCP(context.Background(), CheckRainArgs{City: "London"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.City != "London" || !result.Raining {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Precipitation != 0.4 {
		t.Errorf("expected 0.4mm precipitation, got %v", result.Precipitation)
	}
}

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		code    int
		want    string
		raining bool
	}{
		{0, "Clear sky", false},
		{2, "Partly cloudy", false},
		{45, "Foggy", false},
		{53, "Drizzle", true},
		{65, "Rain", true},
		{75, "Snow fall", true},
		{81, "Rain showers", true},
		{95, "Thunderstorm", true},
		{99, "Thunderstorm with hail", true},
		{42, "Unknown conditions", false},
	}
	for _, tt := range tests {
		desc, raining := describeWeatherCode(tt.code)
		if desc != tt.want || raining != tt.raining {
			t.Errorf("code %d: expected (%q, %v), got (%q, %v)", tt.code, tt.want, tt.raining, desc, raining)
		}
	}
}
