package timezone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

func TestResolveZone_CountryTable(t *testing.T) {
	c := NewClient()
	defer c.Close()

	tests := []struct {
		place string
		want  string
	}{
		{"India", "Asia/Kolkata"},
		{"  japan  ", "Asia/Tokyo"},
		{"USA", "America/New_York"},
		{"middle east", "Asia/Dubai"},
	}
	for _, tt := range tests {
		loc, err := c.ResolveZone(context.Background(), tt.place)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.place, err)
		}
		if loc.String() != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.place, tt.want, loc)
		}
	}
}

func TestResolveZone_IANAName(t *testing.T) {
	c := NewClient()
	defer c.Close()

	loc, err := c.ResolveZone(context.Background(), "Europe/Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Europe/Paris" {
		t.Errorf("expected Europe/Paris, got %s", loc)
	}
}

func TestResolveZone_CityFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "chennai" {
			t.Errorf("expected name=chennai, got %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"Chennai","timezone":"Asia/Kolkata"}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoint(srv.URL)

	loc, err := c.ResolveZone(context.Background(), "Chennai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Asia/Kolkata" {
		t.Errorf("expected Asia/Kolkata, got %s", loc)
	}
}

func TestResolveZone_UnknownPlace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient()
	defer c.Close()
	c.SetEndpoint(srv.URL)

	_, err := c.ResolveZone(context.Background(), "nowhereville")
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestConvert_ExplicitTime(t *testing.T) {
	c := NewClient()
	defer c.Close()

	conv, err := c.Convert(context.Background(), "japan", "uk", "2025-05-01 12:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.FromZone != "Asia/Tokyo" || conv.ToZone != "Europe/London" {
		t.Errorf("unexpected zones: %+v", conv)
	}
	// Tokyo is 8 hours ahead of London in May (JST vs BST).
	if !strings.Contains(conv.FromTime, "12:30:00") {
		t.Errorf("expected from time 12:30, got %q", conv.FromTime)
	}
	if !strings.Contains(conv.ToTime, "04:30:00") {
		t.Errorf("expected to time 04:30, got %q", conv.ToTime)
	}
}

func TestConvert_CurrentTime(t *testing.T) {
	c := NewClient()
	defer c.Close()
	c.SetClock(func() time.Time {
		return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	})

	conv, err := c.Convert(context.Background(), "india", "uk", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 12:00 UTC is 17:30 IST.
	if !strings.Contains(conv.FromTime, "17:30:00") {
		t.Errorf("expected 17:30 IST, got %q", conv.FromTime)
	}
	if !strings.Contains(conv.ToTime, "12:00:00") {
		t.Errorf("expected 12:00 GMT, got %q", conv.ToTime)
	}
}

func TestConvert_InvalidTime(t *testing.T) {
	c := NewClient()
	defer c.Close()

	_, err := c.Convert(context.Background(), "japan", "uk", "next tuesday")
	if !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		fromPlace string
		toPlace   string
		timeStr   string
		wantErr   bool
	}{
		{name: "simple", query: "chennai to new york", fromPlace: "chennai", toPlace: "new york"},
		{
			name:      "with datetime",
			query:     "tokyo to london 2025-05-01 12:30",
			fromPlace: "tokyo",
			toPlace:   "london",
			timeStr:   "2025-05-01 12:30",
		},
		{
			name:      "multiword place with date",
			query:     "india to new york 2025-05-01",
			fromPlace: "india",
			toPlace:   "new york",
			timeStr:   "2025-05-01",
		},
		{name: "missing connector", query: "chennai new york", wantErr: true},
		{name: "empty", query: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromPlace, toPlace, timeStr, err := splitQuery(tt.query)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fromPlace != tt.fromPlace || toPlace != tt.toPlace || timeStr != tt.timeStr {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					fromPlace, toPlace, timeStr, tt.fromPlace, tt.toPlace, tt.timeStr)
			}
		})
	}
}

func TestConvertTimeMCP(t *testing.T) {
	c := NewClient()
	defer c.Close()

	result, err := c.ConvertTimeMCP(context.Background(), ConvertTimeArgs{Query: "japan to india 2025-05-01 12:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FromZone != "Asia/Tokyo" || result.ToZone != "Asia/Kolkata" {
		t.Errorf("unexpected zones: %+v", result)
	}
	// Tokyo noon is 08:30 in Kolkata.
	if !strings.Contains(result.ToTime, "08:30:00") {
		t.Errorf("expected 08:30 IST, got %q", result.ToTime)
	}
}
