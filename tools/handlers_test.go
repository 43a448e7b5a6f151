package tools

import (
	"log/slog"
	"os"
	"testing"

	"github.com/deskfit/deskfit-mcp-server/internal/almanac"
	"github.com/deskfit/deskfit-mcp-server/internal/calculator"
	"github.com/deskfit/deskfit-mcp-server/internal/geo"
	"github.com/deskfit/deskfit-mcp-server/internal/weather"
)

func testClients(logger *slog.Logger) (Clients, func()) {
	weatherClient := weather.NewClient(weather.WithLogger(logger))
	geoClient := geo.NewClient(geo.WithLogger(logger))

	clients := Clients{
		Almanac:    almanac.NewEngine(),
		Calculator: calculator.NewEvaluator(),
		Weather:    weatherClient,
		Geo:        geoClient,
	}
	return clients, func() {
		weatherClient.Close()
		geoClient.Close()
	}
}

func TestNewHandlerRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clients, cleanup := testClients(logger)
	defer cleanup()

	registry := NewHandlerRegistry(clients, logger)

	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.clients.Almanac != clients.Almanac {
		t.Error("Registry should hold the almanac engine reference")
	}
	if registry.logger != logger {
		t.Error("Registry should hold the logger reference")
	}
}

func TestBuildTool(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clients, cleanup := testClients(logger)
	defer cleanup()

	registry := NewHandlerRegistry(clients, logger)

	tests := []struct {
		name     string
		spec     ToolSpec
		wantName string
		wantRO   bool
		wantIdem bool
		wantOpen bool
	}{
		{
			name: "local tool",
			spec: ToolSpec{
				Name:        "generate_calendar",
				Title:       "Generate Calendar",
				Description: "Render calendars",
				Method:      "GenerateCalendar",
				ReadOnly:    true,
				Idempotent:  true,
			},
			wantName: "generate_calendar",
			wantRO:   true,
			wantIdem: true,
		},
		{
			name: "open world tool",
			spec: ToolSpec{
				Name:        "weather_check_rain",
				Title:       "Check Rain",
				Description: "Current weather",
				Method:      "CheckRain",
				ReadOnly:    true,
				OpenWorld:   true,
			},
			wantName: "weather_check_rain",
			wantRO:   true,
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tool.Name, tt.wantName)
			}
			if tool.Annotations == nil {
				t.Fatal("Expected annotations")
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("ReadOnlyHint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("IdempotentHint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			if tt.wantOpen && (tool.Annotations.OpenWorldHint == nil || !*tool.Annotations.OpenWorldHint) {
				t.Error("Expected OpenWorldHint to be true")
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clients, cleanup := testClients(logger)
	defer cleanup()

	registry := NewHandlerRegistry(clients, logger)

	// recoverPanic must not panic itself.
	func() {
		defer registry.recoverPanic("test_tool")
		panic("test panic")
	}()
}

func TestLogExecution(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	clients, cleanup := testClients(logger)
	defer cleanup()

	registry := NewHandlerRegistry(clients, logger)
	spec := ToolSpec{Name: "test_tool", Category: "lookup"}

	registry.logExecution(spec,
		almanac.GenerateCalendarArgs{Query: "march 2024"},
		almanac.GenerateCalendarResult{Count: 1})

	registry.logExecution(spec,
		weather.CheckRainArgs{City: "london"},
		weather.CheckRainResult{Raining: true})

	registry.logExecution(spec,
		geo.RouteArgs{Query: "chennai to trichy"},
		geo.RouteResult{DistanceKm: 320, RouteType: "driving"})

	registry.logExecution(spec,
		geo.LocateArgs{Place: "trichy"},
		geo.LocateResult{})
}

func TestAllToolsNotEmpty(t *testing.T) {
	if len(AllTools) == 0 {
		t.Error("AllTools should not be empty")
	}

	// Verify each tool has required fields
	for i, spec := range AllTools {
		if spec.Name == "" {
			t.Errorf("Tool %d has empty Name", i)
		}
		if spec.Method == "" {
			t.Errorf("Tool %s has empty Method", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("Tool %s has empty Description", spec.Name)
		}
		if spec.Category == "" {
			t.Errorf("Tool %s has empty Category", spec.Name)
		}
	}
}

func TestToolSpecMethods(t *testing.T) {
	knownMethods := map[string]bool{
		"GenerateCalendar": true,
		"Calculate":        true,
		"CheckRain":        true,
		"ConvertCurrency":  true,
		"TranslateText":    true,
		"LookupWord":       true,
		"ConvertTime":      true,
		"FetchNews":        true,
		"Search":           true,
		"Locate":           true,
		"Route":            true,
		"GenerateQR":       true,
		"ConvertImage":     true,
	}

	for _, spec := range AllTools {
		if !knownMethods[spec.Method] {
			t.Errorf("Tool %s has unknown method: %s", spec.Name, spec.Method)
		}
	}
}

func TestToolsByCategory(t *testing.T) {
	lookupTools := ToolsByCategory("lookup")
	if len(lookupTools) == 0 {
		t.Error("Expected lookup tools")
	}

	for _, tool := range lookupTools {
		if tool.Category != "lookup" {
			t.Errorf("Tool %s has category %s, expected lookup", tool.Name, tool.Category)
		}
	}

	unknownTools := ToolsByCategory("unknown")
	if len(unknownTools) != 0 {
		t.Errorf("Expected 0 tools for unknown category, got %d", len(unknownTools))
	}
}

func TestToolNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, spec := range AllTools {
		if seen[spec.Name] {
			t.Errorf("Duplicate tool name: %s", spec.Name)
		}
		seen[spec.Name] = true
	}
}
