// deskfit MCP Server - A Model Context Protocol server exposing a set of
// desk-assistant tools: calendars, weather, currency, math, translation,
// dictionary, timezone, news, web search, QR codes, image conversion, and
// OpenStreetMap place/route lookups.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deskfit/deskfit-mcp-server/internal/almanac"
	"github.com/deskfit/deskfit-mcp-server/internal/calculator"
	"github.com/deskfit/deskfit-mcp-server/internal/currency"
	"github.com/deskfit/deskfit-mcp-server/internal/dictionary"
	"github.com/deskfit/deskfit-mcp-server/internal/geo"
	"github.com/deskfit/deskfit-mcp-server/internal/infra"
	"github.com/deskfit/deskfit-mcp-server/internal/news"
	"github.com/deskfit/deskfit-mcp-server/internal/timezone"
	"github.com/deskfit/deskfit-mcp-server/internal/translate"
	"github.com/deskfit/deskfit-mcp-server/internal/weather"
	"github.com/deskfit/deskfit-mcp-server/internal/websearch"
	"github.com/deskfit/deskfit-mcp-server/tools"
	"github.com/deskfit/deskfit-mcp-server/tracing"
)

const (
	ServerName    = "deskfit-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	ctx := context.Background()

	// Tracing (no-op unless OTEL_ENABLED is set)
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without it", "error", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	// One cache shared by every HTTP-backed client.
	cache := infra.NewCache(infra.DefaultMaxCacheEntries)
	defer cache.Close()

	clients := tools.Clients{
		Almanac:    almanac.NewEngine(),
		Calculator: calculator.NewEvaluator(),
		Weather:    weather.NewClient(weather.WithLogger(logger), weather.WithCache(cache)),
		Currency:   currency.NewClient(currency.WithLogger(logger), currency.WithCache(cache)),
		Translate:  translate.NewClient(translate.WithLogger(logger), translate.WithCache(cache)),
		Dictionary: dictionary.NewClient(dictionary.WithLogger(logger), dictionary.WithCache(cache)),
		Timezone:   timezone.NewClient(timezone.WithLogger(logger), timezone.WithCache(cache)),
		News:       news.NewClient(news.WithLogger(logger), news.WithCache(cache)),
		WebSearch:  websearch.NewClient(websearch.WithLogger(logger), websearch.WithCache(cache)),
		Geo:        geo.NewClient(geo.WithLogger(logger), geo.WithCache(cache)),
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions(),
	})

	registry := tools.NewHandlerRegistry(clients, logger)
	registry.RegisterAll(server)

	logger.Info("Starting deskfit MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"tools", len(tools.AllTools),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serverInstructions lists every registered tool for the client's
// system context.
func serverInstructions() string {
	var b strings.Builder
	b.WriteString("deskfit MCP Server provides desk-assistant tools.\n\nAvailable tools:\n")
	for _, spec := range tools.AllTools {
		b.WriteString("- ")
		b.WriteString(spec.Name)
		b.WriteString(": ")
		b.WriteString(spec.Title)
		b.WriteString("\n")
	}
	b.WriteString(`
Configure via environment variables:
- LOG_LEVEL: debug, info, warn, or error (default info)
- OTEL_ENABLED: set to "true" to enable tracing
- OTEL_EXPORTER_OTLP_ENDPOINT: OTLP collector endpoint (stdout exporter when unset)`)
	return b.String()
}

func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
