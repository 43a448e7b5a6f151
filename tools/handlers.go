package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/deskfit/deskfit-mcp-server/internal/almanac"
	"github.com/deskfit/deskfit-mcp-server/internal/calculator"
	"github.com/deskfit/deskfit-mcp-server/internal/currency"
	"github.com/deskfit/deskfit-mcp-server/internal/dictionary"
	"github.com/deskfit/deskfit-mcp-server/internal/geo"
	"github.com/deskfit/deskfit-mcp-server/internal/imaging"
	"github.com/deskfit/deskfit-mcp-server/internal/news"
	"github.com/deskfit/deskfit-mcp-server/internal/qr"
	"github.com/deskfit/deskfit-mcp-server/internal/timezone"
	"github.com/deskfit/deskfit-mcp-server/internal/translate"
	"github.com/deskfit/deskfit-mcp-server/internal/weather"
	"github.com/deskfit/deskfit-mcp-server/internal/websearch"
	"github.com/deskfit/deskfit-mcp-server/metrics"
	"github.com/deskfit/deskfit-mcp-server/tracing"
)

// Clients bundles every tool backend the registry dispatches to.
type Clients struct {
	Almanac    *almanac.Engine
	Calculator *calculator.Evaluator
	Weather    *weather.Client
	Currency   *currency.Client
	Translate  *translate.Client
	Dictionary *dictionary.Client
	Timezone   *timezone.Client
	News       *news.Client
	WebSearch  *websearch.Client
	Geo        *geo.Client
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	clients Clients
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(clients Clients, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{clients: clients, logger: logger}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "GenerateCalendar":
		register(h, server, tool, spec, h.clients.Almanac.GenerateCalendarMCP)
	case "Calculate":
		register(h, server, tool, spec, h.clients.Calculator.CalculateMCP)
	case "CheckRain":
		register(h, server, tool, spec, h.clients.Weather.CheckRainMCP)
	case "ConvertCurrency":
		register(h, server, tool, spec, h.clients.Currency.ConvertCurrencyMCP)
	case "TranslateText":
		register(h, server, tool, spec, h.clients.Translate.TranslateTextMCP)
	case "LookupWord":
		register(h, server, tool, spec, h.clients.Dictionary.LookupWordMCP)
	case "ConvertTime":
		register(h, server, tool, spec, h.clients.Timezone.ConvertTimeMCP)
	case "FetchNews":
		register(h, server, tool, spec, h.clients.News.FetchNewsMCP)
	case "Search":
		register(h, server, tool, spec, h.clients.WebSearch.SearchMCP)
	case "Locate":
		register(h, server, tool, spec, h.clients.Geo.LocateMCP)
	case "Route":
		register(h, server, tool, spec, h.clients.Geo.RouteMCP)
	case "GenerateQR":
		register(h, server, tool, spec, qr.GenerateMCP)
	case "ConvertImage":
		register(h, server, tool, spec, imaging.ConvertMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case almanac.GenerateCalendarArgs:
		attrs = append(attrs, "query", a.Query)
	case calculator.CalculateArgs:
		attrs = append(attrs, "expression", a.Expression)
	case weather.CheckRainArgs:
		attrs = append(attrs, "city", a.City)
	case currency.ConvertCurrencyArgs:
		attrs = append(attrs, "query", a.Query)
	case translate.TranslateTextArgs:
		attrs = append(attrs, "query", a.Query)
	case dictionary.LookupWordArgs:
		attrs = append(attrs, "word", a.Word)
	case timezone.ConvertTimeArgs:
		attrs = append(attrs, "query", a.Query)
	case news.FetchNewsArgs:
		attrs = append(attrs, "query", a.Query)
	case websearch.SearchArgs:
		attrs = append(attrs, "query", a.Query)
	case geo.LocateArgs:
		attrs = append(attrs, "place", a.Place)
	case geo.RouteArgs:
		attrs = append(attrs, "query", a.Query)
	case qr.GenerateArgs:
		attrs = append(attrs, "text_chars", len(a.Text))
	case imaging.ConvertArgs:
		attrs = append(attrs, "format", a.Format, "input_bytes", len(a.Base64Data))
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case almanac.GenerateCalendarResult:
		attrs = append(attrs, "calendars", r.Count)
	case weather.CheckRainResult:
		attrs = append(attrs, "raining", r.Raining)
	case news.FetchNewsResult:
		attrs = append(attrs, "articles", r.Count)
	case websearch.SearchResult:
		attrs = append(attrs, "results_count", r.Count)
	case geo.LocateResult:
		if r.Landmark != nil {
			attrs = append(attrs, "landmark", r.Landmark.Name)
		}
	case geo.RouteResult:
		attrs = append(attrs, "distance_km", r.DistanceKm, "route_type", r.RouteType)
	case imaging.ConvertResult:
		attrs = append(attrs, "target_format", r.TargetFormat)
	}

	h.logger.Info("Tool executed", attrs...)
}
