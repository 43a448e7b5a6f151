package main

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/deskfit/deskfit-mcp-server/tools"
)

// CommandResult is what the page renders: text output, or an inline image.
type CommandResult struct {
	Text       string
	IsImage    bool
	Base64Data string
	MimeType   string
}

// Dispatcher routes parsed commands to tool backends and formats the
// results for HTML rendering.
type Dispatcher struct {
	clients tools.Clients
}

func NewDispatcher(clients tools.Clients) *Dispatcher {
	return &Dispatcher{clients: clients}
}

// Dispatch executes the named tool with the free-text argument.
func (d *Dispatcher) Dispatch(ctx context.Context, tool, arg string) (CommandResult, error) {
	switch tool {
	case "generate_calendar":
		res, err := d.clients.Almanac.GenerateCalendarMCP(ctx, almanac.GenerateCalendarArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		if res.Rendered != "" {
			return CommandResult{Text: res.Rendered}, nil
		}
		return CommandResult{Text: res.Message}, nil

	case "calculate":
		res, err := d.clients.Calculator.CalculateMCP(ctx, calculator.CalculateArgs{Expression: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: formatFields(
			field{"Expression", res.Expression},
			field{"Result", res.Formatted},
		)}, nil

	case "weather_check_rain":
		res, err := d.clients.Weather.CheckRainMCP(ctx, weather.CheckRainArgs{City: arg})
		if err != nil {
			return CommandResult{}, err
		}
		raining := "No"
		if res.Raining {
			raining = "Yes"
		}
		return CommandResult{Text: formatFields(
			field{"Location", res.City + ", " + res.Country},
			field{"Local Time", res.LocalTime},
			field{"Raining", raining},
			field{"Condition", res.Condition},
			field{"Precipitation", fmt.Sprintf("%.1f mm", res.Precipitation)},
			field{"Temperature", fmt.Sprintf("%.1f C", res.Temperature)},
		)}, nil

	case "currency_convert":
		res, err := d.clients.Currency.ConvertCurrencyMCP(ctx, currency.ConvertCurrencyArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: res.Formatted}, nil

	case "translate_text":
		res, err := d.clients.Translate.TranslateTextMCP(ctx, translate.TranslateTextArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: formatFields(
			field{"Input", res.Input},
			field{"Language", res.TargetName},
			field{"Translation", res.Output},
		)}, nil

	case "dictionary_lookup":
		res, err := d.clients.Dictionary.LookupWordMCP(ctx, dictionary.LookupWordArgs{Word: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: renderMeanings(res)}, nil

	case "timezone_convert":
		res, err := d.clients.Timezone.ConvertTimeMCP(ctx, timezone.ConvertTimeArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: formatFields(
			field{res.FromPlace, res.FromTime + " (" + res.FromZone + ")"},
			field{res.ToPlace, res.ToTime + " (" + res.ToZone + ")"},
		)}, nil

	case "fetch_news":
		res, err := d.clients.News.FetchNewsMCP(ctx, news.FetchNewsArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		if res.Rendered != "" {
			return CommandResult{Text: res.Rendered}, nil
		}
		return CommandResult{Text: res.Message}, nil

	case "web_search":
		res, err := d.clients.WebSearch.SearchMCP(ctx, websearch.SearchArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: renderSearch(res)}, nil

	case "geo_locate":
		res, err := d.clients.Geo.LocateMCP(ctx, geo.LocateArgs{Place: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: renderLocate(res)}, nil

	case "geo_route":
		res, err := d.clients.Geo.RouteMCP(ctx, geo.RouteArgs{Query: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{Text: renderRoute(res)}, nil

	case "qr_generate":
		res, err := qr.GenerateMCP(ctx, qr.GenerateArgs{Text: arg})
		if err != nil {
			return CommandResult{}, err
		}
		return CommandResult{
			Text:       res.Message,
			IsImage:    true,
			Base64Data: res.Base64Data,
			MimeType:   res.MimeType,
		}, nil

	case "image_convert":
		return CommandResult{Text: "Use the image upload form below to convert images."}, nil

	default:
		return CommandResult{}, fmt.Errorf("unknown tool %q", tool)
	}
}

// ConvertUpload converts an uploaded image through the image_convert tool.
func (d *Dispatcher) ConvertUpload(ctx context.Context, base64Data, format string) (imaging.ConvertResult, error) {
	return imaging.ConvertMCP(ctx, imaging.ConvertArgs{Base64Data: base64Data, Format: format})
}

type field struct {
	key   string
	value string
}

// formatFields renders key/value pairs in a fixed-width column layout.
func formatFields(fields ...field) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%-15s: %s\n", f.key, f.value)
	}
	return b.String()
}

func renderMeanings(res dictionary.LookupWordResult) string {
	var b strings.Builder
	b.WriteString(res.Word)
	if res.Phonetic != "" {
		b.WriteString(" " + res.Phonetic)
	}
	b.WriteString("\n")
	for _, m := range res.Meanings {
		fmt.Fprintf(&b, "\n[%s]\n", m.PartOfSpeech)
		for i, def := range m.Definitions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, def.Definition)
			if def.Example != "" {
				fmt.Fprintf(&b, "   e.g. %s\n", def.Example)
			}
		}
	}
	return b.String()
}

func renderSearch(res websearch.SearchResult) string {
	var b strings.Builder
	if res.Answer != "" {
		fmt.Fprintf(&b, "Answer: %s\n\n", res.Answer)
	}
	if res.Abstract != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Abstract)
	}
	for _, r := range res.Results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", r.Rank, r.Title, r.URL)
	}
	if b.Len() == 0 {
		return res.Message
	}
	return b.String()
}

func renderLocate(res geo.LocateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-15s: %s\n", "Address", res.Place.Name)
	fmt.Fprintf(&b, "%-15s: %.6f, %.6f\n", "Coordinates", res.Place.Lat, res.Place.Lon)
	if res.Landmark != nil {
		fmt.Fprintf(&b, "%-15s: %s (%s, %.1f km away)\n",
			"Landmark", res.Landmark.Name, res.Landmark.Type, res.Landmark.DistanceKm)
	}
	return b.String()
}

func renderRoute(res geo.RouteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-15s: %s -> %s\n", "Route", res.Start, res.End)
	fmt.Fprintf(&b, "%-15s: %.1f km\n", "Distance", res.DistanceKm)
	fmt.Fprintf(&b, "%-15s: %.1f hours\n", "Duration", res.Hours)
	fmt.Fprintf(&b, "%-15s: %s\n", "Via", res.Via)
	for _, m := range res.Modes {
		if m.Cost != "" {
			fmt.Fprintf(&b, "%-15s: ~%.1f hours (%s)\n", "By "+m.Mode, m.Hours, m.Cost)
		} else {
			fmt.Fprintf(&b, "%-15s: ~%.1f hours\n", "By "+m.Mode, m.Hours)
		}
	}
	return b.String()
}
