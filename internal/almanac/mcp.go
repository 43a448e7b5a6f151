package almanac

import (
	"context"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the engine with Args/Result types for MCP integration.

// GenerateCalendarMCP is the MCP wrapper for calendar generation
func (e *Engine) GenerateCalendarMCP(ctx context.Context, args GenerateCalendarArgs) (GenerateCalendarResult, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return GenerateCalendarResult{}, apperrors.NewValidationError("query", "", "cannot be empty")
	}

	pairs := e.Resolve(query)
	if len(pairs) == 0 {
		return GenerateCalendarResult{
			Query:   query,
			Message: "no dates found",
		}, nil
	}

	blocks := make([]CalendarBlock, 0, len(pairs))
	var rendered strings.Builder
	for _, pair := range pairs {
		text := RenderGrid(pair, BuildGrid(pair.Year, pair.Month))
		blocks = append(blocks, CalendarBlock{
			Month:     pair.Month,
			Year:      clampYear(pair.Year),
			MonthName: monthName(pair.Month),
			Text:      text,
		})
		rendered.WriteString(text)
		rendered.WriteByte('\n')
	}

	return GenerateCalendarResult{
		Query:     query,
		Count:     len(pairs),
		Calendars: blocks,
		Rendered:  rendered.String(),
	}, nil
}

func clampYear(year int) int {
	if year < 1 {
		return 1
	}
	if year > 9999 {
		return 9999
	}
	return year
}
