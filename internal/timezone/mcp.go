package timezone

import (
	"context"
	"regexp"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// datePrefix spots the start of an explicit conversion time in a query.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// ConvertTimeMCP is the MCP wrapper for timezone conversion
func (c *Client) ConvertTimeMCP(ctx context.Context, args ConvertTimeArgs) (ConvertTimeResult, error) {
	fromPlace, toPlace, timeStr, err := splitQuery(args.Query)
	if err != nil {
		return ConvertTimeResult{}, err
	}

	conv, err := c.Convert(ctx, fromPlace, toPlace, timeStr)
	if err != nil {
		return ConvertTimeResult{}, err
	}

	return ConvertTimeResult{
		FromPlace: conv.FromPlace,
		ToPlace:   conv.ToPlace,
		FromZone:  conv.FromZone,
		ToZone:    conv.ToZone,
		FromTime:  conv.FromTime,
		ToTime:    conv.ToTime,
	}, nil
}

// splitQuery parses "<from> to <to> [datetime]". The optional datetime
// starts at the first YYYY-MM-DD token.
func splitQuery(query string) (fromPlace, toPlace, timeStr string, err error) {
	lower := strings.ToLower(query)
	idx := strings.Index(lower, " to ")
	if strings.TrimSpace(query) == "" || idx < 0 {
		return "", "", "", apperrors.NewValidationError("query", query, "use '<from> to <to> [optional datetime]'")
	}

	fromPlace = strings.TrimSpace(query[:idx])
	rest := strings.TrimSpace(query[idx+len(" to "):])

	tokens := strings.Fields(rest)
	for i, tok := range tokens {
		if datePrefix.MatchString(tok) {
			toPlace = strings.Join(tokens[:i], " ")
			timeStr = strings.Join(tokens[i:], " ")
			break
		}
	}
	if toPlace == "" {
		toPlace = rest
	}

	if fromPlace == "" || strings.TrimSpace(toPlace) == "" {
		return "", "", "", apperrors.NewValidationError("query", query, "both places are required")
	}
	return fromPlace, toPlace, timeStr, nil
}
