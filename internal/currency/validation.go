package currency

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// queryRegex matches "<amount> <code> [to|in|->] <code>" with optional
// thousands commas, e.g. "2,000 INR to USD", "100aed eur".
var queryRegex = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*([a-zA-Z]{3,4})\s*(?:to|in|->)?\s*([a-zA-Z]{3,4})`)

// ParseQuery extracts amount, source, and target codes from a free-form
// conversion query.
func ParseQuery(query string) (float64, string, string, error) {
	match := queryRegex.FindStringSubmatch(strings.ToLower(query))
	if match == nil {
		return 0, "", "", apperrors.NewValidationError("query", query, "expected format like '100 USD to INR'")
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, "", "", apperrors.NewValidationError("query", match[1], "invalid number")
	}

	return amount, match[2], match[3], nil
}
