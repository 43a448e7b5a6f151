package translate

import (
	"context"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// TranslateTextMCP is the MCP wrapper for translation
func (c *Client) TranslateTextMCP(ctx context.Context, args TranslateTextArgs) (TranslateTextResult, error) {
	text, language, err := ParseQuery(args.Query)
	if err != nil {
		return TranslateTextResult{}, err
	}

	code := ResolveLanguage(language)
	if code == "" {
		return TranslateTextResult{}, apperrors.NewNotFoundError("translate", "language", language)
	}

	output, err := c.Translate(ctx, text, code)
	if err != nil {
		return TranslateTextResult{}, err
	}

	return TranslateTextResult{
		Input:      text,
		Output:     output,
		TargetName: titleCase(language),
		TargetCode: code,
	}, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
