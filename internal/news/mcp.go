package news

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// FetchNewsMCP is the MCP wrapper for news lookups
func (c *Client) FetchNewsMCP(ctx context.Context, args FetchNewsArgs) (FetchNewsResult, error) {
	if strings.TrimSpace(args.Query) == "" {
		return FetchNewsResult{}, apperrors.NewValidationError("query", args.Query, "cannot be empty")
	}

	topic, _ := ResolveTopic(args.Query)
	if topic == "" {
		return FetchNewsResult{}, apperrors.NewValidationError("query", args.Query,
			"provide a news topic, e.g. 'sports news' or 'finance news'")
	}

	articles, err := c.FetchNews(ctx, topic)
	if err != nil {
		return FetchNewsResult{}, err
	}

	result := FetchNewsResult{
		Topic:    topic,
		Count:    len(articles),
		Articles: articles,
	}
	if len(articles) == 0 {
		result.Message = fmt.Sprintf("No news articles found for %q. Try a different topic.", topic)
		return result, nil
	}

	result.Rendered = renderArticles(articles, topic)
	return result, nil
}

func renderArticles(articles []Article, topic string) string {
	shown := len(articles)
	if shown > DisplayLimit {
		shown = DisplayLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %q | Total Articles: %d | Showing Top %d\n", topic, len(articles), shown)
	b.WriteString(strings.Repeat("=", 80))
	for i := 0; i < shown; i++ {
		a := articles[i]
		fmt.Fprintf(&b, "\n\n[Article #%d]\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "URL: %s\n", a.URL)
		fmt.Fprintf(&b, "Source: %s\n", a.Source)
		b.WriteString(strings.Repeat("-", 80))
	}
	return b.String()
}
