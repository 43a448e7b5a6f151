package websearch

import (
	"context"
	"fmt"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchMCP is the MCP wrapper for web searches
func (c *Client) SearchMCP(ctx context.Context, args SearchArgs) (SearchResult, error) {
	search, err := c.Search(ctx, args.Query)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Query:    search.Query,
		Answer:   search.Answer,
		Abstract: search.Abstract,
		Count:    len(search.Results),
		Results:  search.Results,
	}
	if result.Count == 0 && result.Answer == "" && result.Abstract == "" {
		result.Message = fmt.Sprintf("No results found for %q. Try rephrasing the query.", search.Query)
	}
	return result, nil
}
