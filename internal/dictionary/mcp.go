package dictionary

import "context"

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// LookupWordMCP is the MCP wrapper for dictionary lookup
func (c *Client) LookupWordMCP(ctx context.Context, args LookupWordArgs) (LookupWordResult, error) {
	entry, err := c.Lookup(ctx, args.Word)
	if err != nil {
		return LookupWordResult{}, err
	}

	return LookupWordResult{
		Word:     entry.Word,
		Phonetic: entry.Phonetic,
		Meanings: entry.Meanings,
	}, nil
}
