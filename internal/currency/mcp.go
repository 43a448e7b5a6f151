package currency

import (
	"context"
	"fmt"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// ConvertCurrencyMCP is the MCP wrapper for currency conversion
func (c *Client) ConvertCurrencyMCP(ctx context.Context, args ConvertCurrencyArgs) (ConvertCurrencyResult, error) {
	amount, from, to, err := ParseQuery(args.Query)
	if err != nil {
		return ConvertCurrencyResult{}, err
	}

	conv, err := c.Convert(ctx, amount, from, to)
	if err != nil {
		return ConvertCurrencyResult{}, err
	}

	formatted := fmt.Sprintf("%.2f %s = %s%.2f %s (1 %s = %.5f %s)",
		conv.Amount, conv.From, conv.Symbol, conv.Converted, conv.To,
		conv.From, conv.Rate, conv.To)

	return ConvertCurrencyResult{
		Amount:    conv.Amount,
		From:      conv.From,
		To:        conv.To,
		Rate:      conv.Rate,
		Converted: conv.Converted,
		Formatted: formatted,
	}, nil
}
