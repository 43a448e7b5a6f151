package weather

import "context"

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// CheckRainMCP is the MCP wrapper for the rain status check
func (c *Client) CheckRainMCP(ctx context.Context, args CheckRainArgs) (CheckRainResult, error) {
	report, err := c.CurrentReport(ctx, args.City)
	if err != nil {
		return CheckRainResult{}, err
	}

	return CheckRainResult{
		City:          report.Location.Name,
		Country:       report.Location.Country,
		LocalTime:     report.LocalTime,
		Raining:       report.Raining,
		Condition:     report.Condition,
		Precipitation: report.Precipitation,
		Temperature:   report.Temperature,
	}, nil
}
