package calculator

import "context"

// MCP Tool wrapper methods
// These methods wrap the evaluator with Args/Result types for MCP integration.

// CalculateMCP is the MCP wrapper for expression evaluation
func (e *Evaluator) CalculateMCP(ctx context.Context, args CalculateArgs) (CalculateResult, error) {
	value, err := e.Evaluate(args.Expression)
	if err != nil {
		return CalculateResult{}, err
	}

	return CalculateResult{
		Expression: args.Expression,
		Value:      value,
		Formatted:  FormatResult(value),
	}, nil
}
