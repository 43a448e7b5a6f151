package calculator

// CalculateArgs contains parameters for expression evaluation
type CalculateArgs struct {
	Expression string `json:"expression" jsonschema:"required" jsonschema_description:"Mathematical expression, e.g. '2^10', '1,000 * 3', 'mean(1, 2, 3)'"`
}

// CalculateResult is the result of expression evaluation
type CalculateResult struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
	Formatted  string  `json:"formatted"`
}
