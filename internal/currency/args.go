package currency

// ConvertCurrencyArgs contains parameters for currency conversion
type ConvertCurrencyArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Conversion query, e.g. '2,000 INR to USD' or '100 aed in eur'"`
}

// ConvertCurrencyResult is the result of a currency conversion
type ConvertCurrencyResult struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	Formatted string  `json:"formatted"`
}
