package timezone

// ConvertTimeArgs contains parameters for timezone conversion
type ConvertTimeArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Conversion query, e.g. 'chennai to new york' or 'tokyo to london 2025-05-01 12:30'"`
}

// ConvertTimeResult is the result of a timezone conversion
type ConvertTimeResult struct {
	FromPlace string `json:"from_place"`
	ToPlace   string `json:"to_place"`
	FromZone  string `json:"from_zone"`
	ToZone    string `json:"to_zone"`
	FromTime  string `json:"from_time"`
	ToTime    string `json:"to_time"`
}
