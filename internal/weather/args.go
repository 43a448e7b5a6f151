package weather

// CheckRainArgs contains parameters for a rain status check
type CheckRainArgs struct {
	City string `json:"city" jsonschema:"required" jsonschema_description:"City name, e.g. 'London' or 'Tiruchirappalli'"`
}

// CheckRainResult is the result of a rain status check
type CheckRainResult struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	LocalTime     string  `json:"local_time"`
	Raining       bool    `json:"raining"`
	Condition     string  `json:"condition"`
	Precipitation float64 `json:"precipitation_mm"`
	Temperature   float64 `json:"temperature_c"`
}
