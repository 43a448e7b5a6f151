package websearch

// SearchArgs contains parameters for a web search
type SearchArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Search query, e.g. 'golang' or 'population of france'"`
}

// SearchResult is the result of a web search
type SearchResult struct {
	Query    string   `json:"query"`
	Answer   string   `json:"answer,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Count    int      `json:"count"`
	Results  []Result `json:"results"`
	Message  string   `json:"message,omitempty"`
}
