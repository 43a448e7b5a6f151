package news

// FetchNewsArgs contains parameters for a news lookup
type FetchNewsArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"News topic or free-form query, e.g. 'sports news' or 'finance news today'"`
}

// FetchNewsResult is the result of a news lookup
type FetchNewsResult struct {
	Topic    string    `json:"topic"`
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
	Rendered string    `json:"rendered"`
	Message  string    `json:"message,omitempty"`
}
