package almanac

// GenerateCalendarArgs contains parameters for calendar generation
type GenerateCalendarArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Free-form date query, e.g. 'march 2024', 'q2 2024', 'next month and july 2044'"`
}

// GenerateCalendarResult is the result of calendar generation
type GenerateCalendarResult struct {
	Query     string          `json:"query"`
	Count     int             `json:"count"`
	Calendars []CalendarBlock `json:"calendars,omitempty"`
	Rendered  string          `json:"rendered,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// CalendarBlock is one resolved month with its rendered grid
type CalendarBlock struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	MonthName string `json:"month_name"`
	Text      string `json:"text"`
}
