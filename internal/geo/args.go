package geo

// LocateArgs contains parameters for a place lookup
type LocateArgs struct {
	Place    string  `json:"place" jsonschema:"required" jsonschema_description:"Place name to locate, e.g. 'Chennai' or 'Eiffel Tower'"`
	RadiusKm float64 `json:"radius_km,omitempty" jsonschema_description:"Landmark search radius in kilometers, default 10"`
}

// LocateResult is the result of a place lookup
type LocateResult struct {
	Place    *Place    `json:"place"`
	Landmark *Landmark `json:"landmark,omitempty"`
}

// RouteArgs contains parameters for a route lookup
type RouteArgs struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"Route query in the form '<start> to <end>', e.g. 'Chennai to Trichy'"`
}

// TravelMode is one suggested way to cover the route
type TravelMode struct {
	Mode  string  `json:"mode"`
	Hours float64 `json:"hours"`
	Cost  string  `json:"cost_estimate"`
}

// RouteResult is the result of a route lookup
type RouteResult struct {
	Start      string       `json:"start"`
	End        string       `json:"end"`
	DistanceKm float64      `json:"distance_km"`
	Hours      float64      `json:"hours"`
	Via        string       `json:"via"`
	RouteType  string       `json:"route_type"`
	Modes      []TravelMode `json:"travel_modes"`
	Suggestion string       `json:"suggestion"`
}
