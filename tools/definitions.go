package tools

// AllTools contains all tool specifications for the deskfit MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// CALENDAR
	// ==========================================================================
	{
		Name:     "generate_calendar",
		Method:   "GenerateCalendar",
		Title:    "Generate Calendar",
		Category: "calendar",
		Description: `Render month calendars for any dates mentioned in free text.

USE WHEN: User asks "show me March 2024", "calendar for q2 2025", "next month", "summer 2026", or any phrase naming months, years, quarters, or seasons.

NOT FOR: Converting times between places (use timezone_convert). Not for weather on a date.

PARAMETERS:
- query: Free text naming the dates (required)

RETURNS: One 6x7 month grid per detected month/year pair, Sunday-first, adjacent-month days in parentheses.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// LOOKUPS
	// ==========================================================================
	{
		Name:     "weather_check_rain",
		Method:   "CheckRain",
		Title:    "Check Rain",
		Category: "lookup",
		Description: `Current weather and rain status for a city.

USE WHEN: User asks "is it raining in london", "weather in tokyo", "temperature in chennai right now".

NOT FOR: Local time in a city (use timezone_convert). Not for forecasts beyond current conditions.

PARAMETERS:
- city: City name (required)

RETURNS: Location, local time, raining yes/no, condition description, precipitation mm, temperature in Celsius.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "dictionary_lookup",
		Method:   "LookupWord",
		Title:    "Look Up Word",
		Category: "lookup",
		Description: `English dictionary definition of a single word.

USE WHEN: User asks "define serendipity", "what does ephemeral mean", "meaning of X".

NOT FOR: Translating words to other languages (use translate_text). Not for general knowledge questions (use web_search).

PARAMETERS:
- word: The word to define (required)

RETURNS: Phonetic spelling and definitions grouped by part of speech, with example sentences where available.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fetch_news",
		Method:   "FetchNews",
		Title:    "Fetch News",
		Category: "lookup",
		Description: `Latest news headlines for a topic.

USE WHEN: User asks "sports news", "today's tech news", "what's happening in finance".

NOT FOR: General web questions (use web_search). Not for historical articles.

PARAMETERS:
- query: Topic or free-form news query (required). Known topics: sports, technology, cinema, finance, business, politics, health, entertainment, world, india.

RETURNS: Ranked headlines with URLs, top five rendered as text.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "web_search",
		Method:   "Search",
		Title:    "Web Search",
		Category: "lookup",
		Description: `Instant-answer web search.

USE WHEN: User asks a general knowledge question, "search for X", "who is X", "what is X".

NOT FOR: News headlines (use fetch_news). Not for word definitions (use dictionary_lookup).

PARAMETERS:
- query: Search query (required)

RETURNS: Direct answer and abstract when available, plus up to 10 ranked titled links.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "geo_locate",
		Method:   "Locate",
		Title:    "Locate Place",
		Category: "lookup",
		Description: `Resolve a place name to its address, coordinates, and the most notable landmark nearby.

USE WHEN: User asks "where is X", "address of X", "landmarks near X".

NOT FOR: Distance or travel time between two places (use geo_route).

PARAMETERS:
- place: Place name (required)
- radius_km: Landmark search radius, default 10

RETURNS: Resolved address with coordinates and the best-known nearby landmark with its distance.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// CONVERSIONS
	// ==========================================================================
	{
		Name:     "currency_convert",
		Method:   "ConvertCurrency",
		Title:    "Convert Currency",
		Category: "convert",
		Description: `Convert an amount between currencies at the current rate.

USE WHEN: User asks "100 usd to inr", "how much is 2,000 euros in yen", "convert 50 gbp to btc".

NOT FOR: Arithmetic without currencies (use calculate).

PARAMETERS:
- query: Conversion text like "2,000 INR to USD" (required)

RETURNS: Converted amount with currency symbol and the unit exchange rate.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "timezone_convert",
		Method:   "ConvertTime",
		Title:    "Convert Time",
		Category: "convert",
		Description: `Convert a time between two places or show the current time elsewhere.

USE WHEN: User asks "time in tokyo", "chennai to new york", "tokyo to london 2025-05-01 12:30".

NOT FOR: Rendering calendars (use generate_calendar). Not for weather.

PARAMETERS:
- query: "<from> to <to> [YYYY-MM-DD HH:MM]" (required); omitting the datetime uses the current time

RETURNS: Both zone names and the formatted time in each zone.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "translate_text",
		Method:   "TranslateText",
		Title:    "Translate Text",
		Category: "convert",
		Description: `Translate English text into another language.

USE WHEN: User asks "hello in french", "translate good morning to japanese", "how do I say thanks in tamil".

NOT FOR: English definitions (use dictionary_lookup).

PARAMETERS:
- query: "<text> in|to|into <language>" (required)

RETURNS: Translated text with the resolved target language.`,
		ReadOnly:  true,
		OpenWorld: true,
	},
	{
		Name:     "image_convert",
		Method:   "ConvertImage",
		Title:    "Convert Image",
		Category: "convert",
		Description: `Convert an uploaded image to another raster format.

USE WHEN: User uploads an image and says "to jpg", "convert to png", "make this a tiff".

NOT FOR: Generating images (use qr_generate for QR codes).

PARAMETERS:
- base64_data: Base64-encoded source image (required), PNG/JPEG/GIF/BMP/TIFF/WebP
- format: Target format as free text (required)

RETURNS: Converted image as base64 with before/after formats, pixel size, and byte sizes.`,
		Idempotent: true,
	},

	// ==========================================================================
	// COMPUTE & GENERATE
	// ==========================================================================
	{
		Name:     "calculate",
		Method:   "Calculate",
		Title:    "Calculate",
		Category: "compute",
		Description: `Evaluate a mathematical expression.

USE WHEN: User asks "2^10", "sqrt(144) + 5", "mean(4, 8, 15)", or any arithmetic.

NOT FOR: Currency conversion (use currency_convert).

PARAMETERS:
- expression: Math expression (required). Functions: sqrt, abs, trig, log/ln/log10, exp, sum/min/max, mean/median/variance/stdev.

RETURNS: Formatted result; integers grouped with commas, tiny/huge magnitudes in scientific notation.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "qr_generate",
		Method:   "GenerateQR",
		Title:    "Generate QR Code",
		Category: "compute",
		Description: `Generate a QR code image from text or a URL.

USE WHEN: User asks "qr code for https://example.com", "make a QR for my wifi password".

NOT FOR: Converting existing images (use image_convert).

PARAMETERS:
- text: Text or URL to encode (required)

RETURNS: PNG image as base64 with mime type, ready for inline display.`,
		Idempotent: true,
	},
	{
		Name:     "geo_route",
		Method:   "Route",
		Title:    "Find Route",
		Category: "compute",
		Description: `Distance, travel time, and route between two places.

USE WHEN: User asks "chennai to bangalore", "how far is paris from london", "route from X to Y".

NOT FOR: Locating a single place (use geo_locate). Not for timezone conversion (use timezone_convert).

PARAMETERS:
- query: "<start> to <end>" (required)

RETURNS: Distance in km, estimated hours, towns along the way, and travel-mode suggestions (road, rail, air, sea).`,
		ReadOnly:  true,
		OpenWorld: true,
	},
}
