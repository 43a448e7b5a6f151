package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultKeywords maps command phrases (lowercased, concatenated) to tool
// names. "geo code chennai" and "geocode chennai" both resolve to geo_locate.
var defaultKeywords = map[string]string{
	"weather":      "weather_check_rain",
	"rain":         "weather_check_rain",
	"currency":     "currency_convert",
	"calculate":    "calculate",
	"calc":         "calculate",
	"translate":    "translate_text",
	"qr":           "qr_generate",
	"qrcode":       "qr_generate",
	"calendar":     "generate_calendar",
	"search":       "web_search",
	"news":         "fetch_news",
	"dictionary":   "dictionary_lookup",
	"define":       "dictionary_lookup",
	"imageconvert": "image_convert",
	"geocode":      "geo_locate",
	"locate":       "geo_locate",
	"route":        "geo_route",
	"distance":     "geo_route",
	"timezone":     "timezone_convert",
	"time":         "timezone_convert",
}

// loadKeywords returns the default keyword map, optionally merged with
// overrides from a YAML file of the form `keyword: tool_name`.
func loadKeywords(path string) (map[string]string, error) {
	keywords := make(map[string]string, len(defaultKeywords))
	for k, v := range defaultKeywords {
		keywords[k] = v
	}
	if path == "" {
		return keywords, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword map: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing keyword map: %w", err)
	}
	for k, v := range overrides {
		keywords[strings.ToLower(strings.ReplaceAll(k, " ", ""))] = v
	}
	return keywords, nil
}

// ParseCommand splits a free-text command into a tool name and its argument.
// The first one to three words, lowercased and concatenated, are matched
// against the keyword map longest-phrase-first; the rest of the line keeps
// its original casing and becomes the tool argument.
func ParseCommand(query string, keywords map[string]string) (tool, arg string, ok bool) {
	words := strings.Fields(strings.TrimSpace(query))
	if len(words) == 0 {
		return "", "", false
	}

	lwords := make([]string, len(words))
	for i, w := range words {
		lwords[i] = strings.ToLower(w)
	}

	for n := min(3, len(lwords)); n > 0; n-- {
		key := strings.Join(lwords[:n], "")
		if tool, found := keywords[key]; found {
			return tool, strings.TrimSpace(strings.Join(words[n:], " ")), true
		}
	}
	return "", "", false
}
