package translate

import "strings"

// languageCodes maps common language names to ISO codes for the
// MyMemory langpair parameter.
var languageCodes = map[string]string{
	"arabic":     "ar",
	"bangla":     "bn",
	"bengali":    "bn",
	"chinese":    "zh-CN",
	"mandarin":   "zh-CN",
	"czech":      "cs",
	"danish":     "da",
	"dutch":      "nl",
	"english":    "en",
	"filipino":   "tl",
	"finnish":    "fi",
	"french":     "fr",
	"german":     "de",
	"greek":      "el",
	"hebrew":     "he",
	"hindi":      "hi",
	"hungarian":  "hu",
	"indonesian": "id",
	"italian":    "it",
	"japanese":   "ja",
	"kannada":    "kn",
	"korean":     "ko",
	"malay":      "ms",
	"marathi":    "mr",
	"norwegian":  "no",
	"persian":    "fa",
	"polish":     "pl",
	"portuguese": "pt",
	"romanian":   "ro",
	"russian":    "ru",
	"spanish":    "es",
	"swahili":    "sw",
	"swedish":    "sv",
	"tamil":      "ta",
	"telugu":     "te",
	"thai":       "th",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"urdu":       "ur",
	"vietnamese": "vi",
}

var knownCodes = buildKnownCodes()

func buildKnownCodes() map[string]bool {
	m := make(map[string]bool, len(languageCodes))
	for _, code := range languageCodes {
		m[strings.ToLower(code)] = true
	}
	return m
}

// ResolveLanguage maps user input ("French", "fr") to an ISO code.
// Returns empty when the language is not recognized.
func ResolveLanguage(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if code, ok := languageCodes[input]; ok {
		return code
	}
	if knownCodes[input] {
		if input == "zh-cn" {
			return "zh-CN"
		}
		return input
	}
	return ""
}
