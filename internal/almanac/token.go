package almanac

import (
	"strconv"
	"strings"
)

// Connector words may sit between a month and a year without breaking
// the pairing.
var connectors = map[string]bool{
	"of": true, "in": true, "at": true, "on": true, "for": true, "and": true,
}

// Tokenize classifies each whitespace-delimited word of a normalized
// query. Order is significant for the pairing phase.
func Tokenize(text string) []Token {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]Token, 0, len(words))

	for _, word := range words {
		switch {
		case isDigits(word) && len(word) == 4:
			val, _ := strconv.Atoi(word)
			tokens = append(tokens, Token{Type: TokenYear, Val: val})
		case isDigits(word) && len(word) <= 2:
			val, _ := strconv.Atoi(word)
			if val >= 1 && val <= 12 {
				tokens = append(tokens, Token{Type: TokenNumericMonth, Val: val})
			} else {
				tokens = append(tokens, Token{Type: TokenNoise})
			}
		case connectors[word]:
			tokens = append(tokens, Token{Type: TokenConnector})
		default:
			if m, ok := monthLookup[word]; ok {
				tokens = append(tokens, Token{Type: TokenNamedMonth, Val: m})
			} else {
				tokens = append(tokens, Token{Type: TokenNoise})
			}
		}
	}

	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
