package almanac

import "sort"

// Resolve parses a raw query into a deduplicated, sorted set of
// (month, year) pairs. It runs two phases over the token stream: a
// greedy left-to-right "magnet" pass that binds adjacent month/year
// tokens, then a "bucket" pass that cross-products whatever is left.
func (e *Engine) Resolve(text string) []MonthYear {
	tokens := Tokenize(e.Normalize(text))

	used := make([]bool, len(tokens))
	pairs := make(map[MonthYear]struct{})

	bind := func(month, year int, indices ...int) {
		pairs[MonthYear{Month: month, Year: year}] = struct{}{}
		for _, idx := range indices {
			used[idx] = true
		}
	}

	// A year at i+1 blocks pairing when it is itself followed by a
	// non-month token: a run of bare years should fall through to the
	// bucket phase instead of being claimed by the first month.
	blocking := func(i int) bool {
		if i+2 >= len(tokens) {
			return false
		}
		return tokens[i+1].Type == TokenYear && !isMonthToken(tokens[i+2])
	}

	// Magnet phase: strict adjacent pairs, lowest index wins.
	for i := 0; i < len(tokens); i++ {
		if used[i] || i+1 >= len(tokens) {
			continue
		}
		curr, next := tokens[i], tokens[i+1]

		switch {
		// [Month] [Year], e.g. "march 2024", "03 2024".
		case isMonthToken(curr) && next.Type == TokenYear:
			// A month preceded by another month is part of a list
			// ("jan feb mar 2024"); leave the whole run for the
			// bucket phase so every month gets the year.
			prevIsMonth := i > 0 && isMonthToken(tokens[i-1])
			if !blocking(i) && !prevIsMonth {
				bind(curr.Val, next.Val, i, i+1)
			}

		// [Year] [Month], e.g. "2024 march", "2024 03".
		case curr.Type == TokenYear && isMonthToken(next):
			prevIsYear := i > 0 && tokens[i-1].Type == TokenYear
			if !prevIsYear {
				bind(next.Val, curr.Val, i, i+1)
			}

		// [Month] [Connector] [Year], e.g. "march of 2024".
		case isMonthToken(curr) && next.Type == TokenConnector && i+2 < len(tokens) && tokens[i+2].Type == TokenYear:
			if !blocking(i + 1) {
				bind(curr.Val, tokens[i+2].Val, i, i+1, i+2)
			}
		}
	}

	// Bucket phase: leftovers cross-product, months without any year
	// default to the current year, bare years produce nothing.
	var months, years []int
	for i, t := range tokens {
		if used[i] {
			continue
		}
		switch {
		case isMonthToken(t):
			months = append(months, t.Val)
		case t.Type == TokenYear:
			years = append(years, t.Val)
		}
	}

	if len(months) > 0 {
		if len(years) > 0 {
			for _, m := range months {
				for _, y := range years {
					pairs[MonthYear{Month: m, Year: y}] = struct{}{}
				}
			}
		} else {
			curYear := e.now().Year()
			for _, m := range months {
				pairs[MonthYear{Month: m, Year: curYear}] = struct{}{}
			}
		}
	}

	out := make([]MonthYear, 0, len(pairs))
	for p := range pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Month != out[b].Month {
			return out[a].Month < out[b].Month
		}
		return out[a].Year < out[b].Year
	})
	return out
}

func isMonthToken(t Token) bool {
	return t.Type == TokenNamedMonth || t.Type == TokenNumericMonth
}
