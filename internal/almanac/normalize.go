package almanac

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	quarterRe      = regexp.MustCompile(`\bq([1-4])\s*(\d{4})?`)
	lastQuarterRe  = regexp.MustCompile(`\blast quarter\s*(\d{4})?`)
	ordinalMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\s+month`)
	separatorRe    = regexp.MustCompile(`[/\-._]`)
	letterDigitRe  = regexp.MustCompile(`([a-z])(\d)`)
	digitLetterRe  = regexp.MustCompile(`(\d)([a-z])`)
	punctuationRe  = regexp.MustCompile(`[^a-z0-9\s]`)
)

var quarterMonths = map[int]string{
	1: "january february march",
	2: "april may june",
	3: "july august september",
	4: "october november december",
}

// Spelled-out year phrases, longest first so "twenty twenty four" is not
// eaten by the "twenty twenty" rewrite.
var spelledYears = []struct {
	phrase string
	year   string
}{
	{"twenty twenty four", "2024"},
	{"twenty thirteen", "2013"},
	{"twenty twenty", "2020"},
}

// Normalize rewrites a free-form query into a cleaned, lowercase,
// space-separated string ready for tokenization. It never fails.
func (e *Engine) Normalize(text string) string {
	clean := e.resolveRelative(text)

	// Path-like separators become spaces (2024/01, 2024-01, 2024.01).
	clean = separatorRe.ReplaceAllString(clean, " ")

	// Split sticky strings: jan2024 -> jan 2024, 2024jan -> 2024 jan.
	clean = letterDigitRe.ReplaceAllString(clean, "$1 $2")
	clean = digitLetterRe.ReplaceAllString(clean, "$1 $2")

	// Drop remaining punctuation.
	clean = punctuationRe.ReplaceAllString(clean, " ")

	for _, sy := range spelledYears {
		clean = strings.ReplaceAll(clean, sy.phrase, sy.year)
	}

	return clean
}

// resolveRelative replaces seasons, quarters, and relative expressions
// with concrete month-name/year text computed against the engine clock.
func (e *Engine) resolveRelative(text string) string {
	today := e.now()
	text = strings.ToLower(text)

	text = quarterRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := quarterRe.FindStringSubmatch(match)
		q, _ := strconv.Atoi(sub[1])
		year := sub[2]
		if year == "" {
			year = strconv.Itoa(today.Year())
		}
		return quarterMonths[q] + " " + year
	})
	text = lastQuarterRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := lastQuarterRe.FindStringSubmatch(match)
		year := sub[1]
		if year == "" {
			year = strconv.Itoa(today.Year())
		}
		return "october november december " + year
	})

	text = ordinalMonthRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := ordinalMonthRe.FindStringSubmatch(match)
		num, _ := strconv.Atoi(sub[1])
		if num >= 1 && num <= 12 {
			return lowerMonthName(num) + " "
		}
		return match
	})

	// Seasons map to their three constituent months.
	text = strings.ReplaceAll(text, "summer", "june july august")
	text = strings.ReplaceAll(text, "winter", "december january february")
	text = strings.ReplaceAll(text, "spring", "march april may")
	text = strings.ReplaceAll(text, "autumn", "september october november")
	text = strings.ReplaceAll(text, "fall", "september october november")

	if strings.Contains(text, "month after next") {
		m, y := shiftMonth(int(today.Month()), today.Year(), 2)
		text = strings.ReplaceAll(text, "month after next", monthYearText(m, y))
	}
	if strings.Contains(text, "year after next") {
		text = strings.ReplaceAll(text, "year after next", strconv.Itoa(today.Year()+2))
	}

	text = strings.ReplaceAll(text, "next year", strconv.Itoa(today.Year()+1))
	text = strings.ReplaceAll(text, "last year", strconv.Itoa(today.Year()-1))
	text = strings.ReplaceAll(text, "this year", strconv.Itoa(today.Year()))

	if strings.Contains(text, "next month") {
		m, y := shiftMonth(int(today.Month()), today.Year(), 1)
		text = strings.ReplaceAll(text, "next month", monthYearText(m, y))
	}
	if strings.Contains(text, "last month") || strings.Contains(text, "previous month") {
		m, y := shiftMonth(int(today.Month()), today.Year(), -1)
		text = strings.ReplaceAll(text, "last month", monthYearText(m, y))
		text = strings.ReplaceAll(text, "previous month", monthYearText(m, y))
	}

	if strings.Contains(text, "tomorrow") {
		d := today.AddDate(0, 0, 1)
		text = strings.ReplaceAll(text, "tomorrow", monthYearText(int(d.Month()), d.Year()))
	}
	if strings.Contains(text, "today") || strings.Contains(text, "now") {
		cur := monthYearText(int(today.Month()), today.Year())
		text = strings.ReplaceAll(text, "today", cur)
		text = strings.ReplaceAll(text, "now", cur)
	}

	return text
}

func shiftMonth(month, year, delta int) (int, int) {
	month += delta
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return month, year
}

func monthYearText(month, year int) string {
	return fmt.Sprintf("%s %d", lowerMonthName(month), year)
}
