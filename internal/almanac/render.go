package almanac

import (
	"fmt"
	"strings"
)

const (
	headerDivider = "--------------------------------"
	weekdayHeader = " Su   Mo   Tu   We   Th   Fr   Sa"
)

// RenderGrid renders one month block: header line, weekday row, and six
// grid rows. In-month days are plain, adjacent-month days parenthesized.
func RenderGrid(pair MonthYear, grid Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s %d**\n", monthName(pair.Month), pair.Year)
	b.WriteString(weekdayHeader)
	b.WriteByte('\n')

	for _, row := range grid {
		cells := make([]string, GridCols)
		for i, cell := range row {
			if cell.Adjacent {
				cells[i] = fmt.Sprintf("(%d)", cell.Day)
			} else {
				cells[i] = fmt.Sprintf(" %-2d", cell.Day)
			}
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render resolves a query and renders every matched month, or a
// "no dates found" message when nothing matched.
func (e *Engine) Render(query string) string {
	pairs := e.Resolve(query)
	if len(pairs) == 0 {
		return fmt.Sprintf("No dates found in: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Calendars for %q (%d)\n", query, len(pairs))
	b.WriteString(headerDivider)
	b.WriteByte('\n')

	for _, pair := range pairs {
		b.WriteByte('\n')
		b.WriteString(RenderGrid(pair, BuildGrid(pair.Year, pair.Month)))
	}
	return b.String()
}
