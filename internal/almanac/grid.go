package almanac

import "time"

// BuildGrid produces the 6x7 display grid for a month, week start
// Sunday. Leading cells come from the previous month and trailing cells
// from the next, both flagged adjacent. The year is clamped to [1, 9999].
func BuildGrid(year, month int) Grid {
	if year < 1 {
		year = 1
	}
	if year > 9999 {
		year = 9999
	}

	var flat []Cell

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday()) // Sunday == 0

	if lead > 0 {
		prevMonth, prevYear := month-1, year
		if prevMonth == 0 {
			prevMonth, prevYear = 12, year-1
		}
		daysPrev := daysInMonth(prevYear, prevMonth)
		for d := daysPrev - lead + 1; d <= daysPrev; d++ {
			flat = append(flat, Cell{Day: d, Adjacent: true})
		}
	}

	for d := 1; d <= daysInMonth(year, month); d++ {
		flat = append(flat, Cell{Day: d})
	}

	for d := 1; len(flat) < GridRows*GridCols; d++ {
		flat = append(flat, Cell{Day: d, Adjacent: true})
	}

	var grid Grid
	for i, cell := range flat {
		grid[i/GridCols][i%GridCols] = cell
	}
	return grid
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
