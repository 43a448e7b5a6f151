// Package almanac parses free-form calendar queries ("q2 2024", "next
// month and july 2044") into (month, year) pairs and renders 6x7 display
// grids for them. Parsing is pure and never fails; unrecognized input
// resolves to an empty pair set.
package almanac

import (
	"strings"
	"time"
)

// Engine resolves calendar queries. The clock is injectable so relative
// expressions ("next month", "this year") are testable.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a fixed clock source.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

var monthLookup = buildMonthLookup()

func buildMonthLookup() map[string]int {
	m := make(map[string]int, 24)
	for i := 1; i <= 12; i++ {
		name := strings.ToLower(time.Month(i).String())
		m[name] = i
		m[name[:3]] = i
	}
	return m
}

// monthName returns the capitalized English month name for 1-12.
func monthName(m int) string {
	return time.Month(m).String()
}

func lowerMonthName(m int) string {
	return strings.ToLower(time.Month(m).String())
}
