// Command benchmark measures calendar query parsing and rendering over a
// corpus of realistic free-text queries.
//
// Usage:
//
//	go run ./cmd/benchmark -iterations 100
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/deskfit/deskfit-mcp-server/internal/almanac"
)

// corpus covers the query shapes users actually type: bare months,
// quarters, seasons, ranges, relative dates, and noise.
var corpus = []string{
	"march 2024",
	"show me january 2025",
	"calendar for december",
	"q1 2025",
	"q2 2025",
	"second quarter of 2026",
	"summer 2024",
	"winter 2025",
	"spring next year",
	"next month",
	"last month",
	"this month",
	"jan feb mar 2025",
	"march to june 2024",
	"between april and july 2025",
	"march, april and may of 2024",
	"twenty twenty five",
	"march twenty twenty four",
	"2025",
	"whole of 2024",
	"mar 24",
	"03/2025",
	"plan a trip for august 2026",
	"what does october look like",
	"no dates here at all",
}

func main() {
	iterations := flag.Int("iterations", 100, "Passes over the corpus")
	verbose := flag.Bool("verbose", false, "Print per-query detail")
	flag.Parse()

	engine := almanac.NewEngine()

	fmt.Printf("Calendar benchmark: %d queries x %d iterations\n\n", len(corpus), *iterations)

	// Warm-up pass that also reports what each query resolves to.
	totalPairs := 0
	for _, query := range corpus {
		pairs := engine.Resolve(query)
		totalPairs += len(pairs)
		if *verbose {
			fmt.Printf("  %-40q -> %d month(s)\n", query, len(pairs))
		}
	}
	fmt.Printf("Corpus resolves to %d month grids total\n\n", totalPairs)

	benchResolve(engine, *iterations)
	benchRender(engine, *iterations)
}

func benchResolve(engine *almanac.Engine, iterations int) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		for _, query := range corpus {
			engine.Resolve(query)
		}
	}
	report("resolve", iterations, time.Since(start))
}

func benchRender(engine *almanac.Engine, iterations int) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		for _, query := range corpus {
			engine.Render(query)
		}
	}
	report("full render", iterations, time.Since(start))
}

func report(name string, iterations int, elapsed time.Duration) {
	calls := iterations * len(corpus)
	fmt.Printf("%-20s: %v total, %v/query (%d calls)\n",
		name, elapsed.Round(time.Millisecond), (elapsed / time.Duration(calls)).Round(time.Microsecond), calls)
}
