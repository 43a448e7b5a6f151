// Command evals loads the tool selection evaluation suites and reports
// on coverage and expected behavior patterns.
//
// Usage:
//
//	go run ./cmd/evals -dir ./evals -suite all
//
// For actual LLM evaluation, implement evals.ToolSelector against your
// harness and feed it to the Evaluate* functions.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/deskfit/deskfit-mcp-server/evals"
)

func main() {
	dir := flag.String("dir", "./evals", "Directory containing eval JSON files")
	suite := flag.String("suite", "all", "Suite to load: tool_selection, confusion_pairs, arguments, or all")
	verbose := flag.Bool("verbose", false, "Show detailed test information")
	flag.Parse()

	fmt.Println("deskfit MCP Server - Evaluation Framework")
	fmt.Println("=========================================")
	fmt.Println()

	switch *suite {
	case "tool_selection":
		loadToolSelection(*dir, *verbose)
	case "confusion_pairs":
		loadConfusionPairs(*dir, *verbose)
	case "arguments":
		loadArguments(*dir, *verbose)
	case "all":
		loadToolSelection(*dir, *verbose)
		loadConfusionPairs(*dir, *verbose)
		loadArguments(*dir, *verbose)
	default:
		fmt.Fprintf(os.Stderr, "Unknown suite: %s\n", *suite)
		os.Exit(1)
	}
}

func loadToolSelection(dir string, verbose bool) {
	suite, err := evals.LoadToolSelectionSuite(filepath.Join(dir, "tool_selection.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tool selection suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tool Selection Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("%s\n", suite.Description)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	categories := make(map[string]int)
	tools := make(map[string]int)
	for _, test := range suite.Tests {
		categories[test.Category]++
		tools[test.ExpectedTool]++
	}

	fmt.Println("Tests by Category:")
	printCounts(categories)
	fmt.Println("\nTests by Tool:")
	printCounts(tools)
	fmt.Println()

	if verbose {
		fmt.Println("Test Cases:")
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    expect: %s\n", test.ExpectedTool)
			if len(test.NotTools) > 0 {
				fmt.Printf("    reject: %v\n", test.NotTools)
			}
		}
		fmt.Println()
	}
}

func loadConfusionPairs(dir string, verbose bool) {
	suite, err := evals.LoadConfusionPairSuite(filepath.Join(dir, "confusion_pairs.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading confusion pairs suite: %v\n", err)
		os.Exit(1)
	}

	totalTests := 0
	for _, pair := range suite.Pairs {
		totalTests += len(pair.Tests)
	}

	fmt.Printf("Confusion Pairs Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Pairs: %d, Tests: %d\n\n", len(suite.Pairs), totalTests)

	for _, pair := range suite.Pairs {
		fmt.Printf("  %s: %v\n", pair.ID, pair.Tools)
		fmt.Printf("    Rule: %s (%d tests)\n", pair.Disambiguation, len(pair.Tests))
		if verbose {
			for _, test := range pair.Tests {
				fmt.Printf("      %q -> %s (%s)\n", test.Input, test.Expected, test.Reason)
			}
		}
	}
	fmt.Println()
}

func loadArguments(dir string, verbose bool) {
	suite, err := evals.LoadArgumentSuite(filepath.Join(dir, "argument_correctness.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading argument suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Argument Suite: %s (v%s)\n", suite.Name, suite.Version)
	fmt.Printf("Total Tests: %d\n\n", len(suite.Tests))

	byTool := make(map[string]int)
	for _, test := range suite.Tests {
		byTool[test.Tool]++
	}
	fmt.Println("Tests by Tool:")
	printCounts(byTool)
	fmt.Println()

	if verbose {
		for _, test := range suite.Tests {
			fmt.Printf("  [%s] %s\n", test.ID, test.Input)
			fmt.Printf("    required: %v\n", test.RequiredArgs)
			if len(test.ForbiddenArgs) > 0 {
				fmt.Printf("    forbidden: %v\n", test.ForbiddenArgs)
			}
			if test.ArgNotes != "" {
				fmt.Printf("    notes: %s\n", test.ArgNotes)
			}
		}
		fmt.Println()
	}
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-25s: %d\n", k, counts[k])
	}
}
