// Package evals provides an evaluation framework for tool selection
// accuracy. It checks that a selector (an LLM, or a deterministic parser)
// picks the right desk-assistant tool and extracts the right arguments
// from natural language input.
package evals

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// ToolSelectionTest is a single tool selection case.
type ToolSelectionTest struct {
	ID           string         `json:"id"`
	Category     string         `json:"category"`
	Input        string         `json:"input"`
	ExpectedTool string         `json:"expected_tool"`
	ExpectedArgs map[string]any `json:"expected_args"`
	NotTools     []string       `json:"not_tools"`
}

// ToolSelectionSuite contains all tool selection tests.
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ConfusionPairTest is a single disambiguation case.
type ConfusionPairTest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Reason   string `json:"reason"`
}

// ConfusionPair groups tests for two tools that are commonly confused,
// like weather_check_rain and timezone_convert for "london" queries.
type ConfusionPair struct {
	ID             string              `json:"id"`
	Tools          []string            `json:"tools"`
	Disambiguation string              `json:"disambiguation"`
	Tests          []ConfusionPairTest `json:"tests"`
}

// ConfusionPairSuite contains all confusion pair tests.
type ConfusionPairSuite struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Pairs       []ConfusionPair `json:"pairs"`
}

// ArgumentTest is a single argument extraction case.
type ArgumentTest struct {
	ID            string         `json:"id"`
	Tool          string         `json:"tool"`
	Input         string         `json:"input"`
	RequiredArgs  []string       `json:"required_args"`
	ExpectedArgs  map[string]any `json:"expected_args"`
	ForbiddenArgs []string       `json:"forbidden_args"`
	ArgNotes      string         `json:"arg_notes,omitempty"`
}

// ValidationRules documents argument conventions shared by all tools.
type ValidationRules struct {
	QueryHandling   string `json:"query_handling"`
	CityFormat      string `json:"city_format"`
	NumericHandling string `json:"numeric_handling"`
	RadiusDefault   string `json:"radius_default"`
}

// ArgumentSuite contains all argument extraction tests.
type ArgumentSuite struct {
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Description     string          `json:"description"`
	Tests           []ArgumentTest  `json:"tests"`
	ValidationRules ValidationRules `json:"validation_rules"`
}

// ToolSelectionResult is the outcome of one tool selection case.
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// ConfusionPairResult is the outcome of one disambiguation case.
type ConfusionPairResult struct {
	PairID       string
	TestInput    string
	ExpectedTool string
	ActualTool   string
	Reason       string
	Passed       bool
}

// ArgumentResult is the outcome of one argument extraction case.
type ArgumentResult struct {
	TestID       string
	Tool         string
	Input        string
	Passed       bool
	MissingArgs  []string
	WrongArgs    map[string]string // arg -> "expected X, got Y"
	ForbiddenHit []string          // forbidden args that were used
}

// EvalMetrics aggregates the outcome of an evaluation run.
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	ByTool        map[string]*ToolMetrics
	FailedDetails []string
}

// CategoryMetrics counts outcomes per category.
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolMetrics counts selection outcomes per tool.
type ToolMetrics struct {
	ExpectedCount  int // times tool was expected
	SelectedCount  int // times tool was actually selected
	CorrectCount   int // times tool was correctly selected
	FalsePositives int // times tool was selected instead of another
	FalseNegatives int // times tool should have been selected but wasn't
}

// loadSuite reads and parses one JSON suite file.
func loadSuite[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	var suite T
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &suite, nil
}

// LoadToolSelectionSuite loads tool selection tests from a JSON file.
func LoadToolSelectionSuite(path string) (*ToolSelectionSuite, error) {
	return loadSuite[ToolSelectionSuite](path)
}

// LoadConfusionPairSuite loads confusion pair tests from a JSON file.
func LoadConfusionPairSuite(path string) (*ConfusionPairSuite, error) {
	return loadSuite[ConfusionPairSuite](path)
}

// LoadArgumentSuite loads argument extraction tests from a JSON file.
func LoadArgumentSuite(path string) (*ArgumentSuite, error) {
	return loadSuite[ArgumentSuite](path)
}

// LoadAllEvals loads every suite from a directory.
func LoadAllEvals(dir string) (*ToolSelectionSuite, *ConfusionPairSuite, *ArgumentSuite, error) {
	toolSelection, err := LoadToolSelectionSuite(filepath.Join(dir, "tool_selection.json"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading tool selection: %w", err)
	}

	confusionPairs, err := LoadConfusionPairSuite(filepath.Join(dir, "confusion_pairs.json"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading confusion pairs: %w", err)
	}

	arguments, err := LoadArgumentSuite(filepath.Join(dir, "argument_correctness.json"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading arguments: %w", err)
	}

	return toolSelection, confusionPairs, arguments, nil
}

// ToolSelector picks a tool and its arguments for a natural language input.
// Implementations range from LLM harnesses to deterministic keyword parsers.
type ToolSelector interface {
	SelectTool(input string) (toolName string, args map[string]any, err error)
}

// EvaluateToolSelection runs tool selection tests against a selector.
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := newMetrics()
	var results []ToolSelectionResult

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Category).Total++
		metrics.tool(test.ExpectedTool).ExpectedCount++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
			Passed:       true,
		}

		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("selector error: %v", err))
		}

		if actualTool != test.ExpectedTool {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool))
			metrics.tool(test.ExpectedTool).FalseNegatives++
			metrics.tool(actualTool).FalsePositives++
		} else {
			metrics.tool(test.ExpectedTool).CorrectCount++
		}
		metrics.tool(actualTool).SelectedCount++

		for _, forbidden := range test.NotTools {
			if actualTool == forbidden {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("selected forbidden tool: %s", forbidden))
			}
		}

		for key, expectedValue := range test.ExpectedArgs {
			actualValue, exists := actualArgs[key]
			if !exists {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("missing arg %s (expected %v)", key, expectedValue))
			} else if !compareValues(expectedValue, actualValue) {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong arg %s: expected %v, got %v", key, expectedValue, actualValue))
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.category(test.Category).Passed++
		} else {
			metrics.FailedTests++
			metrics.category(test.Category).Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		}

		results = append(results, result)
	}

	metrics.finalize()
	return metrics, results
}

// EvaluateConfusionPairs runs disambiguation tests against a selector.
func EvaluateConfusionPairs(suite *ConfusionPairSuite, selector ToolSelector) (*EvalMetrics, []ConfusionPairResult) {
	metrics := newMetrics()
	var results []ConfusionPairResult

	for _, pair := range suite.Pairs {
		for _, test := range pair.Tests {
			metrics.TotalTests++
			metrics.category(pair.ID).Total++
			metrics.tool(test.Expected).ExpectedCount++

			actualTool, _, err := selector.SelectTool(test.Input)

			result := ConfusionPairResult{
				PairID:       pair.ID,
				TestInput:    test.Input,
				ExpectedTool: test.Expected,
				ActualTool:   actualTool,
				Reason:       test.Reason,
				Passed:       err == nil && actualTool == test.Expected,
			}

			metrics.tool(actualTool).SelectedCount++

			if result.Passed {
				metrics.PassedTests++
				metrics.category(pair.ID).Passed++
				metrics.tool(test.Expected).CorrectCount++
			} else {
				metrics.FailedTests++
				metrics.category(pair.ID).Failed++
				metrics.tool(test.Expected).FalseNegatives++
				metrics.tool(actualTool).FalsePositives++
				metrics.FailedDetails = append(metrics.FailedDetails,
					fmt.Sprintf("[%s] %s: expected %s, got %s (%s)",
						pair.ID, test.Input, test.Expected, actualTool, test.Reason))
			}

			results = append(results, result)
		}
	}

	metrics.finalize()
	return metrics, results
}

// EvaluateArguments runs argument extraction tests against a selector.
func EvaluateArguments(suite *ArgumentSuite, selector ToolSelector) (*EvalMetrics, []ArgumentResult) {
	metrics := newMetrics()
	var results []ArgumentResult

	for _, test := range suite.Tests {
		metrics.TotalTests++
		metrics.category(test.Tool).Total++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ArgumentResult{
			TestID:    test.ID,
			Tool:      test.Tool,
			Input:     test.Input,
			Passed:    true,
			WrongArgs: make(map[string]string),
		}

		if err != nil || actualTool != test.Tool {
			result.Passed = false
		}

		if result.Passed {
			for _, reqArg := range test.RequiredArgs {
				if _, exists := actualArgs[reqArg]; !exists {
					result.Passed = false
					result.MissingArgs = append(result.MissingArgs, reqArg)
				}
			}

			for key, expectedValue := range test.ExpectedArgs {
				actualValue, exists := actualArgs[key]
				if !exists {
					result.Passed = false
					result.MissingArgs = append(result.MissingArgs, key)
				} else if !compareValues(expectedValue, actualValue) {
					result.Passed = false
					result.WrongArgs[key] = fmt.Sprintf("expected %v, got %v", expectedValue, actualValue)
				}
			}

			for _, forbidden := range test.ForbiddenArgs {
				if _, exists := actualArgs[forbidden]; exists {
					result.Passed = false
					result.ForbiddenHit = append(result.ForbiddenHit, forbidden)
				}
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.category(test.Tool).Passed++
		} else {
			metrics.FailedTests++
			metrics.category(test.Tool).Failed++

			var errDetails []string
			if err != nil {
				errDetails = append(errDetails, fmt.Sprintf("selector error: %v", err))
			}
			if actualTool != test.Tool {
				errDetails = append(errDetails, fmt.Sprintf("wrong tool: %s", actualTool))
			}
			if len(result.MissingArgs) > 0 {
				errDetails = append(errDetails, fmt.Sprintf("missing: %v", result.MissingArgs))
			}
			for k, v := range result.WrongArgs {
				errDetails = append(errDetails, fmt.Sprintf("%s: %s", k, v))
			}
			if len(result.ForbiddenHit) > 0 {
				errDetails = append(errDetails, fmt.Sprintf("forbidden: %v", result.ForbiddenHit))
			}
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(errDetails, "; ")))
		}

		results = append(results, result)
	}

	metrics.finalize()
	return metrics, results
}

func newMetrics() *EvalMetrics {
	return &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
		ByTool:     make(map[string]*ToolMetrics),
	}
}

func (m *EvalMetrics) category(name string) *CategoryMetrics {
	if m.ByCategory[name] == nil {
		m.ByCategory[name] = &CategoryMetrics{}
	}
	return m.ByCategory[name]
}

func (m *EvalMetrics) tool(name string) *ToolMetrics {
	if m.ByTool[name] == nil {
		m.ByTool[name] = &ToolMetrics{}
	}
	return m.ByTool[name]
}

func (m *EvalMetrics) finalize() {
	if m.TotalTests > 0 {
		m.Accuracy = float64(m.PassedTests) / float64(m.TotalTests)
	}
}

// compareValues compares expected and actual values, tolerating the
// numeric type differences JSON decoding introduces.
func compareValues(expected, actual any) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)

	// JSON unmarshals all numbers to float64
	switch ev.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if av.Kind() == reflect.Float64 {
			return float64(ev.Int()) == av.Float()
		}
	case reflect.Float32, reflect.Float64:
		if av.Kind() == reflect.Float64 {
			return ev.Float() == av.Float()
		}
	}

	if ev.Kind() == reflect.Slice && av.Kind() == reflect.Slice {
		if ev.Len() != av.Len() {
			return false
		}
		for i := 0; i < ev.Len(); i++ {
			if !compareValues(ev.Index(i).Interface(), av.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(expected, actual)
}

// FormatMetrics renders a human-readable summary of an evaluation run.
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		for cat, m := range metrics.ByCategory {
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				fmt.Fprintf(&b, "  %-25s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
			}
		}
	}

	const maxDetails = 10
	if n := len(metrics.FailedDetails); n > 0 {
		if n <= maxDetails {
			b.WriteString("\nFailed Tests:\n")
		} else {
			fmt.Fprintf(&b, "\nFailed Tests (showing first %d of %d):\n", maxDetails, n)
		}
		for _, detail := range metrics.FailedDetails[:min(n, maxDetails)] {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	}

	return b.String()
}
