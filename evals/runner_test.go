package evals

import (
	"path/filepath"
	"strings"
	"testing"
)

// MockToolSelector returns canned selections keyed by input.
type MockToolSelector struct {
	Responses map[string]struct {
		Tool string
		Args map[string]any
	}
	// DefaultTool is returned if input isn't in Responses
	DefaultTool string
}

func (m *MockToolSelector) SelectTool(input string) (string, map[string]any, error) {
	if resp, ok := m.Responses[input]; ok {
		return resp.Tool, resp.Args, nil
	}
	return m.DefaultTool, nil, nil
}

// PerfectToolSelector answers every suite test with its expected values.
type PerfectToolSelector struct {
	suite *ToolSelectionSuite
}

func (p *PerfectToolSelector) SelectTool(input string) (string, map[string]any, error) {
	for _, test := range p.suite.Tests {
		if test.Input == input {
			return test.ExpectedTool, test.ExpectedArgs, nil
		}
	}
	return "", nil, nil
}

func TestLoadToolSelectionSuite(t *testing.T) {
	suite, err := LoadToolSelectionSuite(filepath.Join(".", "tool_selection.json"))
	if err != nil {
		t.Fatalf("Failed to load tool selection suite: %v", err)
	}

	if suite.Name == "" {
		t.Error("Suite name should not be empty")
	}
	if len(suite.Tests) == 0 {
		t.Fatal("Suite should have tests")
	}

	test := suite.Tests[0]
	if test.ID == "" {
		t.Error("Test ID should not be empty")
	}
	if test.Input == "" {
		t.Error("Test input should not be empty")
	}
	if test.ExpectedTool == "" {
		t.Error("Expected tool should not be empty")
	}
}

func TestLoadConfusionPairSuite(t *testing.T) {
	suite, err := LoadConfusionPairSuite(filepath.Join(".", "confusion_pairs.json"))
	if err != nil {
		t.Fatalf("Failed to load confusion pair suite: %v", err)
	}

	if len(suite.Pairs) == 0 {
		t.Fatal("Suite should have confusion pairs")
	}

	pair := suite.Pairs[0]
	if pair.ID == "" {
		t.Error("Pair ID should not be empty")
	}
	if len(pair.Tools) < 2 {
		t.Error("Pair should have at least 2 tools")
	}
	if len(pair.Tests) == 0 {
		t.Error("Pair should have tests")
	}
}

func TestLoadArgumentSuite(t *testing.T) {
	suite, err := LoadArgumentSuite(filepath.Join(".", "argument_correctness.json"))
	if err != nil {
		t.Fatalf("Failed to load argument suite: %v", err)
	}

	if len(suite.Tests) == 0 {
		t.Fatal("Suite should have tests")
	}
	if suite.ValidationRules.QueryHandling == "" {
		t.Error("Validation rules should document query handling")
	}

	test := suite.Tests[0]
	if test.ID == "" || test.Tool == "" || test.Input == "" {
		t.Errorf("Test missing required fields: %+v", test)
	}
}

func TestEvaluateToolSelection_PerfectSelector(t *testing.T) {
	suite, err := LoadToolSelectionSuite(filepath.Join(".", "tool_selection.json"))
	if err != nil {
		t.Fatalf("Failed to load suite: %v", err)
	}

	metrics, results := EvaluateToolSelection(suite, &PerfectToolSelector{suite: suite})

	if metrics.TotalTests != len(suite.Tests) {
		t.Errorf("Total tests: expected %d, got %d", len(suite.Tests), metrics.TotalTests)
	}
	if metrics.Accuracy != 1.0 {
		t.Errorf("Perfect selector should have 100%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}
	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test %s should pass with perfect selector", result.TestID)
		}
	}
}

func TestEvaluateToolSelection_WrongAnswers(t *testing.T) {
	suite := &ToolSelectionSuite{
		Name: "Test Suite",
		Tests: []ToolSelectionTest{
			{
				ID:           "test-001",
				Category:     "weather",
				Input:        "is it raining in london",
				ExpectedTool: "weather_check_rain",
				ExpectedArgs: map[string]any{"city": "london"},
				NotTools:     []string{"timezone_convert"},
			},
			{
				ID:           "test-002",
				Category:     "geo",
				Input:        "where is chennai",
				ExpectedTool: "geo_locate",
				ExpectedArgs: map[string]any{"place": "chennai"},
			},
		},
	}

	wrongSelector := &MockToolSelector{DefaultTool: "timezone_convert"}
	metrics, results := EvaluateToolSelection(suite, wrongSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Wrong selector should have 0 passed tests, got %d", metrics.PassedTests)
	}
	if metrics.FailedTests != 2 {
		t.Errorf("Wrong selector should have 2 failed tests, got %d", metrics.FailedTests)
	}
	if metrics.Accuracy != 0 {
		t.Errorf("Wrong selector should have 0%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}
	for _, result := range results {
		if result.Passed {
			t.Errorf("Test %s should not pass with wrong selector", result.TestID)
		}
		if len(result.Errors) == 0 {
			t.Errorf("Test %s should have errors", result.TestID)
		}
	}

	if metrics.ByTool["weather_check_rain"].FalseNegatives != 1 {
		t.Error("Expected a false negative for weather_check_rain")
	}
	if metrics.ByTool["timezone_convert"].FalsePositives != 2 {
		t.Errorf("Expected 2 false positives for timezone_convert, got %d",
			metrics.ByTool["timezone_convert"].FalsePositives)
	}
}

func TestEvaluateConfusionPairs(t *testing.T) {
	suite := &ConfusionPairSuite{
		Name: "Test Confusion Pairs",
		Pairs: []ConfusionPair{
			{
				ID:             "weather-vs-timezone",
				Tools:          []string{"weather_check_rain", "timezone_convert"},
				Disambiguation: "rain = weather, clock = timezone",
				Tests: []ConfusionPairTest{
					{
						Input:    "is it raining in london",
						Expected: "weather_check_rain",
						Reason:   "asks about precipitation",
					},
					{
						Input:    "what time is it in london",
						Expected: "timezone_convert",
						Reason:   "asks for the clock",
					},
				},
			},
		},
	}

	perfectSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]any
		}{
			"is it raining in london": {
				Tool: "weather_check_rain",
				Args: map[string]any{"city": "london"},
			},
			"what time is it in london": {
				Tool: "timezone_convert",
				Args: map[string]any{"query": "london"},
			},
		},
	}

	metrics, results := EvaluateConfusionPairs(suite, perfectSelector)

	if metrics.TotalTests != 2 {
		t.Errorf("Expected 2 tests, got %d", metrics.TotalTests)
	}
	if metrics.Accuracy != 1.0 {
		t.Errorf("Perfect selector should have 100%% accuracy, got %.1f%%", metrics.Accuracy*100)
	}
	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test should pass: %s", result.TestInput)
		}
	}
}

func TestEvaluateArguments(t *testing.T) {
	suite := &ArgumentSuite{
		Name: "Test Arguments",
		Tests: []ArgumentTest{
			{
				ID:           "args-001",
				Tool:         "geo_locate",
				Input:        "landmarks within 25 km of trichy",
				RequiredArgs: []string{"place"},
				ExpectedArgs: map[string]any{
					"place":     "trichy",
					"radius_km": float64(25), // JSON numbers are float64
				},
				ForbiddenArgs: []string{"query"},
			},
		},
	}

	correctSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]any
		}{
			"landmarks within 25 km of trichy": {
				Tool: "geo_locate",
				Args: map[string]any{
					"place":     "trichy",
					"radius_km": float64(25),
				},
			},
		},
	}

	metrics, results := EvaluateArguments(suite, correctSelector)

	if metrics.PassedTests != 1 {
		t.Errorf("Expected 1 passed test, got %d", metrics.PassedTests)
	}
	if len(results) > 0 && !results[0].Passed {
		t.Errorf("Test should pass: missing=%v, wrong=%v, forbidden=%v",
			results[0].MissingArgs, results[0].WrongArgs, results[0].ForbiddenHit)
	}
}

func TestEvaluateArguments_Forbidden(t *testing.T) {
	suite := &ArgumentSuite{
		Name: "Test Forbidden Args",
		Tests: []ArgumentTest{
			{
				ID:            "args-001",
				Tool:          "dictionary_lookup",
				Input:         "define serendipity",
				RequiredArgs:  []string{"word"},
				ExpectedArgs:  map[string]any{"word": "serendipity"},
				ForbiddenArgs: []string{"query"},
			},
		},
	}

	badSelector := &MockToolSelector{
		Responses: map[string]struct {
			Tool string
			Args map[string]any
		}{
			"define serendipity": {
				Tool: "dictionary_lookup",
				Args: map[string]any{
					"word":  "serendipity",
					"query": "define serendipity", // forbidden
				},
			},
		},
	}

	metrics, results := EvaluateArguments(suite, badSelector)

	if metrics.PassedTests != 0 {
		t.Errorf("Expected 0 passed tests (forbidden arg used), got %d", metrics.PassedTests)
	}
	if len(results) > 0 && len(results[0].ForbiddenHit) == 0 {
		t.Error("Should flag forbidden arg usage")
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"equal strings", "test", "test", true},
		{"different strings", "test", "other", false},
		{"int vs float64", 20, float64(20), true},
		{"equal slices", []string{"a", "b"}, []string{"a", "b"}, true},
		{"different slices", []string{"a", "b"}, []string{"a", "c"}, false},
		{"nil values", nil, nil, true},
		{"nil vs value", nil, "test", false},
		{"equal bools", true, true, true},
		{"different bools", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareValues(tt.expected, tt.actual)
			if got != tt.want {
				t.Errorf("compareValues(%v, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestFormatMetrics(t *testing.T) {
	metrics := &EvalMetrics{
		TotalTests:  10,
		PassedTests: 8,
		FailedTests: 2,
		Accuracy:    0.8,
		ByCategory: map[string]*CategoryMetrics{
			"weather": {Total: 5, Passed: 4, Failed: 1},
			"geo":     {Total: 5, Passed: 4, Failed: 1},
		},
		FailedDetails: []string{
			"[test-1] input: error",
			"[test-2] input: error",
		},
	}

	output := FormatMetrics(metrics, "Test Suite")

	if !strings.Contains(output, "80") {
		t.Error("Should show accuracy percentage")
	}
	if !strings.Contains(output, "weather") {
		t.Error("Should show category breakdown")
	}
	if !strings.Contains(output, "Failed Tests") {
		t.Error("Should show failed tests section")
	}
}

func TestLoadAllEvals(t *testing.T) {
	toolSelection, confusionPairs, arguments, err := LoadAllEvals(".")
	if err != nil {
		t.Fatalf("Failed to load all evals: %v", err)
	}

	total := len(toolSelection.Tests)
	for _, pair := range confusionPairs.Pairs {
		total += len(pair.Tests)
	}
	total += len(arguments.Tests)

	if total == 0 {
		t.Error("Expected a non-empty combined suite")
	}
	t.Logf("Loaded %d total evaluation tests", total)
}
