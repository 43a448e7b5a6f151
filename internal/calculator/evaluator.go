// Package calculator evaluates arithmetic and statistical expressions.
// It accepts calculator-style input ("2^10", "1,000 * 3", "mean(1, 2, 3)")
// and produces display-formatted results.
package calculator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"

	apperrors "github.com/deskfit/deskfit-mcp-server/internal/errors"
)

// Evaluator wraps expression evaluation with the calculator's function set.
type Evaluator struct {
	functions map[string]govaluate.ExpressionFunction
}

// NewEvaluator creates an evaluator with the full function set.
func NewEvaluator() *Evaluator {
	return &Evaluator{functions: builtinFunctions()}
}

// Evaluate sanitizes, parses, and computes an expression.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, apperrors.NewValidationError("expression", "", "cannot be empty")
	}

	cleaned := Sanitize(expr)
	// govaluate's ^ is bitwise XOR; calculator input means power.
	cleaned = strings.ReplaceAll(cleaned, "^", "**")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(cleaned, e.functions)
	if err != nil {
		return 0, apperrors.NewValidationError("expression", expr, "not a valid mathematical expression")
	}

	result, err := parsed.Evaluate(nil)
	if err != nil {
		return 0, apperrors.NewValidationError("expression", expr, err.Error())
	}

	value, ok := result.(float64)
	if !ok {
		return 0, apperrors.NewValidationError("expression", expr, "expression did not produce a number")
	}
	if math.IsInf(value, 0) {
		return 0, apperrors.NewValidationError("expression", expr, "division by zero")
	}
	if math.IsNaN(value) {
		return 0, apperrors.NewValidationError("expression", expr, "result is undefined")
	}
	return value, nil
}

// Sanitize removes thousands commas outside parentheses so "1,000 + 2"
// parses, while "max(1, 2)" keeps its argument separator.
func Sanitize(expr string) string {
	var b strings.Builder
	depth := 0
	for _, ch := range expr {
		switch ch {
		case '(', '[', '{':
			depth++
			b.WriteRune(ch)
		case ')', ']', '}':
			depth--
			b.WriteRune(ch)
		case ',':
			if depth > 0 {
				b.WriteRune(ch)
			}
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// FormatResult renders a value the way a desk calculator would: integers
// with thousands separators, very small or large magnitudes in scientific
// notation, everything else with four decimals.
func FormatResult(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return groupDigits(fmt.Sprintf("%.0f", value))
	}
	if abs := math.Abs(value); abs < 1e-5 || abs > 1e8 {
		return fmt.Sprintf("%.4e", value)
	}
	formatted := fmt.Sprintf("%.4f", value)
	parts := strings.SplitN(formatted, ".", 2)
	return groupDigits(parts[0]) + "." + parts[1]
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, ",")
	if neg {
		return "-" + out
	}
	return out
}

func builtinFunctions() map[string]govaluate.ExpressionFunction {
	unary := func(fn func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
			}
			v, err := toFloat(args[0])
			if err != nil {
				return nil, err
			}
			return fn(v), nil
		}
	}

	return map[string]govaluate.ExpressionFunction{
		"sin":   unary(math.Sin),
		"cos":   unary(math.Cos),
		"tan":   unary(math.Tan),
		"asin":  unary(math.Asin),
		"acos":  unary(math.Acos),
		"atan":  unary(math.Atan),
		"log":   unary(math.Log),
		"ln":    unary(math.Log),
		"log10": unary(math.Log10),
		"exp":   unary(math.Exp),
		"sqrt":  unary(math.Sqrt),
		"abs":   unary(math.Abs),

		"sum": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			total := 0.0
			for _, v := range values {
				total += v
			}
			return total, nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			out := values[0]
			for _, v := range values[1:] {
				out = math.Max(out, v)
			}
			return out, nil
		},
		"min": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			out := values[0]
			for _, v := range values[1:] {
				out = math.Min(out, v)
			}
			return out, nil
		},
		"mean": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			total := 0.0
			for _, v := range values {
				total += v
			}
			return total / float64(len(values)), nil
		},
		"median": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			sort.Float64s(values)
			n := len(values)
			if n%2 == 1 {
				return values[n/2], nil
			}
			return (values[n/2-1] + values[n/2]) / 2, nil
		},
		"variance": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			return sampleVariance(values)
		},
		"stdev": func(args ...interface{}) (interface{}, error) {
			values, err := toFloats(args)
			if err != nil {
				return nil, err
			}
			v, err := sampleVariance(values)
			if err != nil {
				return nil, err
			}
			return math.Sqrt(v), nil
		},
	}
}

// sampleVariance matches the n-1 denominator of statistics.variance.
func sampleVariance(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("variance requires at least 2 values")
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(values)-1), nil
}

func toFloat(arg interface{}) (float64, error) {
	v, ok := arg.(float64)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", arg)
	}
	return v, nil
}

func toFloats(args []interface{}) ([]float64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least 1 argument")
	}
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := toFloat(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
