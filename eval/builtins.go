package eval

import (
	"math"
	"slices"
)

// Builtin is one of the fixed, pre-declared functions callable from an
// expression. Arity is exact; there are no variadic builtins.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(args []float64) float64
}

var builtins = map[string]Builtin{
	"sin":   {"sin", 1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":   {"cos", 1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":   {"tan", 1, func(a []float64) float64 { return math.Tan(a[0]) }},
	"asin":  {"asin", 1, func(a []float64) float64 { return math.Asin(a[0]) }},
	"acos":  {"acos", 1, func(a []float64) float64 { return math.Acos(a[0]) }},
	"atan":  {"atan", 1, func(a []float64) float64 { return math.Atan(a[0]) }},
	"atan2": {"atan2", 2, func(a []float64) float64 { return math.Atan2(a[0], a[1]) }},
	"sqrt":  {"sqrt", 1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"abs":   {"abs", 1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"ln":    {"ln", 1, func(a []float64) float64 { return math.Log(a[0]) }},
	"log":   {"log", 1, func(a []float64) float64 { return math.Log10(a[0]) }},
	"exp":   {"exp", 1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"floor": {"floor", 1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {"ceil", 1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {"round", 1, func(a []float64) float64 { return math.Round(a[0]) }},
	"pow":   {"pow", 2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"min":   {"min", 2, func(a []float64) float64 { return math.Min(a[0], a[1]) }},
	"max":   {"max", 2, func(a []float64) float64 { return math.Max(a[0], a[1]) }},
}

// LookupBuiltin resolves a function name against the builtin table.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames returns every builtin name in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
