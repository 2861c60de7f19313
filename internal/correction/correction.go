// internal/correction/correction.go

// Package correction compiles and evaluates per-sensor error-correction
// equations. Equations are restricted to a fixed table of elementary
// math functions, the constants pi and e, and the single input
// variable x. Nothing outside the table resolves.
package correction

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Variable is the name the scaled sensor value is bound to.
const Variable = "x"

// funcs is the fixed allow-list of callable functions. It is built once
// and never mutated; equations cannot reach any other name.
var funcs = map[string]govaluate.ExpressionFunction{
	"abs":     unary(math.Abs),
	"acos":    unary(math.Acos),
	"asin":    unary(math.Asin),
	"atan":    unary(math.Atan),
	"atan2":   binary(math.Atan2),
	"ceil":    unary(math.Ceil),
	"cos":     unary(math.Cos),
	"cosh":    unary(math.Cosh),
	"degrees": unary(func(v float64) float64 { return v * 180 / math.Pi }),
	"exp":     unary(math.Exp),
	"fabs":    unary(math.Abs),
	"floor":   unary(math.Floor),
	"fmod":    binary(math.Mod),
	"hypot":   binary(math.Hypot),
	"ldexp":   binary(func(frac, exp float64) float64 { return math.Ldexp(frac, int(exp)) }),
	"log":     unary(math.Log),
	"log10":   unary(math.Log10),
	"pow":     binary(math.Pow),
	"radians": unary(func(v float64) float64 { return v * math.Pi / 180 }),
	"sin":     unary(math.Sin),
	"sinh":    unary(math.Sinh),
	"sqrt":    unary(math.Sqrt),
	"tan":     unary(math.Tan),
	"tanh":    unary(math.Tanh),
}

// constants are bound as parameters on every evaluation.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Expression is a compiled correction equation. Safe for concurrent
// use: evaluation binds parameters per call and shares no state.
type Expression struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// Compile parses an equation and checks that every variable it
// references is either the input variable or a known constant.
func Compile(equation string) (*Expression, error) {
	if equation == "" {
		return nil, errors.New("correction: empty equation")
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(equation, funcs)
	if err != nil {
		return nil, fmt.Errorf("correction: invalid equation %q: %w", equation, err)
	}

	for _, v := range expr.Vars() {
		if v == Variable {
			continue
		}
		if _, ok := constants[v]; ok {
			continue
		}
		return nil, fmt.Errorf("correction: equation %q references unknown name %q", equation, v)
	}

	return &Expression{src: equation, expr: expr}, nil
}

// String returns the source equation.
func (e *Expression) String() string { return e.src }

// Eval evaluates the equation with x bound to the given value.
// Non-finite results (sqrt of a negative, log of zero) are errors.
func (e *Expression) Eval(x float64) (float64, error) {
	params := map[string]interface{}{Variable: x}
	for name, v := range constants {
		params[name] = v
	}

	res, err := e.expr.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("correction: evaluating %q: %w", e.src, err)
	}

	v, ok := res.(float64)
	if !ok {
		return 0, fmt.Errorf("correction: equation %q produced non-numeric result %v", e.src, res)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("correction: equation %q produced non-finite result for x=%v", e.src, x)
	}

	return v, nil
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric argument, got %v", args[0])
		}
		return f(v), nil
	}
}

func binary(f func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
		}
		a, aok := args[0].(float64)
		b, bok := args[1].(float64)
		if !aok || !bok {
			return nil, fmt.Errorf("expected numeric arguments, got %v", args)
		}
		return f(a, b), nil
	}
}
