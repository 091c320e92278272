package eval

import (
	"fmt"
	"math"

	"calc/ast"
	"calc/token"
)

// MaxDepth bounds tree nesting during evaluation. The parser enforces
// its own bound, but trees built by hand get the same explicit guard.
const MaxDepth = 128

type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	UndefinedFunction
	ArityMismatch
	DivisionByZero
	DomainError
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedFunction:
		return "UndefinedFunction"
	case ArityMismatch:
		return "ArityMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case DomainError:
		return "DomainError"
	case NestingTooDeep:
		return "NestingTooDeep"
	}

	panic(fmt.Sprintf("Invalid error kind: %d", int(k)))
}

type EvalError struct {
	Kind ErrorKind
	Tok  token.Token
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Tok.Lexeme == "" {
		return e.Msg
	}
	return fmt.Sprintf("at '%s': %s", e.Tok.Lexeme, e.Msg)
}

// Evaluator reduces expression trees to numbers against one
// Environment. It is synchronous and single-threaded; the first error
// aborts the statement with no partial result.
type Evaluator struct {
	env *Environment
}

func NewEvaluator(env *Environment) *Evaluator {
	return &Evaluator{env}
}

func (ev *Evaluator) Env() *Environment {
	return ev.env
}

func (ev *Evaluator) Eval(expr ast.Expr) (float64, error) {
	return ev.evaluate(expr, 0)
}

func (ev *Evaluator) evaluate(expr ast.Expr, depth int) (float64, error) {
	if depth > MaxDepth {
		return 0, &EvalError{
			Kind: NestingTooDeep,
			Msg:  "expression nests too deeply",
		}
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Variable:
		val, ok := ev.env.Lookup(e.Name.Lexeme)
		if !ok {
			return 0, &EvalError{
				UndefinedVariable, e.Name,
				"undefined variable '" + e.Name.Lexeme + "'",
			}
		}

		return val, nil
	case *ast.Assign:
		// Evaluate first, bind second, then yield the bound value so
		// `x = 3` both stores and prints 3.
		val, err := ev.evaluate(e.Value, depth+1)
		if err != nil {
			return 0, err
		}

		ev.env.Bind(e.Name.Lexeme, val)

		return val, nil
	case *ast.Unary:
		return ev.evalUnary(e, depth)
	case *ast.Binary:
		return ev.evalBinary(e, depth)
	case *ast.Call:
		return ev.evalCall(e, depth)
	default:
		panic(fmt.Sprintf("Unimplemented Expression type: %T", e))
	}
}

func (ev *Evaluator) evalUnary(expr *ast.Unary, depth int) (float64, error) {
	rhs, err := ev.evaluate(expr.Rhs, depth+1)
	if err != nil {
		return 0, err
	}

	switch expr.Op.Type {
	case token.MINUS:
		return -rhs, nil
	case token.PLUS:
		return rhs, nil
	default:
		panic(fmt.Sprintf(
			"Unreachable: unexpected unary operator: %v", expr.Op))
	}
}

func (ev *Evaluator) evalBinary(expr *ast.Binary, depth int) (float64, error) {
	// Left-associative operator chains parse into left-leaning spines,
	// and the parser counts them as flat. Walk the spine iteratively so
	// a merely long chain is not treated as nesting here either.
	spine := []*ast.Binary{expr}
	for {
		lhs, ok := spine[len(spine)-1].Lhs.(*ast.Binary)
		if !ok {
			break
		}
		spine = append(spine, lhs)
	}

	// Left before right, always; once assignment appears inside an
	// expression the order is observable.
	val, err := ev.evaluate(spine[len(spine)-1].Lhs, depth+1)
	if err != nil {
		return 0, err
	}

	for i := len(spine) - 1; i >= 0; i-- {
		node := spine[i]

		rhs, err := ev.evaluate(node.Rhs, depth+1)
		if err != nil {
			return 0, err
		}

		val, err = ev.applyBinary(node.Op, val, rhs)
		if err != nil {
			return 0, err
		}
	}

	return val, nil
}

func (ev *Evaluator) applyBinary(op token.Token, lhs, rhs float64) (float64, error) {
	switch op.Type {
	case token.PLUS:
		return lhs + rhs, nil
	case token.MINUS:
		return lhs - rhs, nil
	case token.STAR:
		return lhs * rhs, nil
	case token.SLASH:
		// Go would happily return Inf or NaN here; a calculator
		// should say what went wrong instead.
		if rhs == 0 {
			return 0, &EvalError{
				Kind: DivisionByZero,
				Tok:  op,
				Msg:  "division by zero",
			}
		}

		return lhs / rhs, nil
	case token.CARET:
		// Undefined over the reals.
		if lhs < 0 && rhs != math.Trunc(rhs) {
			return 0, &EvalError{
				Kind: DomainError,
				Tok:  op,
				Msg:  "negative base with a non-integer exponent",
			}
		}

		return math.Pow(lhs, rhs), nil
	}

	panic("Unreachable.")
}

func (ev *Evaluator) evalCall(expr *ast.Call, depth int) (float64, error) {
	name := expr.Callee.Lexeme

	b, ok := LookupBuiltin(name)
	if !ok {
		return 0, &EvalError{
			UndefinedFunction, expr.Callee,
			"undefined function '" + name + "'",
		}
	}

	// Arity is checked before any argument is evaluated.
	if len(expr.Args) != b.Arity {
		return 0, &EvalError{
			ArityMismatch, expr.Callee,
			fmt.Sprintf("%s expects %d argument(s), got %d",
				name, b.Arity, len(expr.Args)),
		}
	}

	args := make([]float64, 0, len(expr.Args))
	for _, arg := range expr.Args {
		val, err := ev.evaluate(arg, depth+1)
		if err != nil {
			return 0, err
		}

		args = append(args, val)
	}

	res := b.Fn(args)
	// NaN means out of domain; Inf means out of domain or overflow.
	// Either way the builtin has no finite answer for these inputs.
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0, &EvalError{
			DomainError, expr.Callee,
			name + " has no finite result for the given argument(s)",
		}
	}

	return res, nil
}
