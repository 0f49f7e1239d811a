// Package expr builds small arithmetic expression trees over decimals.
//
// A tree is assembled from constructors such as [Quo], [Mul] and [Var] and
// evaluated left to right under a [decimal.Context]. Every node rounds
// exactly like the matching context method, so
//
//	expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3))
//
// gives the same value as ctx.Mul(ctx.Quo(x, 3), 3).
// There is no text parser; trees are always built in code.
package expr

import (
	"fmt"

	"github.com/decimal-drift/decimal"
)

// Env binds variable names to values.
type Env map[string]decimal.Decimal

// Expr is a node of an expression tree.
type Expr interface {
	// Eval evaluates the node, rounding every operation to ctx.
	Eval(ctx decimal.Context, env Env) (decimal.Decimal, error)
	fmt.Stringer
}

type literal struct {
	d decimal.Decimal
}

// Lit returns a node holding a constant.
func Lit(d decimal.Decimal) Expr {
	return literal{d: d}
}

// Int returns a node holding an integer constant.
func Int(i int64) Expr {
	return literal{d: decimal.NewFromInt64(i)}
}

func (l literal) Eval(decimal.Context, Env) (decimal.Decimal, error) {
	return l.d, nil
}

func (l literal) String() string {
	return l.d.String()
}

type variable struct {
	name string
}

// Var returns a node that looks name up in the environment.
func Var(name string) Expr {
	return variable{name: name}
}

func (v variable) Eval(_ decimal.Context, env Env) (decimal.Decimal, error) {
	d, ok := env[v.name]
	if !ok {
		return decimal.Decimal{}, decimal.UndefinedError.New("%q", v.name)
	}
	return d, nil
}

func (v variable) String() string {
	return "$" + v.name
}

// Op is a binary arithmetic operator.
type Op byte

// The following operators are supported.
const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpQuo Op = '/'
)

type binary struct {
	op          Op
	left, right Expr
}

// Add returns a node computing left + right.
func Add(left, right Expr) Expr { return binary{op: OpAdd, left: left, right: right} }

// Sub returns a node computing left - right.
func Sub(left, right Expr) Expr { return binary{op: OpSub, left: left, right: right} }

// Mul returns a node computing left * right.
func Mul(left, right Expr) Expr { return binary{op: OpMul, left: left, right: right} }

// Quo returns a node computing left / right.
func Quo(left, right Expr) Expr { return binary{op: OpQuo, left: left, right: right} }

func (b binary) Eval(ctx decimal.Context, env Env) (decimal.Decimal, error) {
	left, err := b.left.Eval(ctx, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	right, err := b.right.Eval(ctx, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	var result decimal.Decimal
	switch b.op {
	case OpAdd:
		result, err = ctx.Add(left, right)
	case OpSub:
		result, err = ctx.Sub(left, right)
	case OpMul:
		result, err = ctx.Mul(left, right)
	case OpQuo:
		result, err = ctx.Quo(left, right)
	default:
		return decimal.Decimal{}, decimal.InvalidOperationError.New("unknown operator %q", byte(b.op))
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("evaluating \"%v %c %v\": %w", left, b.op, right, err)
	}
	return result, nil
}

func (b binary) String() string {
	return fmt.Sprintf("%s %c %s", operand(b.left), b.op, operand(b.right))
}

// operand renders e, in parentheses if it is a compound node.
func operand(e Expr) string {
	switch e.(type) {
	case binary, power:
		return "(" + e.String() + ")"
	}
	return e.String()
}

type power struct {
	base Expr
	n    int
}

// Pow returns a node computing base raised to the non-negative power n.
func Pow(base Expr, n int) Expr {
	return power{base: base, n: n}
}

func (p power) Eval(ctx decimal.Context, env Env) (decimal.Decimal, error) {
	base, err := p.base.Eval(ctx, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ctx.Pow(base, p.n)
}

func (p power) String() string {
	return fmt.Sprintf("%s ^ %d", operand(p.base), p.n)
}

type absolute struct {
	x Expr
}

// Abs returns a node computing the absolute value of x.
func Abs(x Expr) Expr {
	return absolute{x: x}
}

func (a absolute) Eval(ctx decimal.Context, env Env) (decimal.Decimal, error) {
	x, err := a.x.Eval(ctx, env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x.Abs(), nil
}

func (a absolute) String() string {
	return "abs(" + a.x.String() + ")"
}
