package expr_test

import (
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/decimal-drift/decimal"
	"github.com/decimal-drift/decimal/expr"
)

func TestExpr(t *testing.T) {
	t.Run("eval", func(t *testing.T) {
		type TC struct {
			Prec   int
			Expr   expr.Expr
			Env    expr.Env
			Output string
			Mark   error
		}

		tcs := []TC{
			{
				Prec:   20,
				Expr:   expr.Add(expr.Lit(decimal.MustParse("1.23")), expr.Lit(decimal.MustParse("4.56"))),
				Output: "5.79",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   5,
				Expr:   expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3)),
				Env:    expr.Env{"x": decimal.NewFromInt64(1)},
				Output: "0.99999",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   5,
				Expr:   expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3)),
				Env:    expr.Env{"x": decimal.NewFromInt64(1000)},
				Output: "999.99",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   20,
				Expr:   expr.Sub(expr.Int(3), expr.Var("y")),
				Env:    expr.Env{"y": decimal.MustParse("5.5")},
				Output: "-2.5",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   10,
				Expr:   expr.Pow(expr.Int(3), 40),
				Output: "12157665460000000000",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   20,
				Expr:   expr.Abs(expr.Sub(expr.Int(1), expr.Int(4))),
				Output: "3",
				Mark:   oops.New("unexpected"),
			},
			{
				Prec:   64,
				Expr:   expr.Quo(expr.Int(10), expr.Pow(expr.Int(7), 50)),
				Output: "0.000000000000000000000000000000000000000005560297121638573447808725956596668949102138087896243240310394824",
				Mark:   oops.New("unexpected"),
			},
		}

		for _, tc := range tcs {
			t.Run(tc.Expr.String(), func(t *testing.T) {
				ctx := decimal.MustNewContext(tc.Prec)
				got, err := tc.Expr.Eval(ctx, tc.Env)
				require.NoError(t, err, tc.Mark)
				require.Equal(t, tc.Output, got.String(), tc.Mark)
			})
		}
	})

	t.Run("errors", func(t *testing.T) {
		ctx := decimal.MustNewContext(20)

		_, err := expr.Add(expr.Var("x"), expr.Int(1)).Eval(ctx, nil)
		require.Error(t, err)
		require.True(t, decimal.UndefinedError.Has(err))
		require.Contains(t, err.Error(), `"x"`)

		_, err = expr.Mul(expr.Int(2), expr.Quo(expr.Int(5), expr.Sub(expr.Int(2), expr.Int(2)))).Eval(ctx, nil)
		require.Error(t, err)
		require.True(t, decimal.DivisionByZeroError.Has(err))
		require.Equal(t, `evaluating "5 / 0": division by zero: 5 / 0`, err.Error())

		_, err = expr.Pow(expr.Int(2), -1).Eval(ctx, nil)
		require.True(t, decimal.InvalidOperationError.Has(err))

		_, err = expr.Int(1).Eval(ctx, nil)
		require.NoError(t, err)

		_, err = expr.Add(expr.Int(1), expr.Int(1)).Eval(decimal.Context{}, nil)
		require.True(t, decimal.PrecisionTooLowError.Has(err))
	})

	t.Run("string", func(t *testing.T) {
		type TC struct {
			Expr   expr.Expr
			Output string
		}

		tcs := []TC{
			{expr.Var("x"), "$x"},
			{expr.Lit(decimal.MustParse("-1.50")), "-1.50"},
			{expr.Quo(expr.Var("x"), expr.Var("d")), "$x / $d"},
			{expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3)), "($x / 3) * 3"},
			{expr.Quo(expr.Int(10), expr.Pow(expr.Int(7), 50)), "10 / (7 ^ 50)"},
			{expr.Pow(expr.Add(expr.Int(1), expr.Var("r")), 12), "(1 + $r) ^ 12"},
			{expr.Abs(expr.Sub(expr.Var("a"), expr.Var("b"))), "abs($a - $b)"},
		}

		for _, tc := range tcs {
			require.Equal(t, tc.Output, tc.Expr.String())
		}
	})
}

// A tree must round exactly like the equivalent chain of context calls.
func TestExpr_MatchesContext(t *testing.T) {
	for _, prec := range []int{5, 10, 20, 64} {
		ctx := decimal.MustNewContext(prec)
		x := decimal.NewFromInt64(1000)
		step := expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3))

		y := x
		for i := 0; i < 30; i++ {
			var err error
			x, err = step.Eval(ctx, expr.Env{"x": x})
			require.NoError(t, err)
			y = ctx.MustMul(ctx.MustQuo(y, decimal.NewFromInt64(3)), decimal.NewFromInt64(3))
		}
		require.Equal(t, y.String(), x.String(), "precision %d", prec)
	}
}
