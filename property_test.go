package decimal_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/decimal-drift/decimal"
)

// genDecimal draws a decimal with at most digits significant digits.
func genDecimal(digits int) *rapid.Generator[decimal.Decimal] {
	return rapid.Custom(func(t *rapid.T) decimal.Decimal {
		limit := int64(1)
		for i := 0; i < digits; i++ {
			limit *= 10
		}
		coef := rapid.Int64Range(-(limit - 1), limit-1).Draw(t, "coef")
		exp := rapid.IntRange(-20, 20).Draw(t, "exp")
		return decimal.New(coef, exp)
	})
}

func genNonZero(digits int) *rapid.Generator[decimal.Decimal] {
	return genDecimal(digits).Filter(func(d decimal.Decimal) bool { return !d.IsZero() })
}

// ulp returns one unit in the last place of d at the given precision.
func ulp(d decimal.Decimal, prec int) decimal.Decimal {
	return decimal.New(1, d.Exp()+d.Prec()-prec)
}

func TestProperty_RoundTripExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prec := rapid.IntRange(10, 40).Draw(t, "prec")
		ctx := decimal.MustNewContext(prec)
		v := genDecimal(5).Draw(t, "v")
		k := decimal.NewFromInt64(rapid.Int64Range(1, 9999).Draw(t, "k"))
		if rapid.Bool().Draw(t, "negative") {
			k = k.Neg()
		}

		product, err := ctx.Mul(v, k)
		require.NoError(t, err)
		got, err := ctx.Quo(product, k)
		require.NoError(t, err)
		require.Truef(t, got.Equal(v), "(%v * %v) / %v = %v at %v", v, k, k, got, ctx)
	})
}

func TestProperty_RoundTripBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prec := rapid.IntRange(1, 18).Draw(t, "prec")
		ctx := decimal.MustNewContext(prec)
		v, err := ctx.Round(genNonZero(18).Draw(t, "v"))
		require.NoError(t, err)
		k := genNonZero(8).Draw(t, "k").Reduce()

		product, err := ctx.Mul(v, k)
		require.NoError(t, err)
		got, err := ctx.Quo(product, k)
		require.NoError(t, err)

		// Two roundings of half a unit each, measured against the
		// magnitude of v, stay within ten units of its last digit.
		diff := new(apd.Decimal)
		_, err = apd.BaseContext.Sub(diff, toAPD(t, got), toAPD(t, v))
		require.NoError(t, err)
		diff.Abs(diff)
		bound := toAPD(t, decimal.New(10, 0))
		_, err = apd.BaseContext.Mul(bound, bound, toAPD(t, ulp(v, prec)))
		require.NoError(t, err)
		require.LessOrEqualf(t, diff.Cmp(bound), 0, "(%v * %v) / %v = %v at %v", v, k, k, got, ctx)
	})
}

func TestProperty_AbsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := genDecimal(18).Draw(t, "d")
		require.Equal(t, d.Abs(), d.Abs().Abs())
		require.GreaterOrEqual(t, d.Abs().Sign(), 0)
		require.True(t, d.Abs().Equal(d.Neg().Abs()))
	})
}

func TestProperty_RoundedDigits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prec := rapid.IntRange(1, 30).Draw(t, "prec")
		ctx := decimal.MustNewContext(prec)
		d := genDecimal(18).Draw(t, "d")
		e := genNonZero(18).Draw(t, "e")

		for _, op := range []func(d, e decimal.Decimal) (decimal.Decimal, error){ctx.Add, ctx.Sub, ctx.Mul, ctx.Quo} {
			got, err := op(d, e)
			require.NoError(t, err)
			require.LessOrEqual(t, got.Prec(), prec)
		}
	})
}

func apdContext(prec int) *apd.Context {
	c := apd.BaseContext.WithPrecision(uint32(prec))
	c.Rounding = apd.RoundHalfUp
	return c
}

func toAPD(t require.TestingT, d decimal.Decimal) *apd.Decimal {
	a, _, err := apd.NewFromString(d.String())
	require.NoError(t, err)
	return a
}

// Every operation must agree with an independent implementation of
// the same arithmetic.
func TestProperty_MatchesAPD(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prec := rapid.IntRange(1, 40).Draw(t, "prec")
		ctx := decimal.MustNewContext(prec)
		oracle := apdContext(prec)
		d := genDecimal(18).Draw(t, "d")
		e := genNonZero(18).Draw(t, "e")
		x, y := toAPD(t, d), toAPD(t, e)

		tests := []struct {
			name   string
			op     func(d, e decimal.Decimal) (decimal.Decimal, error)
			oracle func(z, x, y *apd.Decimal) (apd.Condition, error)
		}{
			{"add", ctx.Add, oracle.Add},
			{"sub", ctx.Sub, oracle.Sub},
			{"mul", ctx.Mul, oracle.Mul},
			{"quo", ctx.Quo, oracle.Quo},
		}
		for _, tt := range tests {
			got, err := tt.op(d, e)
			require.NoError(t, err)
			want := new(apd.Decimal)
			_, err = tt.oracle(want, x, y)
			require.NoError(t, err)
			require.Zerof(t, toAPD(t, got).Cmp(want), "%v(%v, %v) = %v, want %v at %v", tt.name, d, e, got, want, ctx)
		}
	})
}
