package decimal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decimal-drift/decimal"
)

func repeat(t *testing.T, x decimal.Decimal, n int, op func(d decimal.Decimal) (decimal.Decimal, error)) decimal.Decimal {
	t.Helper()
	var err error
	for i := 0; i < n; i++ {
		x, err = op(x)
		require.NoError(t, err)
	}
	return x
}

func divideBy(ctx decimal.Context, e decimal.Decimal) func(decimal.Decimal) (decimal.Decimal, error) {
	return func(d decimal.Decimal) (decimal.Decimal, error) { return ctx.Quo(d, e) }
}

func multiplyBy(ctx decimal.Context, e decimal.Decimal) func(decimal.Decimal) (decimal.Decimal, error) {
	return func(d decimal.Decimal) (decimal.Decimal, error) { return ctx.Mul(d, e) }
}

func distance(t *testing.T, ctx decimal.Context, d, e decimal.Decimal) decimal.Decimal {
	t.Helper()
	diff, err := ctx.Sub(d, e)
	require.NoError(t, err)
	return diff.Abs()
}

// thirds divides 1 by 3 a hundred times and multiplies it back.
func thirds(t *testing.T, prec int) (divided, restored decimal.Decimal) {
	t.Helper()
	ctx := decimal.MustNewContext(prec)
	three := decimal.NewFromInt64(3)
	divided = repeat(t, decimal.NewFromInt64(1), 100, divideBy(ctx, three))
	restored = repeat(t, divided, 100, multiplyBy(ctx, three))
	return divided, restored
}

// primes divides 1000 by 7, 11 and 13 fifty times and multiplies it back.
func primes(t *testing.T, prec int) decimal.Decimal {
	t.Helper()
	ctx := decimal.MustNewContext(prec)
	seven, eleven, thirteen := decimal.NewFromInt64(7), decimal.NewFromInt64(11), decimal.NewFromInt64(13)
	y := decimal.NewFromInt64(1000)
	for i := 0; i < 50; i++ {
		y = ctx.MustQuo(ctx.MustQuo(ctx.MustQuo(y, seven), eleven), thirteen)
	}
	for i := 0; i < 50; i++ {
		y = ctx.MustMul(ctx.MustMul(ctx.MustMul(y, thirteen), eleven), seven)
	}
	return y
}

func TestDrift_Thirds(t *testing.T) {
	divided, restored := thirds(t, 20)
	require.Equal(t, "0.0000000000000000000000000000000000000000000000019403252174826328378", divided.String())
	require.Equal(t, "1.0000000000000000002", restored.String())

	ctx := decimal.MustNewContext(20)
	err := distance(t, ctx, restored, decimal.NewFromInt64(1))
	require.Equal(t, "0.0000000000000000002", err.String())
	require.Negative(t, err.Cmp(decimal.MustParse("1e-10")))
	require.False(t, restored.Equal(decimal.NewFromInt64(1)))
}

func TestDrift_Primes(t *testing.T) {
	tests := []struct {
		prec int
		want string
	}{
		{5, "0.2"},
		{10, "0.000004"},
		{20, "0.0000000000000003"},
		{64, "0.000000000000000000000000000000000000000000000000000000000006"},
	}
	start := decimal.NewFromInt64(1000)
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.prec), func(t *testing.T) {
			y := primes(t, tt.prec)
			err := distance(t, decimal.MustNewContext(tt.prec), y, start)
			require.Truef(t, err.Equal(decimal.MustParse(tt.want)), "error %v, want %v", err, tt.want)
			require.False(t, err.IsZero())
		})
	}
}

func TestDrift_Batched(t *testing.T) {
	ctx := decimal.MustNewContext(64)
	ten, seven := decimal.NewFromInt64(10), decimal.NewFromInt64(7)

	sequential := repeat(t, ten, 50, divideBy(ctx, seven))

	power, err := ctx.Pow(seven, 50)
	require.NoError(t, err)
	require.Equal(t, "1798465042647412146620280340569649349251249", power.String())
	batched, err := ctx.Quo(ten, power)
	require.NoError(t, err)

	require.Equal(t, "0.000000000000000000000000000000000000000005560297121638573447808725956596668949102138087896243240310394829", sequential.String())
	require.Equal(t, "0.000000000000000000000000000000000000000005560297121638573447808725956596668949102138087896243240310394824", batched.String())
	require.False(t, sequential.Equal(batched))
}

func TestDrift_Zero(t *testing.T) {
	ctx := decimal.MustNewContext(20)
	_, err := ctx.Quo(decimal.MustParse("5"), decimal.MustParse("0"))
	require.Error(t, err)
	require.True(t, decimal.DivisionByZeroError.Has(err))
}

// Error never grows when the same chain is evaluated with more digits.
func TestDrift_MonotonicPrecision(t *testing.T) {
	precisions := []int{5, 10, 20, 64}
	one := decimal.NewFromInt64(1)
	thousand := decimal.NewFromInt64(1000)

	var prevThirds, prevPrimes decimal.Decimal
	for i, prec := range precisions {
		ctx := decimal.MustNewContext(prec)
		_, restored := thirds(t, prec)
		e1 := distance(t, ctx, restored, one)
		e2 := distance(t, ctx, primes(t, prec), thousand)
		if i > 0 {
			require.LessOrEqualf(t, e1.Cmp(prevThirds), 0, "thirds: error at %d digits %v > %v", prec, e1, prevThirds)
			require.LessOrEqualf(t, e2.Cmp(prevPrimes), 0, "primes: error at %d digits %v > %v", prec, e2, prevPrimes)
		}
		prevThirds, prevPrimes = e1, e2
	}
}
