package scenario

import (
	"fmt"
	"sort"

	"github.com/decimal-drift/decimal"
	"github.com/decimal-drift/decimal/expr"
)

var catalog = []Scenario{
	{
		Name:  "thirds",
		Label: "1 / 3 one hundred times, then * 3 one hundred times",
		Run:   runThirds,
	},
	{
		Name:  "primes",
		Label: "1000 / 7 / 11 / 13 fifty times, then * 13 * 11 * 7 fifty times",
		Run:   runPrimes,
	},
	{
		Name:  "batched",
		Label: "10 / 7 fifty times in sequence versus 10 / 7^50 in one step",
		Run:   runBatched,
	},
	{
		Name:  "zero",
		Label: "5 / 0",
		Run:   runZero,
	},
	{
		Name:  "roundtrip",
		Label: "($x / 3) * 3 thirty times starting from 1000",
		Run:   runRoundtrip,
	},
	{
		Name:  "prime-chain",
		Label: "123456789.123456789 divided by the primes 7..31, then multiplied back",
		Run:   runPrimeChain,
	},
	{
		Name:  "tax",
		Label: "99999.99 * 1.08 / 1.08 one hundred times",
		Run:   runTax,
	},
	{
		Name:  "divisors",
		Label: "1 / d one hundred times, then * d one hundred times, for d in 3, 7, 11, 13",
		Run:   runDivisors,
	},
	{
		Name:  "compound",
		Label: "1 / 3 * 5 / 7 * 11 / 13 fifty times versus (55 / 273)^50",
		Run:   runCompound,
	},
	{
		Name:  "construction",
		Label: "long literals rounded to the context, then 1 / 3, pi / 7 and 10 + 5",
		Run:   runConstruction,
	},
}

// All returns every known scenario in catalogue order.
func All() []Scenario {
	return append([]Scenario(nil), catalog...)
}

// Names returns the sorted names of the known scenarios.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// repeat applies op to x n times, feeding every result into the next call.
func repeat(x decimal.Decimal, n int, op func(decimal.Decimal) (decimal.Decimal, error)) (decimal.Decimal, error) {
	var err error
	for i := 0; i < n; i++ {
		x, err = op(x)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return x, nil
}

func quoBy(ctx decimal.Context, e decimal.Decimal) func(decimal.Decimal) (decimal.Decimal, error) {
	return func(d decimal.Decimal) (decimal.Decimal, error) {
		return ctx.Quo(d, e)
	}
}

func mulBy(ctx decimal.Context, e decimal.Decimal) func(decimal.Decimal) (decimal.Decimal, error) {
	return func(d decimal.Decimal) (decimal.Decimal, error) {
		return ctx.Mul(d, e)
	}
}

// divideAndRestore divides start by d n times and multiplies the result
// by d n times.
func divideAndRestore(ctx decimal.Context, t *Trace, start, d decimal.Decimal, n int) (decimal.Decimal, error) {
	x, err := repeat(start, n, quoBy(ctx, d))
	if err != nil {
		return decimal.Decimal{}, err
	}
	t.Step(fmt.Sprintf("%v / %v^%d", start, d, n), x)
	return repeat(x, n, mulBy(ctx, d))
}

func runThirds(ctx decimal.Context, t *Trace) error {
	one := decimal.NewFromInt64(1)
	three := decimal.NewFromInt64(3)
	x, err := divideAndRestore(ctx, t, one, three, 100)
	if err != nil {
		return err
	}
	t.Measure("1 / 3^100 * 3^100", x, one)
	return nil
}

func runPrimes(ctx decimal.Context, t *Trace) error {
	start := decimal.NewFromInt64(1000)
	primes := []decimal.Decimal{
		decimal.NewFromInt64(7),
		decimal.NewFromInt64(11),
		decimal.NewFromInt64(13),
	}

	y := start
	var err error
	for i := 0; i < 50; i++ {
		for _, p := range primes {
			y, err = ctx.Quo(y, p)
			if err != nil {
				return err
			}
		}
	}
	t.Step("1000 / (7 * 11 * 13)^50", y)

	for i := 0; i < 50; i++ {
		for j := len(primes) - 1; j >= 0; j-- {
			y, err = ctx.Mul(y, primes[j])
			if err != nil {
				return err
			}
		}
	}
	t.Measure("1000 / (7 * 11 * 13)^50 * (13 * 11 * 7)^50", y, start)
	return nil
}

func runBatched(ctx decimal.Context, t *Trace) error {
	ten := decimal.NewFromInt64(10)
	seven := decimal.NewFromInt64(7)

	sequential, err := repeat(ten, 50, quoBy(ctx, seven))
	if err != nil {
		return err
	}
	t.Step("sequential 10 / 7 / 7 ... (50 times)", sequential)

	batch := expr.Quo(expr.Lit(ten), expr.Pow(expr.Lit(seven), 50))
	batched, err := batch.Eval(ctx, nil)
	if err != nil {
		return err
	}
	t.Step("batched "+batch.String(), batched)

	t.Measure("sequential versus batched", sequential, batched)
	return nil
}

func runZero(ctx decimal.Context, t *Trace) error {
	five := decimal.MustParse("5")
	zero := decimal.MustParse("0")
	q, err := ctx.Quo(five, zero)
	if err != nil {
		return err
	}
	t.Step("5 / 0", q)
	return nil
}

func runRoundtrip(ctx decimal.Context, t *Trace) error {
	start := decimal.NewFromInt64(1000)
	step := expr.Mul(expr.Quo(expr.Var("x"), expr.Int(3)), expr.Int(3))
	t.Note("formula", step.String())

	x := start
	var err error
	for i := 0; i < 30; i++ {
		x, err = step.Eval(ctx, expr.Env{"x": x})
		if err != nil {
			return err
		}
	}
	t.Measure("after 30 evaluations", x, start)
	return nil
}

func runPrimeChain(ctx decimal.Context, t *Trace) error {
	start := decimal.MustParse("123456789.123456789")
	primes := []int64{7, 11, 13, 17, 19, 23, 29, 31}

	x := start
	var err error
	for _, p := range primes {
		x, err = ctx.Quo(x, decimal.NewFromInt64(p))
		if err != nil {
			return err
		}
		t.Step(fmt.Sprintf("/ %d", p), x)
	}
	for i := len(primes) - 1; i >= 0; i-- {
		x, err = ctx.Mul(x, decimal.NewFromInt64(primes[i]))
		if err != nil {
			return err
		}
		t.Step(fmt.Sprintf("* %d", primes[i]), x)
	}
	t.Measure("restored", x, start)
	return nil
}

func runTax(ctx decimal.Context, t *Trace) error {
	price := decimal.MustParse("99999.99")
	rate := decimal.MustParse("1.08")

	x := price
	var err error
	for i := 0; i < 100; i++ {
		x, err = ctx.Mul(x, rate)
		if err != nil {
			return err
		}
		x, err = ctx.Quo(x, rate)
		if err != nil {
			return err
		}
	}
	t.Measure("after 100 round trips", x, price)
	return nil
}

func runDivisors(ctx decimal.Context, t *Trace) error {
	one := decimal.NewFromInt64(1)
	for _, d := range []int64{3, 7, 11, 13} {
		div := decimal.NewFromInt64(d)
		x, err := divideAndRestore(ctx, t, one, div, 100)
		if err != nil {
			return err
		}
		t.Measure(fmt.Sprintf("1 / %d^100 * %d^100", d, d), x, one)
	}
	return nil
}

func runCompound(ctx decimal.Context, t *Trace) error {
	cycle := []struct {
		op func(d, e decimal.Decimal) (decimal.Decimal, error)
		by decimal.Decimal
	}{
		{ctx.Quo, decimal.NewFromInt64(3)},
		{ctx.Mul, decimal.NewFromInt64(5)},
		{ctx.Quo, decimal.NewFromInt64(7)},
		{ctx.Mul, decimal.NewFromInt64(11)},
		{ctx.Quo, decimal.NewFromInt64(13)},
	}

	z := decimal.NewFromInt64(1)
	var err error
	for i := 0; i < 50; i++ {
		for _, c := range cycle {
			z, err = c.op(z, c.by)
			if err != nil {
				return err
			}
		}
	}
	t.Step("sequential (1 / 3 * 5 / 7 * 11 / 13)^50", z)

	batch := expr.Pow(expr.Quo(expr.Int(55), expr.Int(273)), 50)
	batched, err := batch.Eval(ctx, nil)
	if err != nil {
		return err
	}
	t.Step("batched "+batch.String(), batched)

	t.Measure("sequential versus batched", z, batched)
	return nil
}

// pi to fifty decimal places
const piLiteral = "3.14159265358979323846264338327950288419716939937510"

func runConstruction(ctx decimal.Context, t *Trace) error {
	for _, s := range []string{"123.456789123456789", "0.123456789123456789123456789123456789"} {
		lit, err := decimal.Parse(s)
		if err != nil {
			return err
		}
		t.Step("parse "+s, lit)
		rounded, err := ctx.Round(lit)
		if err != nil {
			return err
		}
		t.Measure("round "+s, rounded, lit)
	}

	third, err := ctx.Quo(decimal.NewFromInt64(1), decimal.NewFromInt64(3))
	if err != nil {
		return err
	}
	t.Step("1 / 3", third)

	pi := decimal.MustParse(piLiteral)
	q, err := ctx.Quo(pi, decimal.NewFromInt64(7))
	if err != nil {
		return err
	}
	t.Step("pi / 7", q)

	five, err := ctx.Round(decimal.NewFromInt64(5))
	if err != nil {
		return err
	}
	sum, err := ctx.Add(decimal.NewFromInt64(10), five)
	if err != nil {
		return err
	}
	t.Step("10 + 5", sum)
	return nil
}
