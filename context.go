package decimal

import (
	"fmt"
	"strings"
)

// MinPrecision is the smallest number of significant digits a [Context]
// can keep. [NewContext] rejects anything lower with [PrecisionTooLowError].
const MinPrecision = 1

// guardDigits is the number of extra quotient digits computed before rounding.
const guardDigits = 2

// RoundingMode determines how a result with too many digits is rounded.
type RoundingMode uint8

// The following rounding modes are supported.
const (
	HalfUp   RoundingMode = iota // round half away from zero
	HalfEven                     // round half to even
	Down                         // round towards zero
)

var roundingNames = [...]string{
	HalfUp:   "half-up",
	HalfEven: "half-even",
	Down:     "down",
}

// ParseRoundingMode converts a name such as "half-up" to a rounding mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for m, name := range roundingNames {
		if strings.EqualFold(s, name) {
			return RoundingMode(m), nil
		}
	}
	return 0, InvalidOperationError.New("unknown rounding mode %q", s)
}

// String returns the name of the rounding mode.
func (m RoundingMode) String() string {
	if int(m) < len(roundingNames) {
		return roundingNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// MarshalText implements [encoding.TextMarshaler] interface.
func (m RoundingMode) MarshalText() ([]byte, error) {
	if int(m) >= len(roundingNames) {
		return nil, InvalidOperationError.New("unknown rounding mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see function [ParseRoundingMode].
func (m *RoundingMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseRoundingMode(string(text))
	return err
}

// needsInc reports whether a quotient q with remainder r of a division
// by y has to be incremented by one unit.
func (m RoundingMode) needsInc(q, r, y *mag) bool {
	if m == Down || r.sign() == 0 {
		return false
	}
	h := getMag()
	defer putMag(h)
	switch h.add(r, r).cmp(y) {
	case 1:
		return true
	case 0:
		return m == HalfUp || q.odd()
	}
	return false
}

// Context holds the precision and the rounding mode used by arithmetic
// operations.
// Every operation rounds its exact result to the precision of the context
// it was called on, so a chain of operations accumulates rounding error
// step by step.
//
// Operands and results are limited to exponents whose most significant
// digit stays within ±[MaxExponent]; anything else fails with
// [OverflowError] instead of wrapping around.
//
// Context is an immutable value; use [NewContext] to create one.
// The zero value has no precision and every operation on it fails with
// [PrecisionTooLowError].
type Context struct {
	prec int          // number of significant digits kept after each operation
	mode RoundingMode // how discarded digits are rounded
}

// NewContext returns a context with the given precision that rounds
// half away from zero.
func NewContext(prec int) (Context, error) {
	return NewContextWithRounding(prec, HalfUp)
}

// NewContextWithRounding returns a context with the given precision and
// rounding mode.
//
// NewContextWithRounding returns an error if:
//   - the precision is less than [MinPrecision];
//   - the rounding mode is unknown.
func NewContextWithRounding(prec int, mode RoundingMode) (Context, error) {
	c := Context{prec: prec, mode: mode}
	if err := c.validate(); err != nil {
		return Context{}, err
	}
	return c, nil
}

// MustNewContext is like [NewContext] but panics if the precision is invalid.
// It simplifies safe initialization of global variables holding contexts.
func MustNewContext(prec int) Context {
	c, err := NewContext(prec)
	if err != nil {
		panic(fmt.Sprintf("MustNewContext(%v) failed: %v", prec, err))
	}
	return c
}

// Precision returns the number of significant digits kept by c.
func (c Context) Precision() int {
	return c.prec
}

// Rounding returns the rounding mode of c.
func (c Context) Rounding() RoundingMode {
	return c.mode
}

// String returns a short description such as "precision=20 rounding=half-up".
func (c Context) String() string {
	return fmt.Sprintf("precision=%d rounding=%v", c.prec, c.mode)
}

func (c Context) validate() error {
	switch {
	case c.prec < MinPrecision:
		return PrecisionTooLowError.New("precision %d is less than %d", c.prec, MinPrecision)
	case int(c.mode) >= len(roundingNames):
		return InvalidOperationError.New("unknown rounding mode %d", uint8(c.mode))
	}
	return nil
}

// check validates c and the exponents of the operands. Operands within
// range keep every exponent sum and difference far from int overflow.
func (c Context) check(operands ...Decimal) error {
	if err := c.validate(); err != nil {
		return err
	}
	for _, d := range operands {
		if n := d.Prec(); !exponentInRange(d.exp, n) {
			return OverflowError.New("operand exponent %d with %d digits is beyond ±%d", d.exp, n, MaxExponent)
		}
	}
	return nil
}

// round builds a decimal from an exact result, rounding the coefficient
// to the precision of c. The coefficient is modified in place.
// A result whose most significant digit ends up beyond ±MaxExponent fails
// with [OverflowError].
func (c Context) round(neg bool, coef *mag, exp int) (Decimal, error) {
	n := coef.digits()
	if n > c.prec {
		coef.shr(coef, n-c.prec, c.mode)
		exp += n - c.prec
		n = c.prec
		// Rounding 99..9 up carries into an extra digit, which is always 0.
		if coef.digits() > c.prec {
			coef.shr(coef, 1, Down)
			exp++
		}
	}
	if !exponentInRange(exp, n) {
		return Decimal{}, OverflowError.New("result exponent %d with %d digits is beyond ±%d", exp, n, MaxExponent)
	}
	return newDecimal(neg, coef, exp), nil
}

// Round returns d rounded to the precision of c.
// Literals are never rounded on construction; Round is the explicit way to
// bring one within a context.
func (c Context) Round(d Decimal) (Decimal, error) {
	if err := c.check(d); err != nil {
		return Decimal{}, err
	}
	return c.round(d.neg, d.coefficient().copy(), d.exp)
}

// Add returns the sum of d and e rounded to the precision of c.
// The exact sum has the smaller of the two exponents.
func (c Context) Add(d, e Decimal) (Decimal, error) {
	if err := c.check(d, e); err != nil {
		return Decimal{}, err
	}

	// Align both magnitudes to the smaller exponent.
	exp := min(d.exp, e.exp)
	x := new(mag).shl(d.coefficient(), d.exp-exp)
	y := new(mag).shl(e.coefficient(), e.exp-exp)

	// The sign follows the larger magnitude.
	neg := e.neg
	if x.cmp(y) > 0 {
		neg = d.neg
	}

	if d.neg == e.neg {
		x.add(x, y)
	} else {
		x.diff(x, y)
	}
	return c.round(neg, x, exp)
}

// Sub returns the difference of d and e rounded to the precision of c.
func (c Context) Sub(d, e Decimal) (Decimal, error) {
	return c.Add(d, e.Neg())
}

// Mul returns the product of d and e rounded to the precision of c.
// The exact product has the exponent d.Exp() + e.Exp().
func (c Context) Mul(d, e Decimal) (Decimal, error) {
	if err := c.check(d, e); err != nil {
		return Decimal{}, err
	}
	x := new(mag).mul(d.coefficient(), e.coefficient())
	return c.round(d.neg != e.neg, x, d.exp+e.exp)
}

// Quo returns the quotient of d and e rounded to the precision of c.
// The quotient is computed by long division to the precision of c plus
// guard digits and a sticky digit that marks a non-zero remainder, so the
// rounded result is the same as rounding the exact quotient.
// Trailing zeros of an exact quotient are removed down to the exponent
// d.Exp() - e.Exp().
//
// Quo returns [DivisionByZeroError] if e is zero.
func (c Context) Quo(d, e Decimal) (Decimal, error) {
	if err := c.check(d, e); err != nil {
		return Decimal{}, err
	}
	if e.IsZero() {
		return Decimal{}, DivisionByZeroError.New("%v / %v", d, e)
	}

	ideal := d.exp - e.exp
	if d.IsZero() {
		return c.round(false, new(mag), ideal)
	}

	// Scale the dividend so the quotient has at least prec + guardDigits digits.
	y := e.coefficient()
	shift := max(c.prec+guardDigits+y.digits()-d.Prec(), 0)
	q := new(mag).shl(d.coefficient(), shift)
	exp := ideal - shift

	r := getMag()
	defer putMag(r)
	q.quoRem(q, y, r)
	switch {
	case r.sign() != 0:
		// sticky digit
		q.shl(q, 1).add(q, magOne)
		exp--
	default:
		if t := min(q.trailingZeros(), ideal-exp); t > 0 {
			q.shr(q, t, Down)
			exp += t
		}
	}

	return c.round(d.neg != e.neg, q, exp)
}

// Pow returns d raised to the power n.
// The power is computed by repeated squaring, and every multiplication is
// rounded to the precision of c. The result therefore carries the same
// kind of accumulated error as the equivalent chain of [Context.Mul] calls.
//
// Pow returns [InvalidOperationError] if n is negative.
func (c Context) Pow(d Decimal, n int) (Decimal, error) {
	if err := c.check(d); err != nil {
		return Decimal{}, err
	}

	// Special cases
	switch {
	case n < 0:
		return Decimal{}, InvalidOperationError.New("%v ^ %v: negative power", d, n)
	case n == 0:
		return New(1, 0), nil
	}

	// General case
	f, err := c.Pow(d, n/2)
	if err != nil {
		return Decimal{}, err
	}
	f, err = c.Mul(f, f)
	if err != nil {
		return Decimal{}, err
	}
	if n%2 == 1 {
		f, err = c.Mul(f, d)
		if err != nil {
			return Decimal{}, err
		}
	}
	return f, nil
}
