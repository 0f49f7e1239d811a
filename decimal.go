package decimal

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Decimal type is a representation of an arbitrary-precision decimal number.
// The zero value is the numeric value of 0.
// Decimals are immutable, so they are safe for concurrent use by multiple
// goroutines.
//
// A decimal is made of three parts:
//
//   - Sign: set when the decimal is below zero.
//   - Coefficient: a non-negative integer holding the significant digits.
//   - Exponent: the power of ten the coefficient is multiplied by.
//
// For example, a decimal with a coefficient of 12345 and an exponent of -2
// represents the value 123.45.
// The same number can therefore be written in several ways:
// 1, 1.0, and 1.00 are equal but keep different exponents and coefficients. [Decimal.Equal] compares values,
// not representations.
type Decimal struct {
	neg  bool // indicates whether the decimal is negative
	exp  int  // the power of ten of the least significant digit
	coef *mag  // the coefficient of the decimal, nil for zero
}

// MaxExponent is the largest absolute value of the exponent part accepted
// by [Parse]. It also bounds the exponent of the most significant digit of
// every parsed literal and of every result of a [Context] operation.
const MaxExponent = 999_999

// exponentInRange reports whether a coefficient with the given number of
// digits keeps its most significant digit within ±MaxExponent.
// Zero counts as a single digit.
func exponentInRange(exp, digits int) bool {
	n := max(digits, 1)
	return exp >= 1-n-MaxExponent && exp <= MaxExponent+1-n
}

func newDecimal(neg bool, coef *mag, exp int) Decimal {
	if coef == nil || coef.sign() == 0 {
		return Decimal{exp: exp}
	}
	return Decimal{neg: neg, coef: coef, exp: exp}
}

// coefficient returns the coefficient of d, which must not be modified.
func (d Decimal) coefficient() *mag {
	if d.coef == nil {
		return zeroMag
	}
	return d.coef
}

// New returns a decimal equal to coef * 10^exp.
// New never rounds.
func New(coef int64, exp int) Decimal {
	return newDecimal(coef < 0, magOf(coef), exp)
}

// NewFromInt64 returns a decimal equal to the integer i.
func NewFromInt64(i int64) Decimal {
	return New(i, 0)
}

// NewFromBigInt returns a decimal equal to coef * 10^exp.
// NewFromBigInt never rounds and does not retain coef.
func NewFromBigInt(coef *big.Int, exp int) Decimal {
	c := new(mag)
	c.int().Abs(coef)
	return newDecimal(coef.Sign() < 0, c, exp)
}

// Parse converts a string to an exact decimal.
// Accepted inputs look like:
//
//	1.234
//	-1234
//	+0.000001234
//	.5
//	1.83e5
//	0.22e-9
//
// In EBNF:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	exponent       ::= ('e' | 'E') [sign] digits
//	numeric-string ::= [sign] significand [exponent]
//
// Parse keeps every digit of the input, including trailing zeros in the
// fractional part, whatever precision the result is later used with.
// Use [Context.Round] to round a literal explicitly.
//
// Parse returns [ParseError]:
//   - if string does not represent a valid decimal number;
//   - if the exponent part is greater than [MaxExponent] in absolute value;
//   - if the most significant digit lies beyond ±[MaxExponent].
func Parse(s string) (Decimal, error) {
	sc := scanner{s: s}

	neg := sc.sign()
	whole := sc.digits()
	var frac string
	if sc.accept(".") {
		frac = sc.digits()
	}
	var esym, eneg bool
	var edigits string
	if sc.accept("eE") {
		esym = true
		eneg = sc.sign()
		edigits = sc.digits()
	}

	switch {
	case sc.pos != len(s):
		return Decimal{}, ParseError.New("%q: invalid character %q", s, s[sc.pos])
	case whole == "" && frac == "":
		return Decimal{}, ParseError.New("%q: no coefficient", s)
	case esym && edigits == "":
		return Decimal{}, ParseError.New("%q: no exponent", s)
	}

	exp := 0
	if esym {
		v, err := strconv.Atoi(edigits)
		if err != nil || v > MaxExponent {
			return Decimal{}, ParseError.New("%q: exponent out of range", s)
		}
		if eneg {
			v = -v
		}
		exp = v
	}

	coef, ok := parseMag(whole + frac)
	if !ok {
		return Decimal{}, ParseError.New("%q: invalid coefficient", s)
	}
	exp -= len(frac)
	if !exponentInRange(exp, coef.digits()) {
		return Decimal{}, ParseError.New("%q: exponent out of range", s)
	}
	return newDecimal(neg, coef, exp), nil
}

// scanner walks a numeric string one token at a time.
type scanner struct {
	s   string
	pos int
}

// accept consumes the next byte if it is one of chars.
func (sc *scanner) accept(chars string) bool {
	if sc.pos < len(sc.s) && strings.IndexByte(chars, sc.s[sc.pos]) >= 0 {
		sc.pos++
		return true
	}
	return false
}

// sign consumes an optional sign and reports whether it was '-'.
func (sc *scanner) sign() bool {
	neg := sc.pos < len(sc.s) && sc.s[sc.pos] == '-'
	sc.accept("+-")
	return neg
}

// digits consumes a run of decimal digits, possibly empty.
func (sc *scanner) digits() string {
	start := sc.pos
	for sc.pos < len(sc.s) && '0' <= sc.s[sc.pos] && sc.s[sc.pos] <= '9' {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// MustParse is like [Parse] but panics on malformed input.
// It is meant for package-level literals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// String implements the [fmt.Stringer] interface.
// The returned string does not use scientific notation and is formatted
// according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// A decimal with an integral value is written as an integer, so 1.00 and
// 0.000 print as 1 and 0. Any other decimal shows every digit of its
// coefficient, trailing zeros included.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	coef := d.coefficient().text()

	var buf strings.Builder
	buf.Grow(len(coef) + 3)

	if d.IsNeg() {
		buf.WriteByte('-')
	}
	switch {
	case d.IsZero():
		buf.WriteByte('0')
	case d.exp >= 0:
		buf.WriteString(coef)
		buf.WriteString(strings.Repeat("0", d.exp))
	case d.IsInt():
		// the fraction is all zeros
		buf.WriteString(coef[:len(coef)+d.exp])
	case -d.exp < len(coef):
		// point inside the coefficient
		buf.WriteString(coef[:len(coef)+d.exp])
		buf.WriteByte('.')
		buf.WriteString(coef[len(coef)+d.exp:])
	default:
		buf.WriteString("0.")
		buf.WriteString(strings.Repeat("0", -d.exp-len(coef)))
		buf.WriteString(coef)
	}

	return buf.String()
}

// sci returns a string representation of d in scientific notation,
// for example -1.2345e-7.
func (d Decimal) sci(echar byte) string {
	coef := d.coefficient().text()
	adj := d.exp + len(coef) - 1
	if d.IsZero() {
		adj = d.exp
	}

	var buf strings.Builder
	if d.IsNeg() {
		buf.WriteByte('-')
	}
	buf.WriteByte(coef[0])
	if len(coef) > 1 {
		buf.WriteByte('.')
		buf.WriteString(coef[1:])
	}
	buf.WriteByte(echar)
	if adj >= 0 {
		buf.WriteByte('+')
	}
	buf.WriteString(strconv.Itoa(adj))
	return buf.String()
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface
// using [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements the [encoding.TextMarshaler] interface
// using [Decimal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Format implements the [fmt.Formatter] interface.
// Supported [verbs]:
//
//	%s, %v: -123.456
//	%q:    "-123.456"
//	%e:     -1.23456e+2
//	%E:     -1.23456E+2
//
// The '+' flag forces a sign and width pads with spaces, on the right
// when the '-' flag is set.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d Decimal) Format(state fmt.State, verb rune) {
	var s string
	switch verb {
	case 'e', 'E':
		s = d.sci(byte(verb))
	default:
		s = d.String()
	}

	// Explicit plus
	if state.Flag('+') && !d.IsNeg() {
		s = "+" + s
	}

	if verb == 'q' {
		s = strconv.Quote(s)
	}

	if w, ok := state.Width(); ok && w > len(s) {
		pad := strings.Repeat(" ", w-len(s))
		if state.Flag('-') {
			s = s + pad
		} else {
			s = pad + s
		}
	}

	switch verb {
	case 'q', 's', 'v', 'e', 'E':
		fmt.Fprint(state, s)
	default:
		fmt.Fprintf(state, "%%!%c(decimal.Decimal=%s)", verb, s)
	}
}

// Prec returns the number of significant digits in the coefficient.
// Prec returns 0 for a zero decimal.
func (d Decimal) Prec() int {
	return d.coefficient().digits()
}

// Exp returns the exponent of the decimal.
func (d Decimal) Exp() int {
	return d.exp
}

// Coef returns a copy of the signed coefficient of the decimal, so that
// d == Coef() * 10^Exp().
func (d Decimal) Coef() *big.Int {
	c := new(big.Int).Set(d.coefficient().int())
	if d.neg {
		c.Neg(c)
	}
	return c
}

// IsInt reports whether d has no fractional part.
func (d Decimal) IsInt() bool {
	return d.exp >= 0 || d.IsZero() || d.coefficient().trailingZeros() >= -d.exp
}

// Reduce strips the trailing zeros of the coefficient.
// The result is equal to d.
func (d Decimal) Reduce() Decimal {
	if d.IsZero() {
		return Decimal{}
	}
	t := d.coefficient().trailingZeros()
	if t == 0 {
		return d
	}
	return newDecimal(d.neg, new(mag).shr(d.coefficient(), t, Down), d.exp+t)
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return newDecimal(!d.neg, d.coef, d.exp)
}

// Abs returns |d|.
// Abs is exact and never rounds.
func (d Decimal) Abs() Decimal {
	return newDecimal(false, d.coef, d.exp)
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Decimal) Sign() int {
	switch {
	case d.neg:
		return -1
	case d.IsZero():
		return 0
	}
	return 1
}

// IsPos reports whether d > 0.
func (d Decimal) IsPos() bool {
	return !d.IsZero() && !d.neg
}

// IsNeg reports whether d < 0.
func (d Decimal) IsNeg() bool {
	return d.neg
}

// IsZero reports whether d == 0.
func (d Decimal) IsZero() bool {
	return d.coef == nil || d.coef.sign() == 0
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// Cmp is exact and does not depend on any context.
func (d Decimal) Cmp(e Decimal) int {
	// Signs differ or both are zero.
	switch {
	case e.Sign() < d.Sign():
		return 1
	case d.Sign() < e.Sign():
		return -1
	case d.IsZero():
		return 0
	}

	// Special case: different magnitudes
	dadj := d.exp + d.Prec()
	eadj := e.exp + e.Prec()
	switch {
	case eadj < dadj:
		return d.Sign()
	case dadj < eadj:
		return -e.Sign()
	}

	// General case: same sign and adjusted exponent, so the alignment
	// shift is bounded by the number of digits.
	exp := min(d.exp, e.exp)
	x := getMag()
	defer putMag(x)
	y := getMag()
	defer putMag(y)
	r := x.shl(d.coefficient(), d.exp-exp).cmp(y.shl(e.coefficient(), e.exp-exp))
	if d.neg {
		return -r
	}
	return r
}

// Equal returns true if d and e denote the same number.
// The representations may differ: 1.50 is equal to 1.5.
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0
}

// Max returns the larger of d and e, preferring d on a tie.
func (d Decimal) Max(e Decimal) Decimal {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns the smaller of d and e, preferring d on a tie.
func (d Decimal) Min(e Decimal) Decimal {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}
