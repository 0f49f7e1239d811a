/*
Package decimal implements immutable arbitrary-precision decimal numbers
together with an explicit arithmetic context.
It is specifically designed to study how rounding error accumulates when a
chain of operations is evaluated one step at a time.

# Representation

[Decimal] is a struct with three fields:

  - Sign: a boolean indicating whether the decimal is negative.
  - Coefficient: an arbitrary-precision non-negative integer holding the
    significant digits of the decimal.
  - Exponent: an integer indicating the power of ten of the last digit
    of the coefficient.
    For example, a decimal with a coefficient of 12345 and an exponent of -2
    represents the value 123.45.

The numerical value of a decimal is calculated as:

  - -Coefficient * 10^Exponent, if Sign is true.
  - Coefficient * 10^Exponent, if Sign is false.

In this approach, the same numeric value can have multiple representations.
For example, 1, 1.0, and 1.00 all represent the same value but have different
exponents and coefficients. [Decimal.Equal] and [Decimal.Cmp] compare values.
[Decimal.String] prints a decimal with an integral value without a fraction,
so 1.00 is displayed as 1.

Special values such as NaN, Infinity, or negative zeros are not supported.

# Context

Unlike decimals with a fixed implicit precision, every arithmetic operation
is a method of a [Context]:

	| Attribute       | Value                                        |
	| --------------- | -------------------------------------------- |
	| Precision       | chosen by the caller, at least [MinPrecision] |
	| Rounding Method | [HalfUp] unless chosen with [NewContextWithRounding] |

A context is an immutable value, so there is no shared default that one
computation could reconfigure under another.
Create one context per precision you want to work with:

	ctx20, err := decimal.NewContext(20)
	ctx64, err := decimal.NewContext(64)

# Conversions

Decimals are created by:

  - from string: [Parse], [MustParse], [Decimal.UnmarshalText].
  - from integer: [New], [NewFromInt64], [NewFromBigInt].

Construction is always exact: a literal keeps all of its digits whatever
context it is used with later. [Context.Round] applies a context to a
literal explicitly.

Decimals are converted to strings by [Decimal.String] and [Decimal.Format].

# Operations

Each arithmetic operation is carried out in two steps:

 1. The exact mathematical result is computed using [big.Int] arithmetic.
    [Context.Quo] computes the quotient to the precision of the context
    plus guard digits and a sticky digit, which is enough to round it as if
    it was exact.

 2. The result is rounded to the precision of the context.

[Context.Pow] uses repeated squaring and rounds every intermediate product,
so its error matches the chain of multiplications it replaces.

Rounding is never deferred. Dividing by 7 fifty times in a row therefore
produces a slightly different value than dividing once by 7^50, even at a
precision of 64 digits.

# Rounding

Results with more digits than the precision of the context are rounded to
that precision using the context's [RoundingMode]:

  - [HalfUp]: the retained digits are incremented if the first discarded
    digit is 5 or more. At a precision of 3, 1.245 becomes 1.25.
  - [HalfEven]: ties are rounded to an even last digit.
  - [Down]: discarded digits are dropped.

A carry that produces an extra digit moves into the exponent:
rounding 999.5 to 3 digits gives 1.00e+3.

# Errors

All methods are pure; they return errors instead of panicking,
except for the Must* helpers.
Errors belong to the following classes:

  - [ParseError]: malformed literal.
  - [DivisionByZeroError]: divisor is zero.
  - [PrecisionTooLowError]: context precision below [MinPrecision].
  - [OverflowError]: operand or result exponent beyond [MaxExponent].
  - [InvalidOperationError]: negative power or unknown rounding mode.
  - [UndefinedError]: expression variable missing from its environment.

[big.Int]: https://pkg.go.dev/math/big#Int
*/
package decimal
