package decimal

import "github.com/zeebo/errs"

// Error classes returned by the package.
// Use the Has method of a class to test an error, for example
// DivisionByZeroError.Has(err).
var (
	// ParseError is returned for malformed decimal literals.
	ParseError = errs.Class("parse error")

	// DivisionByZeroError is returned when a divisor is exactly zero.
	DivisionByZeroError = errs.Class("division by zero")

	// PrecisionTooLowError is returned for a context with fewer than
	// [MinPrecision] significant digits.
	PrecisionTooLowError = errs.Class("precision too low")

	// OverflowError is returned when an operand or a result has its most
	// significant digit beyond ±[MaxExponent].
	OverflowError = errs.Class("overflow")

	// InvalidOperationError is returned for operations without a decimal
	// result, such as a negative power, or for unknown rounding modes.
	InvalidOperationError = errs.Class("invalid operation")

	// UndefinedError is returned when an expression refers to a variable
	// missing from its environment.
	UndefinedError = errs.Class("undefined variable")
)
