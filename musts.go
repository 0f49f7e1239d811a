package decimal

import "fmt"

// MustAdd is like [Context.Add] but panics if computing error.
func (c Context) MustAdd(d, e Decimal) Decimal {
	f, err := c.Add(d, e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustSub is like [Context.Sub] but panics if computing error.
func (c Context) MustSub(d, e Decimal) Decimal {
	f, err := c.Sub(d, e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustMul is like [Context.Mul] but panics if computing error.
func (c Context) MustMul(d, e Decimal) Decimal {
	f, err := c.Mul(d, e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustQuo is like [Context.Quo] but panics if computing error.
func (c Context) MustQuo(d, e Decimal) Decimal {
	f, err := c.Quo(d, e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustPow is like [Context.Pow] but panics if computing error.
func (c Context) MustPow(d Decimal, n int) Decimal {
	f, err := c.Pow(d, n)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v, %v) failed: %v", d, n, err))
	}
	return f
}
