package decimal

import (
	"math/big"
	"sort"
	"sync"
)

// mag is the magnitude of a decimal, the non-negative integer holding its
// significant digits.
// A mag referenced by a [Decimal] is never modified after construction;
// arithmetic always writes into a fresh or pooled mag.
type mag big.Int

// pow10 holds the powers of ten from 10^0 to 10^159.
var pow10 = func() (t [160]*mag) {
	p := big.NewInt(1)
	base := big.NewInt(10)
	for i := range t {
		t[i] = (*mag)(new(big.Int).Set(p))
		p.Mul(p, base)
	}
	return t
}()

var (
	zeroMag = (*mag)(new(big.Int))
	magOne  = pow10[0]
	magTen  = pow10[1]
)

func (z *mag) int() *big.Int {
	return (*big.Int)(z)
}

// magOf returns |x|.
func magOf(x int64) *mag {
	z := new(mag)
	z.int().Abs(big.NewInt(x))
	return z
}

// parseMag converts a string of decimal digits.
func parseMag(s string) (*mag, bool) {
	z, ok := new(big.Int).SetString(s, 10)
	return (*mag)(z), ok
}

func (z *mag) sign() int {
	return z.int().Sign()
}

func (z *mag) cmp(x *mag) int {
	return z.int().Cmp(x.int())
}

func (z *mag) text() string {
	return z.int().String()
}

func (z *mag) odd() bool {
	return z.int().Bit(0) == 1
}

// add sets z to x + y.
func (z *mag) add(x, y *mag) *mag {
	z.int().Add(x.int(), y.int())
	return z
}

// mul sets z to x * y.
func (z *mag) mul(x, y *mag) *mag {
	z.int().Mul(x.int(), y.int())
	return z
}

// copy returns a fresh mag with the value of z.
func (z *mag) copy() *mag {
	return (*mag)(new(big.Int).Set(z.int()))
}

// diff sets z to |x - y|.
func (z *mag) diff(x, y *mag) *mag {
	if x.cmp(y) < 0 {
		x, y = y, x
	}
	z.int().Sub(x.int(), y.int())
	return z
}

// quoRem sets z to x / y and r to x % y.
func (z *mag) quoRem(x, y, r *mag) {
	z.int().QuoRem(x.int(), y.int(), r.int())
}

// setPow10 sets z to 10^n for n >= 0.
func (z *mag) setPow10(n int) *mag {
	if n < len(pow10) {
		z.int().Set(pow10[n].int())
		return z
	}
	z.int().Exp(magTen.int(), big.NewInt(int64(n)), nil)
	return z
}

// shl sets z to x * 10^n.
func (z *mag) shl(x *mag, n int) *mag {
	if n <= 0 {
		z.int().Set(x.int())
		return z
	}
	p := getMag()
	defer putMag(p)
	return z.mul(x, p.setPow10(n))
}

// shr sets z to x / 10^n, rounded with mode.
func (z *mag) shr(x *mag, n int, mode RoundingMode) *mag {
	if n <= 0 || x.sign() == 0 {
		z.int().Set(x.int())
		return z
	}
	p := getMag()
	defer putMag(p)
	r := getMag()
	defer putMag(r)
	p.setPow10(n)
	z.quoRem(x, p, r)
	if mode.needsInc(z, r, p) {
		z.add(z, magOne)
	}
	return z
}

// digits returns the number of decimal digits in z. Zero has no digits.
func (z *mag) digits() int {
	if z.cmp(pow10[len(pow10)-1]) >= 0 {
		return len(z.text())
	}
	return sort.Search(len(pow10), func(i int) bool {
		return z.cmp(pow10[i]) < 0
	})
}

// trailingZeros returns the number of trailing zero digits in z.
// Zero has none.
func (z *mag) trailingZeros() int {
	if z.sign() == 0 {
		return 0
	}
	q := getMag()
	defer putMag(q)
	r := getMag()
	defer putMag(r)
	q.int().Set(z.int())
	n := 0
	for {
		q.quoRem(q, magTen, r)
		if r.sign() != 0 {
			return n
		}
		n++
	}
}

// pool holds scratch values for intermediate results that never escape.
var pool = sync.Pool{
	New: func() any {
		return new(mag)
	},
}

func getMag() *mag {
	return pool.Get().(*mag)
}

func putMag(z *mag) {
	pool.Put(z)
}
