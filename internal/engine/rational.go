package engine

import "fmt"

// Rational is a non-negative rational number, always kept in lowest terms
// with a denominator of at least 1. Construct values with NewRational or
// Nat; the arithmetic methods preserve the invariant.
//
// Rationals carry the sub-cell offsets of the movement algorithm across
// scale changes. Entering a block multiplies the offset by the block's
// extent and exiting divides it back, so the arithmetic has to round-trip
// exactly; floating point drifts on deep recursions.
type Rational struct {
	Num int
	Den int
}

// Half is the centered offset that every push starts with.
var Half = Rational{Num: 1, Den: 2}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// NewRational returns num/den reduced to lowest terms.
// Panics if den is zero or either argument is negative.
func NewRational(num, den int) Rational {
	if den == 0 {
		panic("engine: rational denominator cannot be zero")
	}
	if num < 0 || den < 0 {
		panic("engine: rational cannot be negative")
	}
	d := gcd(num, den)
	if d == 0 {
		// Not reached while den is non-zero: gcd(num, den) is then at
		// least 1, and num == 0 reduces to 0/1 below.
		return Rational{Num: 0, Den: 1}
	}
	return Rational{Num: num / d, Den: den / d}
}

// Nat returns the rational n/1.
func Nat(n int) Rational {
	return NewRational(n, 1)
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return NewRational(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

// Sub returns r - o. Panics if the result would be negative.
func (r Rational) Sub(o Rational) Rational {
	n := r.Num*o.Den - o.Num*r.Den
	if n < 0 {
		panic("engine: rational subtraction underflow")
	}
	return NewRational(n, r.Den*o.Den)
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	return NewRational(r.Num*o.Num, r.Den*o.Den)
}

// Div returns r / o. Panics if o is zero.
func (r Rational) Div(o Rational) Rational {
	if o.Num == 0 {
		panic("engine: rational division by zero")
	}
	return NewRational(r.Num*o.Den, r.Den*o.Num)
}

// AddNat returns r + n.
func (r Rational) AddNat(n int) Rational {
	if n < 0 {
		panic("engine: rational cannot be negative")
	}
	return Rational{Num: r.Num + n*r.Den, Den: r.Den}
}

// SubNat returns r - n. Panics if the result would be negative.
func (r Rational) SubNat(n int) Rational {
	m := r.Num - n*r.Den
	if m < 0 {
		panic("engine: rational subtraction underflow")
	}
	return Rational{Num: m, Den: r.Den}
}

// MulNat returns r * n.
func (r Rational) MulNat(n int) Rational {
	if n < 0 {
		panic("engine: rational cannot be negative")
	}
	d := gcd(n, r.Den)
	if d == 0 {
		return Rational{Num: 0, Den: 1}
	}
	return Rational{Num: r.Num * (n / d), Den: r.Den / d}
}

// DivNat returns r / n. Panics if n is zero.
func (r Rational) DivNat(n int) Rational {
	if n == 0 {
		panic("engine: rational division by zero")
	}
	if n < 0 {
		panic("engine: rational cannot be negative")
	}
	d := gcd(r.Num, n)
	return Rational{Num: r.Num / d, Den: r.Den * (n / d)}
}

// Split separates r into its integer part and fractional remainder.
func (r Rational) Split() (int, Rational) {
	return r.Num / r.Den, Rational{Num: r.Num % r.Den, Den: r.Den}
}

// IsInteger reports whether r has no fractional part.
func (r Rational) IsInteger() bool {
	return r.Den == 1
}

// EqualsNat reports whether r equals the natural number n.
func (r Rational) EqualsNat(n int) bool {
	return r.Num == n && r.Den == 1
}

// Cmp compares r and o by cross multiplication, returning -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	a, b := r.Num*o.Den, o.Num*r.Den
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CmpNat compares r against the natural number n.
func (r Rational) CmpNat(n int) int {
	return r.Cmp(Nat(n))
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
