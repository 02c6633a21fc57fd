// Package poly holds the complex-coefficient polynomial type the enumerators
// produce and the root finder consumes, together with the RootSet result.
package poly

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Polynomial is a single-variable polynomial with complex coefficients,
// indexed by exponent (index 0 is the constant term). The highest retained
// coefficient is always non-zero; the zero polynomial has no coefficients.
//
// A Polynomial wraps a slice. DivideInPlace mutates it, so a value that is
// about to be deflated must not be shared; use Clone first.
type Polynomial struct {
	coeffs []complex128
}

// New copies coeffs and strips trailing zero coefficients.
func New(coeffs ...complex128) Polynomial {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}
	c := make([]complex128, n)
	copy(c, coeffs[:n])
	return Polynomial{coeffs: c}
}

// FromInts builds a polynomial with real integer coefficients.
func FromInts(coeffs ...int) Polynomial {
	c := make([]complex128, len(coeffs))
	for i, v := range coeffs {
		c[i] = complex(float64(v), 0)
	}
	return New(c...)
}

// Degree is len(coefficients)-1: -1 for the zero polynomial, 0 for constants.
func (p Polynomial) Degree() int { return len(p.coeffs) - 1 }

// Length is the sum of the coefficient magnitudes.
func (p Polynomial) Length() float64 {
	var sum float64
	for _, c := range p.coeffs {
		sum += cmplx.Abs(c)
	}
	return sum
}

// Weight is the rounded length plus degree plus one. This is the level the
// dense enumerator walks, so every polynomial it yields at level n has
// Weight() == n.
func (p Polynomial) Weight() int {
	if len(p.coeffs) == 0 {
		return 0
	}
	return int(math.Round(p.Length())) + p.Degree() + 1
}

// Coefficients returns a copy of the coefficients, constant term first.
func (p Polynomial) Coefficients() []complex128 {
	c := make([]complex128, len(p.coeffs))
	copy(c, p.coeffs)
	return c
}

// Coefficient returns c[n], or 0 when n is outside the polynomial.
func (p Polynomial) Coefficient(n int) complex128 {
	if n < 0 || n >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[n]
}

// Leading returns the highest-degree coefficient.
func (p Polynomial) Leading() complex128 {
	return p.Coefficient(p.Degree())
}

// Clone returns a polynomial backed by its own slice.
func (p Polynomial) Clone() Polynomial {
	return Polynomial{coeffs: p.Coefficients()}
}

// Equal reports whether both polynomials have identical coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}
	return true
}

// Eval returns the value and the derivative at z in a single pass. The
// power term tracks z^n while both sums accumulate over n = 0..degree-1;
// the top-degree term is added to the value only.
func (p Polynomial) Eval(z complex128) (value, derivative complex128) {
	deg := p.Degree()
	if deg < 0 {
		return 0, 0
	}
	power := complex(1, 0)
	for n := 0; n < deg; n++ {
		value += power * p.coeffs[n]
		derivative += power * p.coeffs[n+1] * complex(float64(n+1), 0)
		power *= z
	}
	value += power * p.coeffs[deg]
	return value, derivative
}

// DivideInPlace divides the polynomial by (x - root) using synthetic
// division and drops the remainder, reducing the degree by exactly one.
// The coefficients are updated from the top down; each step reads the
// already-updated coefficient above it. Polynomials of degree <= 0 are left
// untouched.
func (p *Polynomial) DivideInPlace(root complex128) {
	deg := p.Degree()
	if deg <= 0 {
		return
	}
	for n := deg; n > 0; n-- {
		p.coeffs[n-1] += root * p.coeffs[n]
	}
	copy(p.coeffs[:deg], p.coeffs[1:deg+1])
	p.coeffs = p.coeffs[:deg]
}

// Canonical returns p or -p, whichever has a positive leading coefficient
// (compared on the real part, then the imaginary part). p and -p share
// their roots.
func (p Polynomial) Canonical() Polynomial {
	lead := p.Leading()
	if real(lead) > 0 || (real(lead) == 0 && imag(lead) >= 0) {
		return p
	}
	c := make([]complex128, len(p.coeffs))
	for i, v := range p.coeffs {
		if v != 0 {
			c[i] = -v
		}
	}
	return Polynomial{coeffs: c}
}

// Key is a stable textual identity of the canonical form, suitable for
// map and cache keys.
func (p Polynomial) Key() string {
	c := p.Canonical()
	var b strings.Builder
	for i, v := range c.coeffs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatCoefficient(v))
	}
	return b.String()
}

func formatCoefficient(v complex128) string {
	if imag(v) == 0 {
		return strconv.FormatFloat(real(v), 'g', -1, 64)
	}
	return strconv.FormatComplex(v, 'g', -1, 128)
}

// String renders the polynomial highest degree first, e.g. "x^2 + 2x - 3".
func (p Polynomial) String() string {
	if len(p.coeffs) == 0 {
		return "0"
	}
	var b strings.Builder
	for n := len(p.coeffs) - 1; n >= 0; n-- {
		c := p.coeffs[n]
		if c == 0 {
			continue
		}
		var term string
		if imag(c) == 0 {
			r := real(c)
			switch {
			case b.Len() == 0 && r < 0:
				b.WriteString("-")
			case b.Len() > 0 && r < 0:
				b.WriteString(" - ")
			case b.Len() > 0:
				b.WriteString(" + ")
			}
			r = math.Abs(r)
			if r != 1 || n == 0 {
				term = strconv.FormatFloat(r, 'g', -1, 64)
			}
		} else {
			if b.Len() > 0 {
				b.WriteString(" + ")
			}
			term = formatCoefficient(c)
		}
		b.WriteString(term)
		switch n {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			fmt.Fprintf(&b, "x^%d", n)
		}
	}
	return b.String()
}
