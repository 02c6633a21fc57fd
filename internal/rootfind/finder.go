// Package rootfind computes every root of a polynomial with Newton's method,
// restarting from random guesses and deflating the polynomial after each
// accepted root.
package rootfind

import (
	"math/cmplx"
	"math/rand/v2"

	"go.uber.org/zap"

	"algebraics/internal/poly"
)

// Stats counts the work a Finder has done since it was created.
type Stats struct {
	Polynomials int // FindRoots calls
	Failed      int // calls that exhausted their budget
	Restarts    int // random initial guesses drawn
	Steps       int // Newton steps taken
}

// Finder runs the root search. It is not safe for concurrent use: the random
// source it draws guesses from is owned by the Finder.
type Finder struct {
	cfg    Config
	rng    *rand.Rand
	logger *zap.Logger
	stats  Stats
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger attaches a logger for per-polynomial debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFinder returns a Finder drawing its initial guesses from rng. The same
// seed yields the same roots in the same order.
func NewFinder(cfg Config, rng *rand.Rand, opts ...Option) *Finder {
	f := &Finder{
		cfg:    cfg,
		rng:    rng,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Stats returns the counters accumulated so far.
func (f *Finder) Stats() Stats { return f.stats }

// FindRoots attempts to find all Degree() roots of p. It reports false when
// some root could not be located within the budget; no partial result is
// returned in that case. A polynomial of degree <= 0 yields an empty
// RootSet. p itself is never modified.
func (f *Finder) FindRoots(p poly.Polynomial) (poly.RootSet, bool) {
	f.stats.Polynomials++
	length := p.Length()
	work := p.Clone()
	roots := make([]complex128, 0, max(work.Degree(), 0))

	for degree := work.Degree(); degree > 0; degree = work.Degree() {
		if degree == 1 {
			roots = append(roots, -work.Coefficient(0)/work.Coefficient(1))
			break
		}

		root, ok := f.findRoot(work)
		if !ok {
			f.stats.Failed++
			f.logger.Debug("root search did not converge",
				zap.Stringer("polynomial", p),
				zap.Int("degree", degree),
				zap.Int("found", len(roots)))
			return poly.RootSet{}, false
		}
		roots = append(roots, root)
		work.DivideInPlace(root)
	}

	return poly.RootSet{Roots: roots, Length: length}, true
}

// findRoot looks for a single root of p, which has degree > 1.
func (f *Finder) findRoot(p poly.Polynomial) (complex128, bool) {
	for range f.cfg.MaxRootInitializations {
		f.stats.Restarts++
		if root, ok := f.newton(p, f.randomGuess()); ok {
			return root, true
		}
	}
	return 0, false
}

// newton iterates from candidate until the squared step size falls within
// the tolerance. A zero derivative or a non-finite candidate ends the
// attempt as not converged.
func (f *Finder) newton(p poly.Polynomial, candidate complex128) (complex128, bool) {
	for range f.cfg.MaxAttemptsPerRoot {
		f.stats.Steps++
		previous := candidate
		value, derivative := p.Eval(candidate)
		if derivative == 0 {
			return 0, false
		}
		candidate -= value / derivative
		if cmplx.IsNaN(candidate) || cmplx.IsInf(candidate) {
			return 0, false
		}

		step := previous - candidate
		if real(step)*real(step)+imag(step)*imag(step) <= f.cfg.Tolerance {
			return candidate, true
		}
	}
	return 0, false
}

// randomGuess draws real and imaginary parts uniformly from
// [-scale/2, scale/2).
func (f *Finder) randomGuess() complex128 {
	half := f.cfg.GuessScale / 2
	return complex(
		f.rng.Float64()*f.cfg.GuessScale-half,
		f.rng.Float64()*f.cfg.GuessScale-half,
	)
}

