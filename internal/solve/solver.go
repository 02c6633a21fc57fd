// Package solve drives a polynomial enumeration through the root finder and
// hands every converged root set to a consumer.
//
// Each polynomial gets its own random source, seeded from the run seed and
// the polynomial's sign-independent key. p and -p therefore run the exact
// same iteration, which lets the cache answer for -p and keeps output
// identical whatever the worker count.
package solve

import (
	"context"
	"fmt"
	"hash/fnv"
	"iter"
	"math/rand/v2"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"algebraics/internal/poly"
	"algebraics/internal/rootfind"
)

// Options configure a Solver.
type Options struct {
	Finder    rootfind.Config
	Seed      uint64
	Workers   int
	CacheSize int
}

// DefaultOptions solve sequentially with a cache large enough to pair up the
// sign mirrors the composition enumerator emits back to back.
func DefaultOptions() Options {
	return Options{
		Finder:    rootfind.DefaultConfig(),
		Seed:      1,
		Workers:   1,
		CacheSize: 4096,
	}
}

// Result pairs a polynomial with its roots.
type Result struct {
	Polynomial poly.Polynomial
	Roots      poly.RootSet
}

// Stats is a snapshot of the solver counters.
type Stats struct {
	Polynomials int64
	Solved      int64
	Failed      int64
	Roots       int64
	CacheHits   int64
	Restarts    int64
	Steps       int64
}

type entry struct {
	roots poly.RootSet
	ok    bool
}

// Solver is safe for concurrent use.
type Solver struct {
	opts   Options
	cache  *lru.Cache[string, entry]
	logger *zap.Logger

	polynomials atomic.Int64
	solved      atomic.Int64
	failed      atomic.Int64
	roots       atomic.Int64
	cacheHits   atomic.Int64
	restarts    atomic.Int64
	steps       atomic.Int64
}

// New validates opts and builds a Solver. A nil logger discards output.
func New(opts Options, logger *zap.Logger) (*Solver, error) {
	if err := opts.Finder.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Solver{opts: opts, logger: logger}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, entry](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create root cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Solve finds the roots of p, reporting false when the root finder gave up.
func (s *Solver) Solve(p poly.Polynomial) (Result, bool) {
	s.polynomials.Add(1)
	key := p.Key()

	if s.cache != nil {
		if e, ok := s.cache.Get(key); ok {
			s.cacheHits.Add(1)
			return s.record(p, e.roots.Clone(), e.ok)
		}
	}

	finder := rootfind.NewFinder(s.opts.Finder, s.rngFor(key), rootfind.WithLogger(s.logger))
	roots, ok := finder.FindRoots(p)
	fs := finder.Stats()
	s.restarts.Add(int64(fs.Restarts))
	s.steps.Add(int64(fs.Steps))

	if s.cache != nil {
		s.cache.Add(key, entry{roots: roots.Clone(), ok: ok})
	}
	return s.record(p, roots, ok)
}

func (s *Solver) record(p poly.Polynomial, roots poly.RootSet, ok bool) (Result, bool) {
	if !ok {
		s.failed.Add(1)
		return Result{}, false
	}
	s.solved.Add(1)
	s.roots.Add(int64(len(roots.Roots)))
	// A cached entry may come from -p; the length is the same either way.
	roots.Length = p.Length()
	return Result{Polynomial: p, Roots: roots}, true
}

func (s *Solver) rngFor(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return rand.New(rand.NewPCG(s.opts.Seed, h.Sum64()))
}

// Results solves seq lazily on the calling goroutine, skipping polynomials
// whose roots were not found. The stream ends early when ctx is done.
func (s *Solver) Results(ctx context.Context, seq iter.Seq[poly.Polynomial]) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for p := range seq {
			if ctx.Err() != nil {
				return
			}
			r, ok := s.Solve(p)
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Each solves every polynomial in seq and calls emit for each success, in
// enumeration order. With more than one worker the polynomials are solved
// concurrently. It stops at the first emit error or when ctx is done.
func (s *Solver) Each(ctx context.Context, seq iter.Seq[poly.Polynomial], emit func(Result) error) error {
	if s.opts.Workers > 1 {
		return s.eachParallel(ctx, seq, emit)
	}
	for r := range s.Results(ctx, seq) {
		if err := emit(r); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Stats returns the counters accumulated so far.
func (s *Solver) Stats() Stats {
	return Stats{
		Polynomials: s.polynomials.Load(),
		Solved:      s.solved.Load(),
		Failed:      s.failed.Load(),
		Roots:       s.roots.Load(),
		CacheHits:   s.cacheHits.Load(),
		Restarts:    s.restarts.Load(),
		Steps:       s.steps.Load(),
	}
}

// LogStats writes the counters at info level.
func (s *Solver) LogStats() {
	st := s.Stats()
	s.logger.Info("solve finished",
		zap.Int64("polynomials", st.Polynomials),
		zap.Int64("solved", st.Solved),
		zap.Int64("failed", st.Failed),
		zap.Int64("roots", st.Roots),
		zap.Int64("cache_hits", st.CacheHits),
		zap.Int64("restarts", st.Restarts),
		zap.Int64("steps", st.Steps))
}
