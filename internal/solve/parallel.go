package solve

import (
	"context"
	"iter"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"algebraics/internal/poly"
)

type job struct {
	index int
	p     poly.Polynomial
}

type outcome struct {
	index  int
	result Result
	ok     bool
}

// eachParallel feeds seq to a pool of workers and emits the results on the
// calling goroutine, buffering out-of-order completions until their turn.
func (s *Solver) eachParallel(ctx context.Context, seq iter.Seq[poly.Polynomial], emit func(Result) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.opts.Workers
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, workers)
	outcomes := make(chan outcome, workers)

	g.Go(func() error {
		defer close(jobs)
		index := 0
		for p := range seq {
			select {
			case jobs <- job{index: index, p: p}:
			case <-gctx.Done():
				return gctx.Err()
			}
			index++
		}
		return nil
	})

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				r, ok := s.Solve(j.p)
				select {
				case outcomes <- outcome{index: j.index, result: r, ok: ok}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	s.logger.Debug("solving in parallel", zap.Int("workers", workers))

	var emitErr error
	pending := make(map[int]outcome)
	next := 0
	for o := range outcomes {
		if emitErr != nil {
			continue
		}
		pending[o.index] = o
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if !ready.ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				emitErr = err
				break
			}
			if err := emit(ready.result); err != nil {
				emitErr = err
				cancel()
				break
			}
		}
	}

	err := g.Wait()
	if emitErr != nil {
		return emitErr
	}
	return err
}
