package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent stepper for one seed.
type Factory func(seed int64) (Stepper, error)

// Ensemble runs the same setup under consecutive seeds.
type Ensemble struct {
	factory   Factory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
	limit     int
}

// NewEnsemble prepares numRuns runs seeded seedStart, seedStart+1, ...
// metrics is called once per run since metrics carry state.
func NewEnsemble(factory Factory, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		factory:   factory,
		metrics:   metrics,
		numRuns:   numRuns,
		seedStart: seedStart,
		limit:     runtime.NumCPU(),
	}
}

// SetLimit bounds how many runs execute at once.
func (e *Ensemble) SetLimit(n int) {
	if n > 0 {
		e.limit = n
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			st, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				return err
			}

			s := New()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, st, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
