package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

// MetricFactory builds a fresh metric per run; metrics are stateful and
// cannot be shared across concurrent runners.
type MetricFactory func() Metric

// Ensemble runs the same configuration under consecutive seeds, one runner
// per goroutine. Random placement makes every run a different rod; regular
// placement makes them identical, which is still useful as a smoke test.
type Ensemble struct {
	cfg       rod.Config
	numRuns   int
	seedStart int64
	factories []MetricFactory
}

func NewEnsemble(cfg rod.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) AddMetric(f MetricFactory) {
	e.factories = append(e.factories, f)
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			state, err := rod.NewState(e.cfg, rng)
			if err != nil {
				errs[idx] = err
				return
			}

			runner := New(state)
			for _, f := range e.factories {
				runner.AddMetric(f())
			}

			results[idx], errs[idx] = runner.Run(ctx, Config{})
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
