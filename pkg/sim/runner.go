package sim

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Seed   int64
	Len    int
	Digest uint64
}

type Runner struct {
	Totals Stats
}

func NewRunner() *Runner {
	return &Runner{Totals: NewStats()}
}

// Run steps one world per config, each on its own goroutine, and returns
// the results in config order. The first failing world cancels the rest.
func (r *Runner) Run(ctx context.Context, cfgs []Config) ([]Result, error) {
	results := make([]Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			w, err := NewWorld(cfg, r.Totals)
			if err != nil {
				return errors.Wrapf(err, "world %d", i)
			}

			for step := 0; step < cfg.Steps; step++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				if err := w.Step(); err != nil {
					return errors.Wrapf(err, "world %d", i)
				}
			}

			results[i] = Result{Seed: cfg.Seed, Len: w.Len(), Digest: w.Digest()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
