package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/linsolve/internal/trace"
)

// Batch solves every request concurrently with at most workers goroutines
// (GOMAXPROCS when workers ≤ 0). Results are index-aligned with reqs. An
// unknown method or a cancelled context stops the batch and returns the
// error; results of requests that did not run are left zero.
func (r *Registry) Batch(ctx context.Context, reqs []Request, workers int) ([]trace.Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]trace.Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range reqs {
		g.Go(func() error {
			res, err := r.Solve(ctx, reqs[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Batch runs reqs through the default registry.
func Batch(ctx context.Context, reqs []Request, workers int) ([]trace.Result, error) {
	return defaultRegistry.Batch(ctx, reqs, workers)
}
