package executor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapParallel feeds chunks to at most e.workers goroutines.
func (e *Executor) mapParallel(ctx context.Context, n int, fn func(lo, hi int)) error {
	var g errgroup.Group
	g.SetLimit(e.workers)

	for lo := 0; lo < n; lo += e.chunkSize {
		if ctx.Err() != nil {
			break
		}
		hi := min(lo+e.chunkSize, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}

	// Chunks never fail; Wait only drains the in-flight work.
	_ = g.Wait()
	return ctx.Err()
}
