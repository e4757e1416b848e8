// Package executor runs data-parallel maps over a flat index space on a
// bounded pool of workers.
//
// The VM uses it to apply one element-wise instruction across all N² samples
// of a field. Every index is visited exactly once and no index depends on
// another, so the result does not depend on the worker count.
package executor

import (
	"context"
	"runtime"
)

// DefaultChunkSize is the number of indices handed to a worker at a time.
const DefaultChunkSize = 4096

// Executor splits index ranges into chunks and runs them concurrently.
type Executor struct {
	workers   int
	chunkSize int
}

// New creates an executor with the given worker and chunk counts. Values
// below 1 fall back to runtime.NumCPU() and DefaultChunkSize respectively.
func New(workers, chunkSize int) *Executor {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &Executor{workers: workers, chunkSize: chunkSize}
}

// Sequential returns an executor that runs every map inline on the caller's
// goroutine.
func Sequential() *Executor {
	return &Executor{workers: 1, chunkSize: DefaultChunkSize}
}

// Workers returns the maximum number of concurrent workers.
func (e *Executor) Workers() int { return e.workers }

// ChunkSize returns the number of indices per work item.
func (e *Executor) ChunkSize() int { return e.chunkSize }

// Map calls fn over [0, n) split into half-open [lo, hi) chunks. fn must
// only write state owned by its own range. Map returns once every scheduled
// chunk has finished; if ctx is cancelled, no further chunks are scheduled
// and ctx.Err() is returned.
func (e *Executor) Map(ctx context.Context, n int, fn func(lo, hi int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	if e.workers <= 1 || n <= e.chunkSize {
		return e.mapInline(ctx, n, fn)
	}
	return e.mapParallel(ctx, n, fn)
}

func (e *Executor) mapInline(ctx context.Context, n int, fn func(lo, hi int)) error {
	for lo := 0; lo < n; lo += e.chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(lo, min(lo+e.chunkSize, n))
	}
	return nil
}
