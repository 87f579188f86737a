package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = CPU count)
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls task once per tile and waits for all of them.
// The first error cancels tiles that have not started yet and is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, task func(ctx context.Context, tile *Tile) error) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if groupCtx.Err() != nil {
			break
		}
		tile := tile
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return task(groupCtx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Cancellation can stop submission before any task observed it
	return ctx.Err()
}
