package workers

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers is a batch of jobs run by at most limit goroutines.
type Workers struct {
	workers []Worker
	limit   int
}

// New returns an empty batch. A limit below one means one goroutine per CPU.
func New(limit int) *Workers {
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	return &Workers{limit: limit}
}

// Add appends worker to the batch.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Len returns the number of queued workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run executes every worker and waits for them. The first error cancels the
// context passed to the remaining workers and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)

	for _, worker := range w.workers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}
