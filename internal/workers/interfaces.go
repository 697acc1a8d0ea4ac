// Package workers runs a batch of independent jobs with bounded concurrency.
// Replica scans use it to hash files in parallel.
package workers

import "context"

// Worker is one unit of work. Run must return promptly once ctx is done.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
