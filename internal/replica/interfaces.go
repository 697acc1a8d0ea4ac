// Package replica defines one side of a synchronized file-tree pair and
// provides the filesystem implementation used for local roots and by the
// replica server.
package replica

import (
	"context"
	"io"

	"github.com/MKhiriev/go-replica-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/replica_mock.go -package=mock

// Replica is a file tree addressed by slash-separated relative paths.
type Replica interface {
	// Scan returns the state of every regular file, ordered by path.
	Scan(ctx context.Context) ([]models.FileState, error)

	// Open returns the contents of relPath. A missing file yields ErrNotFound.
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)

	// Write atomically replaces state.Path with the contents of r and sets
	// its modification time to state.ModTime. When state.Hash is set the
	// contents are verified against it and a mismatch leaves the old file in
	// place. Parent directories are created as needed.
	Write(ctx context.Context, state models.FileState, r io.Reader) error

	// Remove deletes relPath. Removing a missing file is not an error.
	Remove(ctx context.Context, relPath string) error

	// Close releases the resources held by the replica.
	Close() error
}
