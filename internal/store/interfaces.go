// Package store persists the client's synchronization profiles and the
// archive of last-synchronized file states in SQLite.
package store

import (
	"context"

	"github.com/MKhiriev/go-replica-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProfileRepository stores profiles by unique name.
type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	Load(ctx context.Context, name string) (models.Profile, error)
	// Save creates or replaces the profile called p.Name.
	Save(ctx context.Context, p models.Profile) error
	// Create stores a new profile and fails with ErrProfileAlreadyExists if
	// the name is taken.
	Create(ctx context.Context, p models.Profile) error
	// Delete removes the profile and its archive.
	Delete(ctx context.Context, name string) error
}

// ArchiveRepository stores, per profile, the state of every path as of the
// last successful propagation. The engine uses it as the common ancestor of
// three-way reconciliation.
type ArchiveRepository interface {
	LoadArchive(ctx context.Context, profile string) (map[string]models.FileState, error)
	PutArchive(ctx context.Context, profile string, states ...models.FileState) error
	DeleteArchive(ctx context.Context, profile string, paths ...string) error
}
