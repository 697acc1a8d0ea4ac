package session

import (
	"context"

	"github.com/MKhiriev/go-replica-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/profile_store_mock.go -package=mock

// ProfileStore persists named synchronization profiles.
type ProfileStore interface {
	// ListProfiles returns every stored profile ordered by name.
	ListProfiles(ctx context.Context) ([]models.Profile, error)

	// Load returns the profile called name.
	Load(ctx context.Context, name string) (models.Profile, error)

	// Save creates or replaces the profile with p.Name.
	Save(ctx context.Context, p models.Profile) error

	// Delete removes the profile called name.
	Delete(ctx context.Context, name string) error
}
