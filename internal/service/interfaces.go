// Package service holds the business logic of the replica server: password
// authentication with bearer tokens, and access to the served replica.
package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-replica-sync/models"
)

// AuthService verifies the replica password and issues bearer tokens.
type AuthService interface {
	// Login checks password against the configured bcrypt hash and returns a
	// freshly signed token carrying a new client id.
	Login(ctx context.Context, password string) (models.Token, error)
	// ParseToken validates a raw token string and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ReplicaService exposes the served directory to authenticated clients.
type ReplicaService interface {
	States(ctx context.Context) ([]models.FileState, error)
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Store replaces relPath with the content of r. The content must hash to
	// state.Hash when it is set.
	Store(ctx context.Context, state models.FileState, r io.Reader) error
	Remove(ctx context.Context, relPath string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
