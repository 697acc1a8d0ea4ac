package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
)

// ClientStorages groups the client-side repositories sharing one SQLite
// database.
type ClientStorages struct {
	Profiles ProfileRepository
	Archive  ArchiveRepository

	db *DB
}

// NewClientStorages opens the database at cfg.DB.DSN, creating the file when
// missing, and applies pending migrations.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Profiles: NewProfileRepository(db, logger),
		Archive:  NewArchiveRepository(db, logger),
		db:       db,
	}, nil
}

// Close closes the underlying database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
