package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/models"
)

// archiveBatchSize bounds the rows of one multi-values insert so a large
// sync stays under SQLite's host parameter limit.
const archiveBatchSize = 150

type archiveRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewArchiveRepository returns the SQLite-backed ArchiveRepository.
func NewArchiveRepository(db *DB, logger *logger.Logger) ArchiveRepository {
	return &archiveRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *archiveRepository) LoadArchive(ctx context.Context, profile string) (map[string]models.FileState, error) {
	query, args, err := buildLoadArchiveQuery(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "archiveRepository.LoadArchive").Str("profile", profile).Msg("failed to query archive")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	archive := make(map[string]models.FileState)
	for rows.Next() {
		var s models.FileState
		if err = rows.Scan(&s.Path, &s.Hash, &s.Size, &s.ModTime); err != nil {
			r.logger.Err(err).Str("func", "archiveRepository.LoadArchive").Msg("failed to scan archive row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		s.ModTime = s.ModTime.UTC()
		archive[s.Path] = s
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return archive, nil
}

// PutArchive records states as the last synchronized version of their paths.
func (r *archiveRepository) PutArchive(ctx context.Context, profile string, states ...models.FileState) error {
	if len(states) == 0 {
		return nil
	}

	now := r.now()
	for start := 0; start < len(states); start += archiveBatchSize {
		end := min(start+archiveBatchSize, len(states))

		query, args, err := buildPutArchiveQuery(profile, states[start:end], now)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
			r.logger.Err(err).Str("func", "archiveRepository.PutArchive").Str("profile", profile).Msg("failed to store archive entries")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	r.logger.Debug().Str("profile", profile).Int("entries", len(states)).Msg("archive updated")
	return nil
}

// DeleteArchive forgets the given paths. Without paths nothing is deleted;
// the whole archive goes only with its profile.
func (r *archiveRepository) DeleteArchive(ctx context.Context, profile string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	for start := 0; start < len(paths); start += archiveBatchSize {
		end := min(start+archiveBatchSize, len(paths))

		query, args, err := buildDeleteArchiveQuery(profile, paths[start:end])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
			r.logger.Err(err).Str("func", "archiveRepository.DeleteArchive").Str("profile", profile).Msg("failed to delete archive entries")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}
