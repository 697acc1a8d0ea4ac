// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/models"
)

type profileRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewProfileRepository returns the SQLite-backed ProfileRepository.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *profileRepository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	query, args, err := buildListProfilesQuery()
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.ListProfiles").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.ListProfiles").Msg("failed to query profiles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		p, scanErr := scanProfile(rows)
		if scanErr != nil {
			r.logger.Err(scanErr).Str("func", "profileRepository.ListProfiles").Msg("failed to scan profile row")
			return nil, scanErr
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "profileRepository.ListProfiles").Msg("failed to iterate profile rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return profiles, nil
}

func (r *profileRepository) Load(ctx context.Context, name string) (models.Profile, error) {
	query, args, err := buildLoadProfileQuery(name)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Load").Str("profile", name).Msg("failed to load profile")
		return models.Profile{}, err
	}

	return p, nil
}

func (r *profileRepository) Save(ctx context.Context, p models.Profile) error {
	ignore, err := encodeIgnore(p.Ignore)
	if err != nil {
		return err
	}

	query, args, err := buildUpsertProfileQuery(p, ignore, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.execWithRetry(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Save").Str("profile", p.Name).Msg("failed to save profile")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	r.logger.Debug().Str("func", "profileRepository.Save").Str("profile", p.Name).Msg("profile saved")
	return nil
}

func (r *profileRepository) Create(ctx context.Context, p models.Profile) error {
	ignore, err := encodeIgnore(p.Ignore)
	if err != nil {
		return err
	}

	query, args, err := buildInsertProfileQuery(p, ignore, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.execWithRetry(ctx, query, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrProfileAlreadyExists, p.Name)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Create").Str("profile", p.Name).Msg("failed to create profile")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Delete removes the profile together with its archive in one transaction.
func (r *profileRepository) Delete(ctx context.Context, name string) error {
	archiveQuery, archiveArgs, err := buildDeleteArchiveQuery(name, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	profileQuery, profileArgs, err := buildDeleteProfileQuery(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Delete").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, archiveQuery, archiveArgs...); err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Delete").Str("profile", name).Msg("failed to delete archive")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	res, err := tx.ExecContext(ctx, profileQuery, profileArgs...)
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Delete").Str("profile", name).Msg("failed to delete profile")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Delete").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	r.logger.Info().Str("profile", name).Msg("profile deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var (
		p      models.Profile
		ignore string
	)

	err := row.Scan(&p.Name, &p.RootA, &p.RootB, &p.Username, &ignore, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, err
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if ignore != "" {
		if err = json.Unmarshal([]byte(ignore), &p.Ignore); err != nil {
			return models.Profile{}, fmt.Errorf("%w: ignore patterns of %q: %w", ErrDecodingProfile, p.Name, err)
		}
	}
	return p, nil
}

func encodeIgnore(patterns []string) (string, error) {
	if patterns == nil {
		patterns = []string{}
	}
	data, err := json.Marshal(patterns)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecodingProfile, err)
	}
	return string(data), nil
}
