package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-replica-sync/models"
)

const (
	profilesTable = "profiles"
	archiveTable  = "archive"

	upsertProfileSuffix = `ON CONFLICT(name) DO UPDATE SET
		root_a = excluded.root_a,
		root_b = excluded.root_b,
		username = excluded.username,
		ignore_patterns = excluded.ignore_patterns,
		updated_at = excluded.updated_at`

	upsertArchiveSuffix = `ON CONFLICT(profile, path) DO UPDATE SET
		hash = excluded.hash,
		size = excluded.size,
		mod_time = excluded.mod_time,
		synced_at = excluded.synced_at`
)

var (
	// sqlite uses ? placeholders
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	profileColumns = []string{"name", "root_a", "root_b", "username", "ignore_patterns", "created_at", "updated_at"}
	archiveColumns = []string{"path", "hash", "size", "mod_time"}
)

func buildListProfilesQuery() (string, []any, error) {
	return builder.
		Select(profileColumns...).
		From(profilesTable).
		OrderBy("name").
		ToSql()
}

func buildLoadProfileQuery(name string) (string, []any, error) {
	return builder.
		Select(profileColumns...).
		From(profilesTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func insertProfile(p models.Profile, ignore string, now time.Time) sq.InsertBuilder {
	return builder.
		Insert(profilesTable).
		Columns(profileColumns...).
		Values(p.Name, p.RootA, p.RootB, p.Username, ignore, now, now)
}

func buildInsertProfileQuery(p models.Profile, ignore string, now time.Time) (string, []any, error) {
	return insertProfile(p, ignore, now).ToSql()
}

func buildUpsertProfileQuery(p models.Profile, ignore string, now time.Time) (string, []any, error) {
	return insertProfile(p, ignore, now).Suffix(upsertProfileSuffix).ToSql()
}

func buildDeleteProfileQuery(name string) (string, []any, error) {
	return builder.
		Delete(profilesTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func buildLoadArchiveQuery(profile string) (string, []any, error) {
	return builder.
		Select(archiveColumns...).
		From(archiveTable).
		Where(sq.Eq{"profile": profile}).
		OrderBy("path").
		ToSql()
}

func buildPutArchiveQuery(profile string, states []models.FileState, now time.Time) (string, []any, error) {
	insert := builder.
		Insert(archiveTable).
		Columns("profile", "path", "hash", "size", "mod_time", "synced_at")
	for _, s := range states {
		insert = insert.Values(profile, s.Path, s.Hash, s.Size, s.ModTime.UTC(), now)
	}
	return insert.Suffix(upsertArchiveSuffix).ToSql()
}

// buildDeleteArchiveQuery deletes the given paths of profile, or the whole
// archive of profile when no path is given.
func buildDeleteArchiveQuery(profile string, paths []string) (string, []any, error) {
	where := sq.And{sq.Eq{"profile": profile}}
	if len(paths) > 0 {
		where = append(where, sq.Eq{"path": paths})
	}

	return builder.
		Delete(archiveTable).
		Where(where).
		ToSql()
}
