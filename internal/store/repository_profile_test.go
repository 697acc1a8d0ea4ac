package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/models"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestProfileRepo(t *testing.T) (*profileRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &profileRepository{
		db:     &DB{DB: db, errorClassificator: NewSQLiteErrorClassifier(), logger: l},
		logger: l,
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows(profileColumns)
}

func testProfile() models.Profile {
	return models.Profile{
		Name:     "photos",
		RootA:    "/home/me/photos",
		RootB:    "https://nas:8443",
		Username: "me",
		Ignore:   []string{"*.tmp", ".git"},
	}
}

// ── ListProfiles ─────────────────────────────────────────────────────────────

func TestProfileRepository_ListProfiles(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles ORDER BY name").
		WillReturnRows(profileRows().
			AddRow("a", "/a", "/b", "", `[]`, fixedNow, fixedNow).
			AddRow("b", "/c", "http://h:1", "u", `["*.bak"]`, fixedNow, fixedNow))

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "a", profiles[0].Name)
	assert.Empty(t, profiles[0].Ignore)
	assert.Equal(t, []string{"*.bak"}, profiles[1].Ignore)
	assert.Equal(t, "u", profiles[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ListProfiles_Empty(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles").WillReturnRows(profileRows())

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestProfileRepository_ListProfiles_QueryError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListProfiles(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestProfileRepository_ListProfiles_BadIgnoreColumn(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WillReturnRows(profileRows().AddRow("a", "/a", "/b", "", `not json`, fixedNow, fixedNow))

	_, err := repo.ListProfiles(context.Background())
	assert.ErrorIs(t, err, ErrDecodingProfile)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestProfileRepository_Load(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE name = ?").
		WithArgs("photos").
		WillReturnRows(profileRows().AddRow("photos", "/a", "/b", "me", `["*.tmp"]`, fixedNow, fixedNow))

	p, err := repo.Load(context.Background(), "photos")
	require.NoError(t, err)
	assert.Equal(t, "photos", p.Name)
	assert.Equal(t, "/a", p.RootA)
	assert.Equal(t, []string{"*.tmp"}, p.Ignore)
	assert.True(t, p.CreatedAt.Equal(fixedNow))
}

func TestProfileRepository_Load_NotFound(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

// ── Save / Create ────────────────────────────────────────────────────────────

func TestProfileRepository_Save_Upserts(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	p := testProfile()

	mock.ExpectExec("INSERT INTO profiles (.+) ON CONFLICT\\(name\\) DO UPDATE").
		WithArgs(p.Name, p.RootA, p.RootB, p.Username, `["*.tmp",".git"]`, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Save_NilIgnoreStoredAsEmptyList(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	p := testProfile()
	p.Ignore = nil

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(p.Name, p.RootA, p.RootB, p.Username, `[]`, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), p))
}

func TestProfileRepository_Save_RetriesWhileBusy(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	mock.ExpectExec("INSERT INTO profiles").WillReturnError(busy)
	mock.ExpectExec("INSERT INTO profiles").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), testProfile()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Create(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	p := testProfile()

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(p.Name, p.RootA, p.RootB, p.Username, sqlmock.AnyArg(), fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), p))
}

func TestProfileRepository_Create_AlreadyExists(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey})

	err := repo.Create(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)
}

func TestProfileRepository_Create_OtherError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectExec("INSERT INTO profiles").WillReturnError(errors.New("readonly database"))

	err := repo.Create(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrProfileAlreadyExists)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestProfileRepository_Delete(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM archive WHERE \\(profile = \\?\\)").
		WithArgs("photos").
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec("DELETE FROM profiles WHERE name = \\?").
		WithArgs("photos").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "photos"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Delete_NotFoundRollsBack(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM archive").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM profiles").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Delete_BeginError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	err := repo.Delete(context.Background(), "photos")
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestProfileRepository_Delete_CommitError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM archive").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := repo.Delete(context.Background(), "photos")
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
