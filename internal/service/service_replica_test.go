package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/mock"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

func newFSReplicaService(t *testing.T) (ReplicaService, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := replica.NewFileSystem(dir, logger.Nop())
	require.NoError(t, err)
	return NewReplicaService(fs, logger.Nop()), dir
}

// ── States ───────────────────────────────────────────────────────────────────

func TestStates_EmptyReplicaIsNotNil(t *testing.T) {
	svc, _ := newFSReplicaService(t)

	states, err := svc.States(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestStates_ScanError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mock.NewMockReplica(ctrl)
	r.EXPECT().Scan(gomock.Any()).Return(nil, errors.New("permission denied"))

	_, err := NewReplicaService(r, logger.Nop()).States(context.Background())

	assert.EqualError(t, err, "permission denied")
}

// ── Store / Open / Remove ────────────────────────────────────────────────────

func TestStore_ThenOpenAndStates(t *testing.T) {
	svc, dir := newFSReplicaService(t)
	ctx := context.Background()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	state := models.FileState{Path: "sub/a.txt", Hash: utils.HashBytes([]byte("hello")), Size: 5, ModTime: mtime}
	require.NoError(t, svc.Store(ctx, state, strings.NewReader("hello")))

	rc, err := svc.Open(ctx, "sub/a.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	states, err := svc.States(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, state, states[0])

	require.NoError(t, svc.Remove(ctx, "sub/a.txt"))
	_, err = os.Stat(filepath.Join(dir, "sub"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_HashMismatch(t *testing.T) {
	svc, _ := newFSReplicaService(t)

	state := models.FileState{Path: "a.txt", Hash: utils.HashBytes([]byte("expected")), ModTime: time.Now()}
	err := svc.Store(context.Background(), state, strings.NewReader("tampered"))

	assert.ErrorIs(t, err, utils.ErrHashMismatch)
}

func TestStore_MissingModTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mock.NewMockReplica(ctrl)

	err := NewReplicaService(r, logger.Nop()).Store(context.Background(), models.FileState{Path: "a"}, strings.NewReader(""))

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestOpen_Missing(t *testing.T) {
	svc, _ := newFSReplicaService(t)

	_, err := svc.Open(context.Background(), "nope.txt")

	assert.ErrorIs(t, err, replica.ErrNotFound)
}

func TestRemove_InvalidPath(t *testing.T) {
	svc, _ := newFSReplicaService(t)

	err := svc.Remove(context.Background(), "../outside")

	assert.ErrorIs(t, err, replica.ErrInvalidPath)
}
