package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/mock"
	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/internal/store"
)

type frontendFunc func(ctx context.Context) error

func (f frontendFunc) Run(ctx context.Context) error {
	return f(ctx)
}

func TestApp_NewSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	app := newApp(&store.ClientStorages{Profiles: mock.NewMockProfileRepository(ctrl)}, mock.NewMockEngine(ctrl), logger.Nop())

	s := app.NewSession(nil)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, session.Idle, s.State())
	assert.NotNil(t, app.Profiles())
	assert.NoError(t, app.Close())
}

func TestApp_Run_ReturnsFrontendError(t *testing.T) {
	app := newApp(&store.ClientStorages{}, nil, logger.Nop())
	quit := errors.New("quit")

	called := false
	err := app.Run(context.Background(), frontendFunc(func(context.Context) error {
		called = true
		return quit
	}))

	require.True(t, called)
	assert.ErrorIs(t, err, quit)
}
