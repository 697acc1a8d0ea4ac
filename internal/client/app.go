package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/engine"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/internal/store"
)

// App owns the long-lived client dependencies. Sessions created by
// NewSession share one engine and one store.
type App struct {
	storages *store.ClientStorages
	engine   engine.Engine
	logger   *logger.Logger
}

// NewApp opens the client database and builds the engine.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	opener := engine.NewOpener(cfg.Adapter, logger)

	return newApp(storages, engine.New(opener, storages.Archive, cfg.App, logger), logger), nil
}

func newApp(storages *store.ClientStorages, eng engine.Engine, logger *logger.Logger) *App {
	return &App{storages: storages, engine: eng, logger: logger}
}

// Profiles returns the profile repository.
func (a *App) Profiles() store.ProfileRepository {
	return a.storages.Profiles
}

// NewSession returns an idle session over the shared engine. The caller
// closes it.
func (a *App) NewSession(observer session.Observer) *session.Session {
	return session.New(a.engine, a.storages.Profiles, observer, a.logger)
}

// Run drives frontend until it returns.
func (a *App) Run(ctx context.Context, frontend Frontend) error {
	a.logger.Info().Msg("client started")
	defer a.logger.Info().Msg("client stopped")

	return frontend.Run(ctx)
}

// Close releases the database.
func (a *App) Close() error {
	return a.storages.Close()
}
