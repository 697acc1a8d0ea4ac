package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultAdapterTimeout  = 30 * time.Second
	defaultMaxAuthAttempts = 3
	defaultClientDBFile    = "profiles.db"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// LogFile is the client log file; empty selects the default location.
	LogFile string
	// MaxAuthAttempts bounds the passwords asked per remote root.
	MaxAuthAttempts int
	// Version is the client version string.
	Version string
}

// ClientAdapter holds settings of the client's replica server connections.
type ClientAdapter struct {
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file holding profiles and the archive.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration. Unset values get their defaults; the
// database defaults to profiles.db in the user configuration directory.
func GetClientConfig(flags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			LogFile:         cfg.App.LogFile,
			MaxAuthAttempts: cfg.App.MaxAuthAttempts,
			Version:         cfg.App.Version,
		},
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
	}

	if err := clientCfg.applyDefaults(); err != nil {
		return nil, err
	}
	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() error {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}
	if cfg.App.MaxAuthAttempts == 0 {
		cfg.App.MaxAuthAttempts = defaultMaxAuthAttempts
	}
	if cfg.Storage.DB.DSN == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("%w: no database configured and no user config dir: %w", ErrInvalidStorageConfigs, err)
		}
		cfg.Storage.DB.DSN = filepath.Join(dir, "replsync", defaultClientDBFile)
	}
	return nil
}
