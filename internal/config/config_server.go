package config

import (
	"fmt"
	"time"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultServerTimeout = 30 * time.Second
	defaultTokenDuration = time.Hour
	defaultTokenIssuer   = "replsync-server"
)

// ServerAuth holds the replica server credentials and token settings.
type ServerAuth struct {
	PasswordHash  string
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ServerConfig is the replica server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	ReplicaRoot    string
	Version        string
	Auth           ServerAuth
}

// GetServerConfig builds and validates the server config view from the
// merged structured configuration.
func GetServerConfig(flags *StructuredConfig) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		ReplicaRoot:    cfg.Storage.Files.ReplicaRoot,
		Version:        cfg.App.Version,
		Auth: ServerAuth{
			PasswordHash:  cfg.Auth.PasswordHash,
			TokenSignKey:  cfg.Auth.TokenSignKey,
			TokenIssuer:   cfg.Auth.TokenIssuer,
			TokenDuration: cfg.Auth.TokenDuration,
		},
	}

	serverCfg.applyDefaults()
	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = defaultServerAddress
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultServerTimeout
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
}
