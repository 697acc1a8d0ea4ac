// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// replsync client and the replica server. It is populated by merging values
// from environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings of the running binary itself.
	App App `envPrefix:"APP_"`

	// Auth holds the replica server credentials and token parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds the client database and the directory served as a
	// replica.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings of the replica server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the client's connection to replica servers.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds settings of the running binary.
type App struct {
	// LogFile is the file the client logs to. Empty selects replsync.log
	// next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// MaxAuthAttempts bounds the passwords asked for one remote root before
	// the connection fails.
	// Env: APP_MAX_AUTH_ATTEMPTS
	MaxAuthAttempts int `env:"MAX_AUTH_ATTEMPTS"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Auth holds the replica server authentication settings.
type Auth struct {
	// PasswordHash is the bcrypt hash of the replica password.
	// Env: AUTH_PASSWORD_HASH
	PasswordHash string `env:"PASSWORD_HASH"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB holds the client database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the directory served by the replica server.
	Files Files `envPrefix:"FILES_"`
}

// Server holds network and timeout settings for the replica server.
type Server struct {
	// HTTPAddress is the TCP address the server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the client SQLite database.
type DB struct {
	// DSN is the SQLite database file.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings of the replica server.
type Files struct {
	// ReplicaRoot is the directory served as a replica.
	// Env: STORAGE_FILES_REPLICA_ROOT
	ReplicaRoot string `env:"REPLICA_ROOT"`
}

// Adapter holds settings of outbound connections to replica servers.
type Adapter struct {
	// RequestTimeout bounds every request made to a replica server.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags (already parsed into flags, see BindClientFlags and
//     BindServerFlags)
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}
