// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged configuration shared by the vault client
// and the blob server. It is populated from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name of a scalar field.
type StructuredConfig struct {
	// App holds token parameters, logging and version settings.
	App App `envPrefix:"APP_"`

	// Vault holds client-side vault behaviour: which vault, which backend,
	// commit retry policy and unlock pacing.
	Vault Vault `envPrefix:"VAULT_"`

	// Storage holds the blob server's relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the blob server listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of a remote blob server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// set via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey is the HMAC secret signing admin tokens. Server only.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of admin tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued admin token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is where the terminal client writes its log.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Vault holds client-side vault behaviour.
type Vault struct {
	// Name identifies the vault. It keys the cached admin token in the OS
	// keyring. Required by the client.
	// Env: VAULT_NAME
	Name string `env:"NAME"`

	// Backend selects the blob store: "http" (remote blob server), "bolt"
	// (local single-file vault) or "memory" (ephemeral).
	// Env: VAULT_BACKEND
	Backend string `env:"BACKEND"`

	// BoltPath is the vault file used by the "bolt" backend.
	// Env: VAULT_BOLT_PATH
	BoltPath string `env:"BOLT_PATH"`

	// CacheSize bounds the LRU of decrypted-at-rest file blobs.
	// Env: VAULT_CACHE_SIZE
	CacheSize int `env:"CACHE_SIZE"`

	// UnlockDelay is the pause before each key derivation of an unlock
	// batch. Zero disables pacing.
	// Env: VAULT_UNLOCK_DELAY
	UnlockDelay time.Duration `env:"UNLOCK_DELAY"`

	// CommitAttempts bounds reload-and-reapply rounds after a version
	// conflict.
	// Env: VAULT_COMMIT_ATTEMPTS
	CommitAttempts int `env:"COMMIT_ATTEMPTS"`

	// CommitBackoff is the pause between commit attempts.
	// Env: VAULT_COMMIT_BACKOFF
	CommitBackoff time.Duration `env:"COMMIT_BACKOFF"`

	// RevalidateCredential repeats the authentication check before every
	// mutation.
	// Env: VAULT_REVALIDATE_CREDENTIAL
	RevalidateCredential bool `env:"REVALIDATE_CREDENTIAL"`

	// KeepBlobs disables deleting file blobs after their item or group is
	// removed. Orphans are then only collected by reconcile.
	// Env: VAULT_KEEP_BLOBS
	KeepBlobs bool `env:"KEEP_BLOBS"`

	// ErrorTTL is how long a surfaced error stays visible.
	// Env: VAULT_ERROR_TTL
	ErrorTTL time.Duration `env:"ERROR_TTL"`

	// MaxFileSize bounds uploaded files, in bytes. Zero disables the check.
	// Env: VAULT_MAX_FILE_SIZE
	MaxFileSize int64 `env:"MAX_FILE_SIZE"`
}

// Storage groups the blob server persistence settings.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver is "pgx" (PostgreSQL) or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string, or the file path for sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the blob server listener settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds the client's view of a remote blob server.
type Adapter struct {
	// HTTPAddress is the blob server base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Backends accepted in Vault.Backend.
const (
	BackendHTTP   = "http"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// defaults fills every field left zero after all sources are merged.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "group-vault",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "info",
		},
		Vault: Vault{
			Backend:        BackendHTTP,
			CacheSize:      64,
			CommitAttempts: 3,
			CommitBackoff:  200 * time.Millisecond,
			ErrorTTL:       5 * time.Second,
			MaxFileSize:    25 << 20,
		},
		Storage: Storage{DB: DB{Driver: "pgx"}},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{RequestTimeout: 15 * time.Second},
	}
}

// GetStructuredConfig loads and merges the configuration in priority order
// (later sources override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// Remaining zero fields take their defaults. The result is not validated;
// use [GetServerConfig] or [GetClientConfig] for that.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
