// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the client view before startup.
func (cfg *ClientConfig) validate() error {
	if cfg.Vault.Name == "" {
		return fmt.Errorf("%w: vault name is required", ErrInvalidVaultConfigs)
	}
	if cfg.Vault.CommitAttempts < 1 {
		return fmt.Errorf("%w: commit attempts must be positive", ErrInvalidVaultConfigs)
	}

	switch cfg.Vault.Backend {
	case BackendHTTP:
		if cfg.Adapter.HTTPAddress == "" {
			return fmt.Errorf("%w: blob server address is required", ErrInvalidAdapterConfigs)
		}
	case BackendBolt:
		if cfg.Vault.BoltPath == "" {
			return fmt.Errorf("%w: bolt path is required", ErrInvalidVaultConfigs)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidVaultConfigs, cfg.Vault.Backend)
	}

	return nil
}

// validate checks the server view before startup.
func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.DB.Driver {
	case "pgx", "postgres", "sqlite3", "sqlite":
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: dsn is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
