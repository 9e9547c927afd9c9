package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every configuration failure. It is fatal
// at startup.
var ErrConfiguration = errors.New("configuration error")

// Validation errors returned by the client and server views. Each wraps
// [ErrConfiguration].
var (
	// ErrInvalidVaultConfigs indicates a missing vault name, an unknown
	// backend, or a backend without its location.
	ErrInvalidVaultConfigs = fmt.Errorf("%w: invalid vault configuration", ErrConfiguration)
	// ErrInvalidAdapterConfigs indicates a missing blob server address.
	ErrInvalidAdapterConfigs = fmt.Errorf("%w: invalid adapter configuration", ErrConfiguration)
	// ErrInvalidStorageConfigs indicates a missing DSN or unknown driver.
	ErrInvalidStorageConfigs = fmt.Errorf("%w: invalid storage configuration", ErrConfiguration)
	// ErrInvalidAppConfigs indicates missing token settings on the server.
	ErrInvalidAppConfigs = fmt.Errorf("%w: invalid app configuration", ErrConfiguration)
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = fmt.Errorf("%w: invalid server configuration", ErrConfiguration)
)
