// Package keyring caches the admin token in the OS keyring, keyed by vault
// name, so the terminal client does not ask for it on every command.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "group-vault"

// ErrNotFound is returned when no token is cached for a vault.
var ErrNotFound = errors.New("no cached token")

// TokenStore reads and writes cached admin tokens.
type TokenStore struct {
	service string
}

// New returns a TokenStore under the default service name.
func New() *TokenStore {
	return &TokenStore{service: serviceName}
}

// Save caches token for vault, replacing any earlier one.
func (s *TokenStore) Save(vault, token string) error {
	return keyring.Set(s.service, vault, token)
}

// Load returns the cached token for vault, or [ErrNotFound].
func (s *TokenStore) Load(vault string) (string, error) {
	token, err := keyring.Get(s.service, vault)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return token, err
}

// Delete drops the cached token. A missing token is not an error.
func (s *TokenStore) Delete(vault string) error {
	err := keyring.Delete(s.service, vault)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
