package config

import (
	"fmt"
	"time"
)

// ClientConfig is the view of [StructuredConfig] used by the terminal
// client.
type ClientConfig struct {
	App     App
	Vault   Vault
	Adapter Adapter
}

// ServerConfig is the view of [StructuredConfig] used by the blob server.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
}

// PurgeBlobs reports whether file blobs are deleted after their item or
// group is committed away.
func (v Vault) PurgeBlobs() bool {
	return !v.KeepBlobs
}

// GetClientConfig loads env and the optional JSON file at jsonPath, then
// validates the client view. Flags are owned by the CLI framework and are
// applied by the caller through overrides.
func GetClientConfig(jsonPath string, overrides *StructuredConfig) (*ClientConfig, error) {
	b := newConfigBuilder().
		withEnv().
		withJSONFile(jsonPath).
		withJSON()
	if overrides != nil {
		b.configs = append(b.configs, overrides)
	}

	cfg, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientView()
	return clientCfg, clientCfg.validate()
}

// GetServerConfig loads env, the flags in args and the optional JSON file,
// then validates the server view.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerView()
	return serverCfg, serverCfg.validate()
}

// ClientView maps the fields relevant to the client.
func (cfg *StructuredConfig) ClientView() *ClientConfig {
	return &ClientConfig{
		App:     cfg.App,
		Vault:   cfg.Vault,
		Adapter: cfg.Adapter,
	}
}

// ServerView maps the fields relevant to the blob server.
func (cfg *StructuredConfig) ServerView() *ServerConfig {
	return &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}
}

// TokenTTL returns the admin token lifetime.
func (cfg *ServerConfig) TokenTTL() time.Duration {
	return cfg.App.TokenDuration
}
