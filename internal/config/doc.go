// Package config loads, merges and validates configuration for the vault
// client and the blob server.
//
// Sources are applied in priority order (later sources override earlier
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Zero fields left after merging take built-in defaults. The entry points
// are [GetClientConfig] and [GetServerConfig]; both return errors wrapping
// [ErrConfiguration] when the merged view is unusable.
package config
