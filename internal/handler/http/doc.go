// Package http implements the blob server's HTTP transport.
//
// It exposes the versioned blob store over REST: conditional writes and
// deletes keyed by version tag, reads and prefix listings. Tracing, access
// logging, compression and admin token checks run as middleware before a
// request reaches the store.
package http
