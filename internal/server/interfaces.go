package server

import "context"

// Server defines the lifecycle of the blob server.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then shuts down
	// gracefully.
	RunServer()

	// Run serves until ctx is done, then shuts down gracefully. It returns
	// early with the error if the listener fails.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
