package server

import "context"

// Server is the lifecycle of the record service listener.
type Server interface {
	// RunServer serves until a stop signal arrives, then shuts down
	// gracefully.
	RunServer() error

	// Run serves until ctx is done, then shuts down gracefully. It returns
	// early with the error of a listener that fails on its own.
	Run(ctx context.Context) error
}
