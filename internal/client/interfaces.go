// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-diary/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// Syncer performs sync runs. It is implemented by [service.Coordinator].
type Syncer interface {
	Sync(ctx context.Context) (service.Result, error)
	OnComplete(fn func(service.Result))
	Wait()
}

// Runner runs background jobs until ctx is done.
type Runner interface {
	Run(ctx context.Context) error
}
