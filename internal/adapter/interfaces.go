// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the remote record service.
//
// The primary abstraction is [RemoteService], which decouples the sync
// engine from the transport. The package ships an HTTP/JSON implementation
// ([NewHTTPRemoteService]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling. Throttling and transient server failures that carry a
// Retry-After hint are returned as [*RetryAfterError].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-diary/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_service_mock.go -package=mock

// RemoteService is the remote record service consumed by the sync engine.
// Every call is scoped to the private database of the token owner.
type RemoteService interface {
	// Query returns one page of records of q.RecordType modified after
	// q.ModifiedAfter. A non-empty page cursor continues the query.
	Query(ctx context.Context, q models.Query) (models.QueryPage, error)

	// Modify saves and deletes records of req.RecordType in one batch.
	Modify(ctx context.Context, req models.ModifyRequest) (models.ModifyResult, error)
}
