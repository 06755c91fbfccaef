// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware for a
	// request without an "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoOwnerInContext means a records route ran without the auth
	// middleware in front of it.
	ErrNoOwnerInContext = errors.New("no owner in request context")

	// ErrInvalidJSON is returned for a request body that is not a valid JSON
	// document of the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrRequestTooLarge is returned for a body above the configured limit.
	ErrRequestTooLarge = errors.New("request body too large")
)
