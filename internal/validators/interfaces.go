// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks record service requests before they reach the
// persistence layer.
//
// A Validator accepts any supported request value and optionally restricts
// the check to named fields, so a transport can validate only what it
// decoded.
package validators

import "context"

// Validator validates an arbitrary input value, optionally restricted to
// the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
