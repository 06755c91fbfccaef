// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entity

import "errors"

var (
	// ErrDecode is returned when a remote record cannot be converted into an
	// entity: wrong record type, a missing field, a field of unexpected type
	// or an asset that fails its checksum.
	ErrDecode = errors.New("record decode error")

	// ErrInvalidKey is returned when a primary key does not follow the
	// layout of its entity type.
	ErrInvalidKey = errors.New("invalid primary key")

	// ErrAssetMissing is returned when a live photo has no asset file to
	// upload.
	ErrAssetMissing = errors.New("photo asset is missing")
)
