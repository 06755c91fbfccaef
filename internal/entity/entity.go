// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package entity defines the diary entities kept in the local store and the
// codecs converting them to and from remote records.
//
// Every replicated entity implements [Syncable]: it exposes a primary key
// unique within its record type, a last-modification time used by the
// last-write-wins rule, and a tombstone flag. Tombstoned entities stay in the
// local store until the tombstone is old enough to be purged.
package entity

import (
	"time"

	"github.com/MKhiriev/go-diary/models"
)

// Syncable is the capability shared by all replicated entities.
type Syncable interface {
	// PrimaryKey returns the record name of the entity.
	PrimaryKey() string

	// Modified returns the last time the entity was written locally or the
	// modification time carried by the remote record it was decoded from.
	Modified() time.Time

	// IsDeleted reports whether the entity is a tombstone.
	IsDeleted() bool
}

// Codec converts an entity type to and from [models.Record].
type Codec[T Syncable] interface {
	// RecordType returns the remote record type of T.
	RecordType() string

	// ToRecord encodes an entity into a record ready for upload.
	ToRecord(entity T) (models.Record, error)

	// FromRecord decodes a downloaded record. A record that lacks a field or
	// carries a field of the wrong type yields an error wrapping [ErrDecode];
	// a partially filled entity is never returned.
	FromRecord(record models.Record) (T, error)
}
