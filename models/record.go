// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Record types known to the diary replication protocol.
const (
	RecordTypeEntry = "Entry"
	RecordTypePhoto = "Photo"
)

// Save policies accepted by the record service.
const (
	// SavePolicyChangedKeys overwrites only the fields present in the saved
	// record and keeps every other stored field untouched.
	SavePolicyChangedKeys = "changed_keys"
	// SavePolicyAllKeys replaces the stored fields with the saved ones.
	SavePolicyAllKeys = "all_keys"
)

// Record is the wire representation of a single entity in the remote record
// service. It is keyed by (RecordType, RecordName) inside the private
// database of one owner.
type Record struct {
	// RecordType names the table the record belongs to (e.g. "Entry").
	RecordType string `json:"record_type"`

	// RecordName is the primary key of the entity inside its record type.
	RecordName string `json:"record_name"`

	// Fields carries the scalar payload of the entity. Numbers decode as
	// float64 or json.Number depending on the decoder.
	Fields map[string]any `json:"fields"`

	// Asset is an optional binary attachment (photo bytes).
	Asset *Asset `json:"asset,omitempty"`

	// ModifiedAt is the server-side modification time assigned when the
	// record was last saved. Ignored on upload.
	ModifiedAt time.Time `json:"modified_at,omitzero"`
}

// Asset is a binary attachment of a record.
type Asset struct {
	// Data is the raw content, base64-encoded in JSON.
	Data []byte `json:"data"`

	// Checksum is the hex-encoded BLAKE2b-256 digest of Data.
	Checksum string `json:"checksum"`
}
