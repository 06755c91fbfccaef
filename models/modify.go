// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ModifyRequest is a batched mutation of one record type: records to save
// and record names to delete. The server applies it atomically.
type ModifyRequest struct {
	// RecordType is the record type all saved and deleted records belong to.
	RecordType string `json:"record_type"`

	// SavePolicy is one of [SavePolicyChangedKeys] or [SavePolicyAllKeys].
	// Empty means [SavePolicyChangedKeys].
	SavePolicy string `json:"save_policy,omitempty"`

	// Save lists records to insert or update.
	Save []Record `json:"save,omitempty"`

	// Delete lists record names to remove. Removing an absent record is not
	// an error.
	Delete []string `json:"delete,omitempty"`
}

// IsEmpty reports whether the request neither saves nor deletes anything.
func (r *ModifyRequest) IsEmpty() bool {
	return len(r.Save) == 0 && len(r.Delete) == 0
}

// ModifyResult reports what the server applied for a [ModifyRequest].
type ModifyResult struct {
	// Saved lists the saved records with their new server modification time.
	Saved []Record `json:"saved"`

	// Deleted lists the record names that were removed.
	Deleted []string `json:"deleted"`
}
