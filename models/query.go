// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Query selects records of one type changed on the server after a point in
// time. Results are paginated; Cursor continues a previous page.
type Query struct {
	// RecordType is the record type to query.
	RecordType string `json:"record_type"`

	// ModifiedAfter is the exclusive lower bound of the server modification
	// time. The zero value matches every record.
	ModifiedAfter time.Time `json:"modified_after"`

	// Cursor is the opaque continuation token returned with the previous
	// page. Empty for the first page.
	Cursor string `json:"cursor,omitempty"`

	// Limit caps the page size. Zero lets the server pick its default.
	Limit int `json:"limit,omitempty"`
}

// QueryPage is one page of a [Query] result.
type QueryPage struct {
	// Records holds the page items ordered by server modification time.
	Records []Record `json:"records"`

	// Cursor is set when more pages remain.
	Cursor string `json:"cursor,omitempty"`
}

// HasMore reports whether another page can be requested with Cursor.
func (p *QueryPage) HasMore() bool {
	return p.Cursor != ""
}
