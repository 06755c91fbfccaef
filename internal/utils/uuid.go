package utils

import "github.com/google/uuid"

// SortableID returns a UUIDv7 string. IDs generated later sort after earlier
// ones, which keeps sync run and trace ids in log order. A random UUIDv4 is
// returned if the v7 generator fails.
func SortableID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
