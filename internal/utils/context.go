// Package utils provides helpers shared by the diary sync client and the
// record service: context keys, bearer tokens, JSON responses, the outbound
// HTTP client, asset checksums and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// OwnerIDCtxKey is the context key of the authenticated owner id, set by the
// record service auth middleware.
//
//	ctx := context.WithValue(ctx, utils.OwnerIDCtxKey, int64(42))
var OwnerIDCtxKey = contextKey("ownerID")

// GetOwnerIDFromContext returns the owner id stored under [OwnerIDCtxKey].
// ok is false when the value is missing or is not an int64.
func GetOwnerIDFromContext(ctx context.Context) (int64, bool) {
	ownerID, ok := ctx.Value(OwnerIDCtxKey).(int64)
	return ownerID, ok
}
