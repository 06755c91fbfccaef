// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestOwnerIDCtxKey(t *testing.T) {
	if OwnerIDCtxKey.String() != "ownerID" {
		t.Errorf("expected 'ownerID', got '%s'", OwnerIDCtxKey.String())
	}
}

func TestGetOwnerIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{"set", context.WithValue(context.Background(), OwnerIDCtxKey, int64(42)), 42, true},
		{"missing", context.Background(), 0, false},
		{"wrong type", context.WithValue(context.Background(), OwnerIDCtxKey, "42"), 0, false},
		{"zero", context.WithValue(context.Background(), OwnerIDCtxKey, int64(0)), 0, true},
		{"different key", context.WithValue(context.Background(), contextKey("other"), int64(99)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetOwnerIDFromContext(tt.ctx)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if id != tt.wantID {
				t.Errorf("expected ownerID=%d, got %d", tt.wantID, id)
			}
		})
	}
}
