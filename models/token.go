// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT bearer token that scopes requests to the private
// database of a single owner.
//
// The "sub" claim carries the owner identifier as a base-10 integer.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// OwnerID is the parsed "sub" claim.
	OwnerID int64 `json:"-"`
}

// GetOwnerID parses the "sub" claim as the owner identifier.
func (t *Token) GetOwnerID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting owner from token: %w", err)
	}

	ownerID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting owner from token to int64: %w", err)
	}

	return ownerID, nil
}

func (t *Token) String() string {
	return t.SignedString
}
