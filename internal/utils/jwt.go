package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-diary/models"
)

// ErrInvalidBearerHeader is returned by [ParseBearerToken] for a header that
// is not of the form "Bearer <token>".
var ErrInvalidBearerHeader = errors.New("invalid bearer authorization header")

// GenerateJWTToken creates an HMAC-SHA256 signed token scoping requests to the
// private database of ownerID.
//
// Claims: iss = issuer, sub = ownerID in base 10, iat = now,
// exp = now + tokenDuration.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("diary-records", 42, 720*time.Hour, "secret")
func GenerateJWTToken(issuer string, ownerID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(ownerID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     signed,
		OwnerID:          ownerID,
	}, nil
}

// ValidateAndParseJWTToken verifies the signature (HS256 only), the issuer and
// the expiration of tokenString and extracts the owner from its subject.
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(raw, "secret", "diary-records")
//	if err != nil {
//	    // reject the request
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	ownerID, err := parsed.GetOwnerID()
	if err != nil {
		return models.Token{}, err
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	parsed.OwnerID = ownerID
	return *parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidBearerHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidBearerHeader
	}
	return token, nil
}
