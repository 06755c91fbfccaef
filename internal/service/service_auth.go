package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

// authService issues HS256 bearer tokens whose subject is the owner id.
// Owners are provisioned out of band, so there is no login flow: an operator
// issues a token per owner with the server's -issue-token flag.
type authService struct {
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the token settings in cfg.
// The returned service is read-only after construction.
func NewAuthService(cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed token for ownerID.
func (a *authService) CreateToken(ctx context.Context, ownerID int64) (models.Token, error) {
	if ownerID <= 0 {
		return models.Token{}, fmt.Errorf("%w: owner id %d", ErrInvalidDataProvided, ownerID)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, ownerID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateToken").Int64("owner_id", ownerID).Msg("token was not issued")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken verifies tokenString. Every failure (expired, foreign issuer,
// bad signature, malformed subject) is reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if token.OwnerID <= 0 {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
