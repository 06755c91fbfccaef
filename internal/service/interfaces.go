package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-diary/models"
)

// RecordService serves the record protocol for the private database of one
// owner.
type RecordService interface {
	// Query returns one page of records changed after q.ModifiedAfter.
	Query(ctx context.Context, ownerID int64, q models.Query) (models.QueryPage, error)
	// Modify saves and deletes records of one type atomically.
	Modify(ctx context.Context, ownerID int64, req models.ModifyRequest) (models.ModifyResult, error)
	// IsRetryable reports whether err is transient and worth a Retry-After.
	IsRetryable(err error) bool
}

// AuthService issues and verifies owner bearer tokens.
type AuthService interface {
	CreateToken(ctx context.Context, ownerID int64) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// RecordServiceWrapper decorates a RecordService with extra behavior such
// as validation.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}
