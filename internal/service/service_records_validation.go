package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/validators"
	"github.com/MKhiriev/go-diary/models"
)

// RecordValidationService rejects malformed queries and modify requests
// before they reach the wrapped RecordService.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *RecordValidationService) Query(ctx context.Context, ownerID int64, q models.Query) (models.QueryPage, error) {
	if err := v.validate(ctx, ownerID, q); err != nil {
		return models.QueryPage{}, err
	}
	return v.inner.Query(ctx, ownerID, q)
}

func (v *RecordValidationService) Modify(ctx context.Context, ownerID int64, req models.ModifyRequest) (models.ModifyResult, error) {
	if err := v.validate(ctx, ownerID, req); err != nil {
		return models.ModifyResult{}, err
	}
	return v.inner.Modify(ctx, ownerID, req)
}

func (v *RecordValidationService) IsRetryable(err error) bool {
	return v.inner.IsRetryable(err)
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *RecordValidationService) validate(ctx context.Context, ownerID int64, obj any) error {
	if ownerID <= 0 {
		return fmt.Errorf("%w: owner id %d", ErrInvalidDataProvided, ownerID)
	}
	if err := v.validator.Validate(ctx, obj); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "RecordValidationService.validate").
			Int64("owner_id", ownerID).
			Msg("request rejected")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
