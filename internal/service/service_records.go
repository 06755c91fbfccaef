// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/models"
)

type recordService struct {
	recordStorage store.RecordStorage
	pageSize      int

	logger *logger.Logger
}

// NewRecordService returns the record service over storage. Query pages are
// capped at cfg.PageSize records.
func NewRecordService(recordStorage store.RecordStorage, cfg config.Server, logger *logger.Logger) RecordService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	return &recordService{
		recordStorage: recordStorage,
		pageSize:      pageSize,
		logger:        logger,
	}
}

func (s *recordService) Query(ctx context.Context, ownerID int64, q models.Query) (models.QueryPage, error) {
	if q.Limit <= 0 || q.Limit > s.pageSize {
		q.Limit = s.pageSize
	}
	q.ModifiedAfter = q.ModifiedAfter.UTC()

	page, err := s.recordStorage.Query(ctx, ownerID, q)
	if err != nil {
		return models.QueryPage{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "recordService.Query").
		Int64("owner_id", ownerID).
		Str("record_type", q.RecordType).
		Int("records", len(page.Records)).
		Bool("has_more", page.HasMore()).
		Msg("records queried")

	return page, nil
}

func (s *recordService) Modify(ctx context.Context, ownerID int64, req models.ModifyRequest) (models.ModifyResult, error) {
	if req.SavePolicy == "" {
		req.SavePolicy = models.SavePolicyChangedKeys
	}
	if req.IsEmpty() {
		return models.ModifyResult{Saved: []models.Record{}, Deleted: []string{}}, nil
	}

	result, err := s.recordStorage.Modify(ctx, ownerID, req)
	if err != nil {
		return models.ModifyResult{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "recordService.Modify").
		Int64("owner_id", ownerID).
		Str("record_type", req.RecordType).
		Int("saved", len(result.Saved)).
		Int("deleted", len(result.Deleted)).
		Msg("records modified")

	return result, nil
}

func (s *recordService) IsRetryable(err error) bool {
	return s.recordStorage.IsRetryable(err)
}
