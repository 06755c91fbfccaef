// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

// recordStorage is the default implementation of [RecordStorage].
//
// Record fields go to the [RecordRepository]; asset bodies go to the
// [AssetStore] under a key that embeds the asset checksum, so a row always
// points at the exact body it was saved with. Bodies are written before the
// row and removed only after the transaction that stopped referencing them
// has committed.
type recordStorage struct {
	repository RecordRepository
	assets     AssetStore
	logger     *logger.Logger
}

// NewRecordStorage constructs a [RecordStorage].
func NewRecordStorage(repository RecordRepository, assets AssetStore, log *logger.Logger) RecordStorage {
	return &recordStorage{repository: repository, assets: assets, logger: log}
}

// Query returns one page of changed records with their assets attached.
func (s *recordStorage) Query(ctx context.Context, ownerID int64, q models.Query) (models.QueryPage, error) {
	log := logger.FromContext(ctx)

	rows, next, err := s.repository.Query(ctx, ownerID, q)
	if err != nil {
		return models.QueryPage{}, err
	}

	page := models.QueryPage{Records: make([]models.Record, 0, len(rows)), Cursor: next}
	for _, row := range rows {
		record := row.Record
		if row.AssetKey != "" {
			data, err := s.assets.GetAsset(ctx, row.AssetKey)
			if err != nil {
				log.Err(err).
					Str("func", "recordStorage.Query").
					Str("record_name", row.RecordName).
					Msg("failed to load record asset")
				return models.QueryPage{}, err
			}
			if !utils.VerifyAssetChecksum(data, row.AssetChecksum) {
				return models.QueryPage{}, fmt.Errorf("%w: stored asset of %s", ErrAssetChecksum, row.RecordName)
			}
			record.Asset = &models.Asset{Data: data, Checksum: row.AssetChecksum}
		}
		page.Records = append(page.Records, record)
	}

	return page, nil
}

// Modify stores the assets of req, then saves and deletes the records in one
// transaction. Saved records are returned without asset bodies.
func (s *recordStorage) Modify(ctx context.Context, ownerID int64, req models.ModifyRequest) (models.ModifyResult, error) {
	log := logger.FromContext(ctx)

	rows := make([]RecordRow, 0, len(req.Save))
	for _, record := range req.Save {
		row := RecordRow{Record: record}
		row.Asset = nil
		row.RecordType = req.RecordType

		if record.Asset != nil {
			if !utils.VerifyAssetChecksum(record.Asset.Data, record.Asset.Checksum) {
				return models.ModifyResult{}, fmt.Errorf("%w: uploaded asset of %s", ErrAssetChecksum, record.RecordName)
			}

			row.AssetKey = assetKey(ownerID, req.RecordType, record.RecordName, record.Asset.Checksum)
			row.AssetChecksum = record.Asset.Checksum
			if err := s.assets.PutAsset(ctx, row.AssetKey, record.Asset.Data); err != nil {
				log.Err(err).
					Str("func", "recordStorage.Modify").
					Str("record_name", record.RecordName).
					Msg("failed to store record asset")
				return models.ModifyResult{}, err
			}
		}
		rows = append(rows, row)
	}

	saved, orphaned, err := s.repository.Modify(ctx, ownerID, req.RecordType, req.SavePolicy, rows, req.Delete)
	if err != nil {
		return models.ModifyResult{}, err
	}

	for _, key := range orphaned {
		if err = s.assets.DeleteAsset(ctx, key); err != nil {
			log.Warn().Err(err).
				Str("func", "recordStorage.Modify").
				Str("asset_key", key).
				Msg("failed to remove orphaned asset")
		}
	}

	result := models.ModifyResult{
		Saved:   make([]models.Record, 0, len(saved)),
		Deleted: req.Delete,
	}
	for _, row := range saved {
		result.Saved = append(result.Saved, row.Record)
	}
	if result.Deleted == nil {
		result.Deleted = []string{}
	}

	return result, nil
}

func (s *recordStorage) IsRetryable(err error) bool {
	return s.repository.IsRetryable(err)
}

func assetKey(ownerID int64, recordType, recordName, checksum string) string {
	return fmt.Sprintf("%d/%s/%s/%s", ownerID, url.PathEscape(recordType), url.PathEscape(recordName), checksum)
}
