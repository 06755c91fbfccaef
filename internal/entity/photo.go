// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entity

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

const (
	photoSequenceLen = 3
	photoIDLen       = len(DateLayout) + photoSequenceLen
	photoExt         = ".jpg"
)

// Photo is a JPEG attached to a diary entry.
//
// Its id is the entry date followed by a three digit sequence number, for
// example "20240115007". The JPEG itself lives on disk at [PhotoPath].
type Photo struct {
	ID         string
	Deleted    bool
	ModifiedAt time.Time

	// Data holds the asset bytes of a decoded remote record. It is empty for
	// photos loaded from the local store.
	Data []byte
}

func (p Photo) PrimaryKey() string  { return p.ID }
func (p Photo) Modified() time.Time { return p.ModifiedAt }
func (p Photo) IsDeleted() bool     { return p.Deleted }

// SplitPhotoID returns the date partition and the sequence number of id.
func SplitPhotoID(id string) (partition, sequence string, err error) {
	if len(id) != photoIDLen {
		return "", "", fmt.Errorf("%w: photo id %q must be %d characters", ErrInvalidKey, id, photoIDLen)
	}

	partition, sequence = id[:len(DateLayout)], id[len(DateLayout):]
	if _, err = time.Parse(DateLayout, partition); err != nil {
		return "", "", fmt.Errorf("%w: photo id %q: %w", ErrInvalidKey, id, err)
	}
	for _, r := range sequence {
		if r < '0' || r > '9' {
			return "", "", fmt.Errorf("%w: photo id %q has a non-numeric sequence", ErrInvalidKey, id)
		}
	}

	return partition, sequence, nil
}

// PhotoPath returns root/yyyyMMdd/NNN.jpg for the photo id.
func PhotoPath(root, id string) (string, error) {
	partition, sequence, err := SplitPhotoID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, partition, sequence+photoExt), nil
}

// AssetReader loads the JPEG bytes of a photo.
type AssetReader interface {
	ReadPhoto(id string) ([]byte, error)
}

// PhotoCodec converts photos to and from "Photo" records. Live photos
// carry their JPEG as the record asset.
type PhotoCodec struct {
	assets AssetReader
}

// NewPhotoCodec returns a photo codec reading upload assets from assets.
func NewPhotoCodec(assets AssetReader) *PhotoCodec {
	return &PhotoCodec{assets: assets}
}

func (c *PhotoCodec) RecordType() string {
	return models.RecordTypePhoto
}

func (c *PhotoCodec) ToRecord(p Photo) (models.Record, error) {
	if _, _, err := SplitPhotoID(p.ID); err != nil {
		return models.Record{}, err
	}

	record := models.Record{
		RecordType: models.RecordTypePhoto,
		RecordName: p.ID,
		Fields: map[string]any{
			FieldDeleted:  deletedFlag(p.Deleted),
			FieldModified: p.ModifiedAt.UTC(),
		},
	}
	if p.Deleted {
		return record, nil
	}

	data := p.Data
	if len(data) == 0 {
		var err error
		if data, err = c.assets.ReadPhoto(p.ID); err != nil {
			return models.Record{}, fmt.Errorf("%w: %s: %w", ErrAssetMissing, p.ID, err)
		}
	}
	record.Asset = &models.Asset{Data: data, Checksum: utils.AssetChecksum(data)}

	return record, nil
}

func (c *PhotoCodec) FromRecord(record models.Record) (Photo, error) {
	if err := checkRecordType(record, models.RecordTypePhoto); err != nil {
		return Photo{}, err
	}
	if _, _, err := SplitPhotoID(record.RecordName); err != nil {
		return Photo{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var (
		p   = Photo{ID: record.RecordName}
		err error
	)
	if p.Deleted, err = deletedField(record.Fields); err != nil {
		return Photo{}, err
	}
	if p.ModifiedAt, err = timeField(record.Fields, FieldModified); err != nil {
		return Photo{}, err
	}
	if p.Deleted {
		return p, nil
	}

	if record.Asset == nil || len(record.Asset.Data) == 0 {
		return Photo{}, fmt.Errorf("%w: photo %s has no asset", ErrDecode, p.ID)
	}
	if !utils.VerifyAssetChecksum(record.Asset.Data, record.Asset.Checksum) {
		return Photo{}, fmt.Errorf("%w: photo %s asset checksum mismatch", ErrDecode, p.ID)
	}
	p.Data = record.Asset.Data

	return p, nil
}
