// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entity

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapAssets map[string][]byte

func (m mapAssets) ReadPhoto(id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func TestPhotoPath(t *testing.T) {
	p, err := PhotoPath("/docs", "20240115007")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/docs", "20240115", "007.jpg"), p)
}

func TestSplitPhotoID_Invalid(t *testing.T) {
	for _, id := range []string{"", "20240115", "2024011500", "202401150071", "20241315001", "2024011500x"} {
		t.Run(id, func(t *testing.T) {
			_, _, err := SplitPhotoID(id)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestPhotoCodec_ToRecord_AttachesAsset(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}
	codec := NewPhotoCodec(mapAssets{"20240115001": jpeg})
	modified := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	rec, err := codec.ToRecord(Photo{ID: "20240115001", ModifiedAt: modified})
	require.NoError(t, err)

	assert.Equal(t, "Photo", rec.RecordType)
	assert.Equal(t, "20240115001", rec.RecordName)
	assert.Equal(t, 0, rec.Fields[FieldDeleted])
	assert.Equal(t, modified, rec.Fields[FieldModified])
	require.NotNil(t, rec.Asset)
	assert.Equal(t, jpeg, rec.Asset.Data)
	assert.Equal(t, utils.AssetChecksum(jpeg), rec.Asset.Checksum)
}

func TestPhotoCodec_ToRecord_TombstoneHasNoAsset(t *testing.T) {
	codec := NewPhotoCodec(mapAssets{})

	rec, err := codec.ToRecord(Photo{ID: "20240115001", Deleted: true})
	require.NoError(t, err)
	assert.Nil(t, rec.Asset)
	assert.Equal(t, 1, rec.Fields[FieldDeleted])
}

func TestPhotoCodec_ToRecord_MissingFile(t *testing.T) {
	codec := NewPhotoCodec(mapAssets{})

	_, err := codec.ToRecord(Photo{ID: "20240115001"})
	assert.ErrorIs(t, err, ErrAssetMissing)
}

func TestPhotoCodec_FromRecord(t *testing.T) {
	jpeg := []byte("jpeg")
	codec := NewPhotoCodec(mapAssets{})

	base := func() models.Record {
		return models.Record{
			RecordType: models.RecordTypePhoto,
			RecordName: "20240115002",
			Fields: map[string]any{
				FieldDeleted:  float64(0),
				FieldModified: "2024-01-15T09:00:00Z",
			},
			Asset: &models.Asset{Data: jpeg, Checksum: utils.AssetChecksum(jpeg)},
		}
	}

	t.Run("live photo with asset", func(t *testing.T) {
		p, err := codec.FromRecord(base())
		require.NoError(t, err)
		assert.Equal(t, "20240115002", p.ID)
		assert.False(t, p.Deleted)
		assert.Equal(t, jpeg, p.Data)
	})

	t.Run("tombstone without asset", func(t *testing.T) {
		rec := base()
		rec.Fields[FieldDeleted] = float64(1)
		rec.Asset = nil

		p, err := codec.FromRecord(rec)
		require.NoError(t, err)
		assert.True(t, p.Deleted)
		assert.Empty(t, p.Data)
	})

	t.Run("live photo without asset", func(t *testing.T) {
		rec := base()
		rec.Asset = nil

		_, err := codec.FromRecord(rec)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		rec := base()
		rec.Asset.Checksum = utils.AssetChecksum([]byte("other"))

		_, err := codec.FromRecord(rec)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := base()
		rec.RecordName = "photo-1"

		_, err := codec.FromRecord(rec)
		assert.ErrorIs(t, err, ErrDecode)
	})
}
