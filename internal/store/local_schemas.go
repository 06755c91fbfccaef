package store

import (
	"github.com/MKhiriev/go-diary/internal/entity"
	"github.com/MKhiriev/go-diary/models"
)

func entrySchema() tableSchema[entity.Entry] {
	return tableSchema[entity.Entry]{
		recordType: models.RecordTypeEntry,
		table:      "entries",
		key:        "date",
		columns:    []string{"date", "wn", "wd", "text", "photos", columnDeleted, columnModified},
		scan: func(row rowScanner) (entity.Entry, error) {
			var (
				e        entity.Entry
				deleted  int
				modified int64
			)
			if err := row.Scan(&e.Date, &e.WeekNumber, &e.Weekday, &e.Text, &e.Photos, &deleted, &modified); err != nil {
				return entity.Entry{}, err
			}
			e.Deleted = deleted != 0
			e.ModifiedAt = fromUnixNano(modified)
			return e, nil
		},
		values: func(e entity.Entry) []any {
			return []any{e.Date, e.WeekNumber, e.Weekday, e.Text, e.Photos, boolToInt(e.Deleted), e.ModifiedAt.UnixNano()}
		},
	}
}

// photoSchema keeps the JPEG on disk in step with the row: a photo carrying
// asset bytes is materialized on upsert, and the file goes away with the row.
func photoSchema(files *PhotoFiles) tableSchema[entity.Photo] {
	return tableSchema[entity.Photo]{
		recordType: models.RecordTypePhoto,
		table:      "photos",
		key:        "id",
		columns:    []string{"id", columnDeleted, columnModified},
		scan: func(row rowScanner) (entity.Photo, error) {
			var (
				p        entity.Photo
				deleted  int
				modified int64
			)
			if err := row.Scan(&p.ID, &deleted, &modified); err != nil {
				return entity.Photo{}, err
			}
			p.Deleted = deleted != 0
			p.ModifiedAt = fromUnixNano(modified)
			return p, nil
		},
		values: func(p entity.Photo) []any {
			return []any{p.ID, boolToInt(p.Deleted), p.ModifiedAt.UnixNano()}
		},
		afterUpsert: func(p entity.Photo) error {
			if p.Deleted {
				return files.RemovePhoto(p.ID)
			}
			if len(p.Data) == 0 {
				return nil
			}
			return files.WritePhoto(p.ID, p.Data)
		},
		afterDelete: files.RemovePhoto,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
