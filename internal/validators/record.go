package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

// Field names accepted by [RecordValidator.Validate] to scope a check.
const (
	FieldRecordType = "record_type"
	FieldLimit      = "limit"
	FieldSavePolicy = "save_policy"
	FieldSave       = "save"
	FieldDelete     = "delete"
	FieldRecordName = "record_name"
	FieldFields     = "fields"
	FieldAsset      = "asset"
)

var knownRecordTypes = []string{
	models.RecordTypeEntry,
	models.RecordTypePhoto,
}

var knownSavePolicies = []string{
	"",
	models.SavePolicyChangedKeys,
	models.SavePolicyAllKeys,
}

// RecordValidator validates [models.Query], [models.ModifyRequest] and
// [models.Record] values, by value or by pointer.
type RecordValidator struct{}

// NewRecordValidator returns a [Validator] for record service requests.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Query:
		return v.validateQuery(value, fields...)
	case *models.Query:
		return v.validateQuery(*value, fields...)

	case models.ModifyRequest:
		return v.validateModifyRequest(value, fields...)
	case *models.ModifyRequest:
		return v.validateModifyRequest(*value, fields...)

	case models.Record:
		return v.validateRecord("", value, fields...)
	case *models.Record:
		return v.validateRecord("", *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RecordValidator) validateQuery(q models.Query, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordType, FieldLimit}
	}

	for _, field := range fields {
		switch field {
		case FieldRecordType:
			if err := validateRecordType(q.RecordType); err != nil {
				return err
			}
		case FieldLimit:
			if q.Limit < 0 {
				return fmt.Errorf("%w: %d", ErrInvalidLimit, q.Limit)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *RecordValidator) validateModifyRequest(req models.ModifyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordType, FieldSavePolicy, FieldSave, FieldDelete}
	}

	for _, field := range fields {
		switch field {
		case FieldRecordType:
			if err := validateRecordType(req.RecordType); err != nil {
				return err
			}
		case FieldSavePolicy:
			if !slices.Contains(knownSavePolicies, req.SavePolicy) {
				return fmt.Errorf("%w: %q", ErrUnknownSavePolicy, req.SavePolicy)
			}
		case FieldSave:
			seen := make(map[string]struct{}, len(req.Save))
			for _, record := range req.Save {
				if err := v.validateRecord(req.RecordType, record); err != nil {
					return err
				}
				if _, dup := seen[record.RecordName]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateRecordName, record.RecordName)
				}
				seen[record.RecordName] = struct{}{}
			}
		case FieldDelete:
			if err := validateDeletes(req); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

// validateRecord checks one saved record. recordType is the type of the
// enclosing request; empty skips the type check.
func (v *RecordValidator) validateRecord(recordType string, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordName, FieldRecordType, FieldFields, FieldAsset}
	}

	for _, field := range fields {
		switch field {
		case FieldRecordName:
			if record.RecordName == "" {
				return ErrEmptyRecordName
			}
		case FieldRecordType:
			if recordType != "" && record.RecordType != "" && record.RecordType != recordType {
				return fmt.Errorf("%w: %s is %s", ErrRecordTypeMismatch, record.RecordName, record.RecordType)
			}
		case FieldFields:
			if len(record.Fields) == 0 && record.Asset == nil {
				return fmt.Errorf("%w: %s", ErrEmptyRecord, record.RecordName)
			}
		case FieldAsset:
			if record.Asset != nil && !utils.VerifyAssetChecksum(record.Asset.Data, record.Asset.Checksum) {
				return fmt.Errorf("%w: %s", ErrInvalidAsset, record.RecordName)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func validateRecordType(recordType string) error {
	if !slices.Contains(knownRecordTypes, recordType) {
		return fmt.Errorf("%w: %q", ErrUnknownRecordType, recordType)
	}
	return nil
}

func validateDeletes(req models.ModifyRequest) error {
	saved := make(map[string]struct{}, len(req.Save))
	for _, record := range req.Save {
		saved[record.RecordName] = struct{}{}
	}

	seen := make(map[string]struct{}, len(req.Delete))
	for _, name := range req.Delete {
		if name == "" {
			return ErrEmptyRecordName
		}
		if _, ok := saved[name]; ok {
			return fmt.Errorf("%w: %s", ErrSaveDeleteConflict, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRecordName, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
