package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownRecordType   = errors.New("unknown record type")
	ErrUnknownSavePolicy   = errors.New("unknown save policy")
	ErrInvalidLimit        = errors.New("limit must not be negative")
	ErrEmptyRecordName     = errors.New("record name is required")
	ErrRecordTypeMismatch  = errors.New("record type differs from the request record type")
	ErrEmptyRecord         = errors.New("record carries neither fields nor asset")
	ErrInvalidAsset        = errors.New("asset checksum does not match its data")
	ErrDuplicateRecordName = errors.New("record name occurs more than once")
	ErrSaveDeleteConflict  = errors.New("record name is both saved and deleted")
)
