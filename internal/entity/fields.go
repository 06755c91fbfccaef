// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-diary/models"
)

// Field names shared by the record types.
const (
	FieldDeleted  = "deleted"
	FieldModified = "modified"
)

func checkRecordType(record models.Record, want string) error {
	if record.RecordType != want {
		return fmt.Errorf("%w: record type %q, want %q", ErrDecode, record.RecordType, want)
	}
	if record.RecordName == "" {
		return fmt.Errorf("%w: empty record name", ErrDecode)
	}
	return nil
}

func lookupField(fields map[string]any, name string) (any, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: field %q is missing", ErrDecode, name)
	}
	return v, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	v, err := lookupField(fields, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrDecode, name, v)
	}
	return s, nil
}

// intField accepts every numeric representation a JSON decoder or an
// in-process caller may produce, as long as the value is integral.
func intField(fields map[string]any, name string) (int64, error) {
	v, err := lookupField(fields, name)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: field %q is not integral", ErrDecode, name)
		}
		return int64(n), nil
	case json.Number:
		i, convErr := n.Int64()
		if convErr != nil {
			return 0, fmt.Errorf("%w: field %q: %w", ErrDecode, name, convErr)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: field %q is %T, want integer", ErrDecode, name, v)
	}
}

func int8Field(fields map[string]any, name string) (int8, error) {
	n, err := intField(fields, name)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt8 || n > math.MaxInt8 {
		return 0, fmt.Errorf("%w: field %q out of int8 range", ErrDecode, name)
	}
	return int8(n), nil
}

func deletedField(fields map[string]any) (bool, error) {
	n, err := intField(fields, FieldDeleted)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func timeField(fields map[string]any, name string) (time.Time, error) {
	v, err := lookupField(fields, name)
	if err != nil {
		return time.Time{}, err
	}

	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, parseErr := time.Parse(time.RFC3339Nano, t)
		if parseErr != nil {
			return time.Time{}, fmt.Errorf("%w: field %q: %w", ErrDecode, name, parseErr)
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("%w: field %q is %T, want timestamp", ErrDecode, name, v)
	}
}

func deletedFlag(deleted bool) int {
	if deleted {
		return 1
	}
	return 0
}
