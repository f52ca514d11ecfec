// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// # Row Decoding
//
// Adapters return loosely typed values (pgx yields int32 for INTEGER, [16]byte for
// UUID, the memory store keeps whatever was inserted). These helpers normalise them
// so repositories can map rows without caring which adapter produced them.

// String returns the column as a string, or "" when NULL or missing.
func (row Row) String(column string) string {
	switch v := row[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case [16]byte:
		return uuid.UUID(v).String()
	case uuid.UUID:
		return v.String()
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// StringPtr returns the column as a *string, nil when NULL or missing.
func (row Row) StringPtr(column string) *string {
	if row.IsNull(column) {
		return nil
	}
	s := row.String(column)
	return &s
}

// Int returns the column as an int, or 0 when NULL or missing.
func (row Row) Int(column string) int {
	switch v := row[column].(type) {
	case int:
		return v
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case *int:
		if v == nil {
			return 0
		}
		return *v
	default:
		return 0
	}
}

// IntPtr returns the column as an *int, nil when NULL or missing.
func (row Row) IntPtr(column string) *int {
	if row.IsNull(column) {
		return nil
	}
	n := row.Int(column)
	return &n
}

// Float returns the column as a float64, or 0 when NULL or missing.
func (row Row) Float(column string) float64 {
	switch v := row[column].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Bool returns the column as a bool, false when NULL or missing.
func (row Row) Bool(column string) bool {
	v, _ := row[column].(bool)
	return v
}

// Time returns the column as a time.Time, zero when NULL or missing.
func (row Row) Time(column string) time.Time {
	switch v := row[column].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v == nil {
			return time.Time{}
		}
		return *v
	default:
		return time.Time{}
	}
}

// TimePtr returns the column as a *time.Time, nil when NULL or missing.
func (row Row) TimePtr(column string) *time.Time {
	if row.IsNull(column) {
		return nil
	}
	t := row.Time(column)
	return &t
}

// IsNull reports whether the column is missing or holds a nil value.
func (row Row) IsNull(column string) bool {
	v, ok := row[column]
	if !ok || v == nil {
		return true
	}
	switch p := v.(type) {
	case *string:
		return p == nil
	case *int:
		return p == nil
	case *time.Time:
		return p == nil
	}
	return false
}
