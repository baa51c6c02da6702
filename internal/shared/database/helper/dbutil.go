package helper

import (
	"database/sql"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =======================
// RAW VALUE TO NULL (POSTGRES)
// =======================

func RawBoolToNull(b bool) sql.NullBool {
	return sql.NullBool{Bool: b, Valid: true}
}

// RawStringToNull treats the empty string as NULL.
func RawStringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func RawInt32ToNull(i int32) sql.NullInt32 {
	return sql.NullInt32{Int32: i, Valid: true}
}

// =======================
// STRING
// =======================

func StringPtrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func StringPtr(s string) *string {
	return &s
}

func StringToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// =======================
// UUID (Postgres Native)
// =======================

func StringToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func StringPtrToUUID(s *string) uuid.UUID {
	if s == nil || *s == "" {
		return uuid.Nil
	}
	return StringToUUID(*s)
}

// =======================
// BOOL
// =======================

func BoolPtrValue(b *bool, defaultValue bool) bool {
	if b == nil {
		return defaultValue
	}
	return *b
}

func BoolToNull(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

// =======================
// INT32 / INT64
// =======================

func Int32PtrValue(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

func Int32ToNull(i *int32) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *i, Valid: true}
}

func Int64ToNull(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// =======================
// DECIMAL (Postgres Numeric)
// =======================

// Float64ToDecimalExact goes through the string form so the NUMERIC
// column never sees binary float noise.
func Float64ToDecimalExact(f float64) decimal.Decimal {
	return decimal.RequireFromString(
		strconv.FormatFloat(f, 'f', -1, 64),
	)
}

func Float64PtrToDecimalExact(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return Float64ToDecimalExact(*f)
}

func DecimalToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: *d,
		Valid:   true,
	}
}
