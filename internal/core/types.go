package core

import (
	"encoding/json"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ColumnType is the inferred semantic type of a column.
// The varchar label doubles as its SQL type name.
type ColumnType string

const (
	TypeBoolean  ColumnType = "boolean"
	TypeNumeric  ColumnType = "numeric"
	TypeDateTime ColumnType = "datetime"
	TypeVarchar  ColumnType = "varchar"
)

// SQLType returns the PostgreSQL type used in CREATE TABLE.
func (t ColumnType) SQLType() string {
	if t == TypeDateTime {
		return "timestamptz"
	}
	return string(t)
}

// Column is a named, classified column. Columns are only produced by the
// classifier, so a Column always carries its final type.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindDateTime
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindDateTime:
		return "datetime"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a typed cell: Null | Bool | Number | DateTime | Text.
type Value struct {
	kind   Kind
	b      bool
	number pgtype.Numeric
	t      time.Time
	text   string
}

// NullValue returns the null cell.
func NullValue() Value { return Value{} }

// BoolValue wraps a boolean cell.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps a numeric cell.
func NumberValue(n pgtype.Numeric) Value { return Value{kind: KindNumber, number: n} }

// TimeValue wraps a datetime cell, normalized to UTC.
func TimeValue(t time.Time) Value { return Value{kind: KindDateTime, t: t.UTC()} }

// TextValue wraps a varchar cell.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) Bool() bool { return v.b }
func (v Value) Number() pgtype.Numeric { return v.number }
func (v Value) Time() time.Time { return v.t }
func (v Value) Text() string { return v.text }

// String renders the value for display. Null renders as "NULL".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return numericLiteral(v.number)
	case KindDateTime:
		return v.t.Format(isoMillis)
	case KindText:
		return v.text
	default:
		return "NULL"
	}
}

// PgValue returns the value in the form pgx encodes for COPY.
// Null returns nil.
func (v Value) PgValue() any {
	switch v.kind {
	case KindBool:
		return pgtype.Bool{Bool: v.b, Valid: true}
	case KindNumber:
		return v.number
	case KindDateTime:
		return pgtype.Timestamptz{Time: v.t, Valid: true}
	case KindText:
		return pgtype.Text{String: v.text, Valid: true}
	default:
		return nil
	}
}

// MarshalJSON renders numbers as bare JSON numbers and datetimes as ISO strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(numericLiteral(v.number)), nil
	case KindDateTime:
		return json.Marshal(v.t.Format(isoMillis))
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// isoMillis is the datetime rendering used for SQL literals and JSON.
const isoMillis = "2006-01-02T15:04:05.000Z"

// numericLiteral renders a numeric without exponent notation.
func numericLiteral(n pgtype.Numeric) string {
	if n.Int == nil {
		return "0"
	}

	digits := new(big.Int).Abs(n.Int).String()
	switch {
	case n.Exp > 0:
		digits += strings.Repeat("0", int(n.Exp))
	case n.Exp < 0:
		scale := int(-n.Exp)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}

	if n.Int.Sign() < 0 {
		return "-" + digits
	}
	return digits
}

// Row maps column names to typed cells. Missing trailing cells are absent.
type Row map[string]Value

// ParseResult is the typed table produced by Parse.
type ParseResult struct {
	Rows    []Row    `json:"rows"`
	Columns []Column `json:"columns"`
}

// ColumnNames returns the column names in order.
func (r *ParseResult) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// ParseConfig controls header handling and sentinel rewriting.
type ParseConfig struct {
	FirstLineHeaders           bool `json:"firstLineHeaders"`
	ConvertNullSentinel        bool `json:"convertNullSentinel"`
	ConvertEmptyStringSentinel bool `json:"convertEmptyStringSentinel"`
}

// rawCell is a cell after sentinel rewriting and before coercion.
type rawCell struct {
	null bool
	text string
}

type rawRow map[string]rawCell
