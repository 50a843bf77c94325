package core

// convert.go turns raw cells into typed Values once their column is classified.
//
// Coercion does not re-validate: a boolean column maps anything outside the
// true literals to false. Numeric and datetime cells that fail to parse are
// reported as *CoercionError, which classification should already rule out.

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// trueLiterals are the boolean cells that coerce to true.
var trueLiterals = map[string]bool{"1": true, "true": true, "TRUE": true}

// coerce converts one raw cell according to the classified column.
func coerce(col Column, cell rawCell) (Value, error) {
	if cell.null {
		return NullValue(), nil
	}

	switch col.Type {
	case TypeBoolean:
		return BoolValue(trueLiterals[cell.text]), nil

	case TypeNumeric:
		var n pgtype.Numeric
		if err := n.Scan(cell.text); err != nil {
			return Value{}, fmt.Errorf("invalid number: %w", err)
		}
		return NumberValue(n), nil

	case TypeDateTime:
		t, ok := parseDateTime(cell.text)
		if !ok {
			return Value{}, errors.New("invalid datetime")
		}
		return TimeValue(t), nil

	default:
		return TextValue(cell.text), nil
	}
}

// coerceRows converts every present cell. All failures are collected so a
// caller sees every bad cell at once.
func coerceRows(raw []rawRow, columns []Column) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	var errs []error

	for i, rr := range raw {
		row := make(Row, len(rr))
		for _, col := range columns {
			cell, ok := rr[col.Name]
			if !ok {
				continue
			}
			v, err := coerce(col, cell)
			if err != nil {
				errs = append(errs, &CoercionError{
					Row:    i,
					Column: col.Name,
					Type:   col.Type,
					Value:  cell.text,
					Err:    err,
				})
				continue
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rows, nil
}
