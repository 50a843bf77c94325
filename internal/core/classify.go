package core

import (
	"log/slog"
	"regexp"
)

// numericPattern accepts "0" or digits without a leading zero. No sign,
// decimal point or exponent, so "007" and "-1" are not numeric.
var numericPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// booleanLiterals is the exact (not case-folded) set accepted for boolean columns.
var booleanLiterals = map[string]bool{
	"1": true, "0": true,
	"TRUE": true, "FALSE": true,
	"true": true, "false": true,
}

// classify assigns the column's type from the raw values of every row.
// Null cells never take part, so an all-null column is vacuously boolean.
// A cell absent from a short row matches no typed form and makes the
// column varchar.
func classify(name string, rows []rawRow) Column {
	values := make([]string, 0, len(rows))
	absent := 0
	for _, row := range rows {
		cell, ok := row[name]
		if !ok {
			absent++
			continue
		}
		if cell.null {
			continue
		}
		values = append(values, cell.text)
	}

	col := Column{Name: name, Type: TypeVarchar}
	if absent == 0 {
		col.Type = inferType(values)
	}
	slog.Debug("column classified", "column", name, "type", col.Type, "values", len(values), "absent", absent)
	return col
}

// inferType returns the first type, in precedence order, that every value satisfies.
func inferType(values []string) ColumnType {
	switch {
	case all(values, isBooleanLiteral):
		return TypeBoolean
	case all(values, numericPattern.MatchString):
		return TypeNumeric
	case all(values, isDateTime):
		return TypeDateTime
	default:
		return TypeVarchar
	}
}

func all(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isBooleanLiteral(s string) bool {
	return booleanLiterals[s]
}

func isDateTime(s string) bool {
	_, ok := parseDateTime(s)
	return ok
}
