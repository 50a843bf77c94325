package core

// emit.go renders a ParseResult as a PostgreSQL script.
//
// Identifiers are interpolated as given and varchar literals are wrapped in
// single quotes without escaping embedded quotes. Callers own identifier and
// content safety.

import (
	"fmt"
	"strings"
)

// DefaultTableName is used when no table name is supplied.
const DefaultTableName = "tableName"

// EmitSQL renders the DROP / CREATE / INSERT script for result.
// The INSERT statement is omitted when there are no rows.
func EmitSQL(result *ParseResult, table string) (string, error) {
	ddl, err := EmitDDL(result, table)
	if err != nil {
		return "", err
	}

	insert, err := EmitInsert(result, table)
	if err != nil {
		return "", err
	}
	if insert == "" {
		return ddl, nil
	}

	return ddl + "\n" + insert, nil
}

// EmitDDL renders the DROP TABLE and CREATE TABLE statements.
func EmitDDL(result *ParseResult, table string) (string, error) {
	if err := validateResult(result); err != nil {
		return "", err
	}
	table = tableOrDefault(table)

	var b strings.Builder
	fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s CASCADE;\n", table)
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	for i, col := range result.Columns {
		b.WriteString("\t" + col.Name + " " + col.Type.SQLType())
		if i < len(result.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(");\n")

	return b.String(), nil
}

// EmitInsert renders one multi-row INSERT statement, or "" for zero rows.
// Cells missing from a row render as NULL.
func EmitInsert(result *ParseResult, table string) (string, error) {
	if err := validateResult(result); err != nil {
		return "", err
	}
	if len(result.Rows) == 0 {
		return "", nil
	}
	table = tableOrDefault(table)

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES\n", table, strings.Join(result.ColumnNames(), ", "))

	values := make([]string, len(result.Columns))
	for i, row := range result.Rows {
		for j, col := range result.Columns {
			values[j] = literal(row[col.Name])
		}
		b.WriteString("\t(" + strings.Join(values, ", ") + ")")
		if i < len(result.Rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString(";\n")
		}
	}

	return b.String(), nil
}

// literal renders one cell. An absent cell is the zero Value, which is null.
func literal(v Value) string {
	switch v.Kind() {
	case KindBool:
		if v.Bool() {
			return "TRUE"
		}
		return "FALSE"
	case KindNumber:
		return numericLiteral(v.Number())
	case KindDateTime:
		return "'" + v.Time().Format(isoMillis) + "'"
	case KindText:
		return "'" + v.Text() + "'"
	default:
		return "NULL"
	}
}

func tableOrDefault(table string) string {
	if table == "" {
		return DefaultTableName
	}
	return table
}

// validateResult rejects results without columns and rows holding cells
// for names that are not columns.
func validateResult(result *ParseResult) error {
	if result == nil || len(result.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrMalformedResult)
	}

	known := make(map[string]bool, len(result.Columns))
	for _, col := range result.Columns {
		known[col.Name] = true
	}

	for i, row := range result.Rows {
		for name := range row {
			if !known[name] {
				return fmt.Errorf("%w: row %d has unknown column %q", ErrMalformedResult, i, name)
			}
		}
	}
	return nil
}
