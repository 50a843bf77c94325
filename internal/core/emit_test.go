package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func sampleResult() *ParseResult {
	return &ParseResult{
		Columns: []Column{
			{Name: "id", Type: TypeNumeric},
			{Name: "name", Type: TypeVarchar},
			{Name: "active", Type: TypeBoolean},
			{Name: "seen", Type: TypeDateTime},
		},
		Rows: []Row{
			{
				"id":     mustNumber("1"),
				"name":   TextValue("ann"),
				"active": BoolValue(true),
				"seen":   TimeValue(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
			{
				"id":     mustNumber("2"),
				"name":   TextValue("o'brien"),
				"active": BoolValue(false),
			},
		},
	}
}

func mustNumber(s string) Value {
	v, err := coerce(Column{Name: "n", Type: TypeNumeric}, rawCell{text: s})
	if err != nil {
		panic(err)
	}
	return v
}

func TestEmitSQL(t *testing.T) {
	got, err := EmitSQL(sampleResult(), "people")
	if err != nil {
		t.Fatalf("EmitSQL() error = %v", err)
	}

	want := "DROP TABLE IF EXISTS people CASCADE;\n" +
		"CREATE TABLE people (\n" +
		"\tid numeric,\n" +
		"\tname varchar,\n" +
		"\tactive boolean,\n" +
		"\tseen timestamptz\n" +
		");\n" +
		"\n" +
		"INSERT INTO people (id, name, active, seen) VALUES\n" +
		"\t(1, 'ann', TRUE, '2001-01-01T00:00:00.000Z'),\n" +
		"\t(2, 'o'brien', FALSE, NULL);\n"

	if got != want {
		t.Errorf("EmitSQL() =\n%s\nwant\n%s", got, want)
	}
}

func TestEmitSQL_DefaultTableName(t *testing.T) {
	got, err := EmitSQL(sampleResult(), "")
	if err != nil {
		t.Fatalf("EmitSQL() error = %v", err)
	}
	if !strings.HasPrefix(got, "DROP TABLE IF EXISTS tableName CASCADE;") {
		t.Errorf("EmitSQL() should use %s, got:\n%s", DefaultTableName, got)
	}
	if !strings.Contains(got, "INSERT INTO tableName (") {
		t.Errorf("INSERT should use %s, got:\n%s", DefaultTableName, got)
	}
}

func TestEmitSQL_ZeroRows(t *testing.T) {
	result := &ParseResult{Columns: []Column{{Name: "a", Type: TypeBoolean}}}

	got, err := EmitSQL(result, "t")
	if err != nil {
		t.Fatalf("EmitSQL() error = %v", err)
	}

	want := "DROP TABLE IF EXISTS t CASCADE;\nCREATE TABLE t (\n\ta boolean\n);\n"
	if got != want {
		t.Errorf("EmitSQL() = %q, want %q", got, want)
	}
}

func TestEmitSQL_FromParse(t *testing.T) {
	result, err := Parse("n\tnote\n5\thi\n6", ParseConfig{FirstLineHeaders: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := EmitInsert(result, "t")
	if err != nil {
		t.Fatalf("EmitInsert() error = %v", err)
	}

	want := "INSERT INTO t (n, note) VALUES\n\t(5, 'hi'),\n\t(6, NULL);\n"
	if got != want {
		t.Errorf("EmitInsert() = %q, want %q", got, want)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullValue(), "NULL"},
		{"zero value", Value{}, "NULL"},
		{"true", BoolValue(true), "TRUE"},
		{"false", BoolValue(false), "FALSE"},
		{"number", mustNumber("1500"), "1500"},
		{"datetime", TimeValue(time.Date(2020, 2, 29, 13, 4, 5, 120e6, time.UTC)), "'2020-02-29T13:04:05.120Z'"},
		{"text", TextValue("plain"), "'plain'"},
		{"empty text", TextValue(""), "''"},
		{"quote not escaped", TextValue("it's"), "'it's'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := literal(tt.v); got != tt.want {
				t.Errorf("literal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmit_MalformedResult(t *testing.T) {
	tests := []struct {
		name   string
		result *ParseResult
	}{
		{"nil", nil},
		{"no columns", &ParseResult{}},
		{"unknown key", &ParseResult{
			Columns: []Column{{Name: "a", Type: TypeVarchar}},
			Rows:    []Row{{"a": TextValue("x"), "b": TextValue("y")}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EmitSQL(tt.result, "t"); !errors.Is(err, ErrMalformedResult) {
				t.Errorf("EmitSQL() error = %v, want ErrMalformedResult", err)
			}
			if _, err := EmitDDL(tt.result, "t"); !errors.Is(err, ErrMalformedResult) {
				t.Errorf("EmitDDL() error = %v, want ErrMalformedResult", err)
			}
		})
	}
}
