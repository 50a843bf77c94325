package core

import (
	"reflect"
	"testing"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{0, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := ColumnName(tt.n); got != tt.want {
			t.Errorf("ColumnName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTokenize_SynthesizedHeaders(t *testing.T) {
	headers, records := tokenize("1\t2\t3\t4\t5\t6\t7\t8\t9\t10", false)

	want := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}

func TestTokenize_MixedHeaders(t *testing.T) {
	text := "a\tb\tc\td\te\tf\n1\t2\t3\t4\t5\t6\t7\t8\t9\t10"
	headers, _ := tokenize(text, true)

	want := []string{"a", "b", "c", "d", "e", "f", "G", "H", "I", "J"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
}

func TestTokenize_WidestRow(t *testing.T) {
	headers, records := tokenize("x\ny\tz\n1\t2\t3", false)

	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}
}

func TestTokenize_LineEndings(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantRecords [][]string
	}{
		{
			name:        "trailing newline",
			text:        "h\n1\n2\n",
			wantRecords: [][]string{{"1"}, {"2"}},
		},
		{
			name:        "crlf",
			text:        "h\r\n1\r\n2\r\n",
			wantRecords: [][]string{{"1"}, {"2"}},
		},
		{
			name:        "blank line inside",
			text:        "h\n1\n\n2",
			wantRecords: [][]string{{"1"}, {""}, {"2"}},
		},
		{
			name:        "header only",
			text:        "a\tb",
			wantRecords: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, records := tokenize(tt.text, true)
			if !reflect.DeepEqual(records, tt.wantRecords) {
				t.Errorf("records = %q, want %q", records, tt.wantRecords)
			}
		})
	}
}

func TestBuildRows_Alignment(t *testing.T) {
	headers := []string{"a", "b"}
	records := [][]string{
		{"1", "2", "dropped"},
		{"only"},
	}

	rows := buildRows(headers, records, ParseConfig{})

	if len(rows[0]) != 2 {
		t.Errorf("row 0 has %d cells, want 2", len(rows[0]))
	}
	if _, ok := rows[0]["dropped"]; ok {
		t.Error("cell past last header should be dropped")
	}
	if _, ok := rows[1]["b"]; ok {
		t.Error("missing trailing cell should be absent")
	}
	if rows[1]["a"].text != "only" {
		t.Errorf("row 1 a = %q, want %q", rows[1]["a"].text, "only")
	}
}
