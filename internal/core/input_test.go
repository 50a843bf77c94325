package core

import (
	"errors"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "a\tb\n1\t2", "a\tb\n1\t2"},
		{"utf8 bom", "\xef\xbb\xbfa\tb", "a\tb"},
		{"utf16le bom", "\xff\xfea\x00\t\x00b\x00", "a\tb"},
		{"invalid utf8 replaced", "a\xffb", "a�b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInput(strings.NewReader(tt.input), 1024)
			if err != nil {
				t.Fatalf("ReadInput() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadInput_SizeLimit(t *testing.T) {
	if _, err := ReadInput(strings.NewReader("12345"), 5); err != nil {
		t.Errorf("ReadInput() at limit error = %v", err)
	}

	_, err := ReadInput(strings.NewReader("123456"), 5)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("ReadInput() over limit error = %v, want ErrInputTooLarge", err)
	}
}

func TestReadInput_DefaultLimit(t *testing.T) {
	got, err := ReadInput(strings.NewReader("x"), 0)
	if err != nil {
		t.Fatalf("ReadInput() error = %v", err)
	}
	if got != "x" {
		t.Errorf("ReadInput() = %q, want x", got)
	}
}
