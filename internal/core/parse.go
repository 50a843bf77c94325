package core

import (
	"strings"
	"unicode/utf8"
)

// Parse converts tab-delimited text into a typed ParseResult.
//
// Empty text fails with ErrEmptyInput; text with NUL bytes or invalid UTF-8
// fails with ErrNotDelimited. A result with zero rows is valid. If any cell
// fails coercion the joined *CoercionError values are returned.
func Parse(text string, cfg ParseConfig) (*ParseResult, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	if strings.IndexByte(text, 0) >= 0 || !utf8.ValidString(text) {
		return nil, ErrNotDelimited
	}

	headers, records := tokenize(text, cfg.FirstLineHeaders)
	raw := buildRows(headers, records, cfg)

	columns := make([]Column, len(headers))
	for i, name := range headers {
		columns[i] = classify(name, raw)
	}

	rows, err := coerceRows(raw, columns)
	if err != nil {
		return nil, err
	}

	return &ParseResult{Rows: rows, Columns: columns}, nil
}
