package core

import "strings"

// ColumnName returns the spreadsheet-style name for a 1-based column index:
// 1 -> "A", 26 -> "Z", 27 -> "AA". Non-positive indexes return "".
func ColumnName(n int) string {
	var out []byte
	for n > 0 {
		digit := (n - 1) % 26
		out = append([]byte{byte('A' + digit)}, out...)
		n = (n - 1) / 26
	}
	return string(out)
}

// tokenize splits text into header names and cell records.
//
// A single trailing newline terminates the last line rather than starting an
// empty one, and a trailing carriage return is dropped from each line.
// Headers come from the first line when firstLineHeaders is set and are
// padded with synthesized names up to the widest remaining record.
func tokenize(text string, firstLineHeaders bool) ([]string, [][]string) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, strings.Split(strings.TrimSuffix(line, "\r"), "\t"))
	}

	var headers []string
	if firstLineHeaders && len(records) > 0 {
		headers = append(headers, records[0]...)
		records = records[1:]
	}

	widest := 0
	for _, rec := range records {
		widest = max(widest, len(rec))
	}

	for n := len(headers) + 1; n <= widest; n++ {
		headers = append(headers, ColumnName(n))
	}

	return headers, records
}

// buildRows zips each record positionally against headers. Cells past the
// last header are dropped; headers past the last cell stay absent.
func buildRows(headers []string, records [][]string, cfg ParseConfig) []rawRow {
	rows := make([]rawRow, 0, len(records))
	for _, rec := range records {
		row := make(rawRow, len(headers))
		for i, cell := range rec {
			if i >= len(headers) {
				break
			}
			row[headers[i]] = normalizeCell(cell, cfg)
		}
		rows = append(rows, row)
	}
	return rows
}
