package core

// input.go reads caller-supplied text before parsing.
//
// The reader chain:
//   - stops after maxSize bytes (ErrInputTooLarge)
//   - removes a UTF-8 BOM, or decodes UTF-16 when a UTF-16 BOM is present
//   - replaces invalid UTF-8 sequences with U+FFFD

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxInputSize is used when ReadInput gets a non-positive limit (10MB).
const DefaultMaxInputSize int64 = 10 << 20

// ReadInput reads all of r as text for Parse.
func ReadInput(r io.Reader, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxInputSize
	}

	limited := &io.LimitedReader{R: r, N: maxSize + 1}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())

	data, err := io.ReadAll(transform.NewReader(limited, decoder))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if limited.N <= 0 {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, maxSize)
	}

	return string(data), nil
}
