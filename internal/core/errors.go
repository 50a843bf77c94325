package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by Parse for empty text.
	ErrEmptyInput = errors.New("empty input")

	// ErrNotDelimited is returned by Parse for text that cannot be tab-delimited
	// data (NUL bytes or invalid UTF-8).
	ErrNotDelimited = errors.New("input is not delimited text")

	// ErrInputTooLarge is returned by ReadInput when the size limit is exceeded.
	ErrInputTooLarge = errors.New("input too large")

	// ErrCoercion matches every *CoercionError via errors.Is.
	ErrCoercion = errors.New("coercion failure")

	// ErrMalformedResult is returned by the emitter when rows and columns disagree.
	ErrMalformedResult = errors.New("malformed parse result")
)

// CoercionError reports a cell that failed to convert to its column's type
// after classification accepted it.
type CoercionError struct {
	Row    int // 0-based data row
	Column string
	Type   ColumnType
	Value  string
	Err    error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coercion failure: row %d column %q (%s): value %q: %v",
		e.Row, e.Column, e.Type, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}
