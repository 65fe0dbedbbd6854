package tables

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnmarshal indicates the codec failed to unmarshal table data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal a table.
	ErrMarshal = errors.New("marshal failed")

	// ErrInvalidTable indicates a table has an invalid entry.
	ErrInvalidTable = errors.New("invalid table")

	// ErrUnknownFormat indicates no codec is known for a file extension.
	ErrUnknownFormat = errors.New("unknown table format")
)

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// TableError represents an invalid table entry.
type TableError struct {
	Table  string // Table name
	Detail string // Offending entry
}

func (e *TableError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %q: %s", ErrInvalidTable.Error(), e.Table, e.Detail)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTable.Error(), e.Detail)
}

func (e *TableError) Unwrap() error {
	return ErrInvalidTable
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

// newTableError creates a TableError.
func newTableError(table, detail string, args ...any) error {
	return &TableError{
		Table:  table,
		Detail: fmt.Sprintf(detail, args...),
	}
}
