package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrLookup is the sentinel matched by every *LookupError.
	ErrLookup = errors.New("schema: column lookup failed")

	// ErrTableNotFound is wrapped when introspection finds no columns for a table.
	ErrTableNotFound = errors.New("schema: table not found")

	// ErrUnsupportedDialect is wrapped when the database dialect has no column query.
	ErrUnsupportedDialect = errors.New("schema: unsupported dialect")

	// ErrUnsupportedDriver is returned by Open for unknown driver names.
	ErrUnsupportedDriver = errors.New("schema: unsupported driver")
)

// LookupError reports a failed column listing for Table.
type LookupError struct {
	Table string
	Err   error
}

// NewLookupError wraps err unless it already is a *LookupError.
func NewLookupError(table string, err error) error {
	if err == nil {
		return nil
	}
	var existing *LookupError
	if errors.As(err, &existing) {
		return err
	}
	return &LookupError{Table: table, Err: err}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("schema: list columns of %q: %v", e.Table, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLookup) match.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// IsTableNotFound reports whether err means the table does not exist.
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}
