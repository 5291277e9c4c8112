package todo

import (
	"errors"
	"fmt"
)

// ParseError describes a stored snapshot that could not be decoded.
// It is logged by Load and never returned to callers.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse stored tasks under %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingID is returned by Import for a record without an id.
	ErrMissingID = errors.New("task has no id")

	// ErrDuplicateID is returned by Import when an id is already in use.
	ErrDuplicateID = errors.New("task id already exists")
)

// ImportError locates the record that made an import fail.
type ImportError struct {
	Index int
	ID    string
	Err   error
}

func (e *ImportError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("import record %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("import record %d: %v", e.Index, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
