package record

import (
	"errors"
	"fmt"
)

// ValidationErrorCode categorizes validation failures.
type ValidationErrorCode string

const (
	// ErrCodeNotText indicates the input was not a string.
	ErrCodeNotText ValidationErrorCode = "NOT_TEXT"

	// ErrCodeEmptyText indicates the input was empty after trimming.
	ErrCodeEmptyText ValidationErrorCode = "EMPTY_TEXT"

	// ErrCodeTooLong indicates the trimmed input exceeds MaxTextLength.
	ErrCodeTooLong ValidationErrorCode = "TOO_LONG"

	// ErrCodeImmutableID indicates a patch tried to change a record's identity.
	ErrCodeImmutableID ValidationErrorCode = "IMMUTABLE_ID"
)

// ValidationError is returned when input is rejected before it reaches
// the collection. Message is the user-facing text.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(code ValidationErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code ValidationErrorCode) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == code
	}
	return false
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotText reports whether err is a non-string input rejection.
func IsNotText(err error) bool { return hasCode(err, ErrCodeNotText) }

// IsEmptyText reports whether err is an empty-text rejection.
func IsEmptyText(err error) bool { return hasCode(err, ErrCodeEmptyText) }

// IsTooLong reports whether err is a too-long rejection.
func IsTooLong(err error) bool { return hasCode(err, ErrCodeTooLong) }

// IsImmutableID reports whether err is an identity-change rejection.
func IsImmutableID(err error) bool { return hasCode(err, ErrCodeImmutableID) }
