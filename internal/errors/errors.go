package errors

import (
	"errors"
	"fmt"
	"time"
)

// Base error types
var (
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("parse failure")
	ErrMissingField = errors.New("missing field")
	ErrDecoding     = errors.New("decoding failure")
	ErrIO           = errors.New("io failure")
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeParse        ErrorType = "parse"
	ErrorTypeMissingField ErrorType = "missing_field"
	ErrorTypeDecoding     ErrorType = "decoding"
	ErrorTypeIO           ErrorType = "io"
)

// DiagError is a structured error for diagnostic extraction operations. It
// always names the resource the failing operation was working on.
type DiagError struct {
	Type      ErrorType
	Op        string // Operation that failed (e.g., "scan_user_log", "parse_events")
	Path      string // File path or identifier the operation was reading or writing
	Err       error  // Underlying error
	Timestamp time.Time
}

func (e *DiagError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s failed on %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *DiagError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface
func (e *DiagError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check base error types
	switch target {
	case ErrNotFound:
		return e.Type == ErrorTypeNotFound
	case ErrParse:
		return e.Type == ErrorTypeParse
	case ErrMissingField:
		return e.Type == ErrorTypeMissingField
	case ErrDecoding:
		return e.Type == ErrorTypeDecoding
	case ErrIO:
		return e.Type == ErrorTypeIO
	}

	// Check wrapped error
	return errors.Is(e.Err, target)
}

// NewDiagError creates a new DiagError
func NewDiagError(errorType ErrorType, op, path string, err error) *DiagError {
	return &DiagError{
		Type:      errorType,
		Op:        op,
		Path:      path,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Helper functions

// WrapNotFound wraps a missing-input error with the offending path.
func WrapNotFound(op, path string, err error) error {
	return NewDiagError(ErrorTypeNotFound, op, path, err)
}

// WrapParse wraps a malformed-document error with the offending path.
func WrapParse(op, path string, err error) error {
	return NewDiagError(ErrorTypeParse, op, path, err)
}

// WrapMissingField wraps a missing-subfield error with the offending identifier.
func WrapMissingField(op, path string, err error) error {
	return NewDiagError(ErrorTypeMissingField, op, path, err)
}

// WrapDecoding wraps a malformed-encoding error with the offending path.
func WrapDecoding(op, path string, err error) error {
	return NewDiagError(ErrorTypeDecoding, op, path, err)
}

// WrapIO wraps an output write error with the target path.
func WrapIO(op, path string, err error) error {
	return NewDiagError(ErrorTypeIO, op, path, err)
}

// IsNotFound checks if an error indicates a missing input.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
