// Package errors provides structured error types for bookrack.
//
// This package defines error codes and types that enable:
//   - Fail-fast validation of scene objects at construction time
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI and preview server
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The rendering core raises three families of errors:
//   - CONSTRUCTION_ERROR: invalid dimensions, colour bytes, or mismatched optional fields
//   - CONFIGURATION_ERROR: ratios or levels outside their allowed ranges
//   - RASTERIZATION_ERROR: malformed colour-stop sequences inside the gradient engine
//
// The remaining codes (INVALID_*, NOT_FOUND, INTERNAL_ERROR, UNSUPPORTED) are
// used by the pipeline, CLI and server around the core.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConstruction, "width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeConstruction) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core rendering errors
	ErrCodeConstruction  Code = "CONSTRUCTION_ERROR"
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"
	ErrCodeRasterization Code = "RASTERIZATION_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Validation reports whether c marks bad input rather than a failure of
// the program: the three core codes and the INVALID_* codes.
func (c Code) Validation() bool {
	switch c {
	case ErrCodeConstruction, ErrCodeConfiguration, ErrCodeRasterization,
		ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return true
	}
	return false
}

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage is the message without the code prefix or causes, as shown
// by the CLI and in server error bodies. Plain errors return Error().
func UserMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries a validation code, telling bad
// input apart from internal failures (HTTP 400 vs 500).
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}
