// Package errors provides structured error types for the HerbNet pipeline.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP server
//   - Machine-readable error codes for the run manifest
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Module-local failures (NO_MAPPABLE_IDS, NO_EDGES_AFTER_FILTER, EXTERNAL_FETCH)
// are terminal for the module that raised them only; the pipeline runner catches
// them at the stage boundary and records them in the manifest. EMPTY_GRAPH is
// fatal to the whole run.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyGraph, "no usable rows after cleaning")
//	if errors.Is(err, errors.ErrCodeEmptyGraph) {
//	    // Abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExternalFetch, origErr, "fetch targets for %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Graph construction errors
	ErrCodeEmptyGraph  Code = "EMPTY_GRAPH"
	ErrCodeDataQuality Code = "DATA_QUALITY"

	// Interaction resolver errors
	ErrCodeNoMappableIDs      Code = "NO_MAPPABLE_IDS"
	ErrCodeNoEdgesAfterFilter Code = "NO_EDGES_AFTER_FILTER"

	// External service errors
	ErrCodeExternalFetch Code = "EXTERNAL_FETCH"
	ErrCodeNetwork       Code = "NETWORK_ERROR"
	ErrCodeTimeout       Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
