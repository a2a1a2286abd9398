// Package errors provides structured error types for the archsketch pipeline.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Construction-time codes (DUPLICATE_IDENTITY, UNKNOWN_ENDPOINT,
// CYCLE_IN_CLUSTER_TREE, SEALED) indicate programmer errors: they are raised
// eagerly at the declaration that introduces the violation and are never
// retried. Rendering-time codes (ENGINE_UNAVAILABLE, ENGINE_INVOCATION_FAILED,
// ASSET_NOT_FOUND, TIMEOUT) are recorded against a specific (document, format)
// pair and reported after all documents have been attempted.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEngineUnavailable, "graphviz engine: %v", cause)
//	if errors.Is(err, errors.ErrCodeEngineUnavailable) {
//	    // Handle missing engine
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction-time errors (programmer errors, never retried)
	ErrCodeDuplicateIdentity Code = "DUPLICATE_IDENTITY"
	ErrCodeUnknownEndpoint   Code = "UNKNOWN_ENDPOINT"
	ErrCodeClusterCycle      Code = "CYCLE_IN_CLUSTER_TREE"
	ErrCodeSealed            Code = "SEALED"

	// Rendering-time errors (recorded per document/format pair)
	ErrCodeEngineUnavailable Code = "ENGINE_UNAVAILABLE"
	ErrCodeEngineFailed      Code = "ENGINE_INVOCATION_FAILED"
	ErrCodeAssetNotFound     Code = "ASSET_NOT_FOUND"
	ErrCodeTimeout           Code = "TIMEOUT"

	// Input validation errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStem   Code = "INVALID_STEM"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

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
