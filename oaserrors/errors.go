package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates the source document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrMalformedDocument indicates the decoded document is structurally unusable,
	// e.g. the root is not an object.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidLocator indicates an empty or syntactically invalid locator.
	ErrInvalidLocator = errors.New("invalid locator")

	// ErrPathNotFound indicates an exact path (or operationId) is absent from the document.
	ErrPathNotFound = errors.New("path not found")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrDanglingReference indicates a $ref inside the closure has no target.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrUnsupportedOperation indicates an operation cannot be reshaped into a tool definition.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode an OpenAPI document.
type ParseError struct {
	// Path is the file path, URL or source identifier
	Path string
	// Format is the format the decoder assumed ("json" or "yaml")
	Format string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DocumentError represents a structurally invalid document.
type DocumentError struct {
	// Path is the JSON path of the offending node (e.g., "components.schemas")
	Path string
	// Got is the Go type name found at Path, if relevant
	Got string
	// Message describes the structural problem
	Message string
}

// Error returns a human-readable error message.
func (e *DocumentError) Error() string {
	msg := "malformed document"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Got != "" {
		msg += " (got " + e.Got + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// LocatorError represents a locator that is invalid or does not match.
//
// A LocatorError with NotFound set matches ErrPathNotFound; otherwise it
// matches ErrInvalidLocator.
type LocatorError struct {
	// Locator is the raw locator value as supplied
	Locator string
	// Mode is the locator mode: "path", "query" or "operationId"
	Mode string
	// NotFound is true when the locator is well-formed but names nothing
	NotFound bool
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any (e.g. a query syntax error)
	Cause error
}

// Error returns a human-readable error message.
func (e *LocatorError) Error() string {
	msg := "invalid locator"
	if e.NotFound {
		msg = "path not found"
	}
	if e.Mode != "" {
		msg += " (" + e.Mode + ")"
	}
	if e.Locator != "" {
		msg += fmt.Sprintf(": %q", e.Locator)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LocatorError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LocatorError) Is(target error) bool {
	if e.NotFound {
		return target == ErrPathNotFound
	}
	return target == ErrInvalidLocator
}

// ReferenceError represents a $ref that cannot be resolved within the source document.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Location is the JSON path where the reference was found
	Location string
	// IsExternal is true when the ref points outside the document
	IsExternal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "dangling reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches both ErrReference and ErrDanglingReference.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference || target == ErrDanglingReference
}

// OperationError represents an operation that cannot be turned into a tool definition.
type OperationError struct {
	// Path is the path template of the operation, if known
	Path string
	// Method is the HTTP verb, if known
	Method string
	// OperationID is the operationId, if present
	OperationID string
	// Message describes why the operation is unsupported
	Message string
}

// Error returns a human-readable error message.
func (e *OperationError) Error() string {
	msg := "unsupported operation"
	switch {
	case e.OperationID != "":
		msg += " " + e.OperationID
	case e.Method != "" && e.Path != "":
		msg += " " + e.Method + " " + e.Path
	case e.Path != "":
		msg += " " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *OperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
