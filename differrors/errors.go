package differrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates that an input could not be read as text.
	ErrParse = errors.New("parse error")

	// ErrJSONParse indicates that an input is not well-formed JSON.
	ErrJSONParse = errors.New("json parse error")

	// ErrDepthExceeded indicates that the structural recursion guard tripped.
	ErrDepthExceeded = errors.New("max depth exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Side names which of the two inputs an error refers to.
type Side string

const (
	// SideOld is the original (left-hand) input.
	SideOld Side = "old"
	// SideNew is the revised (right-hand) input.
	SideNew Side = "new"
)

// ParseError reports an input that is not valid text under the declared
// encoding (UTF-8).
type ParseError struct {
	// Side is the input that failed
	Side Side
	// Offset is the byte offset of the first invalid byte
	Offset int64
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Side != "" {
		msg += " in " + string(e.Side) + " input"
	}
	if e.Offset > 0 {
		msg += fmt.Sprintf(" at byte %d", e.Offset)
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

// JSONParseError reports malformed JSON.
type JSONParseError struct {
	// Side is the input that failed
	Side Side
	// Offset is the byte offset where the problem was detected
	Offset int64
	// Line is the 1-based line of Offset
	Line int
	// Column is the 1-based column (in bytes) of Offset
	Column int
	// Message describes the failure
	Message string
	// Cause is the underlying decoder error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *JSONParseError) Error() string {
	msg := "json parse error"
	if e.Side != "" {
		msg += " in " + string(e.Side) + " input"
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
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
func (e *JSONParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A JSONParseError is also a parse error.
func (e *JSONParseError) Is(target error) bool {
	return target == ErrJSONParse || target == ErrParse
}

// DepthExceededError reports a JSON tree nested deeper than the configured
// limit.
type DepthExceededError struct {
	// Side is the input holding the offending value (empty if unknown)
	Side Side
	// Limit is the configured max depth
	Limit int
	// Path is the location of the first container beyond the limit
	Path string
}

// Error returns a human-readable error message.
func (e *DepthExceededError) Error() string {
	msg := fmt.Sprintf("max depth exceeded (limit: %d)", e.Limit)
	if e.Side != "" {
		msg += " in " + string(e.Side) + " input"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap returns nil as DepthExceededError has no underlying cause.
func (e *DepthExceededError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// ConfigError represents an invalid configuration value or a conflicting
// combination of options.
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
