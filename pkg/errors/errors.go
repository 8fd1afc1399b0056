package errors

import (
	stdErrors "errors"
	"fmt"
)

var (
	// ErrInvalidTokens marks a token candidate that failed structural validation.
	ErrInvalidTokens = stdErrors.New("invalid theme tokens")
	// ErrSourceUnavailable marks a token source that could not be fetched.
	ErrSourceUnavailable = stdErrors.New("theme source unavailable")
	// ErrThemeNotFound marks a theme name that is not registered.
	ErrThemeNotFound = stdErrors.New("theme not found")
	// ErrMalformedOverrides marks a persisted override record that did not decode.
	ErrMalformedOverrides = stdErrors.New("malformed persisted overrides")
)

// ParseError represents a token source document that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures token or override validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports ErrInvalidTokens so callers can test for the condition without
// caring which field failed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTokens
}

// SourceError represents a token source fetch that did not succeed.
type SourceError struct {
	Source string
	Status int
	Err    error
}

// NewSourceError constructs a SourceError. Status is zero when no HTTP
// response was received.
func NewSourceError(source string, status int, err error) error {
	return &SourceError{Source: source, Status: status, Err: err}
}

func (e *SourceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status != 0 {
		return fmt.Sprintf("source unavailable: %s: status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("source unavailable: %s: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
