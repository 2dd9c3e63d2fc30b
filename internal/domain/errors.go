package domain

import (
	"errors"
	"fmt"
)

// InvalidPatternMessage is the user-facing text of every pattern validation failure.
const InvalidPatternMessage = "Invalid regular expression. Use format /pattern/flags (e.g., /hello/i)"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPattern signals a pattern that fails to parse or compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidMode signals an unknown operating mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrCorruptState signals a persisted record that cannot be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// PatternValidationError wraps ErrInvalidPattern with the rejected input and the cause.
type PatternValidationError struct {
	Input  string
	Reason string
}

func (e *PatternValidationError) Error() string { return InvalidPatternMessage }

func (e *PatternValidationError) Unwrap() error { return ErrInvalidPattern }

// Detail returns a diagnostic string for logs, never shown to users.
func (e *PatternValidationError) Detail() string {
	return fmt.Sprintf("%s: %q: %s", ErrInvalidPattern.Error(), e.Input, e.Reason)
}

// NewPatternValidation creates a pattern validation error.
func NewPatternValidation(input, reason string) error {
	return &PatternValidationError{Input: input, Reason: reason}
}
