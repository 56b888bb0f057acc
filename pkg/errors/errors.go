// Package errors provides structured error types for molgraph.
//
// Every failure surfaced by the parser, the loaders and the API carries a
// machine-readable [Code] so callers can tell "this input is not valid
// notation" apart from configuration or infrastructure problems.
//
// # Error Codes
//
// Parse-time codes describe why a notation string was rejected:
//   - UNKNOWN_ELEMENT: a symbol is absent from the element table
//   - MALFORMED_RING_CLOSURE: a ring label was not used exactly twice
//   - MALFORMED_BRANCH: parentheses are unbalanced
//   - CONFLICTING_BOND: two bonds were produced for the same atom pair
//   - VALENCE_EXCEEDED: an atom has more bonds than its capacity (strict mode)
//
// Startup codes:
//   - CONFIG_LOAD: the element table or settings file could not be loaded
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownElement, "unknown element %q at position %d", sym, pos)
//	if errors.Is(err, errors.ErrCodeUnknownElement) {
//	    // reject the input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigLoad, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parse errors
	ErrCodeUnknownElement       Code = "UNKNOWN_ELEMENT"
	ErrCodeMalformedRingClosure Code = "MALFORMED_RING_CLOSURE"
	ErrCodeMalformedBranch      Code = "MALFORMED_BRANCH"
	ErrCodeConflictingBond      Code = "CONFLICTING_BOND"
	ErrCodeValenceExceeded      Code = "VALENCE_EXCEEDED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Startup errors
	ErrCodeConfigLoad Code = "CONFIG_LOAD"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// parseCodes are the codes that mean the notation itself was rejected.
var parseCodes = map[Code]bool{
	ErrCodeUnknownElement:       true,
	ErrCodeMalformedRingClosure: true,
	ErrCodeMalformedBranch:      true,
	ErrCodeConflictingBond:      true,
	ErrCodeValenceExceeded:      true,
	ErrCodeInvalidInput:         true,
}

// Error is a structured error with a code and optional cause.
//
// Pos is the byte offset in the notation the error refers to, or -1 when the
// error is not tied to one character.
type Error struct {
	Code    Code
	Message string
	Pos     int
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// At records the notation offset the error refers to and returns e.
func (e *Error) At(pos int) *Error {
	e.Pos = pos
	return e
}

// New builds an Error with a formatted message and no position.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Pos: -1}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// Position returns the notation offset recorded with [Error.At].
func Position(err error) (int, bool) {
	if e, ok := find(err); ok && e.Pos >= 0 {
		return e.Pos, true
	}
	return 0, false
}

// IsParseError reports whether err means the notation string was rejected,
// as opposed to a configuration or infrastructure failure.
func IsParseError(err error) bool {
	return parseCodes[GetCode(err)]
}

// UserMessage strips the code prefix from an *Error. Other errors are
// returned as-is.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}
