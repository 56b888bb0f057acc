package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxNotationLength bounds the notation strings accepted from untrusted callers.
const MaxNotationLength = 4096

// notationCharset is the set of characters that can appear in supported notation.
// Bracket and charge characters are allowed through; the scanner ignores them.
var notationCharset = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\.%*]+$`)

// ValidateNotation checks a notation string before it reaches the parser.
//
// Structural problems are left to the parser. The checks are:
//   - No empty input
//   - Maximum length of MaxNotationLength bytes
//   - No control characters or whitespace
//   - Only characters that occur in line notation
func ValidateNotation(notation string) error {
	if notation == "" {
		return New(ErrCodeInvalidInput, "notation cannot be empty")
	}

	if len(notation) > MaxNotationLength {
		return New(ErrCodeInvalidInput, "notation too long (max %d characters)", MaxNotationLength)
	}

	for _, r := range notation {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "notation contains whitespace or control characters")
		}
	}

	if !notationCharset.MatchString(notation) {
		return New(ErrCodeInvalidInput, "notation contains invalid characters: %q", notation)
	}

	return nil
}

// ValidatePath validates a user-supplied data file path for safety.
// It is used for element table and settings paths received over the API.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
