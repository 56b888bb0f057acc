package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownElement, "unknown element %q", "Xx")

	if err.Code != ErrCodeUnknownElement {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownElement)
	}

	if err.Message != `unknown element "Xx"` {
		t.Errorf("Message = %v, want %v", err.Message, `unknown element "Xx"`)
	}

	expected := `UNKNOWN_ELEMENT: unknown element "Xx"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("open data.json: no such file")
	err := Wrap(ErrCodeConfigLoad, cause, "load element table")

	if err.Code != ErrCodeConfigLoad {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfigLoad)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMalformedRingClosure, "test"),
			code:     ErrCodeMalformedRingClosure,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMalformedRingClosure, "test"),
			code:     ErrCodeConflictingBond,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeConfigLoad, New(ErrCodeInvalidFormat, "inner"), "outer"),
			code:     ErrCodeConfigLoad,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeConflictingBond, "test"), ErrCodeConflictingBond},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	if _, ok := Position(New(ErrCodeConflictingBond, "x")); ok {
		t.Error("New should not record a position")
	}

	err := New(ErrCodeUnknownElement, "unknown element %q", "Q").At(3)
	pos, ok := Position(Wrap(ErrCodeInvalidInput, err, "outer"))
	if ok {
		t.Errorf("outer error without position reported %d", pos)
	}

	pos, ok = Position(err)
	if !ok || pos != 3 {
		t.Errorf("Position() = %d, %v; want 3, true", pos, ok)
	}
	if _, ok := Position(errors.New("plain")); ok {
		t.Error("plain errors have no position")
	}
}

func TestIsParseError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeUnknownElement, "x"), true},
		{New(ErrCodeMalformedRingClosure, "x"), true},
		{New(ErrCodeMalformedBranch, "x"), true},
		{New(ErrCodeConflictingBond, "x"), true},
		{New(ErrCodeValenceExceeded, "x"), true},
		{New(ErrCodeConfigLoad, "x"), false},
		{New(ErrCodeInternal, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsParseError(tt.err); got != tt.want {
			t.Errorf("IsParseError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
