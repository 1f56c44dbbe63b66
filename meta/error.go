package meta

import "fmt"

// ErrNullablePattern indicates a pattern that matches the empty string in
// some context. Such a pattern has no earliest non-empty match and is
// rejected at compile time.
var ErrNullablePattern = &Error{
	Kind:    NullablePattern,
	Message: "pattern matches the empty string",
}

// ErrEmptyStartSet indicates a pattern no character can begin a match of.
var ErrEmptyStartSet = &Error{
	Kind:    EmptyStartSet,
	Message: "pattern can never match: no character can start a match",
}

// ErrInvalidPattern indicates a syntax error in the pattern.
var ErrInvalidPattern = &Error{
	Kind:    InvalidPattern,
	Message: "invalid pattern",
}

// ErrInvalidRange indicates search offsets outside the input.
var ErrInvalidRange = &Error{
	Kind:    InvalidRange,
	Message: "invalid search range",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid configuration",
}

// ErrorKind classifies compile and search errors.
type ErrorKind uint8

const (
	// NullablePattern indicates a pattern accepting the empty string
	NullablePattern ErrorKind = iota

	// EmptyStartSet indicates a pattern that can never match
	EmptyStartSet

	// InvalidPattern indicates a syntax error
	InvalidPattern

	// InvalidRange indicates bad start/end offsets
	InvalidRange

	// InvalidConfig indicates configuration validation failed
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case NullablePattern:
		return "NullablePattern"
	case EmptyStartSet:
		return "EmptyStartSet"
	case InvalidPattern:
		return "InvalidPattern"
	case InvalidRange:
		return "InvalidRange"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the error type of compilation and of range validation.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("symregex: %s: %v", e.Message, e.Cause)
	}
	return "symregex: " + e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// CheckRange validates search offsets against an input of length n and
// resolves end == -1 to n.
func CheckRange(n, start, end int) (int, error) {
	if end == -1 {
		end = n
	}
	if start < 0 || end > n || start > end {
		return 0, &Error{
			Kind:    InvalidRange,
			Message: fmt.Sprintf("invalid search range [%d, %d) for input of length %d", start, end, n),
		}
	}
	return end, nil
}
