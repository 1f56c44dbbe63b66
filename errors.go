package symregex

import "github.com/coregx/symregex/meta"

// Error is the error type returned by compilation and by searches given
// invalid offsets. Compare errors with errors.Is against the sentinels
// below; matching is by Kind.
type Error = meta.Error

// ErrorKind classifies errors.
type ErrorKind = meta.ErrorKind

// Error kinds.
const (
	NullablePattern = meta.NullablePattern
	EmptyStartSet   = meta.EmptyStartSet
	InvalidPattern  = meta.InvalidPattern
	InvalidRange    = meta.InvalidRange
	InvalidConfig   = meta.InvalidConfig
)

var (
	// ErrNullablePattern is returned for a pattern that can match the
	// empty string, such as `a*` or `\b`.
	ErrNullablePattern = meta.ErrNullablePattern

	// ErrEmptyStartSet is returned for a pattern no input can match.
	ErrEmptyStartSet = meta.ErrEmptyStartSet

	// ErrInvalidPattern is returned for a pattern with a syntax error. The
	// error from regexp/syntax is its cause.
	ErrInvalidPattern = meta.ErrInvalidPattern

	// ErrInvalidRange is returned for search offsets outside the input.
	ErrInvalidRange = meta.ErrInvalidRange

	// ErrInvalidConfig is returned for an out-of-range configuration.
	ErrInvalidConfig = meta.ErrInvalidConfig
)

// Match is the span of one match within the searched input.
type Match = meta.Match

// Stats is a snapshot of the search counters of a Regex.
type Stats = meta.Stats

// Info describes how a pattern was compiled.
type Info = meta.Info
