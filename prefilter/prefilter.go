// Package prefilter provides fast candidate scanning for the forward search
// of the matcher.
//
// While the automaton sits in its initial state, every character it reads
// leads back to the initial state unless the character can begin a match.
// A prefilter finds the next position where a match could begin far faster
// than stepping the automaton over the input one character at a time.
//
// Available prefilters, in the matcher's order of preference:
//   - Memmem: an exact literal prefix (rare-byte substring search)
//   - Fold: an ASCII literal prefix under case folding
//   - AhoCorasick: a set of alternative literal prefixes
//   - StartSet: the set of characters that can begin a match
//
// Every prefilter returns positions on UTF-8 character boundaries of valid
// input, or the position of an invalid byte.
package prefilter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'symregex.prefilter'.
func tracer() tracing.Trace {
	return tracing.Select("symregex.prefilter")
}

// Prefilter is used to quickly find candidate match positions before running
// the automaton.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// 'start', or -1 if no candidate is found.
	//
	// A candidate is a position where a match may begin. This does NOT
	// guarantee a match; the caller must run the automaton from there.
	//
	// Parameters:
	//   haystack - the byte buffer to search
	//   start - the starting position (must be >= 0 and <= len(haystack))
	Find(haystack []byte, start int) int

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int

	// String names the prefilter and its literals, for diagnostics.
	String() string
}
