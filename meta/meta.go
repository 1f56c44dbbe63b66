// Package meta implements the symbolic matcher: a three-phase search over
// lazily built derivative automata.
//
// A pattern A is compiled into three automata sharing one transition cache:
//   - A1 = .*·A finds the earliest position where some match ends
//   - Ar = reverse(A) scans backward from that end to the leftmost start
//   - A scans forward from the start to the longest end (or the first
//     end, if the pattern contains a lazy quantifier)
//
// While A1 sits in its initial state, a prefilter skips ahead: an exact
// literal prefix is located by substring search and the automaton is
// fast-forwarded over it to a cached state; otherwise a case-insensitive
// prefix, a literal prefix set or the start set yields the next candidate
// position.
//
// A compiled engine is immutable apart from its transition cache, which is
// safe for concurrent use, so one engine serves any number of goroutines.
package meta

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'symregex.meta'.
func tracer() tracing.Trace {
	return tracing.Select("symregex.meta")
}
