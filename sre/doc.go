// Package sre implements symbolic regular expressions: regex nodes whose
// character tests are predicates of a Boolean algebra.
//
// Nodes are hash-consed by a Builder, which also owns the memoized
// operations the matcher relies on: context-sensitive derivatives,
// reversal, start sets and literal prefixes. Alternations are kept in a
// canonical form (flattened, ordered, deduplicated, with all singleton
// alternatives merged into one predicate), which keeps the number of
// distinct derivatives of a pattern finite.
//
// Anchors are zero-width nodes whose nullability depends on the kinds of
// the characters around the position (see CharKind and Context). A node's
// nullability in all 36 contexts is computed once at construction.
package sre

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'symregex.sre'.
func tracer() tracing.Trace {
	return tracing.Select("symregex.sre")
}
