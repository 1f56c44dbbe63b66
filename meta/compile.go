package meta

import (
	"regexp/syntax"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/sre"
)

// Engine is a compiled pattern. Offsets are byte offsets into the searched
// input and ranges must satisfy 0 <= start <= end <= len(haystack); callers
// validate them with CheckRange.
//
// An Engine is safe for concurrent use.
type Engine interface {
	// IsMatch reports whether haystack[start:end] contains a match.
	IsMatch(haystack []byte, start, end int) bool

	// Find returns the first match in haystack[start:end].
	Find(haystack []byte, start, end int) (Match, bool)

	// FindAll reports successive matches in haystack[start:end] to yield.
	FindAll(haystack []byte, start, end, limit int, yield func(Match) bool)

	// Warmup builds automaton states breadth-first until maxStates states
	// exist or no new state is reachable, and returns the number of states.
	Warmup(maxStates int) int

	// Stats returns a snapshot of the search counters.
	Stats() Stats

	// Info describes the compiled pattern.
	Info() Info
}

// Info describes how a pattern was compiled.
type Info struct {
	// Pattern is the pattern as the engine sees it.
	Pattern string
	// Algebra names the character algebra: "bv64" or "bv".
	Algebra string
	// Minterms is the number of character classes the pattern distinguishes.
	Minterms int
	// Anchors reports whether boundary contexts are tracked.
	Anchors bool
	// Lazy reports whether the pattern contains a lazy quantifier.
	Lazy bool
	// FixedLength is the length, in characters, of every match, or -1.
	FixedLength int
	// Watchdog reports whether the fixed-length shortcut is active.
	Watchdog bool
	// Prefilter names the prefilter, or "none".
	Prefilter string
	// Prefix is the exact literal every match starts with, if any.
	Prefix string
}

// Compile compiles a parsed pattern, choosing a 64-bit algebra when the
// pattern distinguishes at most 64 character classes.
func Compile(re *syntax.Regexp, opts sre.Options, config Config) (Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	sets, _ := sre.Predicates(re)
	blocks := charset.Minterms(sets)
	bv64, bv := algebra.For(blocks)
	if bv64 != nil {
		return compileWith[uint64](bv64, "bv64", blocks, re, opts, config)
	}
	return compileWith[algebra.BV](bv, "bv", blocks, re, opts, config)
}

func compileWith[T comparable](alg algebra.Algebra[T], name string, blocks []charset.Set,
	re *syntax.Regexp, opts sre.Options, config Config) (Engine, error) {
	b := sre.NewBuilder[T](alg)
	node := sre.Convert(b, re, opts)
	m, err := NewMatcher(b, blocks, node, config)
	if err != nil {
		tracer().Infof("rejected pattern %s: %v", re, err)
		return nil, err
	}
	m.algebraName = name
	return m, nil
}

// Stats implements Engine.
func (m *Matcher[T]) Stats() Stats {
	st := m.stats.snapshot()
	ds := m.dfa.Stats()
	st.States = ds.States
	st.Transitions = ds.Transitions
	return st
}

// Info implements Engine.
func (m *Matcher[T]) Info() Info {
	info := Info{
		Pattern:     m.builder.String(m.fwd.node),
		Algebra:     m.algebraName,
		Minterms:    len(m.alg.Minterms()),
		Anchors:     m.kinds.Enabled(),
		Lazy:        m.lazyMatch,
		FixedLength: m.fwd.node.FixedLength(),
		Watchdog:    m.watchdog,
		Prefilter:   m.prefilterName(),
	}
	if m.prefix != nil {
		info.Prefix = string(m.prefix.text)
	}
	return info
}
