package meta

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/classifier"
	"github.com/coregx/symregex/dfa/lazy"
	"github.com/coregx/symregex/literal"
	"github.com/coregx/symregex/prefilter"
	"github.com/coregx/symregex/sre"
)

// automaton is one of the three derived automata: its root node and the
// initial state for every kind of preceding character.
type automaton[T comparable] struct {
	node    *sre.Node[T]
	initial [sre.NumKinds]*lazy.State[T]
}

func newAutomaton[T comparable](d *lazy.DFA[T], node *sre.Node[T], reversed bool) automaton[T] {
	a := automaton[T]{node: node}
	for k := sre.CharKind(0); k < sre.NumKinds; k++ {
		a.initial[k] = d.State(node, k, reversed)
	}
	return a
}

// literalSkip is an exact literal that every match (or, for the reverse
// automaton, every reversed match) begins with, together with the state
// reached after reading it from the initial state, per preceding kind.
type literalSkip[T comparable] struct {
	text  []byte
	after [sre.NumKinds]*lazy.State[T]
}

// Matcher is the three-phase matcher over the algebra T.
type Matcher[T comparable] struct {
	config      Config
	algebraName string
	builder     *sre.Builder[T]
	alg         algebra.Algebra[T]
	dfa         *lazy.DFA[T]
	atoms       *classifier.DecisionTree
	// newlineEnd is the reserved atom id of a line feed ending the input.
	newlineEnd int
	kinds      *lazy.KindTable

	fwd automaton[T] // A
	dot automaton[T] // A1
	rev automaton[T] // Ar

	lazyMatch bool
	watchdog  bool

	// prefix is set when every match starts with an exact literal.
	prefix *literalSkip[T]
	// suffix is set when every match ends with an exact literal.
	suffix *literalSkip[T]
	// candidates finds positions where a match may start, when there is
	// no exact prefix.
	candidates prefilter.Prefilter

	stats counters
}

// NewMatcher builds the matcher for node, which must have been built by b
// over the partition blocks.
func NewMatcher[T comparable](b *sre.Builder[T], blocks []charset.Set, node *sre.Node[T], config Config) (*Matcher[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if node.NullableMask()&sre.PossibleContexts != 0 {
		return nil, ErrNullablePattern
	}
	alg := b.Algebra()
	start := b.StartSet(node)
	if alg.DomainSize(start) == 0 {
		return nil, ErrEmptyStartSet
	}

	anchors := node.ContainsAnchors()
	m := &Matcher[T]{
		config:    config,
		builder:   b,
		alg:       alg,
		atoms:     classifier.NewDecisionTree(blocks, config.PrecomputeLimit),
		kinds:     lazy.NewKindTable(anchors),
		lazyMatch: node.ContainsLazy(),
	}

	// One predicate per block plus the reserved line feed atom.
	minterms := alg.Minterms()
	preds := make([]T, 0, len(minterms)+1)
	kinds := make([]sre.CharKind, 0, len(minterms)+1)
	for i, mt := range minterms {
		lo, _ := blocks[i].Min()
		preds = append(preds, mt)
		kinds = append(kinds, m.kinds.Rune(lo, false))
	}
	m.newlineEnd = len(minterms)
	preds = append(preds, minterms[m.atoms.Find('\n')])
	kinds = append(kinds, m.kinds.Rune('\n', true))

	d, err := lazy.New(b, preds, kinds, lazy.DefaultConfig().WithInitialStateCapacity(config.InitialStateCapacity))
	if err != nil {
		return nil, &Error{Kind: InvalidConfig, Message: "building transition cache", Cause: err}
	}
	m.dfa = d

	dotNode := node
	if l := node.FixedLength(); config.UseWatchdog && l > 0 {
		dotNode = b.Concat(node, b.Watchdog(l))
		m.watchdog = true
	}
	m.fwd = newAutomaton(d, node, false)
	m.dot = newAutomaton(d, b.DotStarConcat(dotNode), false)
	m.rev = newAutomaton(d, b.Reverse(node), true)

	if config.UsePrefilter {
		m.choosePrefilter(node, start, anchors)
		if suffix, ignoreCase := b.FixedPrefix(m.rev.node, anchors); len(suffix) > 0 && !ignoreCase {
			m.suffix = m.newLiteralSkip(m.rev, suffix)
		}
	}
	tracer().Infof("compiled %s: %d atoms, prefilter %s, watchdog %v",
		b.String(node), len(minterms), m.prefilterName(), m.watchdog)
	return m, nil
}

// choosePrefilter picks, in order of preference, an exact prefix, a case
// folded ASCII prefix, a literal prefix set or the start set.
func (m *Matcher[T]) choosePrefilter(node *sre.Node[T], start T, anchors bool) {
	prefix, ignoreCase := m.builder.FixedPrefix(node, anchors)
	if len(prefix) > 0 && !ignoreCase {
		m.prefix = m.newLiteralSkip(m.dot, prefix)
		m.candidates = prefilter.NewMemmem(m.prefix.text)
		return
	}
	if ignoreCase {
		if pf := prefilter.NewFold(prefix); pf != nil {
			m.candidates = pf
			return
		}
	}

	config := literal.DefaultConfig()
	config.MaxLiterals = m.config.MaxPrefixSetLiterals
	seq := literal.Prefixes(literal.New(config), m.builder, node)
	if !seq.IsEmpty() && seq.MinLen() >= m.config.MinPrefixSetLiteralLen {
		if seq.Len() == 1 {
			m.candidates = prefilter.NewMemmem(seq.Get(0).Bytes)
			return
		}
		pf, err := prefilter.NewAhoCorasick(seq)
		if err == nil {
			m.candidates = pf
			return
		}
		tracer().Errorf("prefix set prefilter unavailable: %v", err)
	}

	if set := m.alg.ToSet(start); !set.IsFull() {
		m.candidates = prefilter.NewStartSet(set, m.config.PrecomputeLimit)
	}
}

// newLiteralSkip precomputes the states of a after reading prefix from its
// initial states.
func (m *Matcher[T]) newLiteralSkip(a automaton[T], prefix []rune) *literalSkip[T] {
	skip := &literalSkip[T]{}
	for k := sre.CharKind(0); k < sre.NumKinds; k++ {
		s := a.initial[k]
		for _, c := range prefix {
			s = m.dfa.Delta(s, m.atoms.Find(c))
		}
		skip.after[k] = s
	}
	if a.node == m.rev.node {
		// The reverse automaton reads the text backward.
		for i, j := 0, len(prefix)-1; i < j; i, j = i+1, j-1 {
			prefix[i], prefix[j] = prefix[j], prefix[i]
		}
	}
	skip.text = sre.PrefixBytes(prefix)
	return skip
}

func (m *Matcher[T]) prefilterName() string {
	if m.candidates == nil {
		return "none"
	}
	return m.candidates.String()
}

// atomAt decodes the character at pos of h[:end] and returns its atom id
// and encoded size.
func (m *Matcher[T]) atomAt(h []byte, pos, end int) (atom, size int) {
	c := rune(h[pos])
	size = 1
	if c >= utf8.RuneSelf {
		c, size = utf8.DecodeRune(h[pos:end])
	} else if c == '\n' && pos == end-1 && m.kinds.Enabled() {
		return m.newlineEnd, 1
	}
	return m.atoms.Find(c), size
}

// atomBefore decodes the character ending at pos of h[lo:] and returns its
// atom id and encoded size.
func (m *Matcher[T]) atomBefore(h []byte, lo, pos, end int) (atom, size int) {
	c := rune(h[pos-1])
	size = 1
	if c >= utf8.RuneSelf {
		c, size = utf8.DecodeLastRune(h[lo:pos])
	} else if c == '\n' && pos == end && m.kinds.Enabled() {
		return m.newlineEnd, 1
	}
	return m.atoms.Find(c), size
}

// hasSuffixAt reports whether the reverse literal skip applies at end e.
func (m *Matcher[T]) hasSuffixAt(h []byte, lo, e int) bool {
	n := len(m.suffix.text)
	return e-n >= lo && bytes.Equal(h[e-n:e], m.suffix.text)
}
