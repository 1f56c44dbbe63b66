// Package lazy implements the transition cache of a symbolic lazy DFA.
//
// States are (node, previous character kind, direction) triples and are
// created on demand: the target of a transition is computed the first time
// it is needed, by taking the derivative of the source node, and cached in
// a flat table indexed by (state id << K) | atom. The table is shared by all
// goroutines using the DFA.
//
// Reads are lock-free: a published slot is loaded atomically and never
// changes afterwards. On a miss the caller takes the cache mutex, re-checks
// the slot, computes the derivative, interns the target state (growing the
// table by copy-and-swap when needed) and publishes the slot. Concurrent
// misses on the same slot compute the same target, since derivatives are a
// pure function of the node, the atom and the context.
package lazy

import (
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/schuko/tracing"

	"github.com/coregx/symregex/sre"
)

// tracer traces with key 'symregex.lazy'.
func tracer() tracing.Trace {
	return tracing.Select("symregex.lazy")
}

// DFA is a lazily built deterministic automaton over the nodes of one
// sre.Builder. It is safe for concurrent use.
type DFA[T comparable] struct {
	builder *sre.Builder[T]
	atoms   []T
	kinds   []sre.CharKind
	shift   uint

	// table is replaced wholesale on growth; slots are written once.
	table atomic.Pointer[[]atomic.Pointer[State[T]]]

	mu     sync.Mutex // guards states, index and table growth
	states []*State[T]
	index  map[stateKey]*State[T]
	dead   *State[T]

	computed atomic.Uint64
}

// Stats reports the size of a DFA.
type Stats struct {
	// States is the number of states created so far.
	States int
	// Transitions is the number of transitions computed so far.
	Transitions uint64
	// TableSlots is the current capacity of the transition table.
	TableSlots int
	// Nodes is the number of pattern nodes held by the builder.
	Nodes int
}

// New creates a DFA over the nodes of b. atoms[i] is the predicate of atom
// id i and kinds[i] the CharKind of its characters; the last entry is the
// reserved atom for a line feed ending the input.
func New[T comparable](b *sre.Builder[T], atoms []T, kinds []sre.CharKind, config Config) (*DFA[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(atoms) < 2 || len(atoms) != len(kinds) {
		return nil, &DFAError{
			Kind:    InvalidAlphabet,
			Message: "atoms and kinds must have the same length, at least 2",
		}
	}
	d := &DFA[T]{
		builder: b,
		atoms:   atoms,
		kinds:   kinds,
		shift:   uint(bits.Len(uint(len(atoms) - 1))),
		index:   make(map[stateKey]*State[T]),
	}
	table := make([]atomic.Pointer[State[T]], config.InitialStateCapacity<<d.shift)
	d.table.Store(&table)

	d.mu.Lock()
	d.dead = newState(0, b.Nothing(), sre.General, false)
	d.states = append(d.states, d.dead)
	for a := range atoms {
		table[a].Store(d.dead)
	}
	d.mu.Unlock()
	return d, nil
}

// Builder returns the node builder the DFA derives with.
func (d *DFA[T]) Builder() *sre.Builder[T] { return d.builder }

// NumAtoms returns the number of atom ids, the reserved one included.
func (d *DFA[T]) NumAtoms() int { return len(d.atoms) }

// AtomKind returns the CharKind of the characters of atom.
func (d *DFA[T]) AtomKind(atom int) sre.CharKind { return d.kinds[atom] }

// Dead returns the dead state.
func (d *DFA[T]) Dead() *State[T] { return d.dead }

// State returns the state for (node, prev, reversed), creating it if needed.
func (d *DFA[T]) State(node *sre.Node[T], prev sre.CharKind, reversed bool) *State[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.intern(node, prev, reversed)
}

// Delta returns the successor of s on atom.
func (d *DFA[T]) Delta(s *State[T], atom int) *State[T] {
	off := int(s.id)<<d.shift | atom
	if t := d.table.Load(); off < len(*t) {
		if next := (*t)[off].Load(); next != nil {
			return next
		}
	}
	return d.computeDelta(s, atom, off)
}

func (d *DFA[T]) computeDelta(s *State[T], atom, off int) *State[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if next := (*d.table.Load())[off].Load(); next != nil {
		return next
	}
	kind := d.kinds[atom]
	node := d.builder.Derivative(s.node, d.atoms[atom], sre.Context{Prev: s.prev, Next: kind})
	next := d.intern(node, kind, s.reversed)
	(*d.table.Load())[off].Store(next)
	d.computed.Add(1)
	return next
}

// intern returns the state for the key, creating it and making room for its
// row in the table. d.mu must be held.
func (d *DFA[T]) intern(node *sre.Node[T], prev sre.CharKind, reversed bool) *State[T] {
	if node.Kind() == sre.Nothing {
		return d.dead
	}
	key := stateKey{node: node.ID(), prev: prev, reversed: reversed}
	if s, ok := d.index[key]; ok {
		return s
	}
	s := newState(len(d.states), node, prev, reversed)
	d.states = append(d.states, s)
	d.index[key] = s
	d.grow(len(d.states) << d.shift)
	return s
}

// grow publishes a copy of the table with at least need slots.
// d.mu must be held.
func (d *DFA[T]) grow(need int) {
	old := *d.table.Load()
	if need <= len(old) {
		return
	}
	grown := make([]atomic.Pointer[State[T]], max(2*len(old), need))
	for i := range old {
		if s := old[i].Load(); s != nil {
			grown[i].Store(s)
		}
	}
	d.table.Store(&grown)
	tracer().Debugf("transition table grown to %d slots for %d states", len(grown), len(d.states))
}

// NumStates returns the number of states created so far.
func (d *DFA[T]) NumStates() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.states)
}

// Stats returns a snapshot of the DFA size.
func (d *DFA[T]) Stats() Stats {
	d.mu.Lock()
	states := len(d.states)
	d.mu.Unlock()
	return Stats{
		States:      states,
		Transitions: d.computed.Load(),
		TableSlots:  len(*d.table.Load()),
		Nodes:       d.builder.NumNodes(),
	}
}

// StateAt returns the state with the given id. It panics if no such state
// exists.
func (d *DFA[T]) StateAt(id StateID) *State[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.states[id]
}
