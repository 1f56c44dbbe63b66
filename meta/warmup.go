package meta

import (
	"github.com/coregx/symregex/dfa/lazy"
	"github.com/coregx/symregex/internal/sparse"
)

// Warmup implements Engine. It explores the states reachable from the
// initial states of all three automata breadth-first, computing every
// transition on the way, so that later searches find them cached.
func (m *Matcher[T]) Warmup(maxStates int) int {
	if maxStates <= m.dfa.NumStates() {
		return m.dfa.NumStates()
	}
	seen := sparse.New(maxStates)
	for _, a := range []*automaton[T]{&m.dot, &m.rev, &m.fwd} {
		for _, s := range a.initial {
			seen.Insert(uint32(s.ID()))
		}
	}
	for i := 0; i < seen.Len() && m.dfa.NumStates() < maxStates; i++ {
		s := m.dfa.StateAt(lazy.StateID(seen.At(i)))
		for atom := 0; atom < m.dfa.NumAtoms() && m.dfa.NumStates() < maxStates; atom++ {
			seen.Insert(uint32(m.dfa.Delta(s, atom).ID()))
		}
	}
	n := m.dfa.NumStates()
	tracer().Debugf("warm-up explored %d states, %d exist", seen.Len(), n)
	return n
}
