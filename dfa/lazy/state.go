package lazy

import (
	"fmt"

	"github.com/coregx/symregex/internal/conv"
	"github.com/coregx/symregex/sre"
)

// StateID uniquely identifies a DFA state within one DFA.
// IDs are dense and assigned in creation order.
type StateID uint32

// DeadState is the ID of the unique state whose node matches nothing.
// Every transition out of it leads back to it.
const DeadState StateID = 0

// State is an automaton state: a pattern node together with the kind of
// the previously consumed character and the scan direction. Two states
// are the same state iff all three agree, and states are never evicted,
// so a *State can be held for the lifetime of its DFA.
type State[T comparable] struct {
	id       StateID
	node     *sre.Node[T]
	prev     sre.CharKind
	reversed bool

	// nullable has bit k set when node is nullable before a character of
	// kind k.
	nullable uint8
	// watchdog holds, per next kind, the watchdog length through which the
	// state is nullable, or -1.
	watchdog []int32
}

func newState[T comparable](id int, node *sre.Node[T], prev sre.CharKind, reversed bool) *State[T] {
	s := &State[T]{
		id:       StateID(conv.IntToUint32(id)),
		node:     node,
		prev:     prev,
		reversed: reversed,
	}
	for k := sre.CharKind(0); k < sre.NumKinds; k++ {
		if node.IsNullableFor(sre.Context{Prev: prev, Next: k}) {
			s.nullable |= 1 << k
		}
	}
	if node.ContainsWatchdog() {
		s.watchdog = make([]int32, sre.NumKinds)
		for k := sre.CharKind(0); k < sre.NumKinds; k++ {
			s.watchdog[k] = conv.IntToInt32(node.WatchdogLength(sre.Context{Prev: prev, Next: k}))
		}
	}
	return s
}

// ID returns the state's unique identifier
func (s *State[T]) ID() StateID { return s.id }

// Node returns the pattern node of the state.
func (s *State[T]) Node() *sre.Node[T] { return s.node }

// PrevKind returns the kind of the character consumed to enter the state.
func (s *State[T]) PrevKind() sre.CharKind { return s.prev }

// Reversed reports whether the state belongs to a backward scan.
func (s *State[T]) Reversed() bool { return s.reversed }

// IsDead reports whether no continuation can ever be accepted.
func (s *State[T]) IsDead() bool { return s.id == DeadState }

// IsNullable reports whether the state accepts at a position followed by a
// character of kind next.
func (s *State[T]) IsNullable(next sre.CharKind) bool { return s.nullable&(1<<next) != 0 }

// WatchdogLength returns the fixed match length recorded by a watchdog when
// the state accepts before a character of kind next, or -1.
func (s *State[T]) WatchdogLength(next sre.CharKind) int {
	if s.watchdog == nil {
		return -1
	}
	return int(s.watchdog[next])
}

// String returns a human-readable representation of the state
func (s *State[T]) String() string {
	dir := "fwd"
	if s.reversed {
		dir = "rev"
	}
	return fmt.Sprintf("State(id=%d, node=%d, prev=%s, %s)", s.id, s.node.ID(), s.prev, dir)
}

type stateKey struct {
	node     uint32
	prev     sre.CharKind
	reversed bool
}
