// Package sparse provides a sparse set of dense integer ids.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping its elements in insertion order in a dense array, which makes it a
// work list and a visited set at once. The automaton warm-up uses it to walk
// state ids breadth-first.
package sparse

import "github.com/coregx/symregex/internal/conv"

// Set is a set of uint32 values with O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps values to indices in the dense array
// and grows on demand, so the universe need not be known in advance.
type Set struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values, in insertion order
}

// New creates a set able to hold values below capacity without growing.
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set and reports whether it was absent.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if int(value) >= len(s.sparse) {
		grown := make([]uint32, max(2*len(s.sparse), int(value)+1))
		copy(grown, s.sparse)
		s.sparse = grown
	}
	s.sparse[value] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Len returns the number of elements in the set
func (s *Set) Len() int {
	return len(s.dense)
}

// At returns the i-th inserted value.
func (s *Set) At(i int) uint32 {
	return s.dense[i]
}

// Clear removes all elements from the set in O(1) time
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the values in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
