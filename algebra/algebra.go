// Package algebra provides Boolean algebras of character predicates.
//
// Both algebras in this package are built over a fixed partition of the
// code point domain into minterms: a predicate is the set of minterms it
// covers, stored as a bit vector. BV64Algebra packs up to 64 minterms into
// a uint64; BVAlgebra supports any number of minterms with an immutable,
// comparable bit vector. Predicates are comparable values so they can be
// used as map keys by the derivative memo tables.
package algebra

import (
	"errors"

	"github.com/coregx/symregex/charset"
)

// ErrTooManyMinterms is returned by NewBV64Algebra for partitions with more
// than 64 blocks.
var ErrTooManyMinterms = errors.New("algebra: more than 64 minterms")

// Algebra is an effective Boolean algebra over character predicates of
// type T. Implementations are immutable and safe for concurrent use.
type Algebra[T comparable] interface {
	// True returns the predicate accepting every character.
	True() T
	// False returns the predicate accepting no character.
	False() T
	And(a, b T) T
	Or(a, b T) T
	Not(a T) T
	// IsSatisfiable reports whether a accepts at least one character.
	IsSatisfiable(a T) bool
	// DomainSize returns the number of characters accepted by a.
	DomainSize(a T) int
	// Minterms returns one predicate per partition block; the index of a
	// block is its atom id.
	Minterms() []T
	// FromSet returns the predicate covering every block that intersects s.
	// The result is exact when s is a union of blocks.
	FromSet(s charset.Set) T
	// ToSet returns the characters accepted by a.
	ToSet(a T) charset.Set
	// String renders a in character class notation.
	String(a T) string
}

// partition holds the blocks shared by both algebras.
type partition struct {
	blocks []charset.Set
	sizes  []int
}

func newPartition(blocks []charset.Set) partition {
	p := partition{blocks: blocks, sizes: make([]int, len(blocks))}
	for i, b := range blocks {
		p.sizes[i] = b.Size()
	}
	return p
}

func (p *partition) covering(s charset.Set, set func(i int)) {
	for i, b := range p.blocks {
		for _, r := range b.Ranges() {
			if s.IntersectsRange(r.Lo, r.Hi) {
				set(i)
				break
			}
		}
	}
}

// For selects an algebra for blocks: BV64Algebra when the partition fits in
// 64 bits and BVAlgebra otherwise. Exactly one of the results is non-nil.
func For(blocks []charset.Set) (*BV64Algebra, *BVAlgebra) {
	if len(blocks) <= 64 {
		a, err := NewBV64Algebra(blocks)
		if err == nil {
			return a, nil
		}
	}
	return nil, NewBVAlgebra(blocks)
}
