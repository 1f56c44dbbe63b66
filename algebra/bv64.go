package algebra

import (
	"math/bits"

	"github.com/coregx/symregex/charset"
)

// BV64Algebra represents predicates over at most 64 minterms as uint64
// bit masks.
type BV64Algebra struct {
	partition
	all      uint64
	minterms []uint64
}

var _ Algebra[uint64] = (*BV64Algebra)(nil)

// NewBV64Algebra builds the algebra for blocks.
func NewBV64Algebra(blocks []charset.Set) (*BV64Algebra, error) {
	if len(blocks) > 64 {
		return nil, ErrTooManyMinterms
	}
	a := &BV64Algebra{partition: newPartition(blocks), minterms: make([]uint64, len(blocks))}
	for i := range blocks {
		a.minterms[i] = 1 << uint(i)
		a.all |= a.minterms[i]
	}
	return a, nil
}

func (a *BV64Algebra) True() uint64                { return a.all }
func (a *BV64Algebra) False() uint64               { return 0 }
func (a *BV64Algebra) And(x, y uint64) uint64      { return x & y }
func (a *BV64Algebra) Or(x, y uint64) uint64       { return x | y }
func (a *BV64Algebra) Not(x uint64) uint64         { return a.all &^ x }
func (a *BV64Algebra) IsSatisfiable(x uint64) bool { return x != 0 }
func (a *BV64Algebra) Minterms() []uint64          { return a.minterms }

func (a *BV64Algebra) DomainSize(x uint64) int {
	n := 0
	for x != 0 {
		i := bits.TrailingZeros64(x)
		n += a.sizes[i]
		x &= x - 1
	}
	return n
}

func (a *BV64Algebra) FromSet(s charset.Set) uint64 {
	var x uint64
	a.covering(s, func(i int) { x |= 1 << uint(i) })
	return x
}

func (a *BV64Algebra) ToSet(x uint64) charset.Set {
	s := charset.Empty()
	for x != 0 {
		i := bits.TrailingZeros64(x)
		s = s.Union(a.blocks[i])
		x &= x - 1
	}
	return s
}

func (a *BV64Algebra) String(x uint64) string { return a.ToSet(x).String() }
