package algebra

import (
	"math/bits"
	"strings"

	"github.com/coregx/symregex/charset"
)

// BV is an immutable bit vector over minterms. The bits live in a string
// so that BV values are comparable and usable as map keys.
type BV struct {
	bits string
}

// Has reports whether minterm i is set.
func (v BV) Has(i int) bool {
	return i/8 < len(v.bits) && v.bits[i/8]&(1<<uint(i%8)) != 0
}

// BVAlgebra represents predicates over any number of minterms as BV values.
type BVAlgebra struct {
	partition
	width    int
	all      BV
	none     BV
	minterms []BV
}

var _ Algebra[BV] = (*BVAlgebra)(nil)

// NewBVAlgebra builds the algebra for blocks.
func NewBVAlgebra(blocks []charset.Set) *BVAlgebra {
	width := (len(blocks) + 7) / 8
	a := &BVAlgebra{partition: newPartition(blocks), width: width}
	a.none = BV{bits: strings.Repeat("\x00", width)}
	all := make([]byte, width)
	a.minterms = make([]BV, len(blocks))
	for i := range blocks {
		b := make([]byte, width)
		b[i/8] = 1 << uint(i%8)
		a.minterms[i] = BV{bits: string(b)}
		all[i/8] |= 1 << uint(i%8)
	}
	a.all = BV{bits: string(all)}
	return a
}

func (a *BVAlgebra) True() BV       { return a.all }
func (a *BVAlgebra) False() BV      { return a.none }
func (a *BVAlgebra) Minterms() []BV { return a.minterms }

func (a *BVAlgebra) And(x, y BV) BV {
	return a.combine(x, y, func(p, q byte) byte { return p & q })
}

func (a *BVAlgebra) Or(x, y BV) BV {
	return a.combine(x, y, func(p, q byte) byte { return p | q })
}

func (a *BVAlgebra) Not(x BV) BV {
	return a.combine(x, a.all, func(p, q byte) byte { return q &^ p })
}

func (a *BVAlgebra) combine(x, y BV, op func(p, q byte) byte) BV {
	out := make([]byte, a.width)
	for i := range out {
		out[i] = op(x.bits[i], y.bits[i])
	}
	return BV{bits: string(out)}
}

func (a *BVAlgebra) IsSatisfiable(x BV) bool { return x != a.none }

func (a *BVAlgebra) DomainSize(x BV) int {
	n := 0
	a.each(x, func(i int) { n += a.sizes[i] })
	return n
}

func (a *BVAlgebra) FromSet(s charset.Set) BV {
	out := make([]byte, a.width)
	a.covering(s, func(i int) { out[i/8] |= 1 << uint(i%8) })
	return BV{bits: string(out)}
}

func (a *BVAlgebra) ToSet(x BV) charset.Set {
	s := charset.Empty()
	a.each(x, func(i int) { s = s.Union(a.blocks[i]) })
	return s
}

func (a *BVAlgebra) String(x BV) string { return a.ToSet(x).String() }

func (a *BVAlgebra) each(x BV, fn func(i int)) {
	for j := 0; j < len(x.bits); j++ {
		b := x.bits[j]
		for b != 0 {
			fn(j*8 + bits.TrailingZeros8(b))
			b &= b - 1
		}
	}
}
