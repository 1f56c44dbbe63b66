package prefilter

import (
	"unicode/utf8"

	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/classifier"
	"github.com/coregx/symregex/simd"
)

// StartSet finds the next character that can begin a match.
//
// Three strategies, chosen at construction:
//   - at most three ASCII characters: simd.Memchr, Memchr2 or Memchr3
//   - any other ASCII-only set: a byte table
//   - otherwise: decode each character and test it with a boolean
//     decision tree
//
// ASCII bytes never occur inside multi-byte sequences, so the byte-level
// strategies always stop on a character boundary.
type StartSet struct {
	set   charset.Set
	bytes []byte
	table *[256]bool
	tree  *classifier.BooleanDecisionTree
}

// NewStartSet creates a prefilter for the characters of set. limit is the
// precompute limit of the decision tree.
func NewStartSet(set charset.Set, limit rune) *StartSet {
	p := &StartSet{set: set}
	if hi, ok := maxRune(set); ok && hi < utf8.RuneSelf {
		if set.Size() <= 3 {
			for _, r := range set.Ranges() {
				for c := r.Lo; c <= r.Hi; c++ {
					p.bytes = append(p.bytes, byte(c))
				}
			}
			return p
		}
		p.table = new([256]bool)
		for _, r := range set.Ranges() {
			for c := r.Lo; c <= r.Hi; c++ {
				p.table[c] = true
			}
		}
		return p
	}
	p.tree = classifier.NewBooleanDecisionTree(set, limit)
	return p
}

func maxRune(s charset.Set) (rune, bool) {
	rs := s.Ranges()
	if len(rs) == 0 {
		return 0, false
	}
	return rs[len(rs)-1].Hi, true
}

// Find implements Prefilter.Find.
func (p *StartSet) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	h := haystack[start:]
	var i int
	switch {
	case p.bytes != nil:
		i = p.findBytes(h)
	case p.table != nil:
		i = -1
		for j, c := range h {
			if p.table[c] {
				i = j
				break
			}
		}
	default:
		i = p.findRunes(h)
	}
	if i < 0 {
		return -1
	}
	return start + i
}

func (p *StartSet) findBytes(h []byte) int {
	switch len(p.bytes) {
	case 1:
		return simd.Memchr(h, p.bytes[0])
	case 2:
		return simd.Memchr2(h, p.bytes[0], p.bytes[1])
	}
	return simd.Memchr3(h, p.bytes[0], p.bytes[1], p.bytes[2])
}

func (p *StartSet) findRunes(h []byte) int {
	for i := 0; i < len(h); {
		c := rune(h[i])
		size := 1
		if c >= utf8.RuneSelf {
			// Invalid bytes decode to the replacement character.
			c, size = utf8.DecodeRune(h[i:])
		}
		if p.tree.Contains(c) {
			return i
		}
		i += size
	}
	return -1
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *StartSet) HeapBytes() int {
	switch {
	case p.table != nil:
		return len(p.table)
	case p.tree != nil:
		return 16 * p.tree.NumNodes()
	}
	return len(p.bytes)
}

func (p *StartSet) String() string { return "start-set(" + p.set.String() + ")" }
