// Package charset implements immutable sets of Unicode code points.
//
// A Set is a sorted list of disjoint, non-adjacent inclusive ranges over
// [0, MaxRune]. Sets are values: every operation returns a new Set and
// never mutates its receiver, so sets can be shared freely between
// goroutines. The package is the concrete character algebra underneath the
// bit-vector algebras of package algebra.
package charset

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// MaxRune is the largest code point a Set can hold.
const MaxRune = unicode.MaxRune

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// Set is an immutable set of code points.
// The zero value is the empty set.
type Set struct {
	ranges []Range
}

var (
	// Word is the ASCII word set [0-9A-Za-z_] used by \b and \B.
	Word = FromRanges(Range{'0', '9'}, Range{'A', 'Z'}, Range{'_', '_'}, Range{'a', 'z'})

	// Newline holds the line feed character.
	Newline = Single('\n')
)

// Empty returns the empty set.
func Empty() Set { return Set{} }

// Full returns the set of all code points.
func Full() Set { return Set{ranges: []Range{{0, MaxRune}}} }

// Single returns the set holding only c.
func Single(c rune) Set { return FromRange(c, c) }

// FromRange returns the set [lo, hi]. Bounds are clamped to [0, MaxRune].
func FromRange(lo, hi rune) Set {
	return FromRanges(Range{lo, hi})
}

// FromRunes returns the set of the given code points.
func FromRunes(rs ...rune) Set {
	ranges := make([]Range, len(rs))
	for i, r := range rs {
		ranges[i] = Range{r, r}
	}
	return FromRanges(ranges...)
}

// FromPairs builds a set from a flat list of inclusive lo/hi pairs, the
// layout used by regexp/syntax for character classes.
func FromPairs(pairs []rune) Set {
	ranges := make([]Range, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, Range{pairs[i], pairs[i+1]})
	}
	return FromRanges(ranges...)
}

// FromRanges normalizes arbitrary, possibly overlapping ranges into a Set.
// Empty and out-of-domain ranges are dropped.
func FromRanges(rs ...Range) Set {
	out := make([]Range, 0, len(rs))
	for _, r := range rs {
		if r.Lo < 0 {
			r.Lo = 0
		}
		if r.Hi > MaxRune {
			r.Hi = MaxRune
		}
		if r.Lo <= r.Hi {
			out = append(out, r)
		}
	}
	return Set{ranges: normalize(out)}
}

// normalize sorts rs in place and merges overlapping or adjacent ranges.
func normalize(rs []Range) []Range {
	if len(rs) < 2 {
		return rs
	}
	slices.SortFunc(rs, func(a, b Range) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})
	w := 0
	for _, r := range rs[1:] {
		last := &rs[w]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		w++
		rs[w] = r
	}
	return rs[:w+1]
}

// Ranges returns the normalized ranges of s. The slice must not be modified.
func (s Set) Ranges() []Range { return s.ranges }

// IsEmpty reports whether s holds no code point.
func (s Set) IsEmpty() bool { return len(s.ranges) == 0 }

// IsFull reports whether s holds every code point.
func (s Set) IsFull() bool {
	return len(s.ranges) == 1 && s.ranges[0] == Range{0, MaxRune}
}

// Contains reports whether c is in s.
func (s Set) Contains(c rune) bool {
	_, found := slices.BinarySearchFunc(s.ranges, c, func(r Range, c rune) int {
		switch {
		case r.Hi < c:
			return -1
		case r.Lo > c:
			return 1
		}
		return 0
	})
	return found
}

// IntersectsRange reports whether s holds at least one code point of [lo, hi].
func (s Set) IntersectsRange(lo, hi rune) bool {
	// First range whose Hi is >= lo.
	i, _ := slices.BinarySearchFunc(s.ranges, lo, func(r Range, c rune) int {
		if r.Hi < c {
			return -1
		}
		return 1
	})
	return i < len(s.ranges) && s.ranges[i].Lo <= hi
}

// Size returns the number of code points in s.
func (s Set) Size() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Min returns the smallest code point of s.
func (s Set) Min() (rune, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[0].Lo, true
}

// SingleRune returns the only element of s when s has exactly one element.
func (s Set) SingleRune() (rune, bool) {
	if len(s.ranges) == 1 && s.ranges[0].Lo == s.ranges[0].Hi {
		return s.ranges[0].Lo, true
	}
	return 0, false
}

// Equal reports whether s and o hold the same code points.
func (s Set) Equal(o Set) bool { return slices.Equal(s.ranges, o.ranges) }

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	if s.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return s
	}
	rs := make([]Range, 0, len(s.ranges)+len(o.ranges))
	rs = append(rs, s.ranges...)
	rs = append(rs, o.ranges...)
	return Set{ranges: normalize(rs)}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	var out []Range
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		lo, hi := max(a.Lo, b.Lo), min(a.Hi, b.Hi)
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return Set{ranges: out}
}

// Complement returns the code points not in s.
func (s Set) Complement() Set {
	out := make([]Range, 0, len(s.ranges)+1)
	next := rune(0)
	for _, r := range s.ranges {
		if r.Lo > next {
			out = append(out, Range{next, r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= MaxRune {
		out = append(out, Range{next, MaxRune})
	}
	return Set{ranges: out}
}

// Difference returns s \ o.
func (s Set) Difference(o Set) Set { return s.Intersect(o.Complement()) }

// Subset reports whether every code point of s is in o.
func (s Set) Subset(o Set) bool { return s.Difference(o).IsEmpty() }

// Case folding is only defined inside this window (see regexp/syntax).
const (
	minFold = 0x0041
	maxFold = 0x1e943
)

// FoldClosure returns s extended with every simple case folding of its
// members, so that the result is closed under unicode.SimpleFold.
func (s Set) FoldClosure() Set {
	extra := make([]Range, 0, len(s.ranges))
	for _, r := range s.ranges {
		lo, hi := max(r.Lo, minFold), min(r.Hi, maxFold)
		for c := lo; c <= hi; c++ {
			for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
				extra = append(extra, Range{f, f})
			}
		}
	}
	if len(extra) == 0 {
		return s
	}
	return s.Union(Set{ranges: normalize(extra)})
}

// FoldOrbit returns the set of code points equal to c under simple case
// folding, c included.
func FoldOrbit(c rune) Set {
	rs := []Range{{c, c}}
	for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
		rs = append(rs, Range{f, f})
	}
	return Set{ranges: normalize(rs)}
}

// String renders s in character class notation.
func (s Set) String() string {
	switch {
	case s.IsEmpty():
		return "[]"
	case s.IsFull():
		return "[\\x00-\\x{10ffff}]"
	}
	if c, ok := s.SingleRune(); ok {
		return quoteRune(c)
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		b.WriteString(quoteRune(r.Lo))
		if r.Hi != r.Lo {
			if r.Hi > r.Lo+1 {
				b.WriteByte('-')
			}
			b.WriteString(quoteRune(r.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func quoteRune(c rune) string {
	switch {
	case c == '\n':
		return `\n`
	case c == '\t':
		return `\t`
	case c < 0x20 || c == 0x7f:
		return `\x` + strconv.FormatInt(int64(c), 16)
	case strings.ContainsRune(`\.+*?()|[]{}^$-`, c):
		return `\` + string(c)
	case c > 0x7e && !unicode.IsPrint(c):
		return `\x{` + strconv.FormatInt(int64(c), 16) + `}`
	}
	return string(c)
}
