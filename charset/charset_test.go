package charset

import (
	"testing"
	"unicode"
)

func TestFromRangesNormalizes(t *testing.T) {
	s := FromRanges(Range{'d', 'f'}, Range{'a', 'c'}, Range{'x', 'z'}, Range{'y', 'y'}, Range{5, 1})
	want := []Range{{'a', 'f'}, {'x', 'z'}}
	got := s.Ranges()
	if len(got) != len(want) {
		t.Fatalf("Ranges() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ranges()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSetOperations(t *testing.T) {
	az := FromRange('a', 'z')
	digits := FromRange('0', '9')
	vowels := FromRunes('a', 'e', 'i', 'o', 'u')

	tests := []struct {
		name string
		got  Set
		in   []rune
		out  []rune
		size int
	}{
		{"union", az.Union(digits), []rune{'a', 'z', '0', '9'}, []rune{'A', '/', ':'}, 36},
		{"intersect", az.Intersect(vowels), []rune{'a', 'u'}, []rune{'b', '0'}, 5},
		{"difference", az.Difference(vowels), []rune{'b', 'z'}, []rune{'a', 'e'}, 21},
		{"complement", digits.Complement(), []rune{0, '/', ':', MaxRune}, []rune{'0', '5'}, MaxRune + 1 - 10},
		{"empty", az.Intersect(digits), nil, []rune{'a', '0'}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range tt.in {
				if !tt.got.Contains(c) {
					t.Errorf("%s: Contains(%q) = false, want true", tt.got, c)
				}
			}
			for _, c := range tt.out {
				if tt.got.Contains(c) {
					t.Errorf("%s: Contains(%q) = true, want false", tt.got, c)
				}
			}
			if got := tt.got.Size(); got != tt.size {
				t.Errorf("%s: Size() = %d, want %d", tt.got, got, tt.size)
			}
		})
	}
}

func TestComplementInvolution(t *testing.T) {
	for _, s := range []Set{Empty(), Full(), Word, Newline, FromRange(0, 0), FromRange(MaxRune, MaxRune)} {
		if got := s.Complement().Complement(); !got.Equal(s) {
			t.Errorf("Complement(Complement(%s)) = %s", s, got)
		}
		if !s.Union(s.Complement()).IsFull() {
			t.Errorf("%s ∪ ¬%s is not full", s, s)
		}
		if !s.Intersect(s.Complement()).IsEmpty() {
			t.Errorf("%s ∩ ¬%s is not empty", s, s)
		}
	}
}

func TestIntersectsRange(t *testing.T) {
	s := FromRanges(Range{10, 20}, Range{40, 50})
	tests := []struct {
		lo, hi rune
		want   bool
	}{
		{0, 9, false},
		{0, 10, true},
		{21, 39, false},
		{15, 45, true},
		{50, 100, true},
		{51, 100, false},
	}
	for _, tt := range tests {
		if got := s.IntersectsRange(tt.lo, tt.hi); got != tt.want {
			t.Errorf("IntersectsRange(%d, %d) = %v, want %v", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestFoldClosure(t *testing.T) {
	s := FromRunes('k', 'a').FoldClosure()
	for _, c := range []rune{'a', 'A', 'k', 'K', '\u212a'} {
		if !s.Contains(c) {
			t.Errorf("FoldClosure missing %q", c)
		}
	}
	if s.Size() != 5 {
		t.Errorf("FoldClosure size = %d, want 5", s.Size())
	}
	if got := FoldOrbit('1'); got.Size() != 1 {
		t.Errorf("FoldOrbit('1') = %s, want single", got)
	}
}

func TestMintermsPartition(t *testing.T) {
	sets := []Set{
		FromRange('a', 'z'),
		Word,
		Newline,
		Newline.Complement(),
		FromRanges(rangeTableToRanges(unicode.Greek)...),
	}
	blocks := Minterms(sets)

	// Disjoint and exhaustive.
	union := Empty()
	total := 0
	for i, b := range blocks {
		if b.IsEmpty() {
			t.Fatalf("block %d is empty", i)
		}
		for j := i + 1; j < len(blocks); j++ {
			if !b.Intersect(blocks[j]).IsEmpty() {
				t.Errorf("blocks %d and %d overlap", i, j)
			}
		}
		union = union.Union(b)
		total += b.Size()
	}
	if !union.IsFull() || total != MaxRune+1 {
		t.Errorf("blocks do not cover the domain: full=%v total=%d", union.IsFull(), total)
	}

	// Every input set is a union of blocks.
	for _, s := range sets {
		for _, b := range blocks {
			in := b.Intersect(s)
			if !in.IsEmpty() && !in.Equal(b) {
				t.Errorf("block %s straddles set %s", b, s)
			}
		}
	}
}

func TestMintermsNoSets(t *testing.T) {
	blocks := Minterms(nil)
	if len(blocks) != 1 || !blocks[0].IsFull() {
		t.Errorf("Minterms(nil) = %v, want [full]", blocks)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		s    Set
		want string
	}{
		{Single('a'), "a"},
		{FromRange('a', 'c'), "[a-c]"},
		{FromRunes('a', 'b'), "[ab]"},
		{Newline, `\n`},
		{Empty(), "[]"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func rangeTableToRanges(tab *unicode.RangeTable) []Range {
	var rs []Range
	for _, r := range tab.R16 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			rs = append(rs, Range{c, c})
		}
	}
	for _, r := range tab.R32 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			rs = append(rs, Range{c, c})
		}
	}
	return rs
}
