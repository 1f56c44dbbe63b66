package algebra

import (
	"testing"

	"github.com/coregx/symregex/charset"
)

func smallPartition() []charset.Set {
	return charset.Minterms([]charset.Set{
		charset.FromRange('a', 'z'),
		charset.Word,
		charset.Newline,
		charset.FromRunes('x', 'y', '7'),
	})
}

// widePartition has more than 64 blocks: one per even ASCII letter code.
func widePartition() []charset.Set {
	var sets []charset.Set
	for c := rune(0); c < 160; c += 2 {
		sets = append(sets, charset.Single(c))
	}
	return charset.Minterms(sets)
}

// checkLaws verifies the algebra operations against the set operations of
// the underlying blocks. s must be a union of blocks.
func checkLaws[T comparable](t *testing.T, alg Algebra[T], s charset.Set) {
	t.Helper()
	minterms := alg.Minterms()
	if !alg.IsSatisfiable(alg.True()) || alg.IsSatisfiable(alg.False()) {
		t.Fatal("True/False satisfiability is wrong")
	}
	if got := alg.DomainSize(alg.True()); got != charset.MaxRune+1 {
		t.Errorf("DomainSize(True) = %d, want %d", got, charset.MaxRune+1)
	}
	union := alg.False()
	for i, m := range minterms {
		for j, n := range minterms {
			meet := alg.And(m, n)
			if (i == j) != alg.IsSatisfiable(meet) {
				t.Errorf("And(minterm %d, minterm %d) satisfiable = %v", i, j, alg.IsSatisfiable(meet))
			}
		}
		if alg.And(m, alg.Not(m)) != alg.False() {
			t.Errorf("minterm %d ∧ ¬minterm %d is not False", i, i)
		}
		union = alg.Or(union, m)
	}
	if union != alg.True() {
		t.Error("the minterms do not cover True")
	}

	p := alg.FromSet(s)
	if got := alg.ToSet(p); !got.Equal(s) {
		t.Errorf("ToSet(FromSet(%s)) = %s", s, got)
	}
	if got, want := alg.DomainSize(p), s.Size(); got != want {
		t.Errorf("DomainSize(%s) = %d, want %d", s, got, want)
	}
	if got := alg.ToSet(alg.Not(p)); !got.Equal(s.Complement()) {
		t.Errorf("ToSet(Not(%s)) = %s", s, got)
	}
	if alg.Not(alg.Not(p)) != p {
		t.Error("Not is not an involution")
	}
	if got := alg.String(p); got != s.String() {
		t.Errorf("String(%s) = %q", s, got)
	}
}

// checkOverApproximation verifies that a set cutting through blocks maps to
// a predicate accepting at least its characters.
func checkOverApproximation[T comparable](t *testing.T, alg Algebra[T], s charset.Set) {
	t.Helper()
	if got := alg.ToSet(alg.FromSet(s)); !s.Subset(got) {
		t.Errorf("ToSet(FromSet(%s)) = %s, not a superset", s, got)
	}
}

func TestBV64AlgebraLaws(t *testing.T) {
	alg, err := NewBV64Algebra(smallPartition())
	if err != nil {
		t.Fatal(err)
	}
	checkLaws[uint64](t, alg, charset.FromRange('a', 'z'))
}

func TestBVAlgebraLaws(t *testing.T) {
	checkLaws[BV](t, NewBVAlgebra(smallPartition()), charset.FromRange('a', 'z'))
	wide := NewBVAlgebra(widePartition())
	checkLaws[BV](t, wide, charset.FromRunes('b', 'd'))
	// [a-z] splits the block holding the odd codes.
	checkOverApproximation[BV](t, wide, charset.FromRange('a', 'z'))
	if got := wide.DomainSize(wide.FromSet(charset.FromRange('a', 'z'))); got <= 26 {
		t.Errorf("DomainSize(FromSet([a-z])) = %d, want more than 26", got)
	}
}

func TestBV64RejectsWidePartitions(t *testing.T) {
	if _, err := NewBV64Algebra(widePartition()); err != ErrTooManyMinterms {
		t.Errorf("NewBV64Algebra(wide) error = %v, want %v", err, ErrTooManyMinterms)
	}
}

func TestFor(t *testing.T) {
	small, wide := For(smallPartition())
	if small == nil || wide != nil {
		t.Errorf("For(small) = %v, %v; want BV64 only", small, wide)
	}
	small, wide = For(widePartition())
	if small != nil || wide == nil {
		t.Errorf("For(wide) = %v, %v; want BV only", small, wide)
	}
}

func TestBVHas(t *testing.T) {
	alg := NewBVAlgebra(widePartition())
	m := alg.Minterms()[70]
	if !m.Has(70) || m.Has(69) || m.Has(1000) {
		t.Error("Has reports wrong bits for minterm 70")
	}
}
