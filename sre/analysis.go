package sre

import (
	"unicode/utf8"

	"github.com/coregx/symregex/charset"
)

// maxPrefixLen bounds the literal prefixes reported by FixedPrefix.
const maxPrefixLen = 256

var reversedAnchors = map[NodeKind]NodeKind{
	BeginText:       EndText,
	EndText:         BeginText,
	EndTextZ:        BeginTextZ,
	BeginTextZ:      EndTextZ,
	BeginLine:       EndLine,
	EndLine:         BeginLine,
	WordBoundary:    WordBoundary,
	NonWordBoundary: NonWordBoundary,
}

// Reverse returns the node matching the reversal of every string matched by
// n. Anchors are mirrored and watchdogs are dropped.
func (b *Builder[T]) Reverse(n *Node[T]) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reverse(n)
}

func (b *Builder[T]) reverse(n *Node[T]) *Node[T] {
	if r, ok := b.revs[n.id]; ok {
		return r
	}
	var r *Node[T]
	switch n.kind {
	case Concat:
		r = b.mkConcat(b.reverse(n.right), b.reverse(n.left))
	case Or:
		alts := make([]*Node[T], len(n.alts))
		for i, a := range n.alts {
			alts[i] = b.reverse(a)
		}
		r = b.mkOr(alts)
	case Loop:
		r = b.mkLoop(b.reverse(n.left), n.lo, n.hi, n.lazy)
	case Watchdog:
		r = b.epsilon
	default:
		if k, ok := reversedAnchors[n.kind]; ok {
			r = b.mkAnchor(k)
		} else {
			r = n
		}
	}
	b.revs[n.id] = r
	return r
}

// StartSet returns the predicate of the characters that can begin a match
// of n.
func (b *Builder[T]) StartSet(n *Node[T]) T {
	b.mu.Lock()
	defer b.mu.Unlock()
	memo := make(map[uint32]T)
	return b.startSet(n, memo)
}

func (b *Builder[T]) startSet(n *Node[T], memo map[uint32]T) T {
	if s, ok := memo[n.id]; ok {
		return s
	}
	s := b.alg.False()
	switch n.kind {
	case Singleton:
		s = n.pred
	case Concat:
		s = b.startSet(n.left, memo)
		if n.left.nullable != 0 {
			s = b.alg.Or(s, b.startSet(n.right, memo))
		}
	case Or:
		for _, a := range n.alts {
			s = b.alg.Or(s, b.startSet(a, memo))
		}
	case Loop:
		s = b.startSet(n.left, memo)
	}
	memo[n.id] = s
	return s
}

// FixedPrefix returns the literal every match of n starts with, skipping
// leading zero-width anchors. If ignoreCase is true the prefix matches up
// to simple case folding and holds one representative per character.
// With excludeNewline the prefix stops before any line feed, whose kind
// depends on its position.
func (b *Builder[T]) FixedPrefix(n *Node[T], excludeNewline bool) (prefix []rune, ignoreCase bool) {
	b.mu.Lock()
	sets := b.prefixSets(n)
	b.mu.Unlock()

	var exact, folded []rune
	for _, s := range sets {
		c, ok := s.SingleRune()
		if !ok || !prefixRune(c, excludeNewline) {
			break
		}
		exact = append(exact, c)
	}
	cased := false
	for _, s := range sets {
		lo, _ := s.Min()
		orbit := charset.FoldOrbit(lo)
		if !prefixRune(lo, excludeNewline) || !orbit.Equal(s) {
			break
		}
		if orbit.Size() > 1 {
			cased = true
		}
		folded = append(folded, lo)
	}
	if cased && len(folded) > len(exact) {
		return folded, true
	}
	return exact, false
}

// prefixRune reports whether c can be part of a literal prefix. Runes that
// cannot be told apart from invalid UTF-8 after decoding are excluded.
func prefixRune(c rune, excludeNewline bool) bool {
	if c == utf8.RuneError || !utf8.ValidRune(c) {
		return false
	}
	return !excludeNewline || c != '\n'
}

// prefixSets returns the character sets of the fixed-width head of n.
// b.mu must be held.
func (b *Builder[T]) prefixSets(n *Node[T]) []charset.Set {
	var out []charset.Set
	for n != nil && len(out) < maxPrefixLen {
		head, rest := n, (*Node[T])(nil)
		if n.kind == Concat {
			head, rest = n.left, n.right
		}
		switch {
		case head.kind.IsAnchor():
		case head.kind == Singleton:
			out = append(out, b.alg.ToSet(head.pred))
		case head.kind == Loop && head.left.kind == Singleton && head.lo > 0:
			s := b.alg.ToSet(head.left.pred)
			for i := 0; i < head.lo && len(out) < maxPrefixLen; i++ {
				out = append(out, s)
			}
			if head.hi != head.lo {
				return out
			}
		default:
			return out
		}
		n = rest
	}
	return out
}

// PrefixBytes encodes a prefix returned by FixedPrefix as UTF-8.
func PrefixBytes(prefix []rune) []byte {
	out := make([]byte, 0, len(prefix))
	for _, c := range prefix {
		out = utf8.AppendRune(out, c)
	}
	return out
}
