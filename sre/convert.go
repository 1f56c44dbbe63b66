package sre

import (
	"regexp/syntax"

	"github.com/coregx/symregex/charset"
)

// Options control the conversion of a parsed pattern.
type Options struct {
	// DollarEndZ makes a non-multiline $ match at the end of the text or
	// before a final line feed (\Z) instead of only at the end (\z).
	DollarEndZ bool
}

// Parse parses pattern with regexp/syntax.
func Parse(pattern string, flags syntax.Flags) (*syntax.Regexp, error) {
	return syntax.Parse(pattern, flags)
}

// Predicates returns every character set occurring in re and whether re
// contains anchors. When it does, the line feed and word sets are included
// so that every minterm has a single CharKind.
func Predicates(re *syntax.Regexp) (sets []charset.Set, anchors bool) {
	var walk func(re *syntax.Regexp)
	walk = func(re *syntax.Regexp) {
		switch re.Op {
		case syntax.OpLiteral:
			fold := re.Flags&syntax.FoldCase != 0
			for _, r := range re.Rune {
				sets = append(sets, literalSet(r, fold))
			}
		case syntax.OpCharClass:
			sets = append(sets, charset.FromPairs(re.Rune))
		case syntax.OpAnyCharNotNL:
			sets = append(sets, charset.Newline.Complement())
		case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
			syntax.OpWordBoundary, syntax.OpNoWordBoundary:
			anchors = true
		}
		for _, sub := range re.Sub {
			walk(sub)
		}
	}
	walk(re)
	if anchors {
		sets = append(sets, charset.Newline, charset.Word)
	}
	return sets, anchors
}

func literalSet(r rune, fold bool) charset.Set {
	if fold {
		return charset.FoldOrbit(r)
	}
	return charset.Single(r)
}

// Convert builds the node for re. The algebra of b must be built over a
// partition refining Predicates(re). Capture groups are transparent.
func Convert[T comparable](b *Builder[T], re *syntax.Regexp, opts Options) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := converter[T]{b: b, opts: opts}
	n := c.convert(re)
	tracer().Debugf("pattern converted, builder holds %d nodes", len(b.nodes))
	return n
}

type converter[T comparable] struct {
	b    *Builder[T]
	opts Options
}

func (c *converter[T]) set(s charset.Set) *Node[T] {
	return c.b.mkSingleton(c.b.alg.FromSet(s))
}

func (c *converter[T]) convert(re *syntax.Regexp) *Node[T] {
	b := c.b
	switch re.Op {
	case syntax.OpNoMatch:
		return b.nothing
	case syntax.OpEmptyMatch:
		return b.epsilon
	case syntax.OpLiteral:
		fold := re.Flags&syntax.FoldCase != 0
		out := b.epsilon
		for i := len(re.Rune) - 1; i >= 0; i-- {
			out = b.mkConcat(c.set(literalSet(re.Rune[i], fold)), out)
		}
		return out
	case syntax.OpCharClass:
		return c.set(charset.FromPairs(re.Rune))
	case syntax.OpAnyCharNotNL:
		return c.set(charset.Newline.Complement())
	case syntax.OpAnyChar:
		return b.mkSingleton(b.alg.True())
	case syntax.OpBeginLine:
		return b.mkAnchor(BeginLine)
	case syntax.OpEndLine:
		return b.mkAnchor(EndLine)
	case syntax.OpBeginText:
		return b.mkAnchor(BeginText)
	case syntax.OpEndText:
		if c.opts.DollarEndZ && re.Flags&syntax.WasDollar != 0 {
			return b.mkAnchor(EndTextZ)
		}
		return b.mkAnchor(EndText)
	case syntax.OpWordBoundary:
		return b.mkAnchor(WordBoundary)
	case syntax.OpNoWordBoundary:
		return b.mkAnchor(NonWordBoundary)
	case syntax.OpCapture:
		return c.convert(re.Sub[0])
	case syntax.OpStar:
		return c.loop(re, 0, -1)
	case syntax.OpPlus:
		return c.loop(re, 1, -1)
	case syntax.OpQuest:
		return c.loop(re, 0, 1)
	case syntax.OpRepeat:
		return c.loop(re, re.Min, re.Max)
	case syntax.OpConcat:
		out := b.epsilon
		for i := len(re.Sub) - 1; i >= 0; i-- {
			out = b.mkConcat(c.convert(re.Sub[i]), out)
		}
		return out
	case syntax.OpAlternate:
		alts := make([]*Node[T], len(re.Sub))
		for i, sub := range re.Sub {
			alts[i] = c.convert(sub)
		}
		return b.mkOr(alts)
	}
	return b.nothing
}

func (c *converter[T]) loop(re *syntax.Regexp, lo, hi int) *Node[T] {
	return c.b.mkLoop(c.convert(re.Sub[0]), lo, hi, re.Flags&syntax.NonGreedy != 0)
}
