package literal

import (
	"unicode/utf8"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/sre"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in a result. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal, in characters.
	// Longer literals are cut and marked incomplete. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Character classes like [abc] are expanded to ["a", "b", "c"].
	// Default: 10.
	MaxClassSize int

	// ExcludeNewline keeps line feeds out of literals.
	ExcludeNewline bool
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literal sequences from symbolic pattern nodes.
//
// Algorithm overview:
//  1. Walk the node: singletons with small classes expand to one literal
//     per character, concatenations take the cross product of their
//     operands, alternations take the union
//  2. A literal stops growing (becomes incomplete) wherever the walk meets
//     a loop, a large class or a limit
//  3. Zero-width anchors and watchdogs contribute the empty literal
//  4. If any resulting literal is empty, no prefix set exists
//
// Example:
//
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := literal.Prefixes(extractor, builder, node)
//	// for /(hello|world)[0-9]/: prefixes = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() ExtractorConfig {
	return e.config
}

// lit is a literal under construction.
type lit struct {
	runes    []rune
	complete bool
}

// Prefixes returns a minimized set of literals such that every match of n
// begins with one of them. The result is empty when no such set exists
// within the configured limits.
//
// Go methods cannot have type parameters, so this is a function taking
// the extractor.
func Prefixes[T comparable](e *Extractor, b *sre.Builder[T], n *sre.Node[T]) *Seq {
	w := walker[T]{config: e.config, alg: b.Algebra()}
	lits := w.prefixes(n)
	seq := NewSeq()
	for _, l := range lits {
		if len(l.runes) == 0 {
			return NewSeq()
		}
		seq.literals = append(seq.literals, NewLiteral(encode(l.runes), l.complete))
	}
	seq.Minimize()
	return seq
}

type walker[T comparable] struct {
	config ExtractorConfig
	alg    algebra.Algebra[T]
}

// open is the result for a node with no usable literal: any match may
// start anywhere.
var open = []lit{{complete: false}}

func (w *walker[T]) prefixes(n *sre.Node[T]) []lit {
	switch n.Kind() {
	case sre.Nothing:
		return nil
	case sre.Singleton:
		return w.class(n.Pred())
	case sre.Concat:
		return w.concat(w.prefixes(n.Left()), n.Right())
	case sre.Or:
		var out []lit
		for _, a := range n.Alts() {
			out = append(out, w.prefixes(a)...)
			if len(out) > w.config.MaxLiterals {
				return open
			}
		}
		return out
	case sre.Loop:
		lo, _ := n.Bounds()
		body := markIncomplete(w.prefixes(n.Left()))
		if lo == 0 {
			return append(body, lit{complete: true})
		}
		return body
	}
	// Epsilon, anchors and watchdogs match the empty string.
	return []lit{{complete: true}}
}

// class expands the characters of pred into one-character literals.
func (w *walker[T]) class(pred T) []lit {
	set := w.alg.ToSet(pred)
	if set.Size() > w.config.MaxClassSize {
		return open
	}
	var out []lit
	for _, r := range set.Ranges() {
		for c := r.Lo; c <= r.Hi; c++ {
			if !literalRune(c, w.config.ExcludeNewline) {
				return open
			}
			out = append(out, lit{runes: []rune{c}, complete: true})
		}
	}
	return out
}

// concat extends the complete literals of left with those of right.
func (w *walker[T]) concat(left []lit, right *sre.Node[T]) []lit {
	extend := false
	for _, l := range left {
		extend = extend || l.complete
	}
	if !extend {
		return left
	}
	tail := w.prefixes(right)
	var out []lit
	for _, l := range left {
		if !l.complete {
			out = append(out, l)
			continue
		}
		for _, t := range tail {
			out = append(out, w.join(l, t))
		}
	}
	if len(out) > w.config.MaxLiterals {
		return markIncomplete(left)
	}
	return out
}

func (w *walker[T]) join(head, tail lit) lit {
	runes := make([]rune, 0, len(head.runes)+len(tail.runes))
	runes = append(runes, head.runes...)
	runes = append(runes, tail.runes...)
	if len(runes) > w.config.MaxLiteralLen {
		return lit{runes: runes[:w.config.MaxLiteralLen]}
	}
	return lit{runes: runes, complete: tail.complete}
}

func markIncomplete(lits []lit) []lit {
	out := make([]lit, len(lits))
	for i, l := range lits {
		out[i] = lit{runes: l.runes}
	}
	return out
}

// literalRune reports whether c can be searched for as UTF-8 bytes. The
// replacement character is excluded since it also stands for invalid input.
func literalRune(c rune, excludeNewline bool) bool {
	if c == utf8.RuneError || !utf8.ValidRune(c) {
		return false
	}
	return !excludeNewline || c != '\n'
}

func encode(runes []rune) []byte {
	out := make([]byte, 0, len(runes))
	for _, c := range runes {
		out = utf8.AppendRune(out, c)
	}
	return out
}
