package sre

import (
	"strconv"
	"strings"
)

var anchorText = map[NodeKind]string{
	BeginText:       `\A`,
	EndText:         `\z`,
	EndTextZ:        `\Z`,
	BeginTextZ:      `\a`,
	BeginLine:       `(?m:^)`,
	EndLine:         `(?m:$)`,
	WordBoundary:    `\b`,
	NonWordBoundary: `\B`,
}

// String renders n in regex-like notation for diagnostics. BeginTextZ has
// no surface syntax and prints as \a.
func (b *Builder[T]) String(n *Node[T]) string {
	var sb strings.Builder
	b.write(&sb, n)
	return sb.String()
}

func (b *Builder[T]) write(sb *strings.Builder, n *Node[T]) {
	switch n.kind {
	case Nothing:
		sb.WriteString("[]")
	case Epsilon:
		sb.WriteString("()")
	case Singleton:
		sb.WriteString(b.alg.String(n.pred))
	case Concat:
		for c := n; ; c = c.right {
			if c.kind != Concat {
				b.writeOperand(sb, c)
				break
			}
			b.writeOperand(sb, c.left)
		}
	case Or:
		for i, a := range n.alts {
			if i > 0 {
				sb.WriteByte('|')
			}
			b.write(sb, a)
		}
	case Loop:
		b.writeAtom(sb, n.left)
		switch {
		case n.lo == 0 && n.hi < 0:
			sb.WriteByte('*')
		case n.lo == 1 && n.hi < 0:
			sb.WriteByte('+')
		case n.lo == 0 && n.hi == 1:
			sb.WriteByte('?')
		default:
			sb.WriteByte('{')
			sb.WriteString(strconv.Itoa(n.lo))
			if n.hi != n.lo {
				sb.WriteByte(',')
				if n.hi >= 0 {
					sb.WriteString(strconv.Itoa(n.hi))
				}
			}
			sb.WriteByte('}')
		}
		if n.lazy {
			sb.WriteByte('?')
		}
	case Watchdog:
		sb.WriteString("(?W:")
		sb.WriteString(strconv.Itoa(n.lo))
		sb.WriteByte(')')
	default:
		sb.WriteString(anchorText[n.kind])
	}
}

// writeOperand parenthesizes alternations inside a concatenation.
func (b *Builder[T]) writeOperand(sb *strings.Builder, n *Node[T]) {
	if n.kind == Or {
		sb.WriteString("(?:")
		b.write(sb, n)
		sb.WriteByte(')')
		return
	}
	b.write(sb, n)
}

// writeAtom parenthesizes anything that is not a single item.
func (b *Builder[T]) writeAtom(sb *strings.Builder, n *Node[T]) {
	switch n.kind {
	case Concat, Or, Loop:
		sb.WriteString("(?:")
		b.write(sb, n)
		sb.WriteByte(')')
	default:
		b.write(sb, n)
	}
}
