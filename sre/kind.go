package sre

import "fmt"

// CharKind classifies the character on one side of a position. Anchors are
// evaluated over the pair of kinds around the position they sit at.
type CharKind uint8

const (
	// General is any character without a special role, and the kind of
	// every character when the pattern has no anchors.
	General CharKind = iota
	// Start is the sentinel before the first character of a scan.
	Start
	// End is the sentinel after the last character of a scan.
	End
	// WordLetter is an ASCII word character [0-9A-Za-z_].
	WordLetter
	// Newline is a line feed.
	Newline
	// NewlineEnd is a line feed that is the last character of the input.
	NewlineEnd

	// NumKinds is the number of character kinds.
	NumKinds = 6
)

func (k CharKind) String() string {
	switch k {
	case General:
		return "General"
	case Start:
		return "Start"
	case End:
		return "End"
	case WordLetter:
		return "WordLetter"
	case Newline:
		return "Newline"
	case NewlineEnd:
		return "NewlineEnd"
	default:
		return fmt.Sprintf("CharKind(%d)", k)
	}
}

// IsWord reports whether k counts as a word character for \b and \B.
func (k CharKind) IsWord() bool { return k == WordLetter }

// Context is the pair of character kinds around a position.
type Context struct {
	Prev, Next CharKind
}

func (c Context) String() string { return fmt.Sprintf("(%s,%s)", c.Prev, c.Next) }

func (c Context) bit() uint64 { return 1 << (uint(c.Prev)*NumKinds + uint(c.Next)) }

// AllContexts is the nullability mask of a node nullable everywhere.
const AllContexts uint64 = 1<<(NumKinds*NumKinds) - 1

// PossibleContexts masks the contexts that can occur during a scan: no
// character precedes End and none follows Start.
var PossibleContexts = contextMask(func(prev, next CharKind) bool {
	return prev != End && next != Start
})

func contextMask(pred func(prev, next CharKind) bool) uint64 {
	var m uint64
	for p := CharKind(0); p < NumKinds; p++ {
		for n := CharKind(0); n < NumKinds; n++ {
			if pred(p, n) {
				m |= Context{p, n}.bit()
			}
		}
	}
	return m
}

// Nullability masks of the anchors.
var anchorMasks = map[NodeKind]uint64{
	BeginText: contextMask(func(p, _ CharKind) bool { return p == Start }),
	EndText:   contextMask(func(_, n CharKind) bool { return n == End }),
	EndTextZ: contextMask(func(_, n CharKind) bool {
		return n == End || n == NewlineEnd
	}),
	BeginTextZ: contextMask(func(p, _ CharKind) bool {
		return p == Start || p == NewlineEnd
	}),
	BeginLine: contextMask(func(p, _ CharKind) bool {
		return p == Start || p == Newline || p == NewlineEnd
	}),
	EndLine: contextMask(func(_, n CharKind) bool {
		return n == End || n == Newline || n == NewlineEnd
	}),
	WordBoundary:    contextMask(func(p, n CharKind) bool { return p.IsWord() != n.IsWord() }),
	NonWordBoundary: contextMask(func(p, n CharKind) bool { return p.IsWord() == n.IsWord() }),
}
