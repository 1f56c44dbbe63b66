package sre

import "fmt"

// NodeKind is the operator of a Node.
type NodeKind uint8

const (
	Nothing NodeKind = iota
	Epsilon
	Singleton
	Concat
	Or
	Loop

	// Zero-width anchors.
	BeginText       // \A
	EndText         // \z
	EndTextZ        // \Z: end of text or before a final line feed
	BeginTextZ      // reverse of \Z
	BeginLine       // (?m)^
	EndLine         // (?m)$
	WordBoundary    // \b
	NonWordBoundary // \B

	// Watchdog is a zero-width marker carrying the fixed length of the
	// pattern it follows.
	Watchdog
)

var kindNames = [...]string{
	Nothing:         "Nothing",
	Epsilon:         "Epsilon",
	Singleton:       "Singleton",
	Concat:          "Concat",
	Or:              "Or",
	Loop:            "Loop",
	BeginText:       "BeginText",
	EndText:         "EndText",
	EndTextZ:        "EndTextZ",
	BeginTextZ:      "BeginTextZ",
	BeginLine:       "BeginLine",
	EndLine:         "EndLine",
	WordBoundary:    "WordBoundary",
	NonWordBoundary: "NonWordBoundary",
	Watchdog:        "Watchdog",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// IsAnchor reports whether k is a zero-width context assertion.
func (k NodeKind) IsAnchor() bool { return k >= BeginText && k <= NonWordBoundary }

type nodeFlags uint8

const (
	hasAnchor nodeFlags = 1 << iota
	hasLazy
	hasWatchdog
)

// Node is an interned symbolic regex node over predicates of type T.
//
// Nodes are created only by a Builder, which guarantees that structurally
// equal nodes are the same pointer, so nodes compare by identity. A Node
// is immutable once built.
type Node[T comparable] struct {
	id    uint32
	kind  NodeKind
	pred  T
	left  *Node[T] // concat head, loop body
	right *Node[T] // concat tail
	alts  []*Node[T]
	lo    int
	hi    int // -1 is unbounded; watchdog length lives in lo
	lazy  bool

	nullable uint64
	flags    nodeFlags
}

// ID returns the node's dense id within its builder.
func (n *Node[T]) ID() uint32 { return n.id }

// Kind returns the operator of n.
func (n *Node[T]) Kind() NodeKind { return n.kind }

// Pred returns the predicate of a Singleton.
func (n *Node[T]) Pred() T { return n.pred }

// Left returns the head of a Concat or the body of a Loop.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the tail of a Concat.
func (n *Node[T]) Right() *Node[T] { return n.right }

// Alts returns the alternatives of an Or, sorted by id.
func (n *Node[T]) Alts() []*Node[T] { return n.alts }

// Bounds returns the repetition bounds of a Loop; hi is -1 when unbounded.
func (n *Node[T]) Bounds() (lo, hi int) { return n.lo, n.hi }

// IsLazy reports whether n is a non-greedy Loop.
func (n *Node[T]) IsLazy() bool { return n.lazy }

// IsNullableFor reports whether n accepts the empty string at a position
// with context ctx.
func (n *Node[T]) IsNullableFor(ctx Context) bool { return n.nullable&ctx.bit() != 0 }

// NullableMask returns the set of contexts in which n is nullable, one bit
// per (prev, next) pair.
func (n *Node[T]) NullableMask() uint64 { return n.nullable }

// ContainsAnchors reports whether an anchor occurs in n.
func (n *Node[T]) ContainsAnchors() bool { return n.flags&hasAnchor != 0 }

// ContainsLazy reports whether a non-greedy loop occurs in n.
func (n *Node[T]) ContainsLazy() bool { return n.flags&hasLazy != 0 }

// ContainsWatchdog reports whether a watchdog occurs in n.
func (n *Node[T]) ContainsWatchdog() bool { return n.flags&hasWatchdog != 0 }

// WatchdogLength returns the length carried by a watchdog through which n
// is nullable in ctx, or -1 if there is none.
func (n *Node[T]) WatchdogLength(ctx Context) int {
	if n.flags&hasWatchdog == 0 || !n.IsNullableFor(ctx) {
		return -1
	}
	switch n.kind {
	case Watchdog:
		return n.lo
	case Concat:
		if l := n.right.WatchdogLength(ctx); l >= 0 {
			return l
		}
		return n.left.WatchdogLength(ctx)
	case Or:
		for _, a := range n.alts {
			if l := a.WatchdogLength(ctx); l >= 0 {
				return l
			}
		}
	}
	return -1
}

// FixedLength returns the number of characters every match of n has, or -1
// if matches can differ in length.
func (n *Node[T]) FixedLength() int {
	switch n.kind {
	case Singleton:
		return 1
	case Epsilon, Watchdog:
		return 0
	case Concat:
		l, r := n.left.FixedLength(), n.right.FixedLength()
		if l < 0 || r < 0 {
			return -1
		}
		return l + r
	case Or:
		want := n.alts[0].FixedLength()
		for _, a := range n.alts[1:] {
			if a.FixedLength() != want {
				return -1
			}
		}
		return want
	case Loop:
		body := n.left.FixedLength()
		switch {
		case body == 0:
			return 0
		case body < 0 || n.lo != n.hi:
			return -1
		}
		return body * n.lo
	}
	if n.kind.IsAnchor() {
		return 0
	}
	return -1
}
