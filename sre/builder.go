package sre

import (
	"encoding/binary"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/internal/conv"
)

// Builder creates and interns nodes over an algebra and memoizes the
// operations on them. All methods are safe for concurrent use; a single
// mutex serializes node creation.
type Builder[T comparable] struct {
	alg algebra.Algebra[T]

	mu      sync.Mutex
	nodes   []*Node[T]
	index   map[nodeKey[T]]*Node[T]
	orIndex map[uint64][]*Node[T] // xxhash of the alternative ids
	derivs  map[derivKey[T]]*Node[T]
	revs    map[uint32]*Node[T]
	hashBuf []byte

	nothing *Node[T]
	epsilon *Node[T]
	dotStar *Node[T]
}

const noNode = ^uint32(0)

type nodeKey[T comparable] struct {
	kind        NodeKind
	pred        T
	left, right uint32
	lo, hi      int
	lazy        bool
}

type derivKey[T comparable] struct {
	node uint32
	atom T
	ctx  Context
}

// NewBuilder returns a builder over alg.
func NewBuilder[T comparable](alg algebra.Algebra[T]) *Builder[T] {
	b := &Builder[T]{
		alg:     alg,
		index:   make(map[nodeKey[T]]*Node[T]),
		orIndex: make(map[uint64][]*Node[T]),
		derivs:  make(map[derivKey[T]]*Node[T]),
		revs:    make(map[uint32]*Node[T]),
	}
	b.nothing = b.intern(nodeKey[T]{kind: Nothing}, func(n *Node[T]) {})
	b.epsilon = b.intern(nodeKey[T]{kind: Epsilon}, func(n *Node[T]) { n.nullable = AllContexts })
	b.dotStar = b.mkLoop(b.mkSingleton(alg.True()), 0, -1, false)
	return b
}

// Algebra returns the predicate algebra of b.
func (b *Builder[T]) Algebra() algebra.Algebra[T] { return b.alg }

// NumNodes returns the number of distinct nodes created so far.
func (b *Builder[T]) NumNodes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}

// Nothing returns the node matching no string.
func (b *Builder[T]) Nothing() *Node[T] { return b.nothing }

// Epsilon returns the node matching only the empty string.
func (b *Builder[T]) Epsilon() *Node[T] { return b.epsilon }

// DotStar returns the node matching any string.
func (b *Builder[T]) DotStar() *Node[T] { return b.dotStar }

// Singleton returns the node matching one character satisfying pred.
func (b *Builder[T]) Singleton(pred T) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mkSingleton(pred)
}

// Concat returns the concatenation of nodes, in order.
func (b *Builder[T]) Concat(nodes ...*Node[T]) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.epsilon
	for i := len(nodes) - 1; i >= 0; i-- {
		out = b.mkConcat(nodes[i], out)
	}
	return out
}

// Or returns the alternation of nodes.
func (b *Builder[T]) Or(nodes ...*Node[T]) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mkOr(nodes)
}

// Loop returns body repeated between lo and hi times; hi < 0 is unbounded.
func (b *Builder[T]) Loop(body *Node[T], lo, hi int, lazy bool) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mkLoop(body, lo, hi, lazy)
}

// Anchor returns the zero-width assertion of the given kind.
func (b *Builder[T]) Anchor(kind NodeKind) *Node[T] {
	if !kind.IsAnchor() {
		panic("sre: Anchor called with " + kind.String())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mkAnchor(kind)
}

// Watchdog returns a zero-width marker carrying length.
func (b *Builder[T]) Watchdog(length int) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intern(nodeKey[T]{kind: Watchdog, left: noNode, right: noNode, lo: length}, func(n *Node[T]) {
		n.lo = length
		n.nullable = AllContexts
		n.flags = hasWatchdog
	})
}

// DotStarConcat returns .*·n, the node used to find the earliest end of a
// match of n anywhere in the input.
func (b *Builder[T]) DotStarConcat(n *Node[T]) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mkConcat(b.dotStar, n)
}

// intern returns the node for key, creating it with init on first use.
// b.mu must be held.
func (b *Builder[T]) intern(key nodeKey[T], init func(n *Node[T])) *Node[T] {
	if n, ok := b.index[key]; ok {
		return n
	}
	n := &Node[T]{
		id:   conv.IntToUint32(len(b.nodes)),
		kind: key.kind,
		pred: key.pred,
		lo:   key.lo,
		hi:   key.hi,
		lazy: key.lazy,
	}
	init(n)
	b.nodes = append(b.nodes, n)
	b.index[key] = n
	return n
}

func (b *Builder[T]) mkSingleton(pred T) *Node[T] {
	if !b.alg.IsSatisfiable(pred) {
		return b.nothing
	}
	return b.intern(nodeKey[T]{kind: Singleton, pred: pred, left: noNode, right: noNode}, func(n *Node[T]) {})
}

func (b *Builder[T]) mkAnchor(kind NodeKind) *Node[T] {
	return b.intern(nodeKey[T]{kind: kind, left: noNode, right: noNode}, func(n *Node[T]) {
		n.nullable = anchorMasks[kind]
		n.flags = hasAnchor
	})
}

// mkConcat keeps concatenations right-associated.
func (b *Builder[T]) mkConcat(l, r *Node[T]) *Node[T] {
	switch {
	case l.kind == Nothing || r.kind == Nothing:
		return b.nothing
	case l.kind == Epsilon:
		return r
	case r.kind == Epsilon:
		return l
	case l.kind == Concat:
		return b.mkConcat(l.left, b.mkConcat(l.right, r))
	}
	return b.intern(nodeKey[T]{kind: Concat, left: l.id, right: r.id}, func(n *Node[T]) {
		n.left, n.right = l, r
		n.nullable = l.nullable & r.nullable
		n.flags = l.flags | r.flags
	})
}

func (b *Builder[T]) mkLoop(body *Node[T], lo, hi int, lazy bool) *Node[T] {
	switch {
	case hi == 0 || body.kind == Epsilon:
		return b.epsilon
	case hi > 0 && hi < lo:
		return b.nothing
	case body.kind == Nothing:
		if lo == 0 {
			return b.epsilon
		}
		return b.nothing
	case lo == 1 && hi == 1:
		return body
	}
	if lo == hi {
		lazy = false
	}
	return b.intern(nodeKey[T]{kind: Loop, left: body.id, right: noNode, lo: lo, hi: hi, lazy: lazy}, func(n *Node[T]) {
		n.left = body
		n.nullable = body.nullable
		if lo == 0 {
			n.nullable = AllContexts
		}
		n.flags = body.flags
		if lazy {
			n.flags |= hasLazy
		}
	})
}

// mkOr flattens nested alternations, merges singletons into one predicate,
// drops Nothing and orders the rest by id, so that alternation is
// associative, commutative and idempotent up to identity.
func (b *Builder[T]) mkOr(nodes []*Node[T]) *Node[T] {
	alts := make([]*Node[T], 0, len(nodes))
	pred, hasPred := b.alg.False(), false
	add := func(n *Node[T]) {
		switch n.kind {
		case Nothing:
		case Singleton:
			pred, hasPred = b.alg.Or(pred, n.pred), true
		default:
			alts = append(alts, n)
		}
	}
	for _, n := range nodes {
		if n.kind == Or {
			for _, a := range n.alts {
				add(a)
			}
			continue
		}
		add(n)
	}
	if hasPred {
		alts = append(alts, b.mkSingleton(pred))
	}
	slices.SortFunc(alts, func(x, y *Node[T]) int {
		switch {
		case x.id < y.id:
			return -1
		case x.id > y.id:
			return 1
		}
		return 0
	})
	alts = slices.Compact(alts)
	switch len(alts) {
	case 0:
		return b.nothing
	case 1:
		return alts[0]
	}

	b.hashBuf = b.hashBuf[:0]
	for _, a := range alts {
		b.hashBuf = binary.LittleEndian.AppendUint32(b.hashBuf, a.id)
	}
	h := xxhash.Sum64(b.hashBuf)
	for _, cand := range b.orIndex[h] {
		if slices.Equal(cand.alts, alts) {
			return cand
		}
	}
	n := &Node[T]{id: conv.IntToUint32(len(b.nodes)), kind: Or, alts: alts}
	for _, a := range alts {
		n.nullable |= a.nullable
		n.flags |= a.flags
	}
	b.nodes = append(b.nodes, n)
	b.orIndex[h] = append(b.orIndex[h], n)
	return n
}
