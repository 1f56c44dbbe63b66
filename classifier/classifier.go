// Package classifier maps code points to partition blocks.
//
// A classifier is built once from a partition of the code point domain and
// is immutable afterwards, so lookups need no synchronization. Codes up to a
// configurable limit are resolved through a dense array; the remaining range
// is resolved by a balanced binary tree of split points.
package classifier

import (
	"github.com/coregx/symregex/charset"
)

// DefaultPrecomputeLimit is the largest code resolved through the dense
// array by default, which covers ASCII and Latin-1.
const DefaultPrecomputeLimit rune = 0xFF

// MaxCode is the largest code point a classifier resolves.
const MaxCode = charset.MaxRune

// DecisionTree maps every code point to the index of the partition block
// containing it.
type DecisionTree struct {
	t tree[int]
}

// NewDecisionTree builds a classifier for partition, which must consist of
// pairwise disjoint sets covering [0, MaxCode]. Codes 0..limit are stored
// densely; limit <= 0 disables the array and limit >= MaxCode disables the
// tree.
func NewDecisionTree(partition []charset.Set, limit rune) *DecisionTree {
	values := make([]int, len(partition))
	for i := range values {
		values[i] = i
	}
	return &DecisionTree{t: build(partition, values, limit)}
}

// Find returns the block index of c.
func (d *DecisionTree) Find(c rune) int { return d.t.find(c) }

// NumNodes returns the number of tree nodes.
func (d *DecisionTree) NumNodes() int { return d.t.root.count() }

// PrecomputedLen returns the length of the dense array.
func (d *DecisionTree) PrecomputedLen() int { return len(d.t.precomputed) }

// BooleanDecisionTree answers membership in a single set.
type BooleanDecisionTree struct {
	t tree[bool]
}

// NewBooleanDecisionTree builds a membership classifier for set.
func NewBooleanDecisionTree(set charset.Set, limit rune) *BooleanDecisionTree {
	blocks := []charset.Set{set, set.Complement()}
	return &BooleanDecisionTree{t: build(blocks, []bool{true, false}, limit)}
}

// Contains reports whether c is in the set.
func (b *BooleanDecisionTree) Contains(c rune) bool { return b.t.find(c) }

// NumNodes returns the number of tree nodes.
func (b *BooleanDecisionTree) NumNodes() int { return b.t.root.count() }

type tree[V any] struct {
	precomputed []V
	root        *node[V]
}

// node is either a leaf (left == nil) or a split: codes <= split go left.
type node[V any] struct {
	split       rune
	left, right *node[V]
	value       V
}

func build[V any](blocks []charset.Set, values []V, limit rune) tree[V] {
	var t tree[V]
	if limit > 0 {
		n := min(limit, MaxCode) + 1
		t.precomputed = make([]V, n)
		for c := rune(0); c < n; c++ {
			for i, b := range blocks {
				if b.Contains(c) {
					t.precomputed[c] = values[i]
					break
				}
			}
		}
	}
	lo := rune(len(t.precomputed))
	if lo > MaxCode {
		return t
	}
	active := make([]int, 0, len(blocks))
	for i, b := range blocks {
		if b.IntersectsRange(lo, MaxCode) {
			active = append(active, i)
		}
	}
	t.root = grow(blocks, values, lo, MaxCode, active)
	return t
}

// grow builds the subtree for [lo, hi], where active lists the blocks that
// intersect the interval.
func grow[V any](blocks []charset.Set, values []V, lo, hi rune, active []int) *node[V] {
	switch len(active) {
	case 0:
		return &node[V]{}
	case 1:
		return &node[V]{value: values[active[0]]}
	}
	mid := lo + (hi-lo)/2
	return &node[V]{
		split: mid,
		left:  grow(blocks, values, lo, mid, restrict(blocks, active, lo, mid)),
		right: grow(blocks, values, mid+1, hi, restrict(blocks, active, mid+1, hi)),
	}
}

func restrict(blocks []charset.Set, active []int, lo, hi rune) []int {
	out := make([]int, 0, len(active))
	for _, i := range active {
		if blocks[i].IntersectsRange(lo, hi) {
			out = append(out, i)
		}
	}
	return out
}

func (t *tree[V]) find(c rune) V {
	if c >= 0 && int(c) < len(t.precomputed) {
		return t.precomputed[c]
	}
	n := t.root
	if n == nil {
		var zero V
		return zero
	}
	for n.left != nil {
		if c <= n.split {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func (n *node[V]) count() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.count() + n.right.count()
}
