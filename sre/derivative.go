package sre

// Derivative returns the node matching the suffixes w such that c·w matches
// n, for every character c satisfying the atom predicate, where ctx holds
// the kind of the character before c and the kind of c itself.
//
// atom must be a minterm of the builder's algebra: either it lies entirely
// inside a singleton's predicate or it is disjoint from it.
func (b *Builder[T]) Derivative(n *Node[T], atom T, ctx Context) *Node[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.derivative(n, atom, ctx)
}

func (b *Builder[T]) derivative(n *Node[T], atom T, ctx Context) *Node[T] {
	switch n.kind {
	case Nothing, Epsilon, Watchdog:
		return b.nothing
	case Singleton:
		if b.alg.IsSatisfiable(b.alg.And(n.pred, atom)) {
			return b.epsilon
		}
		return b.nothing
	}
	if n.kind.IsAnchor() {
		return b.nothing
	}

	// Without anchors the result does not depend on the context.
	key := derivKey[T]{node: n.id, atom: atom}
	if n.flags&hasAnchor != 0 {
		key.ctx = ctx
	}
	if d, ok := b.derivs[key]; ok {
		return d
	}

	var d *Node[T]
	switch n.kind {
	case Concat:
		d = b.mkConcat(b.derivative(n.left, atom, ctx), n.right)
		if n.left.IsNullableFor(ctx) {
			d = b.mkOr([]*Node[T]{d, b.derivative(n.right, atom, ctx)})
		}
	case Or:
		ds := make([]*Node[T], len(n.alts))
		for i, a := range n.alts {
			ds[i] = b.derivative(a, atom, ctx)
		}
		d = b.mkOr(ds)
	case Loop:
		hi := n.hi
		if hi > 0 {
			hi--
		}
		lo := max(n.lo-1, 0)
		d = b.mkConcat(b.derivative(n.left, atom, ctx), b.mkLoop(n.left, lo, hi, n.lazy))
		if n.lo > 0 && n.left.IsNullableFor(ctx) {
			d = b.mkOr([]*Node[T]{d, b.derivative(b.mkLoop(n.left, n.lo-1, hi, n.lazy), atom, ctx)})
		}
	default:
		d = b.nothing
	}
	b.derivs[key] = d
	return d
}
