package htrie

// nframe is one entry of NeighborCursor's explicit DFS stack: besides
// the node and its depth it carries the running Hamming distance
// accumulated against the query along the path taken to reach it, so
// a branch can be pruned the instant it exceeds the bound without
// having to recompute the distance from scratch.
type nframe[V any] struct {
	n     *node[V]
	depth int
	hd    int
}

// NeighborCursor enumerates every stored key of the same length as a
// query key whose Hamming distance to the query is between 1 and
// maxhd inclusive (the query itself, at distance 0, is never
// produced). Like KeyCursor it is pull-style and resumable, and is
// invalidated by any structural change to its trie.
type NeighborCursor[V any] struct {
	query      []byte
	maxhd      int
	buf        []byte
	stack      []nframe[V]
	cur        *node[V]
	curDepth   int
	curHD      int
	generation *uint64
	wantGen    uint64
	err        error
}

// Neighbors returns a NeighborCursor for query against maxhd, or
// ErrBadArgument if maxhd < 1 or query itself is not a stored key.
func (t *Trie[K, V]) Neighbors(query K, maxhd int) (*NeighborCursor[V], error) {
	if maxhd < 1 {
		return nil, ErrBadArgument
	}
	qb := []byte(query)
	n, ok := t.lookupBytes(qb)
	if !ok || !n.hasValue {
		return nil, ErrBadArgument
	}
	c := &NeighborCursor[V]{
		query:      qb,
		maxhd:      maxhd,
		buf:        make([]byte, 0, len(qb)),
		generation: &t.generation,
		wantGen:    t.generation,
	}
	c.pushChildren(&t.root, 0, 0)
	return c, nil
}

func (c *NeighborCursor[V]) pushChildren(n *node[V], depth, hd int) {
	if depth >= len(c.query) {
		return
	}
	var children []*node[V]
	for ch := n.child; ch != nil; ch = ch.sibling {
		children = append(children, ch)
	}
	for i := len(children) - 1; i >= 0; i-- {
		ch := children[i]
		childHD := hd
		if ch.b != c.query[depth] {
			childHD++
		}
		if childHD > c.maxhd {
			continue
		}
		c.stack = append(c.stack, nframe[V]{n: ch, depth: depth + 1, hd: childHD})
	}
}

// Next advances the cursor to the next neighbor.
func (c *NeighborCursor[V]) Next() bool {
	if c.err != nil {
		return false
	}
	if *c.generation != c.wantGen {
		c.err = ErrStructuralChange
		return false
	}
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		c.buf = append(c.buf[:top.depth-1], top.n.b)
		c.cur = top.n
		c.curDepth = top.depth
		c.curHD = top.hd
		c.pushChildren(top.n, top.depth, top.hd)

		if *c.generation != c.wantGen {
			c.err = ErrStructuralChange
			return false
		}
		if top.depth == len(c.query) && top.n.hasValue && top.hd >= 1 {
			return true
		}
	}
	c.cur = nil
	return false
}

// Key returns the neighbor key at the cursor's current position.
func (c *NeighborCursor[V]) Key() string {
	return string(c.buf[:c.curDepth])
}

// Value returns the neighbor's value at the cursor's current
// position.
func (c *NeighborCursor[V]) Value() V {
	return c.cur.value
}

// Distance returns the Hamming distance between the query and the
// neighbor at the cursor's current position.
func (c *NeighborCursor[V]) Distance() int {
	return c.curHD
}

// Err reports the error, if any, that stopped iteration early.
func (c *NeighborCursor[V]) Err() error {
	return c.err
}
