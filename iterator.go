package htrie

import "iter"

// frame is one entry of an explicit DFS stack: n is the node being
// visited and depth is n's distance from the trie's root (and hence
// the number of valid bytes at the front of the owning cursor's key
// buffer once n has been entered).
type frame[V any] struct {
	n     *node[V]
	depth int
}

// KeyCursor walks a Trie's stored keys in ascending byte order. It is
// a pull-style, resumable iterator: call Next until it returns false,
// reading Key/Value after each true return. A KeyCursor is invalidated
// by any structural change (a node created or destroyed) to the trie
// it was built from; Next then returns false and Err reports
// ErrStructuralChange. Overwriting an existing key's value does not
// invalidate a cursor.
type KeyCursor[V any] struct {
	buf        []byte
	keyOffset  int
	stack      []frame[V]
	cur        *node[V]
	curDepth   int
	generation *uint64
	wantGen    uint64
	started    bool
	err        error
}

// newCursorFromRoot builds a KeyCursor rooted at root, whose path
// prefix (already consumed bytes, e.g. a Suffixes prefix) is prefix.
// keyOffset is where Key() starts slicing buf from: 0 for a
// full-trie/Keys cursor, len(prefix) for a Suffixes cursor, so that
// Key() reports only the suffix bytes appended since root.
func newCursorFromRoot[V any](root *node[V], prefix []byte, keyOffset int, gen *uint64) *KeyCursor[V] {
	buf := make([]byte, len(prefix), len(prefix)+16)
	copy(buf, prefix)
	c := &KeyCursor[V]{
		buf:        buf,
		keyOffset:  keyOffset,
		generation: gen,
		wantGen:    *gen,
	}
	c.pushChildren(root, len(prefix))
	c.cur = root
	c.curDepth = len(prefix)
	return c
}

// pushChildren pushes n's children onto the stack, where nDepth is
// the depth of n itself (so each child is pushed at nDepth+1).
func (c *KeyCursor[V]) pushChildren(n *node[V], nDepth int) {
	// Children must be pushed in descending byte order so the stack
	// pops them back out in ascending order (the sibling chain itself
	// is kept ascending by node.go).
	var children []*node[V]
	for ch := n.child; ch != nil; ch = ch.sibling {
		children = append(children, ch)
	}
	for i := len(children) - 1; i >= 0; i-- {
		c.stack = append(c.stack, frame[V]{n: children[i], depth: nDepth + 1})
	}
}

// Next advances the cursor to the next stored key, returning false
// once exhausted or once the underlying trie has been structurally
// changed.
func (c *KeyCursor[V]) Next() bool {
	if c.err != nil {
		return false
	}
	if *c.generation != c.wantGen {
		c.err = ErrStructuralChange
		return false
	}
	if !c.started {
		c.started = true
		if c.cur != nil && c.cur.hasValue {
			return true
		}
	}
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		c.buf = append(c.buf[:top.depth-1], top.n.b)
		c.cur = top.n
		c.curDepth = top.depth
		c.pushChildren(top.n, top.depth)

		if *c.generation != c.wantGen {
			c.err = ErrStructuralChange
			return false
		}
		if top.n.hasValue {
			return true
		}
	}
	c.cur = nil
	return false
}

// Key returns the key at the cursor's current position, relative to
// wherever the cursor was rooted (the full stored key for Keys/Items,
// the suffix past the prefix for Suffixes). Valid only after a call
// to Next that returned true.
func (c *KeyCursor[V]) Key() string {
	return string(c.buf[c.keyOffset:c.curDepth])
}

// Value returns the value at the cursor's current position. Valid
// only after a call to Next that returned true.
func (c *KeyCursor[V]) Value() V {
	return c.cur.value
}

// Err reports the error, if any, that stopped iteration early.
func (c *KeyCursor[V]) Err() error {
	return c.err
}

// Keys returns a KeyCursor over every stored key in ascending order.
func (t *Trie[K, V]) Keys() *KeyCursor[V] {
	return newCursorFromRoot(&t.root, nil, 0, &t.generation)
}

// Values returns a KeyCursor over every stored value, in the same
// ascending key order as Keys. It is the same cursor as Keys/Items;
// call Value (Key is still available, unlike a dedicated value-only
// iterator, since the cursor is shared).
func (t *Trie[K, V]) Values() *KeyCursor[V] {
	return t.Keys()
}

// All returns a range-over-func iterator pairing each stored key with
// its value, in ascending key order. Range stops early (without
// reporting it) if the trie is structurally changed mid-iteration;
// use Keys/Items directly when the error needs to be observed.
func (t *Trie[K, V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		c := t.Keys()
		for c.Next() {
			if !yield(c.Key(), c.Value()) {
				return
			}
		}
	}
}

// Items returns a KeyCursor over every stored (key, value) pair, in
// ascending key order. It is the same cursor as Keys; the name
// matches this package's key/value-pair vocabulary.
func (t *Trie[K, V]) Items() *KeyCursor[V] {
	return t.Keys()
}

// Suffixes returns a KeyCursor over every stored key that has prefix
// as a prefix, with Key reporting only the suffix past prefix (e.g.
// Suffixes("prod") over a trie holding "production" yields a cursor
// whose Key is "uction", not "production"). It reports ErrNotFound if
// prefix is not a valid path in the trie.
func (t *Trie[K, V]) Suffixes(prefix K) (*KeyCursor[V], error) {
	pb := []byte(prefix)
	n, ok := t.lookupBytes(pb)
	if !ok {
		return nil, ErrNotFound
	}
	return newCursorFromRoot(n, pb, len(pb), &t.generation), nil
}
