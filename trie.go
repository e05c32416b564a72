package htrie

import "unsafe"

// Trie is an in-memory associative container keyed by byte sequences,
// with exact lookup, prefix/longest-prefix queries, key-ordered
// iteration, and Hamming-distance neighbor/pairs search. The zero
// value is an empty Trie ready to use; New returns a pointer to one.
//
// A Trie is single-threaded-cooperative: no method may be called
// concurrently with another on the same Trie from multiple
// goroutines. Wrap one in a Locker (see locker.go) for that.
type Trie[K byteSlice, V any] struct {
	root       node[V]
	arena      arena[V]
	size       int
	generation uint64

	// activePairs holds the *PairsCursor[K,V] currently claiming the
	// single-dirty-pairs-enumerator slot, or nil.
	activePairs any
}

// New creates an empty Trie.
func New[K byteSlice, V any]() *Trie[K, V] {
	return &Trie[K, V]{}
}

// FromSnapshot rebuilds a Trie from a key/value snapshot produced by
// Snapshot. Byte-level serialization of the map itself (and of V) is
// left to the caller.
func FromSnapshot[K byteSlice, V any](m map[string]V) *Trie[K, V] {
	t := New[K, V]()
	for k, v := range m {
		t.insertBytes([]byte(k), v)
	}
	return t
}

// Insert binds value to key, replacing any previous binding. Only the
// first insertion of a given key bumps Len/num_nodes-relevant
// structure; overwriting an existing key's value never changes
// generation.
func (t *Trie[K, V]) Insert(key K, value V) {
	t.insertBytes([]byte(key), value)
}

func (t *Trie[K, V]) insertBytes(key []byte, value V) {
	n := &t.root
	for _, b := range key {
		child, prev := findChild(n, b)
		if child == nil {
			child = insertChild(&t.arena, n, prev, b)
			t.generation++
		}
		n = child
	}
	if !n.hasValue {
		t.size++
		n.hasValue = true
	}
	n.value = value
}

func (t *Trie[K, V]) lookupBytes(key []byte) (*node[V], bool) {
	n := &t.root
	for _, b := range key {
		child, _ := findChild(n, b)
		if child == nil {
			return nil, false
		}
		n = child
	}
	return n, true
}

// Get returns the value bound to key, or ErrNotFound if key has no
// binding (including when no such path exists at all).
func (t *Trie[K, V]) Get(key K) (V, error) {
	n, ok := t.lookupBytes([]byte(key))
	if !ok || !n.hasValue {
		var zero V
		return zero, ErrNotFound
	}
	return n.value, nil
}

// GetOr returns the value bound to key, or dflt if key is absent.
func (t *Trie[K, V]) GetOr(key K, dflt V) V {
	v, err := t.Get(key)
	if err != nil {
		return dflt
	}
	return v
}

// HasValue reports whether key terminates a stored key (has_value).
func (t *Trie[K, V]) HasValue(key K) bool {
	n, ok := t.lookupBytes([]byte(key))
	return ok && n.hasValue
}

// HasNode reports whether the path for key exists at all, with or
// without a bound value at its end: always true for the empty key,
// and otherwise true exactly when key is a prefix (possibly improper)
// of some stored key.
func (t *Trie[K, V]) HasNode(key K) bool {
	_, ok := t.lookupBytes([]byte(key))
	return ok
}

// Delete removes key's binding, pruning any ancestor nodes left with
// no children and no value. Returns ErrNotFound if key has no
// binding.
func (t *Trie[K, V]) Delete(key K) error {
	return t.deleteBytes([]byte(key))
}

type deleteStep[V any] struct {
	parent, prev, child *node[V]
}

func (t *Trie[K, V]) deleteBytes(key []byte) error {
	n := &t.root
	path := make([]deleteStep[V], 0, len(key))
	for _, b := range key {
		child, prev := findChild(n, b)
		if child == nil {
			return ErrNotFound
		}
		path = append(path, deleteStep[V]{parent: n, prev: prev, child: child})
		n = child
	}
	if !n.hasValue {
		return ErrNotFound
	}
	var zero V
	n.hasValue = false
	n.value = zero
	t.size--

	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		if s.child.hasValue || s.child.child != nil {
			break
		}
		unlinkChild(s.parent, s.prev, s.child)
		t.arena.release(s.child)
		t.generation++
	}
	return nil
}

// LongestPrefix returns the longest stored key that is a prefix of
// key, along with its value, and true if one exists.
func (t *Trie[K, V]) LongestPrefix(key K) (string, V, bool) {
	kb := []byte(key)
	n := &t.root
	bestDepth := -1
	var bestValue V
	if n.hasValue {
		bestDepth = 0
		bestValue = n.value
	}
	for i, b := range kb {
		child, _ := findChild(n, b)
		if child == nil {
			break
		}
		n = child
		if n.hasValue {
			bestDepth = i + 1
			bestValue = n.value
		}
	}
	if bestDepth < 0 {
		var zero V
		return "", zero, false
	}
	return string(kb[:bestDepth]), bestValue, true
}

// SetDefault returns key's existing value if present; otherwise it
// inserts (key, dflt) and returns dflt. Only the insertion case can
// bump generation, and only when it creates new nodes.
func (t *Trie[K, V]) SetDefault(key K, dflt V) V {
	if v, err := t.Get(key); err == nil {
		return v
	}
	t.Insert(key, dflt)
	return dflt
}

// Pop removes and returns key's value, or ErrNotFound if absent.
func (t *Trie[K, V]) Pop(key K) (V, error) {
	v, err := t.Get(key)
	if err != nil {
		return v, err
	}
	_ = t.Delete(key)
	return v, nil
}

// PopOr removes and returns key's value, or dflt if key is absent.
func (t *Trie[K, V]) PopOr(key K, dflt V) V {
	v, err := t.Pop(key)
	if err != nil {
		return dflt
	}
	return v
}

// PopItem removes and returns one arbitrary (key, value) pair, or
// ErrNotFound if the trie is empty. The policy is deterministic:
// lexicographically-first stored key (leftmost DFS path).
func (t *Trie[K, V]) PopItem() (string, V, error) {
	if t.size == 0 {
		var zero V
		return "", zero, ErrNotFound
	}
	var path []byte
	n := &t.root
	for !n.hasValue {
		path = append(path, n.child.b)
		n = n.child
	}
	key := append([]byte(nil), path...)
	value := n.value
	_ = t.deleteBytes(key)
	return string(key), value, nil
}

// Len returns the number of stored keys.
func (t *Trie[K, V]) Len() int { return t.size }

// NumNodes returns the total number of non-root nodes.
func (t *Trie[K, V]) NumNodes() int { return t.arena.live }

// Sizeof returns an approximation of the trie's memory footprint:
// the Trie struct itself (which embeds the root node) plus one
// node-sized allocation per non-root node. It is meant to track
// relative growth/shrinkage, not to match any other implementation's
// byte count exactly.
func (t *Trie[K, V]) Sizeof() int {
	return int(unsafe.Sizeof(*t)) + t.arena.bytes()
}

// Snapshot returns a shallow copy of every stored (key, value) pair.
// Values are not deep-copied; mutating a returned reference-typed
// value is visible through the trie too.
func (t *Trie[K, V]) Snapshot() map[string]V {
	m := make(map[string]V, t.size)
	c := t.Items()
	for c.Next() {
		m[c.Key()] = c.Value()
	}
	return m
}
