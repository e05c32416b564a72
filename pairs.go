package htrie

// pairFrame is one entry of PairsCursor's explicit resumption stack.
// A single struct shape covers both phases of the dual traversal:
//
//   - diag frame (isCross == false): both cursors are still at the
//     same shared node n; a/b are the sibling-chain positions of the
//     outer/inner loop over n's children that the frame last reached.
//   - cross frame (isCross == true): the cursors have split onto two
//     distinct nodes aNode and bNode; ca/cb are the loop positions
//     over aNode's and bNode's children (a full cross product, no
//     sibling-order constraint, since the two subtrees can no longer
//     overlap).
//
// Every frame fully describes where its loop left off, so the stack's
// depth tracks recursion depth, never the number of pairs visited.
type pairFrame[V any] struct {
	isCross bool
	depth   int
	hd      int

	n    *node[V]
	a, b *node[V]

	aNode, bNode *node[V]
	ca, cb       *node[V]
	suffixLen    int
}

// PairsCursor enumerates unordered pairs of stored keys of a fixed
// length whose Hamming distance falls in [1, maxhd]. It is pull-style
// and resumable like KeyCursor and NeighborCursor, but unlike them it
// does not abort on structural change: the contract only forbids a
// second pairs enumerator from being advanced on the same trie while
// this one is dirty (has been advanced at least once).
type PairsCursor[K byteSlice, V any] struct {
	t         *Trie[K, V]
	keylen    int
	maxhd     int
	commonBuf []byte
	aBuf      []byte
	bBuf      []byte
	stack     []pairFrame[V]

	dirty  bool
	closed bool
	err    error

	keyA, keyB string
	valA, valB V
	curHD      int
}

// Pairs returns a PairsCursor enumerating stored keylen-length key
// pairs within Hamming distance maxhd, or ErrBadArgument if keylen < 0
// or maxhd < 1.
func (t *Trie[K, V]) Pairs(keylen, maxhd int) (*PairsCursor[K, V], error) {
	if keylen < 0 || maxhd < 1 {
		return nil, ErrBadArgument
	}
	c := &PairsCursor[K, V]{
		t:      t,
		keylen: keylen,
		maxhd:  maxhd,
	}
	c.stack = append(c.stack, pairFrame[V]{n: &t.root, depth: 0, hd: 0})
	return c, nil
}

func (c *PairsCursor[K, V]) claim() error {
	if c.dirty {
		return nil
	}
	if c.t.activePairs != nil && c.t.activePairs != any(c) {
		return ErrConcurrentUse
	}
	c.dirty = true
	c.t.activePairs = c
	return nil
}

func (c *PairsCursor[K, V]) release() {
	if owner, ok := c.t.activePairs.(*PairsCursor[K, V]); ok && owner == c {
		c.t.activePairs = nil
	}
}

// Close drops the cursor, restoring every node mark it touched to
// its rest state. It is idempotent and safe to call after exhaustion.
func (c *PairsCursor[K, V]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, f := range c.stack {
		if f.isCross {
			f.aNode.mark = 0
			f.bNode.mark = 0
		} else if f.n != nil {
			f.n.mark = 0
		}
	}
	c.stack = nil
	c.release()
}

// Next advances to the next pair. It returns false once exhausted
// (Err returns nil) or on error (ErrConcurrentUse if another
// enumerator on the same trie is already dirty).
func (c *PairsCursor[K, V]) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if err := c.claim(); err != nil {
		c.err = err
		return false
	}

	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		if !top.isCross {
			if found := c.stepDiag(top); found {
				return true
			}
			continue
		}
		if found := c.stepCross(top); found {
			return true
		}
	}
	c.Close()
	return false
}

// stepDiag processes one (a, b) combination at a shared node and
// reports whether it produced an emission (diag frames never emit
// directly; they only ever push follow-up frames). The bool return
// exists to share Next's loop shape with stepCross.
func (c *PairsCursor[K, V]) stepDiag(f pairFrame[V]) bool {
	if f.depth > 0 {
		c.commonBuf = append(c.commonBuf[:f.depth-1], f.n.b)
	}
	f.n.mark = 1

	if f.depth == c.keylen {
		f.n.mark = 0
		return false
	}

	a, b := f.a, f.b
	if a == nil {
		a = f.n.child
		b = a
	}
	if a == nil {
		f.n.mark = 0
		return false
	}
	if b == nil {
		a = a.sibling
		if a == nil {
			f.n.mark = 0
			return false
		}
		b = a
	}
	nextB := b.sibling

	var child pairFrame[V]
	if b == a {
		child = pairFrame[V]{n: a, depth: f.depth + 1, hd: f.hd}
	} else {
		childHD := f.hd + 1
		child = pairFrame[V]{isCross: true, aNode: a, bNode: b, depth: f.depth + 1, hd: childHD, suffixLen: 1}
	}

	c.stack = append(c.stack, pairFrame[V]{n: f.n, depth: f.depth, hd: f.hd, a: a, b: nextB})
	if !child.isCross || child.hd <= c.maxhd {
		c.stack = append(c.stack, child)
	}
	return false
}

// stepCross processes one (ca, cb) combination of a split pair of
// subtrees, emitting if both sides have reached a stored key of the
// target length. Returns true when an emission was produced.
func (c *PairsCursor[K, V]) stepCross(f pairFrame[V]) bool {
	c.aBuf = append(c.aBuf[:f.suffixLen-1], f.aNode.b)
	c.bBuf = append(c.bBuf[:f.suffixLen-1], f.bNode.b)
	f.aNode.mark = 1
	f.bNode.mark = 1

	if f.depth == c.keylen {
		emit := f.aNode.hasValue && f.bNode.hasValue && f.hd >= 1 && f.hd <= c.maxhd
		f.aNode.mark = 0
		f.bNode.mark = 0
		if !emit {
			return false
		}
		splitDepth := f.depth - f.suffixLen
		c.keyA = string(c.commonBuf[:splitDepth]) + string(c.aBuf[:f.suffixLen])
		c.keyB = string(c.commonBuf[:splitDepth]) + string(c.bBuf[:f.suffixLen])
		c.valA = f.aNode.value
		c.valB = f.bNode.value
		c.curHD = f.hd
		return true
	}

	if f.aNode.child == nil || f.bNode.child == nil {
		f.aNode.mark = 0
		f.bNode.mark = 0
		return false
	}

	ca, cb := f.ca, f.cb
	if ca == nil {
		ca = f.aNode.child
		cb = f.bNode.child
	}
	if cb == nil {
		ca = ca.sibling
		if ca == nil {
			f.aNode.mark = 0
			f.bNode.mark = 0
			return false
		}
		cb = f.bNode.child
	}
	nextCB := cb.sibling

	childHD := f.hd
	if ca.b != cb.b {
		childHD++
	}

	c.stack = append(c.stack, pairFrame[V]{
		isCross: true, aNode: f.aNode, bNode: f.bNode,
		depth: f.depth, hd: f.hd, suffixLen: f.suffixLen,
		ca: ca, cb: nextCB,
	})
	if childHD <= c.maxhd {
		c.stack = append(c.stack, pairFrame[V]{
			isCross: true, aNode: ca, bNode: cb,
			depth: f.depth + 1, hd: childHD, suffixLen: f.suffixLen + 1,
		})
	}
	return false
}

// Key1, Value1, Key2, Value2 report the current pair. Valid only
// after a call to Next that returned true.
func (c *PairsCursor[K, V]) Key1() string { return c.keyA }
func (c *PairsCursor[K, V]) Value1() V    { return c.valA }
func (c *PairsCursor[K, V]) Key2() string { return c.keyB }
func (c *PairsCursor[K, V]) Value2() V    { return c.valB }

// Distance returns the Hamming distance between the current pair.
func (c *PairsCursor[K, V]) Distance() int { return c.curHD }

// Err reports the error, if any, that stopped enumeration early.
func (c *PairsCursor[K, V]) Err() error { return c.err }
