// Package htrie implements an in-memory trie that maps byte-sequence
// keys to opaque values, and in addition to exact and prefix lookup
// supports approximate retrieval by Hamming distance: finding stored
// keys that are variants of a known key (Neighbors), and enumerating
// all pairs of stored same-length keys within a distance bound
// (Pairs).
package htrie

import "errors"

// ErrNotFound is returned when a key (or, for Pop/PopItem, the trie
// itself) has no matching entry.
var ErrNotFound = errors.New("htrie: not found")

// ErrBadArgument is returned for an out-of-range numeric parameter
// (maxhd < 1 for Neighbors/Pairs, or keylen < 0 for Pairs) and by
// Neighbors when the query is not a stored key.
var ErrBadArgument = errors.New("htrie: bad argument")

// ErrStructuralChange is returned by a key/value/item cursor when the
// trie was mutated (a node created or destroyed) since the cursor was
// created or last advanced. Overwriting an existing key's value does
// not trigger this.
var ErrStructuralChange = errors.New("htrie: structural change")

// ErrConcurrentUse is returned when advancing a pairs enumerator while
// another pairs enumerator on the same trie is already dirty (has
// been advanced at least once and not yet closed).
var ErrConcurrentUse = errors.New("htrie: concurrent pairs enumerator")
