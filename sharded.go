package htrie

import (
	"math"
	"runtime"
)

// Mapper maps keys to shards. A good mapper maps them uniformly.
type Mapper[K byteSlice] interface {
	Map(key K, numShards int) int
}

// StringMapper is a simple byte-XOR mapper. It works best with a
// number of shards that is a power of two, and works up to 256
// shards.
type StringMapper struct{}

// Map returns key's shard number.
func (StringMapper) Map(key string, numShards int) int {
	var s byte
	for i := 0; i < len(key); i++ {
		s ^= key[i]
	}
	return int(s) % numShards
}

// Sharded wraps N independent tries and routes each exact-match
// operation to one of them by key. It does no locking of its own:
// each shard is a plain Trie, so calls that reach the same shard from
// several goroutines are not synchronized. It only exposes exact-match
// operations (Insert/Get/Delete): prefix, longest-prefix, iteration,
// neighbor, and pairs queries have no well-defined single-trie
// semantics once keys are scattered across shards by a hash of the
// whole key, so they are intentionally not forwarded.
type Sharded[K byteSlice, V any] struct {
	N      int
	shards []*Trie[K, V]
	mapper Mapper[K]
}

// NewSharded creates a Sharded with numShards independent, empty
// tries (or a CPU-derived default if numShards <= 0), routed by
// keyMapper.
func NewSharded[K byteSlice, V any](numShards int, keyMapper Mapper[K]) *Sharded[K, V] {
	if numShards <= 0 {
		numShards = defaultShardNumber()
	}
	s := &Sharded[K, V]{N: numShards, mapper: keyMapper}
	for i := 0; i < numShards; i++ {
		s.shards = append(s.shards, New[K, V]())
	}
	return s
}

func (s *Sharded[K, V]) shardFor(key K) *Trie[K, V] {
	return s.shards[s.mapper.Map(key, s.N)]
}

// Insert binds value to key in key's shard.
func (s *Sharded[K, V]) Insert(key K, value V) {
	s.shardFor(key).Insert(key, value)
}

// Get returns the value bound to key.
func (s *Sharded[K, V]) Get(key K) (V, error) {
	return s.shardFor(key).Get(key)
}

// Delete removes key's binding.
func (s *Sharded[K, V]) Delete(key K) error {
	return s.shardFor(key).Delete(key)
}

// HasValue reports whether key terminates a stored key in its shard.
func (s *Sharded[K, V]) HasValue(key K) bool {
	return s.shardFor(key).HasValue(key)
}

// Len returns the total number of stored keys across all shards.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, t := range s.shards {
		total += t.Len()
	}
	return total
}

// defaultShardNumber returns the nearest power of two >= the number
// of available CPUs.
func defaultShardNumber() int {
	return 1 << int(math.Ceil(math.Log2(float64(runtime.NumCPU()))))
}
