package htrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type neighborResult struct {
	hd  int
	key string
}

func allNeighbors(t *testing.T, tr *Trie[string, any], query string, maxhd int) []neighborResult {
	t.Helper()
	c, err := tr.Neighbors(query, maxhd)
	require.NoError(t, err)
	var out []neighborResult
	for c.Next() {
		out = append(out, neighborResult{hd: c.Distance(), key: c.Key()})
	}
	require.NoError(t, c.Err())
	return out
}

func TestNeighborsExcludesQueryItself(t *testing.T) {
	tr := New[string, any]()
	tr.Insert("hello", [3]int{1, 2, 3})

	got := allNeighbors(t, tr, "hello", 5)
	assert.Empty(t, got)
}

func TestNeighborsBadArgument(t *testing.T) {
	tr := New[string, any]()
	tr.Insert("hello", nil)

	_, err := tr.Neighbors("he", 1)
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = tr.Neighbors("h3llo", 5)
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = tr.Neighbors("hello", 0)
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = tr.Neighbors("hello", -1)
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestNeighborsSingleVariant(t *testing.T) {
	tr := New[string, any]()
	tr.Insert("hello", nil)
	tr.Insert("h3llo", nil)

	got := allNeighbors(t, tr, "hello", 1)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].hd)
	assert.Equal(t, "h3llo", got[0].key)
}

func TestNeighborsMultipleDistances(t *testing.T) {
	tr := New[string, any]()
	tr.Insert("hello world", 0)
	tr.Insert("*ello world", 1)
	tr.Insert("*ell* world", 2)
	tr.Insert("*ell* w*rld", 3)
	tr.Insert("hell* w*rl*", 3)

	got := allNeighbors(t, tr, "hello world", 3)
	want := map[string]int{
		"*ello world": 1,
		"*ell* world": 2,
		"*ell* w*rld": 3,
		"hell* w*rl*": 3,
	}
	assert.Len(t, got, len(want))
	for _, g := range got {
		assert.Equal(t, want[g.key], g.hd)
	}

	got = allNeighbors(t, tr, "hello world", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "*ello world", got[0].key)
}

func TestNeighborsCubeSixAtDistanceOne(t *testing.T) {
	tr := New[string, any]()
	letters := []byte("ABC")
	for _, a := range letters {
		for _, b := range letters {
			for _, c := range letters {
				tr.Insert(string([]byte{a, b, c}), 0)
			}
		}
	}

	got := allNeighbors(t, tr, "AAA", 1)
	assert.Len(t, got, 6)
}
