package lrucache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFuncs(t *testing.T) {
	for _, name := range []string{HashMurmur2, HashXXHash, HashFNV1a} {
		t.Run(name, func(t *testing.T) {
			fn, err := hashFuncFor(name)
			require.NoError(t, err)

			key := []byte("some key")
			assert.Equal(t, fn(1, key), fn(1, key))
			assert.NotEqual(t, fn(1, key), fn(2, key))

			// every tail length mixes into the result
			seen := map[uint32]bool{}
			for i := 1; i <= 9; i++ {
				seen[fn(7, []byte("abcdefghi")[:i])] = true
			}
			assert.Len(t, seen, 9)

			// keys spread over buckets
			const buckets = 16
			counts := make([]int, buckets)
			for i := 0; i < 16000; i++ {
				counts[fn(99, []byte(fmt.Sprintf("key-%d", i)))%buckets]++
			}
			for b, n := range counts {
				assert.InDelta(t, 1000, n, 200, "bucket %d", b)
			}
		})
	}

	_, err := hashFuncFor("md5")
	require.Error(t, err)
}

func TestMurmur2(t *testing.T) {
	assert.Equal(t, uint32(0), murmur2(0, nil))
	// the seed only uses its low 32 bits
	assert.Equal(t, murmur2(5, []byte("abc")), murmur2(5|1<<40, []byte("abc")))
}

func TestIndex(t *testing.T) {
	a := newArena(4)
	ix := newIndex(1) // every key collides

	add := func(key string) handle {
		h := a.acquire()
		e := a.get(h)
		e.key = []byte(key)
		e.hash = murmur2(1, e.key)
		ix.insert(&a, h)
		return h
	}
	ha, hb, hc := add("a"), add("b"), add("c")

	h, prev := ix.lookup(&a, murmur2(1, []byte("b")), []byte("b"))
	assert.Equal(t, hb, h)
	assert.Equal(t, hc, prev) // prepended chains

	h, _ = ix.lookup(&a, murmur2(1, []byte("ab")), []byte("ab"))
	assert.Equal(t, nilHandle, h)

	ix.remove(&a, hb, prev)
	h, _ = ix.lookup(&a, murmur2(1, []byte("b")), []byte("b"))
	assert.Equal(t, nilHandle, h)

	ix.unlink(&a, ha)
	ix.unlink(&a, hc)
	assert.Equal(t, nilHandle, ix.buckets[0])
}
