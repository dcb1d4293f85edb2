package lrucache

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := newTestCache(t, 10, 5)
	c.Name = "test"
	require.NoError(t, c.Set([]byte("a"), []byte("12345")))
	require.NoError(t, c.Set([]byte("b"), []byte("12345")))
	require.NoError(t, c.Set([]byte("c"), []byte("123")))
	_, _, _ = c.Get([]byte("b"))
	_, _, _ = c.Get([]byte("a"))

	col := NewCollector(c)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(col))

	assert.Equal(t, 11, testutil.CollectAndCount(col))

	expected := `
# HELP lrucache_entries Number of live entries.
# TYPE lrucache_entries gauge
lrucache_entries{cache="test"} 2
# HELP lrucache_evictions_total Entries evicted to make room.
# TYPE lrucache_evictions_total counter
lrucache_evictions_total{cache="test"} 1
# HELP lrucache_hits_total Lookups that found their key.
# TYPE lrucache_hits_total counter
lrucache_hits_total{cache="test"} 1
# HELP lrucache_misses_total Lookups that did not find their key.
# TYPE lrucache_misses_total counter
lrucache_misses_total{cache="test"} 1
# HELP lrucache_used_bytes Bytes charged to live entries.
# TYPE lrucache_used_bytes gauge
lrucache_used_bytes{cache="test"} 8
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"lrucache_entries", "lrucache_evictions_total", "lrucache_hits_total", "lrucache_misses_total", "lrucache_used_bytes")
	require.NoError(t, err)
}
