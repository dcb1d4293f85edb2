package lrucache

import (
	"fmt"
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Cache is a byte budgeted LRU cache of opaque keys and values. It is safe
// for concurrent use. With the default single segment every operation is
// serialized by one lock and eviction follows exact LRU order.
type Cache struct {
	Name     string
	logger   log.Logger
	hash     hashFunc
	seed     uint64
	segments []*segment
}

// NewCache creates a single segment cache of capacityBytes, with
// capacityBytes / averageItemSize hash buckets.
func NewCache(capacityBytes uint64, averageItemSize uint32) (*Cache, error) {
	cfg := DefaultConfig("default")
	cfg.MaxSize = ByteSize(capacityBytes)
	cfg.AverageItemSize = ByteSize(averageItemSize)
	return New(cfg, nil)
}

func New(cfg Config, logger log.Logger) (*Cache, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if cfg.Segments == 0 {
		cfg.Segments = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hash, err := hashFuncFor(cfg.Hash)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	buckets := uint64(cfg.MaxSize) / uint64(cfg.AverageItemSize) / uint64(cfg.Segments)
	if buckets == 0 {
		buckets = 1
	}
	if buckets > math.MaxUint32 {
		buckets = math.MaxUint32
	}
	perSegment := uint64(cfg.MaxSize) / uint64(cfg.Segments)

	c := &Cache{
		Name:     cfg.Name,
		logger:   log.With(logger, "cache", cfg.Name),
		hash:     hash,
		seed:     seed,
		segments: make([]*segment, cfg.Segments),
	}
	for i := range c.segments {
		c.segments[i] = newSegment(i, perSegment, uint32(buckets), cfg.Accounting == AccountEntry, cfg.OnEvict)
	}

	level.Info(c.logger).Log("msg", "cache created", "max_size", cfg.MaxSize, "segments", cfg.Segments,
		"buckets_per_segment", buckets, "accounting", cfg.Accounting, "hash", cfg.Hash)
	return c, nil
}

// locate picks the segment of key and the hash used inside that segment.
func (c *Cache) locate(key []byte) (*segment, uint32) {
	h := c.hash(c.seed, key)
	n := uint32(len(c.segments))
	if n == 1 {
		return c.segments[0], h
	}
	return c.segments[h%n], h / n
}

// Set stores a copy of key and value, replacing any previous value of key
// and evicting least recently used entries until the value fits.
func (c *Cache) Set(key, value []byte) error {
	if c == nil {
		return ErrMissingCache
	}
	if len(key) == 0 {
		return ErrMissingKey
	}
	if len(value) == 0 {
		return ErrMissingValue
	}
	return c.set(append([]byte(nil), key...), append([]byte(nil), value...))
}

// SetOwned is Set without copying. On success the cache owns key and value:
// the caller must not modify or reuse either slice afterwards.
func (c *Cache) SetOwned(key, value []byte) error {
	if c == nil {
		return ErrMissingCache
	}
	if len(key) == 0 {
		return ErrMissingKey
	}
	if len(value) == 0 {
		return ErrMissingValue
	}
	return c.set(key, value)
}

func (c *Cache) set(key, value []byte) error {
	seg, h := c.locate(key)
	evicted, err := seg.set(h, key, value)
	if err != nil {
		if errors.Is(err, ErrValueTooLarge) {
			level.Warn(c.logger).Log("msg", "rejected value larger than segment capacity", "size", len(value), "capacity", seg.capacity)
		}
		return err
	}
	if evicted > 0 {
		level.Debug(c.logger).Log("msg", "evicted entries", "segment", seg.segID, "count", evicted)
	}
	return nil
}

// Get returns the value of key and marks it most recently used. A miss is
// not an error. The returned slice is owned by the cache: it must not be
// modified, and it is stale once key is updated, deleted or evicted.
func (c *Cache) Get(key []byte) ([]byte, bool, error) {
	return c.get(key, true)
}

// Peek is Get without changing the recency order or the statistics.
func (c *Cache) Peek(key []byte) ([]byte, bool, error) {
	return c.get(key, false)
}

func (c *Cache) get(key []byte, touch bool) ([]byte, bool, error) {
	if c == nil {
		return nil, false, ErrMissingCache
	}
	if len(key) == 0 {
		return nil, false, ErrMissingKey
	}
	seg, h := c.locate(key)
	return seg.get(h, key, touch)
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *Cache) Delete(key []byte) error {
	if c == nil {
		return ErrMissingCache
	}
	if len(key) == 0 {
		return ErrMissingKey
	}
	seg, h := c.locate(key)
	_, err := seg.del(h, key)
	return err
}

// Free drops every entry and invalidates the cache: all later calls fail
// with ErrLock.
func (c *Cache) Free() error {
	if c == nil {
		return ErrMissingCache
	}

	dropped := 0
	for _, seg := range c.segments {
		n, err := seg.release()
		if err != nil {
			return err
		}
		dropped += n
	}

	level.Info(c.logger).Log("msg", "cache freed", "entries", dropped)
	return nil
}

// Keys returns a copy of every key, segment by segment, from most to least
// recently used. It is meant for debugging.
func (c *Cache) Keys() ([][]byte, error) {
	if c == nil {
		return nil, ErrMissingCache
	}
	var out [][]byte
	for _, seg := range c.segments {
		keys, err := seg.keys()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
	}
	return out, nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	n := 0
	for _, seg := range c.segments {
		entries, _, _ := seg.usage()
		n += entries
	}
	return n
}

// Capacity returns the byte budget of all segments together.
func (c *Cache) Capacity() uint64 {
	var n uint64
	for _, seg := range c.segments {
		n += seg.capacity
	}
	return n
}

// FreeBytes returns the unused part of the budget.
func (c *Cache) FreeBytes() uint64 {
	var n uint64
	for _, seg := range c.segments {
		_, free, _ := seg.usage()
		n += free
	}
	return n
}

func (c *Cache) String() string {
	return fmt.Sprintf("lrucache %s: %d entries, %d/%d bytes free", c.Name, c.Len(), c.FreeBytes(), c.Capacity())
}
