package benchmark

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/dustin/go-humanize"
)

const bigCacheLifeWindow = 10 * time.Minute

// BigCache stores encoded records in a bigcache.BigCache.
type BigCache struct {
	cache *bigcache.BigCache
}

// NewBigCache creates a bigcache limited to maxBytes, rounded down to whole
// MiB with a minimum of 1.
func NewBigCache(maxBytes uint64) (*BigCache, error) {
	config := bigcache.DefaultConfig(bigCacheLifeWindow)
	config.Verbose = false
	config.HardMaxCacheSize = int(maxBytes / humanize.MiByte)
	if config.HardMaxCacheSize < 1 {
		config.HardMaxCacheSize = 1
	}

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}
	return &BigCache{cache: cache}, nil
}

func (b *BigCache) Name() string { return "bigcache" }

func (b *BigCache) Get(key string) (*Record, bool) {
	data, err := b.cache.Get(key)
	if err != nil {
		return nil, false
	}

	value, err := Decode(data)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (b *BigCache) Set(key string, value *Record) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	return b.cache.Set(key, data)
}

func (b *BigCache) Close() error {
	return b.cache.Close()
}
