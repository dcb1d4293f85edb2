package benchmark

import (
	"github.com/coocood/freecache"
)

// FreeCache stores encoded records in a freecache.Cache.
type FreeCache struct {
	cache *freecache.Cache
}

func NewFreeCache(cacheSize int) *FreeCache {
	return &FreeCache{
		cache: freecache.NewCache(cacheSize),
	}
}

func (f *FreeCache) Name() string { return "freecache" }

func (f *FreeCache) Get(key string) (*Record, bool) {
	data, err := f.cache.Get(stringToBytes(key))
	if err != nil {
		return nil, false
	}

	value, err := Decode(data)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (f *FreeCache) Set(key string, value *Record) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}

	// 0 never expires
	return f.cache.Set(stringToBytes(key), data, 0)
}

func (f *FreeCache) Close() error {
	f.cache.Clear()
	return nil
}
