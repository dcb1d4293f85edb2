package benchmark

import (
	"github.com/patrickmn/go-cache"
)

// GoCache stores record pointers in an unbounded go-cache without
// expiration or janitor.
type GoCache struct {
	cache *cache.Cache
}

func NewGoCache() *GoCache {
	return &GoCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (g *GoCache) Name() string { return "gocache" }

func (g *GoCache) Get(key string) (*Record, bool) {
	item, found := g.cache.Get(key)
	if !found {
		return nil, false
	}

	value, ok := item.(*Record)
	return value, ok
}

func (g *GoCache) Set(key string, value *Record) error {
	g.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

func (g *GoCache) Close() error {
	g.cache.Flush()
	return nil
}
