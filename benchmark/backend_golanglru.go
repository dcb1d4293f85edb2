package benchmark

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// GolangLRU stores record pointers in an entry bounded hashicorp LRU.
type GolangLRU struct {
	cache *lru.Cache[string, *Record]
}

func NewGolangLRU(entries int) (*GolangLRU, error) {
	c, err := lru.New[string, *Record](entries)
	if err != nil { // only errors if entries <= 0
		return nil, err
	}
	return &GolangLRU{cache: c}, nil
}

func (g *GolangLRU) Name() string { return "golanglru" }

func (g *GolangLRU) Get(key string) (*Record, bool) {
	return g.cache.Get(key)
}

func (g *GolangLRU) Set(key string, value *Record) error {
	g.cache.Add(key, value)
	return nil
}

func (g *GolangLRU) Close() error {
	g.cache.Purge()
	return nil
}
