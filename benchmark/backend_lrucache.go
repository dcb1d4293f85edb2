package benchmark

import (
	"github.com/go-kit/log"

	"github.com/yuadsl3010/lrucache"
)

// LRUCache stores encoded records in an lrucache.Cache.
type LRUCache struct {
	Cache *lrucache.Cache
}

func NewLRUCache(cfg lrucache.Config, logger log.Logger) (*LRUCache, error) {
	c, err := lrucache.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &LRUCache{Cache: c}, nil
}

func (l *LRUCache) Name() string { return "lrucache" }

func (l *LRUCache) Get(key string) (*Record, bool) {
	data, ok, err := l.Cache.Get(stringToBytes(key))
	if err != nil || !ok {
		return nil, false
	}

	// the cache keeps ownership of data, Decode copies what it needs
	value, err := Decode(data)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set hands the freshly encoded buffers over to the cache without a copy.
func (l *LRUCache) Set(key string, value *Record) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	return l.Cache.SetOwned([]byte(key), data)
}

func (l *LRUCache) Close() error {
	return l.Cache.Free()
}
