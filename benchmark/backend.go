package benchmark

import (
	"sort"

	"github.com/go-kit/log"
	"github.com/pkg/errors"

	"github.com/yuadsl3010/lrucache"
)

// Backend is a cache under test.
type Backend interface {
	Name() string
	Get(key string) (*Record, bool)
	Set(key string, value *Record) error
	Close() error
}

type factory func(cfg lrucache.Config, logger log.Logger) (Backend, error)

var factories = map[string]factory{
	"lrucache": func(cfg lrucache.Config, logger log.Logger) (Backend, error) {
		return NewLRUCache(cfg, logger)
	},
	"freecache": func(cfg lrucache.Config, _ log.Logger) (Backend, error) {
		return NewFreeCache(int(cfg.MaxSize)), nil
	},
	"bigcache": func(cfg lrucache.Config, _ log.Logger) (Backend, error) {
		return NewBigCache(uint64(cfg.MaxSize))
	},
	"gocache": func(lrucache.Config, log.Logger) (Backend, error) {
		return NewGoCache(), nil
	},
	"golanglru": func(cfg lrucache.Config, _ log.Logger) (Backend, error) {
		return NewGolangLRU(entryLimit(cfg))
	},
	"otter": func(cfg lrucache.Config, _ log.Logger) (Backend, error) {
		return NewOtter(entryLimit(cfg))
	},
	"map": func(lrucache.Config, log.Logger) (Backend, error) {
		return NewMap(), nil
	},
}

// Names lists the backends New knows.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the backend called name. Byte bounded backends get
// cfg.MaxSize bytes, entry bounded ones MaxSize / AverageItemSize entries.
func New(name string, cfg lrucache.Config, logger log.Logger) (Backend, error) {
	f, ok := factories[name]
	if !ok {
		return nil, errors.Errorf("unknown backend %q, known: %v", name, Names())
	}
	return f(cfg, logger)
}

func entryLimit(cfg lrucache.Config) int {
	if cfg.AverageItemSize == 0 {
		return 1
	}
	n := int(cfg.MaxSize / cfg.AverageItemSize)
	if n < 1 {
		n = 1
	}
	return n
}
