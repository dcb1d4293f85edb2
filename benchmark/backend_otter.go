package benchmark

import (
	"github.com/maypok86/otter/v2"
)

// Otter stores record pointers in an entry bounded otter cache.
type Otter struct {
	cache *otter.Cache[string, *Record]
}

func NewOtter(entries int) (*Otter, error) {
	c, err := otter.New(&otter.Options[string, *Record]{
		MaximumSize: entries,
	})
	if err != nil {
		return nil, err
	}
	return &Otter{cache: c}, nil
}

func (o *Otter) Name() string { return "otter" }

func (o *Otter) Get(key string) (*Record, bool) {
	return o.cache.GetIfPresent(key)
}

func (o *Otter) Set(key string, value *Record) error {
	o.cache.Set(key, value)
	return nil
}

func (o *Otter) Close() error {
	o.cache.InvalidateAll()
	return nil
}
