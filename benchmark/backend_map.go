package benchmark

import "sync"

// Map is an unbounded map guarded by a RWMutex, the baseline.
type Map struct {
	c    map[string]*Record
	lock sync.RWMutex
}

func NewMap() *Map {
	return &Map{c: make(map[string]*Record)}
}

func (m *Map) Name() string { return "map" }

func (m *Map) Get(key string) (*Record, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.c[key]
	return v, ok
}

func (m *Map) Set(key string, value *Record) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.c[key] = value
	return nil
}

func (m *Map) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.c = make(map[string]*Record)
	return nil
}
