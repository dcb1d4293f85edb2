package lrucache

// statistics

// Stats is a point in time view of a cache. Counters are summed over the
// segments one by one, so they are not an atomic snapshot.
type Stats struct {
	Entries    int
	Recycled   int
	Capacity   uint64
	FreeBytes  uint64
	UsedBytes  uint64
	Accesses   uint64
	Hits       int64
	Misses     int64
	Writes     int64
	Overwrites int64
	Evictions  int64
	Deletes    int64
	Rejected   int64
}

// HitRate is the ratio of hits over lookups.
func (s Stats) HitRate() float64 {
	lookups := s.Hits + s.Misses
	if lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(lookups)
}

func (c *Cache) Stats() Stats {
	var s Stats
	for _, seg := range c.segments {
		entries, free, recycled := seg.usage()
		s.Entries += entries
		s.Recycled += recycled
		s.Capacity += seg.capacity
		s.FreeBytes += free
		s.Accesses += seg.accessCount.Load()
		s.Hits += seg.hitCount.Load()
		s.Misses += seg.missCount.Load()
		s.Writes += seg.writeCount.Load()
		s.Overwrites += seg.overwriteCount.Load()
		s.Evictions += seg.evictionCount.Load()
		s.Deletes += seg.deleteCount.Load()
		s.Rejected += seg.rejectCount.Load()
	}
	s.UsedBytes = s.Capacity - s.FreeBytes
	return s
}

// EvictionCount is a metric indicating the number of entries evicted to make room.
func (c *Cache) EvictionCount() (count int64) {
	for _, seg := range c.segments {
		count += seg.evictionCount.Load()
	}
	return
}

// HitCount is a metric that returns number of times a key was found in the cache.
func (c *Cache) HitCount() (count int64) {
	for _, seg := range c.segments {
		count += seg.hitCount.Load()
	}
	return
}

// MissCount is a metric that returns the number of times a miss occurred in the cache.
func (c *Cache) MissCount() (count int64) {
	for _, seg := range c.segments {
		count += seg.missCount.Load()
	}
	return
}

// LookupCount is a metric that returns the number of times a lookup for a given key occurred.
func (c *Cache) LookupCount() int64 {
	return c.HitCount() + c.MissCount()
}

// OverwriteCount indicates the number of times entries have been overridden.
func (c *Cache) OverwriteCount() (count int64) {
	for _, seg := range c.segments {
		count += seg.overwriteCount.Load()
	}
	return
}

// AccessCount is the number of get and set touches, a diagnostic counter.
func (c *Cache) AccessCount() (count uint64) {
	for _, seg := range c.segments {
		count += seg.accessCount.Load()
	}
	return
}

// HitRate is the ratio of hits over lookups.
func (c *Cache) HitRate() float64 {
	hitCount, missCount := c.HitCount(), c.MissCount()
	lookupCount := hitCount + missCount
	if lookupCount == 0 {
		return 0
	}
	return float64(hitCount) / float64(lookupCount)
}

// ResetStatistics refreshes the current state of the statistics.
func (c *Cache) ResetStatistics() {
	for _, seg := range c.segments {
		seg.resetStatistics()
	}
}
