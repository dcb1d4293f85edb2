package lrucache

import (
	"sync"
	"unsafe"

	"go.uber.org/atomic"
)

// entryOverhead is the fixed per-entry charge of AccountEntry.
var entryOverhead = uint64(unsafe.Sizeof(entry{}))

const maxArenaHint = 1024

// segment is one independently locked part of the cache. It owns a hash
// index, a recency queue, an entry arena and a byte budget, and keeps
// them consistent with each other under mu.
type segment struct {
	mu       sync.Mutex
	freed    bool
	segID    int
	capacity uint64
	free     uint64
	byEntry  bool
	onEvict  func(key, value []byte)
	index    index
	queue    queue
	arena    arena

	accessCount    atomic.Uint64 // touches by get/set, diagnostic only
	hitCount       atomic.Int64
	missCount      atomic.Int64 // miss + hit = read
	writeCount     atomic.Int64
	overwriteCount atomic.Int64
	evictionCount  atomic.Int64
	deleteCount    atomic.Int64
	rejectCount    atomic.Int64 // values too large for the segment
}

func newSegment(segID int, capacity uint64, bucketCount uint32, byEntry bool, onEvict func(key, value []byte)) *segment {
	hint := int(bucketCount)
	if hint > maxArenaHint {
		hint = maxArenaHint
	}
	return &segment{
		segID:    segID,
		capacity: capacity,
		free:     capacity,
		byEntry:  byEntry,
		onEvict:  onEvict,
		index:    newIndex(bucketCount),
		arena:    newArena(hint),
	}
}

// lock fails once the segment has been freed; nothing is mutated then.
func (seg *segment) lock() error {
	seg.mu.Lock()
	if seg.freed {
		seg.mu.Unlock()
		return ErrLock
	}
	return nil
}

func (seg *segment) charge(key, value []byte) uint64 {
	if seg.byEntry {
		return uint64(len(key)) + uint64(len(value)) + entryOverhead
	}
	return uint64(len(value))
}

// set inserts or replaces key. The segment takes ownership of key and
// value. It returns the number of entries evicted to make room.
func (seg *segment) set(hash uint32, key, value []byte) (int, error) {
	cost := seg.charge(key, value)
	if cost > seg.capacity {
		seg.rejectCount.Inc()
		return 0, ErrValueTooLarge
	}

	if err := seg.lock(); err != nil {
		return 0, err
	}
	defer seg.mu.Unlock()

	var delta int64
	h, _ := seg.index.lookup(&seg.arena, hash, key)
	if h != nilHandle {
		e := seg.arena.get(h)
		delta = int64(cost) - int64(seg.charge(e.key, e.value))
		e.value = value
		seg.queue.touch(&seg.arena, h)
		seg.overwriteCount.Inc()
	} else {
		h = seg.arena.acquire()
		e := seg.arena.get(h)
		e.key = key
		e.value = value
		e.hash = hash
		seg.index.insert(&seg.arena, h)
		seg.queue.pushFront(&seg.arena, h)
		delta = int64(cost)
	}
	seg.accessCount.Inc()
	seg.writeCount.Inc()

	// h is at the front, and cost <= capacity guarantees the loop stops
	// before it becomes the rear.
	evicted := 0
	for delta > 0 && uint64(delta) > seg.free {
		seg.retire(seg.queue.popRear(&seg.arena), true)
		evicted++
	}

	if delta >= 0 {
		seg.free -= uint64(delta)
	} else {
		seg.free += uint64(-delta)
	}
	return evicted, nil
}

// retire drops an entry already unlinked from the queue: it leaves its
// chain, gives its charge back and is recycled.
func (seg *segment) retire(h handle, evicted bool) {
	e := seg.arena.get(h)
	seg.index.unlink(&seg.arena, h)
	seg.free += seg.charge(e.key, e.value)
	if evicted {
		seg.evictionCount.Inc()
		if seg.onEvict != nil {
			seg.onEvict(e.key, e.value)
		}
	}
	seg.arena.release(h)
}

// get returns the stored value of key. touch moves it to the front and
// counts the lookup; peeks do neither.
func (seg *segment) get(hash uint32, key []byte, touch bool) ([]byte, bool, error) {
	if err := seg.lock(); err != nil {
		return nil, false, err
	}
	defer seg.mu.Unlock()

	h, _ := seg.index.lookup(&seg.arena, hash, key)
	if h == nilHandle {
		if touch {
			seg.missCount.Inc()
		}
		return nil, false, nil
	}

	if touch {
		seg.queue.touch(&seg.arena, h)
		seg.accessCount.Inc()
		seg.hitCount.Inc()
	}
	return seg.arena.get(h).value, true, nil
}

func (seg *segment) del(hash uint32, key []byte) (bool, error) {
	if err := seg.lock(); err != nil {
		return false, err
	}
	defer seg.mu.Unlock()

	h, prev := seg.index.lookup(&seg.arena, hash, key)
	if h == nilHandle {
		return false, nil
	}

	e := seg.arena.get(h)
	seg.index.remove(&seg.arena, h, prev)
	seg.queue.unlink(&seg.arena, h)
	seg.free += seg.charge(e.key, e.value)
	seg.arena.release(h)
	seg.deleteCount.Inc()
	return true, nil
}

// release retires every entry and marks the segment freed. It returns the
// number of live entries that were dropped.
func (seg *segment) release() (int, error) {
	if err := seg.lock(); err != nil {
		return 0, err
	}
	defer seg.mu.Unlock()

	n := int(seg.queue.len)
	seg.arena.reset()
	seg.index = index{}
	seg.queue = queue{}
	seg.free = seg.capacity
	seg.freed = true
	return n, nil
}

// keys lists the segment's keys from most to least recently used.
func (seg *segment) keys() ([][]byte, error) {
	if err := seg.lock(); err != nil {
		return nil, err
	}
	defer seg.mu.Unlock()

	out := make([][]byte, 0, seg.queue.len)
	seg.queue.each(&seg.arena, func(h handle) bool {
		out = append(out, append([]byte(nil), seg.arena.get(h).key...))
		return true
	})
	return out, nil
}

// usage reads the live entry count, free bytes and recycled records.
func (seg *segment) usage() (entries int, free uint64, recycled int) {
	seg.mu.Lock()
	defer seg.mu.Unlock()
	return int(seg.queue.len), seg.free, seg.arena.recycled()
}

func (seg *segment) resetStatistics() {
	seg.accessCount.Store(0)
	seg.hitCount.Store(0)
	seg.missCount.Store(0)
	seg.writeCount.Store(0)
	seg.overwriteCount.Store(0)
	seg.evictionCount.Store(0)
	seg.deleteCount.Store(0)
	seg.rejectCount.Store(0)
}
