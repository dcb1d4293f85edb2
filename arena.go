package lrucache

// handle addresses an entry record inside an arena. The zero handle is
// reserved and means "no entry", so a zeroed entry has no links.
type handle uint32

const nilHandle handle = 0

// entry is one key/value record. It is linked into a bucket chain through
// next and into the recency queue through prev/older.
type entry struct {
	key   []byte
	value []byte
	hash  uint32
	next  handle // bucket chain
	prev  handle // towards the queue front (more recent)
	older handle // towards the queue rear (less recent)
	live  bool
}

// arena owns every entry record of a segment. Retired records are kept on a
// free stack and handed out again before the arena grows.
type arena struct {
	entries []entry
	free    []handle
}

func newArena(hint int) arena {
	if hint < 1 {
		hint = 1
	}
	return arena{
		entries: make([]entry, 1, hint+1),
	}
}

func (a *arena) get(h handle) *entry {
	return &a.entries[h]
}

// acquire returns the handle of a zeroed record.
func (a *arena) acquire() handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[h].live = true
		return h
	}
	a.entries = append(a.entries, entry{live: true})
	return handle(len(a.entries) - 1)
}

// release drops the buffers of h, zeroes its bookkeeping and recycles it.
func (a *arena) release(h handle) {
	a.entries[h] = entry{}
	a.free = append(a.free, h)
}

// recycled is the number of records waiting on the free stack.
func (a *arena) recycled() int {
	return len(a.free)
}

func (a *arena) reset() {
	a.entries = nil
	a.free = nil
}
