package lrucache

import "bytes"

// index is a fixed size table of bucket chains. Chains are singly linked
// through entry.next; new entries are prepended.
type index struct {
	buckets []handle
}

func newIndex(bucketCount uint32) index {
	return index{buckets: make([]handle, bucketCount)}
}

func (ix *index) bucket(hash uint32) uint32 {
	return hash % uint32(len(ix.buckets))
}

// lookup walks the chain of hash and returns the matching entry together
// with its chain predecessor.
func (ix *index) lookup(a *arena, hash uint32, key []byte) (h, prev handle) {
	for h = ix.buckets[ix.bucket(hash)]; h != nilHandle; prev, h = h, a.get(h).next {
		e := a.get(h)
		if e.hash == hash && len(e.key) == len(key) && bytes.Equal(e.key, key) {
			return h, prev
		}
	}
	return nilHandle, nilHandle
}

func (ix *index) insert(a *arena, h handle) {
	e := a.get(h)
	b := ix.bucket(e.hash)
	e.next = ix.buckets[b]
	ix.buckets[b] = h
}

// remove unlinks h given its chain predecessor (nilHandle for the head).
func (ix *index) remove(a *arena, h, prev handle) {
	e := a.get(h)
	if prev != nilHandle {
		a.get(prev).next = e.next
	} else {
		ix.buckets[ix.bucket(e.hash)] = e.next
	}
	e.next = nilHandle
}

// unlink removes h when its predecessor is not known, as for evictions
// popped from the queue.
func (ix *index) unlink(a *arena, h handle) {
	var prev handle
	for cur := ix.buckets[ix.bucket(a.get(h).hash)]; cur != nilHandle && cur != h; cur = a.get(cur).next {
		prev = cur
	}
	ix.remove(a, h, prev)
}
