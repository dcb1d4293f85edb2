package lrucache

// queue is the recency order of a segment's live entries. front is the most
// recently used entry, rear the eviction candidate. Links live in the
// entries themselves; prev points towards the front, older towards the rear.
type queue struct {
	front handle
	rear  handle
	len   uint32
}

// pushFront links a fresh entry in front of the current front.
func (q *queue) pushFront(a *arena, h handle) {
	e := a.get(h)
	e.prev = nilHandle
	e.older = q.front
	if q.front != nilHandle {
		a.get(q.front).prev = h
	} else {
		q.rear = h
	}
	q.front = h
	q.len++
}

// unlink splices h out of the queue and patches front/rear.
func (q *queue) unlink(a *arena, h handle) {
	e := a.get(h)
	if e.prev != nilHandle {
		a.get(e.prev).older = e.older
	} else {
		q.front = e.older
	}
	if e.older != nilHandle {
		a.get(e.older).prev = e.prev
	} else {
		q.rear = e.prev
	}
	e.prev = nilHandle
	e.older = nilHandle
	q.len--
}

// touch moves h to the front. It is a no-op when h already is the front.
func (q *queue) touch(a *arena, h handle) {
	if q.front == h {
		return
	}
	q.unlink(a, h)
	q.pushFront(a, h)
}

// popRear unlinks and returns the least recently used entry, or nilHandle
// when the queue is empty.
func (q *queue) popRear(a *arena) handle {
	h := q.rear
	if h == nilHandle {
		return nilHandle
	}
	q.unlink(a, h)
	return h
}

// each walks the queue from front to rear until fn returns false.
func (q *queue) each(a *arena, fn func(h handle) bool) {
	for h := q.front; h != nilHandle; h = a.get(h).older {
		if !fn(h) {
			return
		}
	}
}
