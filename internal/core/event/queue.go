package event

// Queue is a double-buffered FIFO for one event kind. Events are sent into the
// current buffer; Update moves the current buffer to the previous one and drops
// whatever was previous. An event therefore stays readable across exactly one
// Update and is gone after the second, whether or not anyone read it.
//
// Every event gets a sequence number so independent Readers each see every
// event at most once.
type Queue[T any] struct {
	prev      []T
	cur       []T
	prevStart uint64 // sequence number of prev[0]; cur starts right after prev
}

// Reader is a per-consumer cursor into a Queue. The zero value reads
// everything still buffered.
type Reader struct {
	next uint64
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		prev: make([]T, 0, 16),
		cur:  make([]T, 0, 16),
	}
}

func (q *Queue[T]) end() uint64 {
	return q.prevStart + uint64(len(q.prev)) + uint64(len(q.cur))
}

func (q *Queue[T]) Send(ev T) {
	q.cur = append(q.cur, ev)
}

// SendBatch appends zero or more events in order.
func (q *Queue[T]) SendBatch(evs ...T) {
	q.cur = append(q.cur, evs...)
}

// Read returns the events r has not seen yet, oldest first, and advances r.
// An empty result is the normal case.
func (q *Queue[T]) Read(r *Reader) []T {
	start := r.next
	if start < q.prevStart {
		start = q.prevStart
	}
	end := q.end()
	r.next = end
	if start >= end {
		return nil
	}

	out := make([]T, 0, end-start)
	off := int(start - q.prevStart)
	if off < len(q.prev) {
		out = append(out, q.prev[off:]...)
		off = 0
	} else {
		off -= len(q.prev)
	}
	return append(out, q.cur[off:]...)
}

// Update ages the queue by one generation.
func (q *Queue[T]) Update() {
	q.prevStart += uint64(len(q.prev))
	clear(q.prev)
	q.prev, q.cur = q.cur, q.prev[:0]
}

// Drain returns every buffered event and empties the queue. Consumers that own
// a kind outright use this so each event is acted on exactly once.
func (q *Queue[T]) Drain() []T {
	n := len(q.prev) + len(q.cur)
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	out = append(out, q.prev...)
	out = append(out, q.cur...)
	q.Clear()
	return out
}

// Clear drops every buffered event. Readers behind the drop skip ahead.
func (q *Queue[T]) Clear() {
	q.prevStart = q.end()
	clear(q.prev)
	clear(q.cur)
	q.prev = q.prev[:0]
	q.cur = q.cur[:0]
}

// Len returns the number of buffered events.
func (q *Queue[T]) Len() int {
	return len(q.prev) + len(q.cur)
}
