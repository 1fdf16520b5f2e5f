package control

import "sync"

// Queue is a FIFO of changes. Push may be called from any goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []Change
}

// Push appends c.
func (q *Queue) Push(c Change) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// Len returns the number of queued changes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain removes all queued changes and appends them, oldest first, to dst.
func (q *Queue) Drain(dst []Change) []Change {
	q.mu.Lock()
	dst = append(dst, q.pending...)
	q.pending = q.pending[:0]
	q.mu.Unlock()
	return dst
}
