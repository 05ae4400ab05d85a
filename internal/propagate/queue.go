package propagate

import "github.com/rybkr/nonogram/internal/bitline"

// Queue is a FIFO work queue over line-ids with set semantics: pushing an
// id already queued is a no-op. Grounded on original_source/node_queue.py's
// MyQueue (an in_q membership array paired with a ring buffer).
type Queue struct {
	inQueue [2 * bitline.N]bool
	data    []int
	head    int
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{data: make([]int, 0, 2*bitline.N)}
}

// Push enqueues id if it isn't already queued.
func (q *Queue) Push(id int) {
	if q.inQueue[id] {
		return
	}
	q.inQueue[id] = true
	q.data = append(q.data, id)
}

// PushAll enqueues every line-id, used to seed a fresh propagation pass.
func (q *Queue) PushAll() {
	for id := 0; id < 2*bitline.N; id++ {
		q.Push(id)
	}
}

// Pop removes and returns the front id, reporting false if the queue is
// empty. The backing slice is compacted lazily (head index) rather than on
// every Pop, then reset once drained.
func (q *Queue) Pop() (int, bool) {
	if q.head >= len(q.data) {
		return 0, false
	}
	id := q.data[q.head]
	q.head++
	q.inQueue[id] = false
	if q.head == len(q.data) {
		q.data = q.data[:0]
		q.head = 0
	}
	return id, true
}

// Empty reports whether the queue has no pending ids.
func (q *Queue) Empty() bool {
	return q.head >= len(q.data)
}
