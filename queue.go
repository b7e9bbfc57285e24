package courier

import (
	"sync"

	"github.com/lattiq/courier/internal/core"
)

// queueOutcome is the completion record published for a queued task.
type queueOutcome struct {
	result *core.SendResult
	err    error
}

// queueEntry holds a task deferred by the admission controller together
// with the channel carrying its eventual outcome back to the original
// caller.
type queueEntry struct {
	task *core.Task
	done chan queueOutcome
}

// publish delivers the outcome to the waiting caller. The channel is
// buffered so an abandoned caller never blocks the drain loop; the drain
// loop publishes exactly once per entry.
func (e *queueEntry) publish(result *core.SendResult, err error) {
	e.done <- queueOutcome{result: result, err: err}
}

// PendingQueue is the ordered holding area for tasks deferred by the
// admission controller. Entries preserve FIFO order and are drained by a
// single in-process worker loop. Safe for concurrent use.
type PendingQueue struct {
	mu      sync.Mutex
	entries []*queueEntry
}

// NewPendingQueue creates an empty queue.
func NewPendingQueue() *PendingQueue {
	return &PendingQueue{}
}

// Push appends a task and returns the entry whose done channel carries the
// task's eventual outcome.
func (q *PendingQueue) Push(task *core.Task) *queueEntry {
	entry := &queueEntry{
		task: task,
		done: make(chan queueOutcome, 1),
	}

	q.mu.Lock()
	q.entries = append(q.entries, entry)
	q.mu.Unlock()

	return entry
}

// Pop removes and returns the head entry, or nil if the queue is empty.
func (q *PendingQueue) Pop() *queueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil
	}
	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry
}

// Len returns the number of queued entries.
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
