package courier

import (
	"sync"
	"time"

	"github.com/lattiq/courier/internal/core"
)

// Ledger combines the idempotency record with the task status store. An id
// enters the ledger at most once, exactly when its first non-duplicate
// submission begins processing; entries are never removed during normal
// operation. Safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	marked   map[string]time.Time
	statuses map[string]core.Status
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		marked:   make(map[string]time.Time),
		statuses: make(map[string]core.Status),
	}
}

// CheckAndMark reports whether id was previously marked, marking it if not.
// The check and the mark are a single step with respect to concurrent
// submissions of the same id, so at most one submission per id ever
// proceeds past this gate.
func (l *Ledger) CheckAndMark(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.marked[id]; ok {
		return true
	}
	l.marked[id] = time.Now()
	return false
}

// SetStatus records the lifecycle state for id. Terminal states are never
// overwritten with an earlier state.
func (l *Ledger) SetStatus(id string, status core.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.statuses[id]; ok && cur.Terminal() && !status.Terminal() {
		return
	}
	l.statuses[id] = status
}

// GetStatus returns the lifecycle state for id and whether it is known.
func (l *Ledger) GetStatus(id string) (core.Status, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	status, ok := l.statuses[id]
	return status, ok
}

// Sweep removes ledger and status entries for tasks that reached a terminal
// state longer than olderThan ago, returning the number of entries removed.
// Housekeeping only: the engine never calls this on its own.
func (l *Ledger) Sweep(olderThan time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for id, markedAt := range l.marked {
		status, ok := l.statuses[id]
		if ok && !status.Terminal() {
			continue
		}
		if markedAt.After(cutoff) {
			continue
		}
		delete(l.marked, id)
		delete(l.statuses, id)
		removed++
	}
	return removed
}
