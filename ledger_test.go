package courier

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLedgerCheckAndMark(t *testing.T) {
	l := NewLedger()

	assert.False(t, l.CheckAndMark("task-1"), "first submission is not a duplicate")
	assert.True(t, l.CheckAndMark("task-1"))
	assert.False(t, l.CheckAndMark("task-2"))
}

func TestLedgerCheckAndMarkConcurrent(t *testing.T) {
	l := NewLedger()

	var firsts atomic.Int32
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			if !l.CheckAndMark("task-1") {
				firsts.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), firsts.Load(), "exactly one submission passes the gate")
}

func TestLedgerStatusLifecycle(t *testing.T) {
	l := NewLedger()

	_, ok := l.GetStatus("task-1")
	assert.False(t, ok)

	l.SetStatus("task-1", StatusProcessing)
	status, ok := l.GetStatus("task-1")
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, status)

	l.SetStatus("task-1", StatusSent)
	status, _ = l.GetStatus("task-1")
	assert.Equal(t, StatusSent, status)
}

func TestLedgerTerminalStatusNeverReverts(t *testing.T) {
	l := NewLedger()

	l.SetStatus("task-1", StatusSent)
	l.SetStatus("task-1", StatusProcessing)

	status, _ := l.GetStatus("task-1")
	assert.Equal(t, StatusSent, status)

	l.SetStatus("task-2", StatusFailed)
	l.SetStatus("task-2", StatusPending)

	status, _ = l.GetStatus("task-2")
	assert.Equal(t, StatusFailed, status)
}

func TestLedgerSweepRemovesTerminalEntries(t *testing.T) {
	l := NewLedger()

	l.CheckAndMark("done")
	l.SetStatus("done", StatusSent)
	l.CheckAndMark("inflight")
	l.SetStatus("inflight", StatusProcessing)

	time.Sleep(10 * time.Millisecond)

	removed := l.Sweep(5 * time.Millisecond)
	assert.Equal(t, 1, removed)

	assert.False(t, l.CheckAndMark("done"), "swept id is submittable again")
	assert.True(t, l.CheckAndMark("inflight"), "in-flight entries survive the sweep")
}

func TestLedgerSweepHonorsWindow(t *testing.T) {
	l := NewLedger()

	l.CheckAndMark("recent")
	l.SetStatus("recent", StatusFailed)

	removed := l.Sweep(time.Hour)
	assert.Equal(t, 0, removed)
	assert.True(t, l.CheckAndMark("recent"))
}
