package pool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsAllSubmittedTasks(t *testing.T) {
	p := New(4, 8)
	defer p.Shutdown(Abort)

	var count atomic.Int64
	const n = 500
	for i := 0; i < n; i++ {
		if !p.Submit(func() { count.Add(1) }) {
			t.Fatalf("submit rejected before shutdown")
		}
	}
	p.WaitForCompletion()

	if got := count.Load(); got != n {
		t.Fatalf("ran %d tasks, want %d", got, n)
	}
}

func TestPoolDrainShutdownFinishesQueuedWork(t *testing.T) {
	p := New(2, 32)
	var count atomic.Int64
	const n = 100
	for i := 0; i < n; i++ {
		p.Submit(func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		})
	}
	p.Shutdown(Drain)

	if got := count.Load(); got != n {
		t.Fatalf("drained %d of %d tasks", got, n)
	}
}

func TestPoolSubmitRejectedAfterShutdown(t *testing.T) {
	p := New(2, 8)
	p.Shutdown(Abort)

	if p.Submit(func() {}) {
		t.Fatalf("submit accepted after shutdown")
	}
}
