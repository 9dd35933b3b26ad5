package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ShutdownMode selects how Shutdown treats tasks still sitting in the
// queue when it is called.
type ShutdownMode int

const (
	// Drain lets already-queued tasks finish before workers exit.
	Drain ShutdownMode = iota
	// Abort discards queued tasks and returns as soon as in-flight tasks
	// (already popped by a worker) complete.
	Abort
)

// Pool is a bounded worker pool fed by a lock-free MPMC ring queue. Tasks
// submitted beyond the queue's capacity block the submitter (with brief
// spinning) until a slot frees up, rather than growing unboundedly.
type Pool struct {
	queue   *ringQueue
	workers int

	wg      sync.WaitGroup
	stopped atomic.Bool
	draining atomic.Bool

	pending atomic.Int64
	mu      sync.Mutex
	cond    *sync.Cond

	wake chan struct{}
	quit chan struct{}
}

// New starts a pool with the given worker count and task queue capacity.
func New(workers, queueCapacity int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		queue: newRingQueue(queueCapacity),
		workers: workers,
		wake:    make(chan struct{}, workers),
		quit:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		// Abort (stopped without draining) discards whatever is still
		// queued: a worker that reaches this point simply stops pulling
		// more work rather than draining the ring first.
		if p.stopped.Load() && !p.draining.Load() {
			return
		}
		if t, err := p.queue.pop(); err == nil {
			t()
			p.completeOne()
			continue
		}
		if p.draining.Load() || p.stopped.Load() {
			return
		}
		select {
		case <-p.wake:
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) completeOne() {
	if p.pending.Add(-1) == 0 {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	}
}

// Submit enqueues a task for execution, blocking (with brief spinning)
// while the queue is full. Returns false once the pool has begun
// shutting down.
func (p *Pool) Submit(t Task) bool {
	if p.stopped.Load() || p.draining.Load() {
		return false
	}
	p.pending.Add(1)
	for {
		if p.stopped.Load() {
			p.completeOne()
			return false
		}
		if err := p.queue.push(t); err == nil {
			p.nudge()
			return true
		}
		runtime.Gosched()
	}
}

func (p *Pool) nudge() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// WaitForCompletion blocks until every submitted task has finished
// running.
func (p *Pool) WaitForCompletion() {
	p.mu.Lock()
	for p.pending.Load() != 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// Shutdown stops the pool. With Drain, queued tasks run to completion
// first; with Abort, only tasks already picked up by a worker finish.
// Shutdown blocks until all workers have exited.
func (p *Pool) Shutdown(mode ShutdownMode) {
	switch mode {
	case Drain:
		p.draining.Store(true)
		p.WaitForCompletion()
	case Abort:
		p.stopped.Store(true)
	}
	p.stopped.Store(true)
	close(p.quit)
	p.wg.Wait()
}
