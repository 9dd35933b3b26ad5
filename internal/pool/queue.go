// Package pool implements the bounded worker pool and lock-free task
// queue backing the batch executor.
package pool

import (
	"errors"
	"sync/atomic"
)

// ErrQueueFull is returned by push when the ring has no free slot.
var ErrQueueFull = errors.New("task queue is full")

// ErrQueueEmpty is returned by pop when the ring has no published slot.
var ErrQueueEmpty = errors.New("task queue is empty")

// Task is the unit of work the queue transports.
type Task func()

// ringQueue is a bounded multi-producer multi-consumer queue built on the
// classic Vyukov ring buffer: each slot carries its own sequence counter
// telling producers and consumers whether it is ready for them, and a
// slot is claimed with a CAS on the shared enqueue or dequeue position,
// with no lock held across the push/pop fast path.
type ringQueue struct {
	mask uint64
	pad0 [7]uint64 // keep hot fields on separate cache lines

	buf []ringSlot

	enqueuePos uint64
	pad1       [7]uint64
	dequeuePos uint64
	pad2       [7]uint64
}

type ringSlot struct {
	seq  uint64
	task Task
}

// newRingQueue returns a queue whose capacity is the next power of two
// at or above size (minimum 2).
func newRingQueue(size int) *ringQueue {
	capacity := nextPowerOfTwo(size)
	if capacity < 2 {
		capacity = 2
	}
	q := &ringQueue{
		mask: uint64(capacity - 1),
		buf:  make([]ringSlot, capacity),
	}
	for i := range q.buf {
		q.buf[i].seq = uint64(i)
	}
	return q
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// push attempts to enqueue t without blocking. Returns ErrQueueFull if the
// ring is full.
func (q *ringQueue) push(t Task) error {
	for {
		pos := atomic.LoadUint64(&q.enqueuePos)
		slot := &q.buf[pos&q.mask]
		seq := atomic.LoadUint64(&slot.seq)
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&q.enqueuePos, pos, pos+1) {
				slot.task = t
				atomic.StoreUint64(&slot.seq, pos+1)
				return nil
			}
		case diff < 0:
			return ErrQueueFull
		default:
			// another producer advanced enqueuePos between our load and
			// the CAS attempt; retry with a fresh view.
		}
	}
}

// pop attempts to dequeue a task without blocking. Returns ErrQueueEmpty if
// the ring is empty.
func (q *ringQueue) pop() (Task, error) {
	for {
		pos := atomic.LoadUint64(&q.dequeuePos)
		slot := &q.buf[pos&q.mask]
		seq := atomic.LoadUint64(&slot.seq)
		diff := int64(seq) - int64(pos+1)
		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&q.dequeuePos, pos, pos+1) {
				t := slot.task
				slot.task = nil
				atomic.StoreUint64(&slot.seq, pos+q.mask+1)
				return t, nil
			}
		case diff < 0:
			return nil, ErrQueueEmpty
		default:
			// another consumer advanced dequeuePos; retry.
		}
	}
}
