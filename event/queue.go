package event

import (
	"sync/atomic"

	"github.com/lixenwraith/stagecraft/parameter"
)

// Queue is a fixed ring with many producers and one consumer, the frame loop
// A slot is readable only once its published flag is set, so partial writes are never seen
// On overflow the oldest entry is overwritten and counted in Dropped
type Queue[T any] struct {
	items     [parameter.EventQueueSize]T
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // next slot to read
	tail      atomic.Uint64 // next slot to claim
	dropped   atomic.Uint64
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push claims a slot by CAS on tail, writes it, then marks it published
// When the ring is full the oldest unread entry is overwritten and counted
func (q *Queue[T]) Push(item T) {
	var slot uint64
	for {
		slot = q.tail.Load()
		if q.tail.CompareAndSwap(slot, slot+1) {
			break
		}
	}
	idx := slot & parameter.EventBufferMask
	q.items[idx] = item
	q.published[idx].Store(true)

	end := slot + 1
	if head := q.head.Load(); end-head > parameter.EventQueueSize {
		if q.head.CompareAndSwap(head, end-parameter.EventQueueSize) {
			q.dropped.Add(1)
		}
	}
}

// Consume returns every published item in FIFO order
// Slots are released only after head moves past them; a lost head race retries with flags intact
func (q *Queue[T]) Consume() []T {
	for {
		head, start, batch := q.snapshot()
		if q.commit(head, start, len(batch)) {
			if len(batch) == 0 {
				return nil
			}
			return batch
		}
	}
}

// snapshot copies the contiguous published run starting at the oldest live slot
// head is the value read; start may be ahead of it when producers lapped the reader
func (q *Queue[T]) snapshot() (head, start uint64, batch []T) {
	head = q.head.Load()
	tail := q.tail.Load()
	start = head
	if tail-start > parameter.EventQueueSize {
		start = tail - parameter.EventQueueSize
	}
	if tail == start {
		return head, start, nil
	}
	batch = make([]T, 0, tail-start)
	for i := start; i < tail; i++ {
		idx := i & parameter.EventBufferMask
		if !q.published[idx].Load() {
			break
		}
		batch = append(batch, q.items[idx])
	}
	return head, start, batch
}

// commit moves head from the value snapshot read to the end of the batch, then clears the slots
func (q *Queue[T]) commit(head, start uint64, n int) bool {
	if !q.head.CompareAndSwap(head, start+uint64(n)) {
		return false
	}
	for i := range uint64(n) {
		q.published[(start+i)&parameter.EventBufferMask].Store(false)
	}
	return true
}

// Len returns approximate pending count
func (q *Queue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return diff
}

// Dropped returns how many entries were overwritten before being consumed
func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
