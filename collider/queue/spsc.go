// Package queue implements a lock-free single-producer/single-consumer ring
// buffer, the cross-thread handoff primitive used everywhere the realtime
// audio thread needs to exchange data with the editor thread without ever
// blocking on a lock.
package queue

import "sync/atomic"

// SPSC is a fixed-capacity ring buffer safe for exactly one producer
// goroutine calling Enqueue and exactly one consumer goroutine calling
// Dequeue concurrently. Any other access pattern is undefined behavior.
//
// producerHead and consumerHead are each touched by only one side, so they
// need no synchronization of their own; length is the single atomic variable
// that makes a slot's element visible to the other side only after it has
// been fully written (Enqueue stores into the ring, then increments length;
// Dequeue only reads a slot after observing length > 0), giving the
// publish/acquire pairing its correctness without a mutex.
type SPSC[T any] struct {
	ring         []T
	capacity     int32
	producerHead int32
	consumerHead int32
	length       atomic.Int32
}

// NewSPSC returns a queue holding up to capacity elements. Capacity must be
// positive.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity <= 0 {
		panic("queue: capacity must be positive")
	}
	return &SPSC[T]{
		ring:     make([]T, capacity),
		capacity: int32(capacity),
	}
}

// Enqueue appends element to the queue, reporting false without blocking if
// the queue is full.
func (q *SPSC[T]) Enqueue(element T) bool {
	if q.length.Load() >= q.capacity {
		return false
	}
	q.ring[q.producerHead] = element
	q.producerHead = (q.producerHead + 1) % q.capacity
	q.length.Add(1)
	return true
}

// Dequeue removes and returns the oldest element, reporting false without
// blocking if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, bool) {
	if q.length.Load() <= 0 {
		var zero T
		return zero, false
	}
	element := q.ring[q.consumerHead]
	var zero T
	q.ring[q.consumerHead] = zero
	q.consumerHead = (q.consumerHead + 1) % q.capacity
	q.length.Add(-1)
	return element, true
}

// Length reports the approximate number of queued elements. Safe to call
// from either side, but the value may already be stale by the time it's
// observed.
func (q *SPSC[T]) Length() int32 {
	return q.length.Load()
}

// Capacity returns the fixed capacity the queue was constructed with.
func (q *SPSC[T]) Capacity() int32 {
	return q.capacity
}
