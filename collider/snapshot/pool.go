// Package snapshot implements the N-buffered handoff protocol that lets the
// audio thread publish consistent program snapshots for the editor thread to
// render, without either side ever taking a lock.
package snapshot

import (
	"log/slog"

	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/queue"
)

// DefaultSlots is the reference pool size: comfortably more slots than the
// editor and audio threads can hold onto at once, so the audio thread never
// stalls waiting for a free slot under normal operation.
const DefaultSlots = 256

// Pool owns a fixed array of Model slots and the two SPSC queues that pass
// slot indices between the audio thread (producer of free indices it's
// done rendering into... consumer of free indices it writes into) and the
// editor thread (consumer of published indices, producer of indices it's
// done displaying).
//
// At any instant each slot is owned by exactly one of: the audio thread (it
// is mid-write), the editor thread (it was the last published index and the
// editor is reading it), or neither (sitting in the free queue, available).
// Ownership only ever changes by an index moving through free or publish.
type Pool struct {
	slots   []grid.Model
	free    *queue.SPSC[int]
	publish *queue.SPSC[int]
	log     *slog.Logger
}

// NewPool constructs a pool of n slots, all initially in the free queue.
func NewPool(n int, log *slog.Logger) *Pool {
	if n < 2 {
		panic("snapshot: pool needs at least 2 slots")
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Pool{
		slots:   make([]grid.Model, n),
		free:    queue.NewSPSC[int](n),
		publish: queue.NewSPSC[int](n),
		log:     log,
	}
	for i := range p.slots {
		p.slots[i] = *grid.NewModel()
		p.free.Enqueue(i)
	}
	return p
}

// AcquireFree pulls a free slot index for the audio thread to write into.
// Returns false if the pool is starved — every slot is either published or
// awaiting pickup by the editor — in which case the caller should skip this
// beat's publish and log, never block.
func (p *Pool) AcquireFree() (int, bool) {
	i, ok := p.free.Dequeue()
	if !ok {
		p.log.Warn("snapshot pool starved: no free slot available")
		return 0, false
	}
	return i, true
}

// Slot returns a pointer to the model at index i, for the audio thread to
// populate after acquiring it, or the editor thread to read after taking it
// from Publish.
func (p *Pool) Slot(i int) *grid.Model {
	return &p.slots[i]
}

// Publish makes slot i the latest snapshot available to the editor thread.
// Called by the audio thread once it has finished writing the slot.
func (p *Pool) Publish(i int) {
	if !p.publish.Enqueue(i) {
		p.log.Warn("snapshot publish queue full, dropping snapshot", "slot", i)
		p.free.Enqueue(i)
	}
}

// TakePublished drains every published index, returning only the most
// recent one to the caller and immediately returning the stale ones to the
// free queue. Called by the editor thread; returns false if nothing has
// been published since the last call.
func (p *Pool) TakePublished() (int, bool) {
	latest, ok := p.publish.Dequeue()
	if !ok {
		return 0, false
	}
	for {
		next, ok := p.publish.Dequeue()
		if !ok {
			break
		}
		p.free.Enqueue(latest)
		latest = next
	}
	return latest, true
}

// Release returns a slot the editor thread is done reading back to the free
// queue, for the audio thread to reuse.
func (p *Pool) Release(i int) {
	p.free.Enqueue(i)
}

// Capacity returns the fixed number of slots the pool was constructed with.
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// FreeCount reports the approximate number of slots currently sitting in
// the free queue. Exposed for conservation checks (free + publish +
// in-flight == Capacity); like SPSC.Length, the value may be stale by the
// time it's observed.
func (p *Pool) FreeCount() int32 {
	return p.free.Length()
}

// PublishCount reports the approximate number of slots currently sitting in
// the publish queue, undrained by the editor thread.
func (p *Pool) PublishCount() int32 {
	return p.publish.Length()
}
