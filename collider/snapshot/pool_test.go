package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPoolStartsWithAllSlotsFree(t *testing.T) {
	p := NewPool(4, nil)
	count := 0
	for {
		if _, ok := p.AcquireFree(); ok {
			count++
		} else {
			break
		}
	}
	assert.Equal(t, 4, count)
}

func TestAcquirePublishTakeRoundTrip(t *testing.T) {
	p := NewPool(4, nil)
	i, ok := p.AcquireFree()
	assert.True(t, ok)

	p.Slot(i).Frame = 7
	p.Publish(i)

	taken, ok := p.TakePublished()
	assert.True(t, ok)
	assert.Equal(t, i, taken)
	assert.Equal(t, uint64(7), p.Slot(taken).Frame)
}

func TestTakePublishedReturnsOnlyLatestAndRecyclesStale(t *testing.T) {
	p := NewPool(4, nil)

	a, _ := p.AcquireFree()
	p.Publish(a)
	b, _ := p.AcquireFree()
	p.Publish(b)
	c, _ := p.AcquireFree()
	p.Publish(c)

	taken, ok := p.TakePublished()
	assert.True(t, ok)
	assert.Equal(t, c, taken)

	// a and b return to free; along with the one remaining free slot, that's 3
	free := 0
	for {
		if _, ok := p.AcquireFree(); ok {
			free++
		} else {
			break
		}
	}
	assert.Equal(t, 3, free)
}

func TestTakePublishedEmptyReportsFalse(t *testing.T) {
	p := NewPool(4, nil)
	_, ok := p.TakePublished()
	assert.False(t, ok)
}

func TestSlotCountConservedAcrossFreePublishRelease(t *testing.T) {
	const n = 8
	p := NewPool(n, nil)

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		idx, ok := p.AcquireFree()
		assert.True(t, ok)
		seen[idx] = true
	}
	assert.Len(t, seen, n)

	for idx := range seen {
		p.Publish(idx)
	}
	taken, ok := p.TakePublished()
	assert.True(t, ok)
	p.Release(taken)

	recovered := 0
	for {
		if _, ok := p.AcquireFree(); ok {
			recovered++
		} else {
			break
		}
	}
	assert.Equal(t, n, recovered)
}
