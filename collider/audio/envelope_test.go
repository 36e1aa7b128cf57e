package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeIsIdleBeforeTrigger(t *testing.T) {
	var e Envelope
	e.Init(44100)
	assert.True(t, e.IsIdle())
	assert.Equal(t, float32(0), e.Tick(0))
}

func TestEnvelopeRisesMonotonicallyDuringAttack(t *testing.T) {
	var e Envelope
	e.Init(44100)
	e.SetAttack(0.01)
	e.SetHold(0.01)
	e.SetRelease(0.01)

	prev := e.Tick(1.0)
	for i := 0; i < 50; i++ {
		out := e.Tick(0)
		if e.mode != envelopeAttack {
			break
		}
		assert.GreaterOrEqual(t, out, prev)
		prev = out
	}
}

func TestEnvelopeEventuallyReturnsToIdle(t *testing.T) {
	var e Envelope
	e.Init(44100)
	e.SetAttack(0.001)
	e.SetHold(0.001)
	e.SetRelease(0.001)
	e.Tick(1.0)

	idled := false
	for i := 0; i < 44100; i++ {
		e.Tick(0)
		if e.IsIdle() {
			idled = true
			break
		}
	}
	assert.True(t, idled)
}

func TestEnvelopeRetriggerRestartsAttack(t *testing.T) {
	var e Envelope
	e.Init(44100)
	e.SetAttack(0.01)
	e.SetHold(10)
	e.SetRelease(0.01)
	e.Tick(1.0)
	for i := 0; i < 1000; i++ {
		e.Tick(0)
	}
	e.Tick(1.0)
	assert.Equal(t, envelopeAttack, e.mode)
}
