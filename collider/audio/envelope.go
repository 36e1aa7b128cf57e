package audio

import "math"

// envelopeEPS is the threshold below which a segment is considered to have
// finished settling, carried unchanged from the reference envelope's pole
// calculations.
const envelopeEPS = 5e-8

type envelopeMode int

const (
	envelopeZero envelopeMode = iota
	envelopeAttack
	envelopeHold
	envelopeRelease
)

// Envelope is an attack/hold/release generator built from exponential
// one-pole segments: the attack and release legs each converge toward their
// target at a rate set by a pole recomputed only when the corresponding
// duration changes, and the hold leg is a simple frame counter.
type Envelope struct {
	sampleRate int

	attack  float32
	hold    float32
	release float32

	prevAttack  float32
	prevHold    float32
	prevRelease float32

	attackPole  float32
	releasePole float32

	timer float32
	inc   float32
	prev  float32
	mode  envelopeMode
}

// Init resets the envelope to idle at the given sample rate, with short
// default stage durations matching the reference generator's startup state.
func (e *Envelope) Init(sampleRate int) {
	*e = Envelope{sampleRate: sampleRate}
	e.SetAttack(0.1)
	e.prevAttack = -1
	e.SetRelease(0.1)
	e.prevRelease = -1
	e.SetHold(0.1)
	e.prevHold = -1
}

// SetAttack, SetHold, and SetRelease configure the three stage durations in
// seconds. They take effect the next time the corresponding stage is
// (re)entered.
func (e *Envelope) SetAttack(seconds float32)  { e.attack = seconds }
func (e *Envelope) SetHold(seconds float32)    { e.hold = seconds }
func (e *Envelope) SetRelease(seconds float32) { e.release = seconds }

// IsIdle reports whether the envelope has fully settled to zero.
func (e *Envelope) IsIdle() bool {
	return e.mode == envelopeZero
}

// Tick advances the envelope by one sample and returns its output. A
// non-zero trig retriggers the attack stage regardless of current mode.
func (e *Envelope) Tick(trig float32) float32 {
	var out float32

	if trig != 0 {
		e.mode = envelopeAttack
		if e.prevAttack != e.attack {
			e.prevAttack = e.attack
			e.attackPole = float32(math.Exp(-1.0 / float64(e.attack*float32(e.sampleRate))))
		}
	}

	switch e.mode {
	case envelopeZero:
		// stays at zero until retriggered

	case envelopeAttack:
		out = e.attackPole*e.prev + (1.0 - e.attackPole)
		if out-e.prev <= envelopeEPS {
			e.mode = envelopeHold
			e.timer = 0
			if e.prevHold != e.hold {
				if e.hold <= 0 {
					e.inc = 1.0
				} else {
					e.prevHold = e.hold
					e.inc = 1.0 / (e.hold * float32(e.sampleRate))
				}
			}
		}
		e.prev = out

	case envelopeHold:
		out = e.prev
		e.timer += e.inc
		if e.timer >= 1.0 {
			e.mode = envelopeRelease
			if e.prevRelease != e.release {
				e.prevRelease = e.release
				e.releasePole = float32(math.Exp(-1.0 / float64(e.release*float32(e.sampleRate))))
			}
		}

	case envelopeRelease:
		out = e.releasePole * e.prev
		e.prev = out
		if out <= envelopeEPS {
			e.mode = envelopeZero
		}
	}

	return out
}
