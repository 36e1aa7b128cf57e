package audio

import (
	"math"

	"github.com/rdck/go-collider/collider/grid"
)

const (
	voiceCount      = 0x100
	referenceTone   = 440.0
	referenceRoot   = 33
	octaveSemitones = 12
	twelfthRootTwo  = 1.059463094359295264
	piF32           = 3.141592653589793238
	indexNone       = -1
	stereo          = 2
)

func toHz(pitch float32) float32 {
	power := pitch - referenceRoot
	return referenceTone * pow32(twelfthRootTwo, power)
}

// SynthVoice is one active oscillator triggered by a SYNTH cell: a plain
// sine tone at a fixed pitch, shaped by an AHR envelope.
type SynthVoice struct {
	Envelope Envelope
	Frame    int64
	Pitch    int32
	Volume   float32
}

func (v *SynthVoice) render(out []float32, frames int, sampleRate int) {
	hz := toHz(float32(v.Pitch))
	for i := 0; i < frames; i++ {
		volume := v.Envelope.Tick(0)
		current := v.Frame + int64(i)
		sample := float32(math.Sin(float64(hz) * piF32 * float64(current) / float64(sampleRate)))
		out[stereo*i+0] += sample * volume * v.Volume
		out[stereo*i+1] += sample * volume * v.Volume
	}
	v.Frame += int64(frames)
}

// SamplerVoice is one active playback of a palette Sound, pitch-shifted by
// resampling and shaped by its own AHR envelope.
type SamplerVoice struct {
	Envelope Envelope
	Frame    float64
	Sound    int32 // indexNone when idle
	Pitch    int32
	Volume   float32
}

func (v *SamplerVoice) render(out []float32, frames int, sound *Sound) {
	rate := pow32(twelfthRootTwo, float32(v.Pitch))
	if sound.Frames > 0 {
		for i := 0; i < frames; i++ {
			volume := v.Envelope.Tick(0) * v.Volume
			head := float64(rate) * (v.Frame + float64(i))
			integral, fractional := math.Modf(head)
			idx := int(integral)
			if idx < sound.Frames-1 {
				lhs := lerp32(sound.Interleaved[stereo*idx+0], sound.Interleaved[stereo*idx+2], float32(fractional))
				rhs := lerp32(sound.Interleaved[stereo*idx+1], sound.Interleaved[stereo*idx+3], float32(fractional))
				out[stereo*i+0] += volume * lhs
				out[stereo*i+1] += volume * rhs
			}
		}
	}
	v.Frame += float64(frames)
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// voicePool is a fixed-capacity free-index stack shared by both the synth
// and sampler pools: voices are handed out by popping an index and returned
// by pushing it back once their envelope idles.
type voicePool struct {
	free []int32
}

func newVoicePool(n int) voicePool {
	p := voicePool{free: make([]int32, 0, n)}
	for i := n - 1; i >= 0; i-- {
		p.free = append(p.free, int32(i))
	}
	return p
}

func (p *voicePool) acquire() int32 {
	if len(p.free) == 0 {
		return indexNone
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return i
}

func (p *voicePool) release(i int32) {
	if i >= 0 && len(p.free) < cap(p.free) {
		p.free = append(p.free, i)
	}
}

// SynthVoices is the fixed-size pool of polyphonic synth voices.
type SynthVoices struct {
	voices [voiceCount]SynthVoice
	pool   voicePool
}

// NewSynthVoices returns a pool with every voice idle at the given sample
// rate.
func NewSynthVoices(sampleRate int) *SynthVoices {
	s := &SynthVoices{pool: newVoicePool(voiceCount)}
	for i := range s.voices {
		s.voices[i].Envelope.Init(sampleRate)
	}
	return s
}

// Trigger starts a new synth voice with the given curved envelope stage
// durations (in seconds), returning false if the pool has no free slot.
func (s *SynthVoices) Trigger(sampleRate int, octave, pitch, velocity int32, attack, hold, release float32) bool {
	i := s.pool.acquire()
	if i == indexNone {
		return false
	}
	v := &s.voices[i]
	v.Envelope.Init(sampleRate)
	v.Envelope.SetAttack(attack)
	v.Envelope.SetHold(hold)
	v.Envelope.SetRelease(release)
	v.Envelope.Tick(1.0)
	v.Frame = 0
	v.Pitch = octaveSemitones*octave + pitch
	v.Volume = float32(velocity) / grid.Radix
	return true
}

// Render mixes every active voice's contribution into out and reaps any
// that have gone idle.
func (s *SynthVoices) Render(out []float32, frames int, sampleRate int) {
	for i := range s.voices {
		v := &s.voices[i]
		if v.Envelope.mode != envelopeZero {
			v.render(out, frames, sampleRate)
			if v.Envelope.IsIdle() {
				*v = SynthVoice{}
				s.pool.release(int32(i))
			}
		}
	}
}

// SamplerVoices is the fixed-size pool of polyphonic sampler voices.
type SamplerVoices struct {
	voices [voiceCount]SamplerVoice
	pool   voicePool
}

// NewSamplerVoices returns a pool with every voice idle at the given sample
// rate.
func NewSamplerVoices(sampleRate int) *SamplerVoices {
	s := &SamplerVoices{pool: newVoicePool(voiceCount)}
	for i := range s.voices {
		s.voices[i].Envelope.Init(sampleRate)
		s.voices[i].Sound = indexNone
	}
	return s
}

// Trigger starts a new sampler voice if the pool has a free slot and the
// requested sound index is valid, returning false otherwise. pitch is given
// relative to the radix midpoint, matching a raw grid literal input.
func (s *SamplerVoices) Trigger(sampleRate int, soundIndex, offset, velocity, pitch int32, attack, hold, release float32, soundFrames int) bool {
	if soundIndex == indexNone {
		return false
	}
	i := s.pool.acquire()
	if i == indexNone {
		return false
	}
	v := &s.voices[i]
	v.Envelope.Init(sampleRate)
	v.Envelope.SetAttack(attack)
	v.Envelope.SetHold(hold)
	v.Envelope.SetRelease(release)
	v.Envelope.Tick(1.0)
	v.Frame = float64(int64(offset) * int64(soundFrames) / grid.Radix)
	v.Sound = soundIndex
	v.Pitch = pitch - grid.Radix/2
	v.Volume = float32(velocity) / grid.Radix
	return true
}

// Render mixes every active voice's contribution into out and reaps any
// that have gone idle.
func (s *SamplerVoices) Render(out []float32, frames int, palette *Palette) {
	for i := range s.voices {
		v := &s.voices[i]
		if v.Sound != indexNone {
			v.render(out, frames, &palette.Sounds[v.Sound])
			if v.Envelope.IsIdle() {
				*v = SamplerVoice{Sound: indexNone}
				s.pool.release(int32(i))
			}
		}
	}
}
