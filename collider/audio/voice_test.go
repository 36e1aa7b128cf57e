package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthVoicesTriggerAndRender(t *testing.T) {
	sr := 44100
	v := NewSynthVoices(sr)
	ok := v.Trigger(sr, 2, 0, 36, 0.01, 0.01, 0.01)
	assert.True(t, ok)

	out := make([]float32, 64*stereo)
	v.Render(out, 64, sr)

	nonZero := false
	for _, f := range out {
		if f != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestSynthVoicesExhaustionReturnsFalse(t *testing.T) {
	sr := 44100
	v := NewSynthVoices(sr)
	for i := 0; i < voiceCount; i++ {
		assert.True(t, v.Trigger(sr, 0, 0, 36, 10, 10, 10))
	}
	assert.False(t, v.Trigger(sr, 0, 0, 36, 10, 10, 10))
}

func TestSamplerVoicesRejectsMissingSound(t *testing.T) {
	sr := 44100
	v := NewSamplerVoices(sr)
	ok := v.Trigger(sr, indexNone, 0, 36, 18, 0.01, 0.01, 0.01, 0)
	assert.False(t, ok)
}

func TestSamplerVoicesTriggerAndRender(t *testing.T) {
	sr := 44100
	v := NewSamplerVoices(sr)
	palette := &Palette{}
	palette.Sounds[3] = Sound{Frames: 4, Interleaved: []float32{1, 1, 0.5, 0.5, 0, 0, -0.5, -0.5}}

	ok := v.Trigger(sr, 3, 0, 36, 18, 0.01, 0.01, 0.01, palette.Sounds[3].Frames)
	assert.True(t, ok)

	out := make([]float32, 4*stereo)
	v.Render(out, 4, palette)

	assert.NotEqual(t, float32(0), out[0])
}

func TestToHzMatchesReferenceTone(t *testing.T) {
	assert.InDelta(t, float64(referenceTone), float64(toHz(referenceRoot)), 0.01)
}
