package audio

import "github.com/rdck/go-collider/collider/grid"

// Sound is one decoded, stereo-interleaved PCM sample, externally immutable
// once handed to the audio thread.
type Sound struct {
	Frames      int
	Interleaved []float32 // len == Frames*2, L/R interleaved
}

// Palette maps the digit index a SAMPLER voice reads (0..Radix-1) to at most
// one loaded Sound.
type Palette struct {
	Sounds [grid.Radix]Sound
}
