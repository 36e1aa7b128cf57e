package main

import (
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/rdck/go-collider/collider"
)

// stereo matches the interleaved frame layout Engine.AudioStep produces.
const stereo = 2

// Device is the pull-style audio output backend: oto calls Read from its
// own callback thread whenever it needs more samples, and Read renders them
// directly from the engine with no intermediate buffering beyond the one
// oto asks for.
type Device struct {
	ctx        *oto.Context
	player     *oto.Player
	engine     *collider.Engine
	sampleRate int
	scratch    []float32
}

// NewDevice opens an oto playback context at sampleRate and wires it to
// pull frames from engine.
func NewDevice(engine *collider.Engine, sampleRate int) (*Device, error) {
	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: stereo,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4096,
	}

	ctx, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, err
	}
	<-ready

	d := &Device{ctx: ctx, engine: engine, sampleRate: sampleRate}
	d.player = ctx.NewPlayer(d)
	return d, nil
}

// Read implements io.Reader for oto's Player: p holds little-endian
// interleaved float32 stereo samples, len(p) a multiple of 4*stereo bytes.
func (d *Device) Read(p []byte) (int, error) {
	frames := len(p) / (4 * stereo)
	if frames == 0 {
		return 0, nil
	}

	needed := frames * stereo
	if cap(d.scratch) < needed {
		d.scratch = make([]float32, needed)
	}
	samples := d.scratch[:needed]

	d.engine.AudioStep(samples, frames)

	for i, s := range samples {
		bits := math.Float32bits(s)
		p[4*i+0] = byte(bits)
		p[4*i+1] = byte(bits >> 8)
		p[4*i+2] = byte(bits >> 16)
		p[4*i+3] = byte(bits >> 24)
	}

	return frames * 4 * stereo, nil
}

// Start begins playback.
func (d *Device) Start() {
	d.player.Play()
}

// Close stops playback and releases the player.
func (d *Device) Close() error {
	return d.player.Close()
}
