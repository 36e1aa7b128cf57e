// Package audio implements the realtime audio engine: the beat clock, the
// grid interpreter's synth/sampler trigger points, envelopes, voice pools,
// the reverb, and the single per-callback mixer step that ties them
// together. Every exported entry point here runs on the audio thread and
// must never allocate, block, or take a lock once warmed up.
package audio

import (
	"log/slog"

	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/queue"
	"github.com/rdck/go-collider/collider/snapshot"
)

const queueCapacity = 1024

// bpmToPeriod converts a tempo into the number of audio frames between
// beats: eight subdivisions per quarter note at the given sample rate.
func bpmToPeriod(sampleRate int, bpm int32) int {
	if bpm <= 0 {
		bpm = 1
	}
	return (sampleRate * 60) / (int(bpm) * 8)
}

// Mixer owns every piece of audio-thread-only state: the voice pools, the
// reverb, the DSP globals, the palette, the beat clock, and the three SPSC
// queues the editor thread uses to reach it. Exactly one goroutine (the
// audio callback) may call Step.
type Mixer struct {
	sampleRate int
	log        *slog.Logger

	pool      *snapshot.Pool
	activeIdx int

	controlQueue *queue.SPSC[Control]
	inputQueue   *queue.SPSC[Input]
	loadQueue    *queue.SPSC[Load]

	params  Params
	palette *Palette

	synth   *SynthVoices
	sampler *SamplerVoices
	reverb  *Reverb

	frame int64
	graph grid.Graph
}

// NewMixer constructs a mixer wired to pool, with all voice pools and the
// reverb initialized at sampleRate.
func NewMixer(sampleRate int, pool *snapshot.Pool, log *slog.Logger) *Mixer {
	if log == nil {
		log = slog.Default()
	}
	activeIdx, ok := pool.AcquireFree()
	if !ok {
		panic("audio: snapshot pool has no slots to seed the mixer")
	}
	// Publish the seed slot immediately so it is reachable by the editor
	// thread (or recoverable via Release) from construction on, rather than
	// sitting outside both the free and publish queues until the first Step
	// call rebinds activeIdx to a different slot.
	pool.Publish(activeIdx)
	return &Mixer{
		sampleRate:   sampleRate,
		log:          log,
		pool:         pool,
		activeIdx:    activeIdx,
		controlQueue: queue.NewSPSC[Control](queueCapacity),
		inputQueue:   queue.NewSPSC[Input](queueCapacity),
		loadQueue:    queue.NewSPSC[Load](queueCapacity),
		params:       defaultParams(),
		palette:      &Palette{},
		synth:        NewSynthVoices(sampleRate),
		sampler:      NewSamplerVoices(sampleRate),
		reverb:       NewReverb(sampleRate),
	}
}

// EnqueueControl submits a control-queue message from the editor thread.
func (m *Mixer) EnqueueControl(c Control) bool { return m.controlQueue.Enqueue(c) }

// EnqueueInput submits an input-queue message from the editor thread.
func (m *Mixer) EnqueueInput(i Input) bool { return m.inputQueue.Enqueue(i) }

// EnqueueLoad submits a program load from the editor thread.
func (m *Mixer) EnqueueLoad(l Load) bool { return m.loadQueue.Enqueue(l) }

// BeatsElapsed returns the interpreter's beat counter on the currently
// active snapshot.
func (m *Mixer) BeatsElapsed() uint64 {
	return m.pool.Slot(m.activeIdx).Frame
}

// FramesRendered returns the total number of audio frames this mixer has
// produced since construction.
func (m *Mixer) FramesRendered() int64 {
	return m.frame
}

func (m *Mixer) applyControl(c Control) {
	switch c.Tag {
	case ControlTempo:
		m.params.TempoBPM = c.Tempo
	case ControlPalette:
		if c.Palette != nil {
			m.palette = c.Palette
		}
	case ControlSound:
		if c.SoundSlot >= 0 && int(c.SoundSlot) < len(m.palette.Sounds) {
			m.palette.Sounds[c.SoundSlot] = c.Sound
		}
	case ControlGlobalVolume:
		m.params.GlobalVolume = c.Parameter
	case ControlEnvelopeCoefficient:
		m.params.EnvelopeCoefficient = c.Parameter
	case ControlEnvelopeExponent:
		m.params.EnvelopeExponent = c.Parameter
	case ControlReverbStatus:
		m.params.ReverbOn = c.Flag
	case ControlReverbSize:
		m.params.ReverbSize = c.Parameter
		m.reverb.SetSize(c.Parameter)
	case ControlReverbCutoff:
		m.params.ReverbCutoffHz = c.Parameter
		m.reverb.SetCutoff(c.Parameter)
	case ControlReverbMix:
		m.params.ReverbMix = c.Parameter
	}
}

// Step renders frames stereo frames into out (len(out) == frames*2),
// draining every pending control/input/load message first. It never blocks:
// if the snapshot pool is starved it logs and leaves out silent.
func (m *Mixer) Step(out []float32, frames int) {
	for {
		c, ok := m.controlQueue.Dequeue()
		if !ok {
			break
		}
		m.applyControl(c)
	}

	for i := range out {
		out[i] = 0
	}

	nextIdx, ok := m.pool.AcquireFree()
	if !ok {
		m.log.Error("no free snapshot slot available, dropping audio callback")
		return
	}

	*m.pool.Slot(nextIdx) = *m.pool.Slot(m.activeIdx)
	m.activeIdx = nextIdx
	model := m.pool.Slot(m.activeIdx)

	for {
		l, ok := m.loadQueue.Dequeue()
		if !ok {
			break
		}
		model.Map = l.Storage.Map
	}

	for {
		in, ok := m.inputQueue.Dequeue()
		if !ok {
			break
		}
		switch in.Tag {
		case InputWrite:
			model.Set(in.Point, in.Value)
		case InputPower:
			v := model.At(in.Point)
			if v.IsOperator() {
				v.Powered = !v.Powered
				model.Set(in.Point, v)
			}
		case InputClear:
			model.Clear()
		}
	}

	period := bpmToPeriod(m.sampleRate, m.params.TempoBPM)
	elapsed := 0
	for elapsed < frames {
		residue := int(m.frame) % period
		delta := period - residue
		if remaining := frames - elapsed; delta > remaining {
			delta = remaining
		}
		if residue == 0 {
			grid.Step(model, &m.graph)
			m.triggerVoices(model)
		}
		m.renderPartial(out[stereo*elapsed:stereo*(elapsed+delta)], delta)
		elapsed += delta
		m.frame += int64(delta)
	}

	if m.params.ReverbOn {
		for i := 0; i < frames; i++ {
			l, r := out[stereo*i+0], out[stereo*i+1]
			wetL, wetR := m.reverb.Tick(l, r)
			mix := m.params.ReverbMix
			out[stereo*i+0] = (1-mix)*l + mix*wetL
			out[stereo*i+1] = (1-mix)*r + mix*wetR
		}
	}

	for i := 0; i < frames; i++ {
		out[stereo*i+0] *= m.params.GlobalVolume
		out[stereo*i+1] *= m.params.GlobalVolume
	}

	m.pool.Publish(m.activeIdx)
}

func (m *Mixer) renderPartial(out []float32, frames int) {
	m.synth.Render(out, frames, m.sampleRate)
	m.sampler.Render(out, frames, m.palette)
}

// triggerVoices scans the just-stepped model for SYNTH/SAMPLER cells
// adjacent to a bang and starts voices for them, reading their trigger
// parameters from the row of cells immediately west.
func (m *Mixer) triggerVoices(model *grid.Model) {
	west := grid.UnitVector(grid.West)
	for y := int32(0); y < grid.Height; y++ {
		for x := int32(0); x < grid.Width; x++ {
			origin := grid.Point{X: x, Y: y}
			value := model.At(origin)

			bang := false
			for d := grid.Direction(0); d < 4; d++ {
				if model.At(origin.Add(grid.UnitVector(d))).Tag == grid.TagBang {
					bang = true
					break
				}
			}
			if !bang {
				continue
			}

			switch value.Tag {
			case grid.TagSynth:
				m.triggerSynth(model, origin, west)
			case grid.TagSampler:
				m.triggerSampler(model, origin, west)
			}
		}
	}
}

func westOffset(west grid.Point, n int32) grid.Point {
	return west.Scale(n)
}

func (m *Mixer) triggerSynth(model *grid.Model, origin, west grid.Point) {
	octave := readAt(model, origin, westOffset(west, 6))
	pitch := readAt(model, origin, westOffset(west, 5))
	velocity := readAt(model, origin, westOffset(west, 4))
	attack := readAt(model, origin, westOffset(west, 3))
	hold := readAt(model, origin, westOffset(west, 2))
	release := readAt(model, origin, westOffset(west, 1))

	m.synth.Trigger(
		m.sampleRate, octave, pitch, velocity,
		m.params.curve(attack), m.params.curve(hold), m.params.curve(release),
	)
}

func (m *Mixer) triggerSampler(model *grid.Model, origin, west grid.Point) {
	soundIndex := readAtDefault(model, origin, westOffset(west, 7), indexNone)
	offset := readAt(model, origin, westOffset(west, 6))
	velocity := readAt(model, origin, westOffset(west, 5))
	attack := readAt(model, origin, westOffset(west, 4))
	hold := readAt(model, origin, westOffset(west, 3))
	release := readAt(model, origin, westOffset(west, 2))
	pitch := readAtDefault(model, origin, westOffset(west, 1), grid.Radix/2)

	if soundIndex == indexNone {
		return
	}
	sound := &m.palette.Sounds[soundIndex]
	m.sampler.Trigger(
		m.sampleRate, soundIndex, offset, velocity, pitch,
		m.params.curve(attack), m.params.curve(hold), m.params.curve(release),
		sound.Frames,
	)
}

func readAt(model *grid.Model, origin, offset grid.Point) int32 {
	return readAtDefault(model, origin, offset, 0)
}

func readAtDefault(model *grid.Model, origin, offset grid.Point, none int32) int32 {
	v := model.At(origin.Add(offset))
	if v.Tag == grid.TagLiteral {
		return v.Literal
	}
	return none
}
