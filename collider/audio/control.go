package audio

import "github.com/rdck/go-collider/collider/grid"

// ControlTag identifies the kind of message on the editor→audio control
// queue: global parameter changes and palette swaps that don't touch the
// active program directly.
type ControlTag int

const (
	ControlTempo ControlTag = iota
	ControlPalette
	ControlSound
	ControlGlobalVolume
	ControlEnvelopeCoefficient
	ControlEnvelopeExponent
	ControlReverbStatus
	ControlReverbSize
	ControlReverbCutoff
	ControlReverbMix
)

// Control is one editor→audio control-queue message. Only the fields
// relevant to Tag are meaningful.
type Control struct {
	Tag       ControlTag
	Tempo     int32
	Palette   *Palette
	SoundSlot int32
	Sound     Sound
	Parameter float32
	Flag      bool
}

// InputTag identifies the kind of message on the editor→audio input queue:
// direct edits to the active program.
type InputTag int

const (
	InputWrite InputTag = iota
	InputPower
	InputClear
)

// Input is one editor→audio input-queue message.
type Input struct {
	Tag   InputTag
	Point grid.Point
	Value grid.Value
}

// Load carries a persisted program onto the load queue, applied to the
// active snapshot's map the next time the audio thread drains it.
type Load struct {
	Storage grid.ModelStorage
}
