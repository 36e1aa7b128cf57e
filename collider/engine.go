// Package collider wires the grid interpreter, the snapshot pool, the audio
// mixer, and the editor-facing input surface into the one entry point a
// frontend (terminal, headless runner, oto device callback) needs: submit
// edits through Editor, pull audio through AudioStep.
package collider

import (
	"log/slog"

	"github.com/rdck/go-collider/collider/audio"
	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/input"
	"github.com/rdck/go-collider/collider/snapshot"
)

// Engine owns the audio thread's mixer and the shared snapshot pool, and
// exposes the editor thread's Editor for cursor/keystroke-driven edits.
type Engine struct {
	mixer  *audio.Mixer
	pool   *snapshot.Pool
	Editor *input.Editor
	log    *slog.Logger
}

// New constructs an engine with an empty program, running at sampleRate and
// tempoBPM.
func New(sampleRate int, tempoBPM int32, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	pool := snapshot.NewPool(snapshot.DefaultSlots, log)
	mixer := audio.NewMixer(sampleRate, pool, log)
	mixer.EnqueueControl(audio.Control{Tag: audio.ControlTempo, Tempo: tempoBPM})
	return &Engine{
		mixer:  mixer,
		pool:   pool,
		Editor: input.NewEditor(mixer, pool, log),
		log:    log,
	}
}

// NewWithProgram constructs an engine and loads a previously saved program
// into it before returning, so the first AudioStep call already has it
// applied.
func NewWithProgram(sampleRate int, tempoBPM int32, data []byte, log *slog.Logger) (*Engine, error) {
	storage, err := grid.Decode(data)
	if err != nil {
		return nil, err
	}
	e := New(sampleRate, tempoBPM, log)
	e.Editor.Load(storage)
	return e, nil
}

// AudioStep renders frames stereo frames into out, from the audio device's
// pull-style callback. Safe to call only from the audio thread.
func (e *Engine) AudioStep(out []float32, frames int) {
	e.mixer.Step(out, frames)
}

// FramesRendered returns the total audio frames rendered since construction.
func (e *Engine) FramesRendered() int64 {
	return e.mixer.FramesRendered()
}

// BeatsElapsed returns the interpreter's beat counter on the active
// snapshot.
func (e *Engine) BeatsElapsed() uint64 {
	return e.mixer.BeatsElapsed()
}
