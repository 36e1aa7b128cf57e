package input

import (
	"log/slog"

	"github.com/rdck/go-collider/collider/audio"
	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/snapshot"
)

// Editor is the editor thread's entire view of the running instrument: a
// cursor into the program grid, the queues to reach the audio thread, and
// the last published snapshot it was handed for rendering. It calls
// enqueue_* and TakePublishedSnapshot, may block on frontend events, and
// never touches audio-thread-only state directly.
type Editor struct {
	mixer  *audio.Mixer
	pool   *snapshot.Pool
	log    *slog.Logger
	cursor grid.Point

	currentIdx  int
	haveCurrent bool
}

// NewEditor wraps mixer/pool as the editor-facing surface.
func NewEditor(mixer *audio.Mixer, pool *snapshot.Pool, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{mixer: mixer, pool: pool, log: log}
}

// Cursor returns the editor's current cursor position.
func (e *Editor) Cursor() grid.Point { return e.cursor }

// MoveCursor offsets the cursor by delta, clamping to the grid bounds.
func (e *Editor) MoveCursor(delta grid.Point) {
	p := e.cursor.Add(delta)
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= grid.Width {
		p.X = grid.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= grid.Height {
		p.Y = grid.Height - 1
	}
	e.cursor = p
}

// Write submits a cell write at p.
func (e *Editor) Write(p grid.Point, v grid.Value) {
	if !e.mixer.EnqueueInput(audio.Input{Tag: audio.InputWrite, Point: p, Value: v}) {
		e.log.Warn("input queue full, dropped write", "point", p)
	}
}

// WriteAtCursor writes v under the cursor.
func (e *Editor) WriteAtCursor(v grid.Value) {
	e.Write(e.cursor, v)
}

// TogglePowerAtCursor toggles the powered flag of the operator under the
// cursor; a no-op on non-operator cells, mirroring the audio thread's own
// guard.
func (e *Editor) TogglePowerAtCursor() {
	if !e.mixer.EnqueueInput(audio.Input{Tag: audio.InputPower, Point: e.cursor}) {
		e.log.Warn("input queue full, dropped power toggle", "point", e.cursor)
	}
}

// ClearCellAtCursor writes an empty cell at the cursor.
func (e *Editor) ClearCellAtCursor() {
	e.Write(e.cursor, grid.None)
}

// ClearProgram wipes the entire map, leaving registers and the beat clock
// untouched.
func (e *Editor) ClearProgram() {
	if !e.mixer.EnqueueInput(audio.Input{Tag: audio.InputClear}) {
		e.log.Warn("input queue full, dropped clear")
	}
}

// Load replaces the active model's map with storage's, as a runtime patch
// rather than a fresh model (registers and the beat clock survive).
func (e *Editor) Load(storage grid.ModelStorage) {
	if !e.mixer.EnqueueLoad(audio.Load{Storage: storage}) {
		e.log.Warn("load queue full, dropped program load")
	}
}

// Save encodes the most recently published snapshot's map and registers
// into the on-disk format, returning false if nothing has been published
// yet.
func (e *Editor) Save() ([]byte, bool) {
	model, ok := e.TakePublishedSnapshot()
	if !ok {
		return nil, false
	}
	return grid.Encode(model.Snapshot()), true
}

// SetTempo submits a tempo change in beats per minute.
func (e *Editor) SetTempo(bpm int32) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlTempo, Tempo: bpm})
}

// SetGlobalVolume submits a global volume change.
func (e *Editor) SetGlobalVolume(v float32) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlGlobalVolume, Parameter: v})
}

// SetReverbOn toggles the reverb stage.
func (e *Editor) SetReverbOn(on bool) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlReverbStatus, Flag: on})
}

// SetReverbMix submits a dry/wet reverb mix change.
func (e *Editor) SetReverbMix(mix float32) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlReverbMix, Parameter: mix})
}

// SetReverbSize submits a reverb room-size change.
func (e *Editor) SetReverbSize(size float32) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlReverbSize, Parameter: size})
}

// SetReverbCutoff submits a reverb lowpass cutoff change, in Hz.
func (e *Editor) SetReverbCutoff(hz float32) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlReverbCutoff, Parameter: hz})
}

// SetSound installs a decoded sound into the palette at slot.
func (e *Editor) SetSound(slot int32, s audio.Sound) {
	e.mixer.EnqueueControl(audio.Control{Tag: audio.ControlSound, SoundSlot: slot, Sound: s})
}

// TakePublishedSnapshot returns the most recently published model for
// rendering, releasing any previously held snapshot back to the pool first.
// If nothing new has been published since the last call, it returns the
// snapshot it already holds; it returns false only when it holds none and
// nothing has been published.
func (e *Editor) TakePublishedSnapshot() (*grid.Model, bool) {
	idx, ok := e.pool.TakePublished()
	if !ok {
		if e.haveCurrent {
			return e.pool.Slot(e.currentIdx), true
		}
		return nil, false
	}
	if e.haveCurrent {
		e.pool.Release(e.currentIdx)
	}
	e.currentIdx = idx
	e.haveCurrent = true
	return e.pool.Slot(e.currentIdx), true
}
