// Package backend defines the core-facing contract a concrete frontend
// (terminal, headless batch runner) implements to drive the editor: poll for
// input, render the latest published snapshot, and report lifecycle events
// back to the caller.
package backend

import (
	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
)

// InputEvent is one action/event pair a backend observed during Update.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete frontend: rendering plus input capture.
// Implementations are responsible for:
//   - polling platform-specific events and translating them to InputEvents
//   - rendering the provided snapshot to their output (terminal cells,
//     a log line, nothing at all for batch runs)
//   - backend-specific lifecycle features (snapshotting, frame limits)
type Backend interface {
	// Init configures the backend. Required before the first Update call.
	Init(config Config) error

	// Update renders model and returns any InputEvents collected since the
	// previous call.
	Update(model *grid.Model) ([]InputEvent, error)

	// Cleanup releases backend resources on shutdown.
	Cleanup() error
}

// Config holds the configuration common to every backend.
type Config struct {
	Title      string
	SampleRate int
	Tempo      int32
}
