// Package input translates frontend key/pointer events into editor actions
// and, ultimately, into the messages collider/audio.Mixer consumes.
package input

import (
	"time"

	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
)

// debounceDuration is the minimum spacing between repeated Press/Release
// events for the same action, so a held key doesn't flood the editor.
const debounceDuration = 150 * time.Millisecond

// Manager dispatches bound callbacks for action/event pairs, debouncing
// discrete actions while letting continuous (Hold) ones through every tick.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
}

// NewManager returns an empty Manager ready for On/Trigger calls.
func NewManager() *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
	}
}

// On registers callback to run whenever act fires with event type evt.
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger runs every callback bound to act/evt, respecting the debounce
// window for discrete actions (per action.Info.Debounce) and for Hold events
// is always delivered immediately.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if evt != event.Hold && action.GetInfo(act).Debounce {
		now := time.Now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if now.Sub(m.lastTriggered[act][evt]) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
