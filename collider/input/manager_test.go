package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
)

func TestManagerTriggersBoundCallback(t *testing.T) {
	m := NewManager()
	calls := 0
	m.On(action.CursorUp, event.Hold, func() { calls++ })
	m.Trigger(action.CursorUp, event.Hold)
	m.Trigger(action.CursorUp, event.Hold)
	assert.Equal(t, 2, calls)
}

func TestManagerDebouncesDiscreteAction(t *testing.T) {
	m := NewManager()
	calls := 0
	m.On(action.TogglePower, event.Press, func() { calls++ })
	m.Trigger(action.TogglePower, event.Press)
	m.Trigger(action.TogglePower, event.Press)
	assert.Equal(t, 1, calls)
}

func TestManagerAllowsRetriggerAfterDebounceWindow(t *testing.T) {
	m := NewManager()
	calls := 0
	m.On(action.TogglePower, event.Press, func() { calls++ })
	m.Trigger(action.TogglePower, event.Press)
	time.Sleep(debounceDuration + 10*time.Millisecond)
	m.Trigger(action.TogglePower, event.Press)
	assert.Equal(t, 2, calls)
}

func TestManagerUnboundActionIsNoOp(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Trigger(action.Quit, event.Press) })
}
