package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/input/action"
	"github.com/rdck/go-collider/collider/input/event"
)

func TestHeadlessQuitsAfterMaxBeats(t *testing.T) {
	h := NewHeadless(3, nil)
	assert.NoError(t, h.Init(Config{Title: "test"}))

	model := grid.NewModel()
	for i := 0; i < 3; i++ {
		events, err := h.Update(model)
		assert.NoError(t, err)
		assert.Empty(t, events)
		model.Frame++
	}

	events, err := h.Update(model)
	assert.NoError(t, err)
	assert.Equal(t, []InputEvent{{Action: action.Quit, Type: event.Press}}, events)

	assert.NoError(t, h.Cleanup())
}

func TestHeadlessTracksElapsedFromStartingFrame(t *testing.T) {
	h := NewHeadless(2, nil)
	assert.NoError(t, h.Init(Config{}))

	model := grid.NewModel()
	model.Frame = 100

	events, err := h.Update(model)
	assert.NoError(t, err)
	assert.Empty(t, events)

	model.Frame = 101
	events, err = h.Update(model)
	assert.NoError(t, err)
	assert.Empty(t, events)

	model.Frame = 102
	events, err = h.Update(model)
	assert.NoError(t, err)
	assert.NotEmpty(t, events)
}
