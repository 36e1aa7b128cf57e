package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdck/go-collider/collider/audio"
	"github.com/rdck/go-collider/collider/grid"
	"github.com/rdck/go-collider/collider/snapshot"
)

func newTestEditor(t *testing.T) (*Editor, *audio.Mixer, *snapshot.Pool) {
	t.Helper()
	pool := snapshot.NewPool(8, nil)
	mixer := audio.NewMixer(44100, pool, nil)
	return NewEditor(mixer, pool, nil), mixer, pool
}

func TestEditorMoveCursorClampsToBounds(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.MoveCursor(grid.Point{X: -5, Y: -5})
	assert.Equal(t, grid.Point{X: 0, Y: 0}, e.Cursor())

	e.MoveCursor(grid.Point{X: grid.Width + 10, Y: grid.Height + 10})
	assert.Equal(t, grid.Point{X: grid.Width - 1, Y: grid.Height - 1}, e.Cursor())
}

func TestEditorWriteAtCursorReachesModelAfterStep(t *testing.T) {
	e, m, _ := newTestEditor(t)
	e.MoveCursor(grid.Point{X: 3, Y: 3})
	e.WriteAtCursor(grid.Literal(5))

	out := make([]float32, 64*2)
	m.Step(out, 64)

	published, ok := e.TakePublishedSnapshot()
	assert.True(t, ok)
	assert.Equal(t, grid.Literal(5), published.At(grid.Point{X: 3, Y: 3}))
}

func TestEditorTakePublishedSnapshotReleasesPrevious(t *testing.T) {
	e, m, pool := newTestEditor(t)
	out := make([]float32, 64*2)
	m.Step(out, 64)

	first, ok := e.TakePublishedSnapshot()
	assert.True(t, ok)
	assert.NotNil(t, first)

	m.Step(out, 64)
	second, ok := e.TakePublishedSnapshot()
	assert.True(t, ok)
	assert.NotNil(t, second)

	// The editor holds exactly one slot; the first one it took went back to
	// the free queue when it took the second.
	assert.Equal(t, int32(pool.Capacity()-1), pool.FreeCount()+pool.PublishCount())
}

func TestEditorTakePublishedSnapshotFalseWhenNothingNew(t *testing.T) {
	e, _, pool := newTestEditor(t)
	// NewMixer publishes its seed slot; take it off the publish queue so the
	// editor has nothing published to pick up.
	_, ok := pool.TakePublished()
	assert.True(t, ok)

	_, ok = e.TakePublishedSnapshot()
	assert.False(t, ok)
}

func TestEditorSaveRoundTripsThroughDecode(t *testing.T) {
	e, m, _ := newTestEditor(t)
	e.MoveCursor(grid.Point{X: 1, Y: 1})
	e.WriteAtCursor(grid.Literal(9))

	out := make([]float32, 64*2)
	m.Step(out, 64)

	data, ok := e.Save()
	assert.True(t, ok)

	storage, err := grid.Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, grid.Literal(9), storage.Map[1][1])
}
