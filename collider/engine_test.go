package collider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdck/go-collider/collider/grid"
)

func TestEngineStepProducesSilenceWithEmptyProgram(t *testing.T) {
	e := New(44100, 120, nil)
	out := make([]float32, 256*2)
	e.AudioStep(out, 256)
	for _, f := range out {
		assert.Equal(t, float32(0), f)
	}
}

func TestEngineFramesRenderedAccumulates(t *testing.T) {
	e := New(44100, 120, nil)
	out := make([]float32, 128*2)
	e.AudioStep(out, 128)
	e.AudioStep(out, 128)
	assert.Equal(t, int64(256), e.FramesRendered())
}

func TestEngineEditorWriteReachesPublishedSnapshot(t *testing.T) {
	e := New(44100, 120, nil)
	p := grid.Point{X: 4, Y: 4}
	e.Editor.Write(p, grid.Literal(11))

	out := make([]float32, 64*2)
	e.AudioStep(out, 64)

	model, ok := e.Editor.TakePublishedSnapshot()
	assert.True(t, ok)
	assert.Equal(t, grid.Literal(11), model.At(p))
}

func TestNewWithProgramLoadsSavedMap(t *testing.T) {
	var storage grid.ModelStorage
	storage.Map[2][2] = grid.Literal(3)
	data := grid.Encode(storage)

	e, err := NewWithProgram(44100, 120, data, nil)
	assert.NoError(t, err)

	out := make([]float32, 64*2)
	e.AudioStep(out, 64)

	model, ok := e.Editor.TakePublishedSnapshot()
	assert.True(t, ok)
	assert.Equal(t, grid.Literal(3), model.At(grid.Point{X: 2, Y: 2}))
}

func TestEngineConservesSnapshotSlotsWithEditorConsuming(t *testing.T) {
	e := New(44100, 120, nil)
	out := make([]float32, 64*2)
	capacity := int32(e.pool.Capacity())

	// Once the editor has taken its first snapshot it permanently holds
	// exactly one slot (releasing the previous one each time it takes a
	// new one), so free+publish must always equal capacity-1 from then on.
	_, ok := e.Editor.TakePublishedSnapshot()
	assert.True(t, ok)

	for i := 0; i < 3*e.pool.Capacity(); i++ {
		e.AudioStep(out, 64)
		_, ok := e.Editor.TakePublishedSnapshot()
		assert.True(t, ok)
		assert.Equal(t, capacity-1, e.pool.FreeCount()+e.pool.PublishCount())
	}
}

func TestNewWithProgramRejectsBadSignature(t *testing.T) {
	_, err := NewWithProgram(44100, 120, []byte("not a valid program"), nil)
	assert.Error(t, err)
}
