package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdck/go-collider/collider/grid"
)

func TestPaletteHasOneSlotPerDigit(t *testing.T) {
	var p Palette
	assert.Len(t, p.Sounds, grid.Radix)
}

func TestPaletteSlotDefaultsToEmptySound(t *testing.T) {
	var p Palette
	assert.Equal(t, 0, p.Sounds[0].Frames)
	assert.Nil(t, p.Sounds[0].Interleaved)
}
