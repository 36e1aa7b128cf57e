package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := NewModel()
	m.Set(Point{X: 2, Y: 3}, Literal(11))
	m.Set(Point{X: 0, Y: 0}, Value{Tag: TagAdd, Powered: true})
	m.Registers[5] = Literal(22)

	encoded := Encode(m.Snapshot())
	decoded, err := Decode(encoded)
	assert.NoError(t, err)

	assert.Equal(t, m.Map, decoded.Map)
	assert.Equal(t, m.Registers, decoded.Registers)
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	m := NewModel()
	encoded := Encode(m.Snapshot())
	encoded[0] = 'x'
	_, err := Decode(encoded)
	assert.Error(t, err)
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	m := NewModel()
	encoded := Encode(m.Snapshot())
	encoded[len(signature)] = 99
	_, err := Decode(encoded)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	m := NewModel()
	encoded := Encode(m.Snapshot())
	_, err := Decode(encoded[:len(encoded)-4])
	assert.Error(t, err)
}

func TestRestoreLeavesFrameAndRNGUntouched(t *testing.T) {
	m := NewModel()
	m.Frame = 99
	m.RNG.Next()
	rngBefore := m.RNG

	s := ModelStorage{}
	s.Registers[0] = Literal(3)
	m.Restore(s)

	assert.Equal(t, uint64(99), m.Frame)
	assert.Equal(t, rngBefore, m.RNG)
	assert.Equal(t, Literal(3), m.Registers[0])
}
