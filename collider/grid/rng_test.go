package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCG32IsDeterministicForAGivenSeed(t *testing.T) {
	a := NewPCG32(1)
	b := NewPCG32(1)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestPCG32DiffersAcrossSeeds(t *testing.T) {
	a := NewPCG32(1)
	b := NewPCG32(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestPCG32SeedResetsStream(t *testing.T) {
	r := NewPCG32(7)
	first := r.Next()
	r.Seed(7)
	assert.Equal(t, first, r.Next())
}
