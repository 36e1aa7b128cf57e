package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlQueueMessagesCarryExpectedFields(t *testing.T) {
	c := Control{Tag: ControlGlobalVolume, Parameter: 0.5}
	assert.Equal(t, ControlGlobalVolume, c.Tag)
	assert.Equal(t, float32(0.5), c.Parameter)
}

func TestInputQueueMessageDefaultsToZeroValue(t *testing.T) {
	var i Input
	assert.Equal(t, InputWrite, i.Tag)
}
