package orchestrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardSingleFlight(t *testing.T) {
	var g Guard

	assert.False(t, g.Busy())
	assert.True(t, g.TryEnter())
	assert.True(t, g.Busy())

	// Overlapping entry is denied without side effects.
	assert.False(t, g.TryEnter())
	assert.True(t, g.Busy())

	g.Exit()
	assert.False(t, g.Busy())
	assert.True(t, g.TryEnter())
	g.Exit()
}
