package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSamples(t *testing.T) {
	g, err := NewGrid(10, 25)
	require.NoError(t, err)

	minutes := g.Minutes()
	require.Len(t, minutes, 150)
	assert.Equal(t, 0.0, minutes[0])
	assert.InDelta(t, 1.0/6, minutes[1], 1e-12)
	assert.InDelta(t, 24+5.0/6, minutes[149], 1e-12)
	for i := 1; i < len(minutes); i++ {
		assert.Greater(t, minutes[i], minutes[i-1])
		assert.InDelta(t, 1.0/6, minutes[i]-minutes[i-1], 1e-9)
	}
}

func TestGridIndex(t *testing.T) {
	g, err := NewGrid(10, 25)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Index(-3))
	assert.Equal(t, 30, g.Index(5.0))
	assert.Equal(t, 31, g.Index(5.01))
	assert.Equal(t, 150, g.Index(99))
}

func TestGridValidation(t *testing.T) {
	tests := []struct {
		name     string
		step     float64
		duration float64
	}{
		{"zero step", 0, 25},
		{"negative step", -10, 25},
		{"negative duration", 10, -1},
		{"tiny step overflows length", 1e-300, 1},
		{"huge duration overflows length", 10, 1e300},
		{"one sample past the cap", 60, MaxSamples + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.step, tt.duration)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestGridAtSampleCap(t *testing.T) {
	g, err := NewGrid(60, MaxSamples)
	require.NoError(t, err)
	assert.Equal(t, MaxSamples, g.Len())
}

func TestZeroDurationGridIsEmpty(t *testing.T) {
	g, err := NewGrid(10, 0)
	require.NoError(t, err)
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Minutes())
}
