package synth

import (
	"fmt"
	"math"
)

// MaxSamples caps the length of a grid.
const MaxSamples = 1 << 24

// Grid is an evenly spaced sampling schedule starting at t=0.
type Grid struct {
	stepSec     float64
	durationMin float64
}

// NewGrid validates a sample step (seconds) and total duration (minutes).
func NewGrid(stepSec, durationMin float64) (Grid, error) {
	if math.IsNaN(stepSec) || math.IsInf(stepSec, 0) || stepSec <= 0 {
		return Grid{}, fmt.Errorf("%w: step must be a positive number of seconds, got %g", ErrInvalidGrid, stepSec)
	}
	if math.IsNaN(durationMin) || math.IsInf(durationMin, 0) || durationMin < 0 {
		return Grid{}, fmt.Errorf("%w: duration must be a non-negative number of minutes, got %g", ErrInvalidGrid, durationMin)
	}
	n := math.Ceil(durationMin * 60 / stepSec)
	if math.IsNaN(n) || math.IsInf(n, 0) || n > MaxSamples {
		return Grid{}, fmt.Errorf("%w: %g min at %g s steps exceeds %d samples", ErrInvalidGrid, durationMin, stepSec, MaxSamples)
	}
	return Grid{stepSec: stepSec, durationMin: durationMin}, nil
}

func (g Grid) StepSec() float64     { return g.stepSec }
func (g Grid) DurationMin() float64 { return g.durationMin }

// Len is the number of samples in [0, duration).
func (g Grid) Len() int {
	if g.stepSec <= 0 {
		return 0
	}
	return int(math.Ceil(g.durationMin * 60 / g.stepSec))
}

// At returns the timestamp of sample i in minutes.
func (g Grid) At(i int) float64 {
	return float64(i) * g.stepSec / 60
}

// Index returns the first sample index at or after t minutes, clamped to [0, Len()].
func (g Grid) Index(t float64) int {
	if t <= 0 || g.stepSec <= 0 {
		return 0
	}
	i := int(math.Ceil(t * 60 / g.stepSec))
	if n := g.Len(); i > n {
		return n
	}
	return i
}

// Minutes returns every timestamp of the grid.
func (g Grid) Minutes() []float64 {
	out := make([]float64, g.Len())
	for i := range out {
		out[i] = g.At(i)
	}
	return out
}
