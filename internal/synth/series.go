package synth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Params is everything a synthesis run depends on.
type Params struct {
	Grid           Grid
	Baseline       float64
	NoiseStdDev    float64
	Seed           uint64
	Events         []Descriptor
	ThresholdDelta float64
}

// Validate rejects parameters that would produce NaN or Inf samples.
// Grid and descriptors validate themselves at construction.
func (p Params) Validate() error {
	if p.Grid.stepSec <= 0 {
		return fmt.Errorf("%w: grid was not built with NewGrid", ErrInvalidParams)
	}
	if math.IsNaN(p.Baseline) || math.IsInf(p.Baseline, 0) {
		return fmt.Errorf("%w: baseline must be finite, got %g", ErrInvalidParams, p.Baseline)
	}
	if math.IsNaN(p.NoiseStdDev) || math.IsInf(p.NoiseStdDev, 0) || p.NoiseStdDev < 0 {
		return fmt.Errorf("%w: noise stddev must be a non-negative number, got %g", ErrInvalidParams, p.NoiseStdDev)
	}
	if math.IsNaN(p.ThresholdDelta) || math.IsInf(p.ThresholdDelta, 0) {
		return fmt.Errorf("%w: threshold delta must be finite, got %g", ErrInvalidParams, p.ThresholdDelta)
	}
	for i, ev := range p.Events {
		if ev.rise <= 0 || ev.decayTau <= 0 {
			return fmt.Errorf("%w: event %d was not built with NewDescriptor", ErrInvalidParams, i)
		}
	}
	return nil
}

// Series is a synthesized concentration trace aligned to its grid.
type Series struct {
	Minutes   []float64
	PPM       []float64
	Threshold Threshold
}

// Synthesize builds baseline + noise, adds every event contribution and
// clips the result at zero. The output depends only on p.
func Synthesize(p Params) (Series, error) {
	if err := p.Validate(); err != nil {
		return Series{}, err
	}

	minutes := p.Grid.Minutes()
	ppm := Noise(NewSource(p.Seed), len(minutes), p.NoiseStdDev)
	floats.AddConst(p.Baseline, ppm)

	for _, ev := range p.Events {
		addContribution(ppm, minutes, ev)
	}
	for i, v := range ppm {
		if v < 0 {
			ppm[i] = 0
		}
	}

	return Series{
		Minutes:   minutes,
		PPM:       ppm,
		Threshold: Threshold{Baseline: p.Baseline, Delta: p.ThresholdDelta},
	}, nil
}

// Contributions is the noise-free sum of all events over the grid,
// without baseline or clipping.
func Contributions(g Grid, events []Descriptor) []float64 {
	minutes := g.Minutes()
	out := make([]float64, len(minutes))
	for _, ev := range events {
		addContribution(out, minutes, ev)
	}
	return out
}

func addContribution(dst, minutes []float64, ev Descriptor) {
	for i, t := range minutes {
		dst[i] += ev.Contribution(t)
	}
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.PPM) }

// Detections flags every sample that reaches the threshold.
func (s Series) Detections() []bool {
	out := make([]bool, len(s.PPM))
	for i, v := range s.PPM {
		out[i] = s.Threshold.Detected(v)
	}
	return out
}

// PeakBetween returns the index of the largest sample with timestamp in
// [from, to) minutes. ok is false when the window holds no samples.
func (s Series) PeakBetween(from, to float64) (idx int, ok bool) {
	idx = -1
	for i, t := range s.Minutes {
		if t < from || t >= to {
			continue
		}
		if idx < 0 || s.PPM[i] > s.PPM[idx] {
			idx = i
		}
	}
	return idx, idx >= 0
}

// Summary describes a series at a glance.
type Summary struct {
	Samples  int
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	Detected int
}

// Summary computes min, max, mean, standard deviation and the number of
// samples at or above the threshold.
func (s Series) Summary() Summary {
	sum := Summary{Samples: len(s.PPM)}
	if len(s.PPM) == 0 {
		return sum
	}
	sum.Min = floats.Min(s.PPM)
	sum.Max = floats.Max(s.PPM)
	sum.Mean, sum.StdDev = stat.MeanStdDev(s.PPM, nil)
	for _, hit := range s.Detections() {
		if hit {
			sum.Detected++
		}
	}
	return sum
}
