package synth

import (
	"fmt"

	"nh3lab.klederson.com/internal/config"
)

// FromScenario converts a loaded scenario into validated synthesis parameters.
func FromScenario(sc *config.Scenario) (Params, error) {
	grid, err := NewGrid(sc.SampleIntervalSec, sc.DurationMin)
	if err != nil {
		return Params{}, err
	}

	events := make([]Descriptor, 0, len(sc.Events))
	for i, spec := range sc.Events {
		kind, err := ParseKind(spec.Kind)
		if err != nil {
			return Params{}, fmt.Errorf("event %d: %w", i, err)
		}
		ev, err := NewDescriptor(kind, spec.StartMin, spec.PeakPPM, spec.RiseMin, spec.TauMin)
		if err != nil {
			return Params{}, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}

	p := Params{
		Grid:           grid,
		Baseline:       sc.BaselinePPM,
		NoiseStdDev:    sc.NoiseStdDev,
		Seed:           sc.Seed,
		Events:         events,
		ThresholdDelta: sc.ThresholdDelta,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
