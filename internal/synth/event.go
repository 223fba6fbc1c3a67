// Package synth builds synthetic NH3 concentration series for litter-box
// events and evaluates the reference threshold rule against them.
package synth

import (
	"fmt"
	"math"
	"strings"
)

// Kind distinguishes the two event shapes.
type Kind int

const (
	Urination Kind = iota
	Defecation
)

func (k Kind) String() string {
	switch k {
	case Defecation:
		return "defecation"
	default:
		return "urination"
	}
}

// RiseExponent is the power applied to the normalized ramp.
// 1.0 gives a linear rise, 0.7 a concave one that is quick off the mark.
func (k Kind) RiseExponent() float64 {
	if k == Defecation {
		return 0.7
	}
	return 1.0
}

// ParseKind maps "urination"/"defecation" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urination", "urine", "pee":
		return Urination, nil
	case "defecation", "feces", "poop":
		return Defecation, nil
	default:
		return 0, fmt.Errorf("%w: unknown event kind %q", ErrInvalidDescriptor, s)
	}
}

// Descriptor is one synthetic concentration bump. Fields are fixed at
// construction; use NewDescriptor so the parameters are validated.
type Descriptor struct {
	kind     Kind
	start    float64 // minutes
	peak     float64 // ppm above baseline
	rise     float64 // minutes
	decayTau float64 // minutes
}

// NewDescriptor validates and returns an event descriptor.
func NewDescriptor(kind Kind, start, peak, rise, decayTau float64) (Descriptor, error) {
	if kind != Urination && kind != Defecation {
		return Descriptor{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidDescriptor, int(kind))
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"start", start}, {"peak", peak}, {"rise", rise}, {"decay_tau", decayTau}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return Descriptor{}, fmt.Errorf("%w: %s %s must be finite, got %g", ErrInvalidDescriptor, kind, v.name, v.val)
		}
	}
	if rise <= 0 {
		return Descriptor{}, fmt.Errorf("%w: %s rise must be > 0, got %g", ErrInvalidDescriptor, kind, rise)
	}
	if decayTau <= 0 {
		return Descriptor{}, fmt.Errorf("%w: %s decay_tau must be > 0, got %g", ErrInvalidDescriptor, kind, decayTau)
	}
	if peak < 0 {
		return Descriptor{}, fmt.Errorf("%w: %s peak must not be negative, got %g", ErrInvalidDescriptor, kind, peak)
	}
	return Descriptor{kind: kind, start: start, peak: peak, rise: rise, decayTau: decayTau}, nil
}

// NewUrination is NewDescriptor(Urination, ...).
func NewUrination(start, peak, rise, decayTau float64) (Descriptor, error) {
	return NewDescriptor(Urination, start, peak, rise, decayTau)
}

// NewDefecation is NewDescriptor(Defecation, ...).
func NewDefecation(start, peak, rise, decayTau float64) (Descriptor, error) {
	return NewDescriptor(Defecation, start, peak, rise, decayTau)
}

func (d Descriptor) Kind() Kind        { return d.kind }
func (d Descriptor) Start() float64    { return d.start }
func (d Descriptor) Peak() float64     { return d.peak }
func (d Descriptor) Rise() float64     { return d.rise }
func (d Descriptor) DecayTau() float64 { return d.decayTau }
func (d Descriptor) PeakTime() float64 { return d.start + d.rise }

// Contribution returns the ppm this event adds at time t (minutes).
func (d Descriptor) Contribution(t float64) float64 {
	e := t - d.start
	if e < 0 {
		return 0
	}
	if e < d.rise {
		return d.peak * math.Pow(e/d.rise, d.kind.RiseExponent())
	}
	return d.peak * math.Exp(-(e-d.rise)/d.decayTau)
}

// Window returns the span during which the event contributes at least
// frac of its peak on the decay side. frac must be in (0, 1].
func (d Descriptor) Window(frac float64) (from, to float64) {
	if frac <= 0 || frac > 1 {
		frac = 1
	}
	return d.start, d.PeakTime() + d.decayTau*math.Log(1/frac)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s@%.1fmin peak=%.1fppm rise=%.1fmin tau=%.1fmin",
		d.kind, d.start, d.peak, d.rise, d.decayTau)
}
