package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptorRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name                    string
		kind                    Kind
		start, peak, rise, tauv float64
	}{
		{"zero rise", Urination, 5, 13, 0, 3.5},
		{"negative rise", Urination, 5, 13, -1, 3.5},
		{"zero tau", Defecation, 14, 5, 2.5, 0},
		{"negative tau", Defecation, 14, 5, 2.5, -5},
		{"negative peak", Urination, 5, -1, 0.5, 3.5},
		{"nan start", Urination, math.NaN(), 13, 0.5, 3.5},
		{"inf peak", Defecation, 14, math.Inf(1), 2.5, 5},
		{"unknown kind", Kind(7), 5, 13, 0.5, 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor(tt.kind, tt.start, tt.peak, tt.rise, tt.tauv)
			assert.ErrorIs(t, err, ErrInvalidDescriptor)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Urination")
	require.NoError(t, err)
	assert.Equal(t, Urination, k)

	k, err = ParseKind(" defecation ")
	require.NoError(t, err)
	assert.Equal(t, Defecation, k)

	_, err = ParseKind("sneeze")
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestContributionIsZeroBeforeStart(t *testing.T) {
	for _, ev := range sampleEvents(t) {
		assert.Zero(t, ev.Contribution(ev.Start()-1e-9), ev.String())
		assert.Zero(t, ev.Contribution(ev.Start()-10), ev.String())
		assert.Zero(t, ev.Contribution(ev.Start()), ev.String())
	}
}

func TestContributionIsContinuousAtPeak(t *testing.T) {
	for _, ev := range sampleEvents(t) {
		ramp := ev.Peak() * math.Pow(ev.Rise()/ev.Rise(), ev.Kind().RiseExponent())
		decay := ev.Peak() * math.Exp(-0/ev.DecayTau())
		assert.InDelta(t, ramp, decay, 1e-12, ev.String())
		assert.InDelta(t, ev.Peak(), ev.Contribution(ev.PeakTime()), 1e-9, ev.String())
		assert.InDelta(t, ev.Peak(), ev.Contribution(ev.PeakTime()-1e-9), 1e-6, ev.String())
	}
}

func TestDefecationRiseIsConcave(t *testing.T) {
	ev, err := NewDefecation(0, 5, 2.5, 5)
	require.NoError(t, err)
	linear := 5 * (1.0 / 2.5)
	assert.Greater(t, ev.Contribution(1.0), linear)
	assert.InDelta(t, 5*math.Pow(0.4, 0.7), ev.Contribution(1.0), 1e-12)
}

func TestUrinationRiseIsLinear(t *testing.T) {
	ev, err := NewUrination(5, 13, 0.5, 3.5)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, ev.Contribution(5.25), 1e-12)
}

func TestContributionDecaysByOneOverE(t *testing.T) {
	ev, err := NewUrination(5, 13, 0.5, 3.5)
	require.NoError(t, err)
	assert.InDelta(t, 13/math.E, ev.Contribution(ev.PeakTime()+3.5), 1e-9)
}

func TestWindow(t *testing.T) {
	ev, err := NewUrination(5, 13, 0.5, 3.5)
	require.NoError(t, err)
	from, to := ev.Window(1 / math.E)
	assert.Equal(t, 5.0, from)
	assert.InDelta(t, 9.0, to, 1e-9)
}

func sampleEvents(t *testing.T) []Descriptor {
	t.Helper()
	u, err := NewUrination(5.0, 13.0, 0.5, 3.5)
	require.NoError(t, err)
	d, err := NewDefecation(14.0, 5.0, 2.5, 5.0)
	require.NoError(t, err)
	odd, err := NewDefecation(0.3, 7.7, 0.1, 0.9)
	require.NoError(t, err)
	return []Descriptor{u, d, odd}
}
