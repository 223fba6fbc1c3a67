package sensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveAnchor(t *testing.T) {
	ppm, err := PPMFromRatio(1.0)
	require.NoError(t, err)
	assert.Equal(t, CurveA, ppm)
}

func TestCurveRoundTrip(t *testing.T) {
	for _, ppm := range []float64{5, 10, 42, 100, 300, 1000} {
		ratio, err := RatioFromPPM(ppm)
		require.NoError(t, err)
		back, err := PPMFromRatio(ratio)
		require.NoError(t, err)
		assert.InDelta(t, ppm, back, ppm*1e-12)
	}
}

func TestCurveIsDecreasing(t *testing.T) {
	pts := Curve(5, 1000, 400)
	require.Len(t, pts, 400)
	assert.InDelta(t, 5, pts[0].PPM, 1e-9)
	assert.InDelta(t, 1000, pts[399].PPM, 1e-9)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].PPM, pts[i-1].PPM)
		assert.Less(t, pts[i].Ratio, pts[i-1].Ratio)
	}
	assert.Nil(t, Curve(5, 1000, 1))
	assert.Nil(t, Curve(0, 1000, 10))
}

func TestCurveRejectsNonPositive(t *testing.T) {
	_, err := PPMFromRatio(0)
	assert.ErrorIs(t, err, ErrInvalidReading)
	_, err = RatioFromPPM(-3)
	assert.ErrorIs(t, err, ErrInvalidReading)
	_, err = PPMFromRatio(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestValidRange(t *testing.T) {
	assert.False(t, InValidRange(9.9))
	assert.True(t, InValidRange(10))
	assert.True(t, InValidRange(300))
	assert.False(t, InValidRange(301))
}

func TestFrontendConvert(t *testing.T) {
	f := DefaultFrontend()

	r, err := f.Convert(2048)
	require.NoError(t, err)
	assert.InDelta(t, 1.6504, r.VADC, 1e-4)
	assert.InDelta(t, 3.3008, r.AOUT, 1e-4)
	assert.InDelta(t, 5.1478, r.RsKOhm, 1e-3)
	assert.InDelta(t, 0.51478, r.Ratio, 1e-4)
	assert.InDelta(t, 528.0, r.PPM, 2.0)
	assert.Contains(t, r.String(), "raw=2048")
}

func TestFrontendGuards(t *testing.T) {
	f := DefaultFrontend()

	low, err := f.Convert(0)
	require.NoError(t, err)
	assert.Equal(t, 0.001, low.VADC)
	assert.GreaterOrEqual(t, low.PPM, 0.0)
	assert.Less(t, low.PPM, 1e-3)

	high, err := f.Convert(f.ADCMax)
	require.NoError(t, err)
	assert.InDelta(t, f.VCC-0.01, high.AOUT, 1e-12)
	assert.Equal(t, f.PPMMax, high.PPM)

	_, err = f.Convert(-1)
	assert.ErrorIs(t, err, ErrInvalidReading)
	_, err = f.Convert(f.ADCMax + 1)
	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestR0FromCleanAir(t *testing.T) {
	f := DefaultFrontend()
	const raw = 674

	r0, err := f.R0FromCleanAir(raw)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, r0, 0.05)

	f.R0KOhm = r0
	r, err := f.Convert(raw)
	require.NoError(t, err)
	assert.InDelta(t, CleanAirRatio, r.Ratio, 1e-9)
}

func TestSituationsAreOrderedRanges(t *testing.T) {
	for _, s := range Situations {
		assert.LessOrEqual(t, s.Low, s.High, s.Label)
	}
	assert.Equal(t, 5.0, DetectionTarget.Low)
}
