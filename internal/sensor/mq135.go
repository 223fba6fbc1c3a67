// Package sensor models the MQ-135 response to ammonia: the datasheet
// sensitivity curve and the voltage-divider front end the device reads it
// through. It does not talk to hardware.
package sensor

import (
	"errors"
	"fmt"
	"math"
)

// NH3 sensitivity curve: ppm = A * (Rs/R0)^B
const (
	CurveA        = 102.2
	CurveB        = -2.473
	CleanAirRatio = 3.6 // Rs/R0 in clean air

	// Range the curve is trusted over
	MinValidPPM = 10.0
	MaxValidPPM = 300.0
)

// ErrInvalidReading reports an input outside the curve's domain.
var ErrInvalidReading = errors.New("invalid sensor reading")

// Point is one (ppm, Rs/R0) pair.
type Point struct {
	PPM   float64
	Ratio float64
}

// ReferencePoints are the datasheet values the curve was fitted to.
var ReferencePoints = []Point{
	{10, 2.20},
	{20, 1.60},
	{50, 1.10},
	{100, 1.00},
	{200, 0.65},
	{300, 0.52},
}

// PPMFromRatio converts Rs/R0 to NH3 concentration.
func PPMFromRatio(ratio float64) (float64, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: Rs/R0 must be positive, got %g", ErrInvalidReading, ratio)
	}
	return CurveA * math.Pow(ratio, CurveB), nil
}

// RatioFromPPM is the inverse of PPMFromRatio.
func RatioFromPPM(ppm float64) (float64, error) {
	if ppm <= 0 || math.IsNaN(ppm) || math.IsInf(ppm, 0) {
		return 0, fmt.Errorf("%w: ppm must be positive, got %g", ErrInvalidReading, ppm)
	}
	return math.Pow(ppm/CurveA, 1/CurveB), nil
}

// InValidRange reports whether ppm is inside the trusted span of the curve.
func InValidRange(ppm float64) bool {
	return ppm >= MinValidPPM && ppm <= MaxValidPPM
}

// Curve samples the sensitivity curve at n log-spaced concentrations
// between from and to (inclusive).
func Curve(from, to float64, n int) []Point {
	if n < 2 || from <= 0 || to <= from {
		return nil
	}
	lo, hi := math.Log10(from), math.Log10(to)
	out := make([]Point, n)
	for i := range out {
		ppm := math.Pow(10, lo+(hi-lo)*float64(i)/float64(n-1))
		ratio, _ := RatioFromPPM(ppm)
		out[i] = Point{PPM: ppm, Ratio: ratio}
	}
	return out
}
