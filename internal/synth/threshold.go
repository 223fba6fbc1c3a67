package synth

// Threshold is the reference detection rule: a sample is an event sample
// when it reaches Baseline + Delta. There is no hysteresis or debounce;
// see package detector for the rule the firmware runs.
type Threshold struct {
	Baseline float64
	Delta    float64
}

// Level is the concentration at which samples are flagged.
func (t Threshold) Level() float64 {
	return t.Baseline + t.Delta
}

// Detected reports whether ppm reaches the threshold.
func (t Threshold) Detected(ppm float64) bool {
	return ppm >= t.Level()
}
