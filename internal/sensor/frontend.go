package sensor

import "fmt"

// Frontend describes how the sensor output reaches the ADC.
//
//	AOUT = VCC * RL / (Rs + RL)
//	V_adc = AOUT / DividerRatio
//	Rs = RL * (VCC - AOUT) / AOUT
type Frontend struct {
	LoadKOhm     float64 // RL on the module board
	VCC          float64 // Sensor supply (V)
	DividerRatio float64 // AOUT divider, 100k:100k = 2
	ADCRef       float64 // ADC full-scale voltage
	ADCMax       int     // Largest raw ADC count
	R0KOhm       float64 // Clean-air reference resistance
	PPMMax       float64 // Output clamp
}

// DefaultFrontend matches the board wiring in the firmware.
func DefaultFrontend() Frontend {
	return Frontend{
		LoadKOhm:     10.0,
		VCC:          5.0,
		DividerRatio: 2.0,
		ADCRef:       3.3,
		ADCMax:       4095,
		R0KOhm:       10.0,
		PPMMax:       1000,
	}
}

// Reading is every intermediate value of one conversion.
type Reading struct {
	Raw    int
	VADC   float64
	AOUT   float64
	RsKOhm float64
	Ratio  float64
	PPM    float64
}

func (r Reading) String() string {
	return fmt.Sprintf("raw=%d Vadc=%.3f Aout=%.3f Rs=%.2fkOhm Rs/R0=%.2f NH3=%.1fppm",
		r.Raw, r.VADC, r.AOUT, r.RsKOhm, r.Ratio, r.PPM)
}

// resistance converts a raw count to (V_adc, AOUT, Rs) with the firmware guards.
func (f Frontend) resistance(raw int) (vadc, aout, rs float64) {
	vadc = float64(raw) / float64(f.ADCMax) * f.ADCRef
	if vadc < 0.001 {
		vadc = 0.001
	}
	aout = vadc * f.DividerRatio
	if aout >= f.VCC {
		aout = f.VCC - 0.01
	}
	rs = f.LoadKOhm * (f.VCC - aout) / aout
	if rs <= 0 {
		rs = 0.01
	}
	return vadc, aout, rs
}

// Convert turns a raw ADC count into a concentration.
func (f Frontend) Convert(raw int) (Reading, error) {
	if raw < 0 || raw > f.ADCMax {
		return Reading{}, fmt.Errorf("%w: raw %d outside 0..%d", ErrInvalidReading, raw, f.ADCMax)
	}
	if f.R0KOhm <= 0 {
		return Reading{}, fmt.Errorf("%w: R0 must be positive, got %g", ErrInvalidReading, f.R0KOhm)
	}

	vadc, aout, rs := f.resistance(raw)
	ratio := rs / f.R0KOhm
	ppm, err := PPMFromRatio(ratio)
	if err != nil {
		return Reading{}, err
	}
	if ppm < 0 {
		ppm = 0
	}
	if ppm > f.PPMMax {
		ppm = f.PPMMax
	}
	return Reading{Raw: raw, VADC: vadc, AOUT: aout, RsKOhm: rs, Ratio: ratio, PPM: ppm}, nil
}

// R0FromCleanAir derives R0 from a raw reading taken after warm-up in clean
// outdoor air, where Rs/R0 is CleanAirRatio.
func (f Frontend) R0FromCleanAir(raw int) (float64, error) {
	if raw < 0 || raw > f.ADCMax {
		return 0, fmt.Errorf("%w: raw %d outside 0..%d", ErrInvalidReading, raw, f.ADCMax)
	}
	_, _, rs := f.resistance(raw)
	return rs / CleanAirRatio, nil
}
