package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scenario is the full, loadable description of one simulation run plus the
// settings of the tools that consume it.
type Scenario struct {
	SampleIntervalSec float64     `koanf:"sample_interval_s" yaml:"sample_interval_s"`
	DurationMin       float64     `koanf:"duration_min" yaml:"duration_min"`
	BaselinePPM       float64     `koanf:"baseline_ppm" yaml:"baseline_ppm"`
	NoiseStdDev       float64     `koanf:"noise_stddev" yaml:"noise_stddev"`
	Seed              uint64      `koanf:"seed" yaml:"seed"`
	ThresholdDelta    float64     `koanf:"threshold_delta" yaml:"threshold_delta"`
	Events            []EventSpec `koanf:"events" yaml:"events"`

	Detector DetectorSpec `koanf:"detector" yaml:"detector"`
	Serial   SerialSpec   `koanf:"serial" yaml:"serial"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// LogFile receives JSON logs when set.
	LogFile string `koanf:"log_file" yaml:"log_file,omitempty"`
}

// EventSpec is the raw form of one event descriptor.
type EventSpec struct {
	Kind     string  `koanf:"kind" yaml:"kind"`
	StartMin float64 `koanf:"start_min" yaml:"start_min"`
	PeakPPM  float64 `koanf:"peak_ppm" yaml:"peak_ppm"`
	RiseMin  float64 `koanf:"rise_min" yaml:"rise_min"`
	TauMin   float64 `koanf:"tau_min" yaml:"tau_min"`
}

// DetectorSpec holds the firmware detector tunables.
type DetectorSpec struct {
	TriggerDelta  float64 `koanf:"trigger_delta" yaml:"trigger_delta"`
	Hysteresis    float64 `koanf:"hysteresis" yaml:"hysteresis"`
	EndTicks      int     `koanf:"end_ticks" yaml:"end_ticks"`
	CooldownTicks int     `koanf:"cooldown_ticks" yaml:"cooldown_ticks"`
	FastPeakTicks int     `koanf:"fast_peak_ticks" yaml:"fast_peak_ticks"`
	HighPeakDelta float64 `koanf:"high_peak_delta" yaml:"high_peak_delta"`
	BaselineAlpha float64 `koanf:"baseline_alpha" yaml:"baseline_alpha"`
}

// SerialSpec configures the serial console.
type SerialSpec struct {
	Port       string  `koanf:"port" yaml:"port"`
	Baud       int     `koanf:"baud" yaml:"baud"`
	DurationS  float64 `koanf:"duration_s" yaml:"duration_s"`
	ResetOnRun bool    `koanf:"reset" yaml:"reset"`
}

// Default returns the scenario the charts in the docs were generated from.
func Default() *Scenario {
	return &Scenario{
		SampleIntervalSec: SampleIntervalSec,
		DurationMin:       DurationMin,
		BaselinePPM:       BaselinePPM,
		NoiseStdDev:       NoiseStdDev,
		Seed:              NoiseSeed,
		ThresholdDelta:    ThresholdDelta,
		Events: []EventSpec{
			{
				Kind:     "urination",
				StartMin: UrinationStartMin,
				PeakPPM:  UrinationPeakPPM,
				RiseMin:  UrinationRiseMin,
				TauMin:   UrinationTauMin,
			},
			{
				Kind:     "defecation",
				StartMin: DefecationStartMin,
				PeakPPM:  DefecationPeakPPM,
				RiseMin:  DefecationRiseMin,
				TauMin:   DefecationTauMin,
			},
		},
		Detector: DetectorSpec{
			TriggerDelta:  DetectorTriggerDelta,
			Hysteresis:    DetectorHysteresis,
			EndTicks:      DetectorEndTicks,
			CooldownTicks: DetectorCooldownTicks,
			FastPeakTicks: DetectorFastPeakTicks,
			HighPeakDelta: DetectorHighPeakDelta,
			BaselineAlpha: DetectorBaselineAlpha,
		},
		Serial: SerialSpec{
			Port:       defaultSerialPort,
			Baud:       SerialBaud,
			DurationS:  SerialDuration.Seconds(),
			ResetOnRun: true,
		},
		LogLevel: "info",
	}
}

// Validate checks the fields that are not owned by a domain constructor.
func (s *Scenario) Validate() error {
	if s.Serial.Baud <= 0 {
		return fmt.Errorf("%w: serial baud must be positive, got %d", ErrInvalidConfig, s.Serial.Baud)
	}
	if s.Serial.DurationS < 0 {
		return fmt.Errorf("%w: serial duration must not be negative, got %g", ErrInvalidConfig, s.Serial.DurationS)
	}
	if s.Detector.EndTicks < 1 || s.Detector.CooldownTicks < 0 || s.Detector.FastPeakTicks < 0 {
		return fmt.Errorf("%w: detector tick counts out of range", ErrInvalidConfig)
	}
	if s.Detector.BaselineAlpha < 0 || s.Detector.BaselineAlpha > 1 {
		return fmt.Errorf("%w: detector baseline_alpha must be in [0,1], got %g", ErrInvalidConfig, s.Detector.BaselineAlpha)
	}
	return nil
}

// YAML renders the scenario in the format Load accepts.
func (s *Scenario) YAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario: %w", err)
	}
	return out, nil
}
