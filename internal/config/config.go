package config

import "time"

const (
	// Simulation grid (matches the firmware 10 s report period)
	SampleIntervalSec = 10.0 // Seconds between samples
	DurationMin       = 25.0 // Total simulated time in minutes

	// Concentration model
	BaselinePPM    = 3.0  // Steady-state background concentration
	NoiseStdDev    = 0.25 // Per-sample gaussian noise (ppm)
	NoiseSeed      = 42   // Fixed seed so fixtures are reproducible
	ThresholdDelta = 5.0  // Baseline + this -> sample flagged

	// Urination event (fast linear rise, fast decay)
	UrinationStartMin = 5.0
	UrinationPeakPPM  = 13.0
	UrinationRiseMin  = 0.5
	UrinationTauMin   = 3.5

	// Defecation event (power-law rise, slow decay)
	DefecationStartMin = 14.0
	DefecationPeakPPM  = 5.0
	DefecationRiseMin  = 2.5
	DefecationTauMin   = 5.0

	// Firmware detector (event_detector on the device)
	DetectorTriggerDelta  = 10.0 // Baseline + this -> ACTIVE
	DetectorHysteresis    = 3.0  // Baseline + this -> "near baseline"
	DetectorEndTicks      = 3    // Consecutive near-baseline ticks to end an event
	DetectorCooldownTicks = 6    // 6 x 10 s = 60 s
	DetectorFastPeakTicks = 3    // Peak within 30 s -> urination
	DetectorHighPeakDelta = 30.0 // Peak above baseline + this -> urination
	DetectorBaselineAlpha = 0.05 // EMA coefficient (~200 s time constant)

	// Serial console
	SerialBaud     = 115200
	SerialDuration = 90 * time.Second
	SerialResetGap = 100 * time.Millisecond

	// Replay viewer
	TargetFPS       = 30
	ReplayTickRate  = 150 * time.Millisecond // One sample per tick at 1x
	ReplayMaxSpeed  = 16
	HistoryCapacity = 60 // Samples kept for the sparkline
	TrailColumns    = 6  // Playhead glow width
	ShadeFraction   = 0.25

	// App
	AppName    = "NH3-LAB"
	AppVersion = "1.0"
	EnvPrefix  = "NH3LAB_"
)
