// Package detector replays the device's event state machine against a
// concentration trace so trigger and hysteresis settings can be checked
// before they are flashed.
//
//	IDLE     tracks the baseline with an EMA; a sample above
//	         baseline+TriggerDelta starts an event.
//	ACTIVE   tracks the peak; EndTicks consecutive samples below
//	         baseline+Hysteresis end the event and classify it.
//	COOLDOWN holds the classification for CooldownTicks samples.
package detector

import (
	"fmt"
	"log/slog"

	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/synth"
)

// State is the detector phase.
type State int

const (
	Idle State = iota
	Active
	Cooldown
)

func (s State) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Cooldown:
		return "COOLDOWN"
	default:
		return "IDLE"
	}
}

// Event is the value the device reports for the litter attribute.
type Event int

const (
	None Event = iota
	Urination
	Defecation
)

func (e Event) String() string {
	switch e {
	case Urination:
		return "URINATION"
	case Defecation:
		return "DEFECATION"
	default:
		return "NONE"
	}
}

// Kind maps a classified event to its synthesis kind. ok is false for None.
func (e Event) Kind() (synth.Kind, bool) {
	switch e {
	case Urination:
		return synth.Urination, true
	case Defecation:
		return synth.Defecation, true
	default:
		return 0, false
	}
}

// Config holds the tunables. Ticks are samples.
type Config struct {
	TriggerDelta  float64
	Hysteresis    float64
	EndTicks      int
	CooldownTicks int
	FastPeakTicks int
	HighPeakDelta float64
	BaselineAlpha float64
}

// DefaultConfig returns the values the firmware ships with.
func DefaultConfig() Config {
	return Config{
		TriggerDelta:  config.DetectorTriggerDelta,
		Hysteresis:    config.DetectorHysteresis,
		EndTicks:      config.DetectorEndTicks,
		CooldownTicks: config.DetectorCooldownTicks,
		FastPeakTicks: config.DetectorFastPeakTicks,
		HighPeakDelta: config.DetectorHighPeakDelta,
		BaselineAlpha: config.DetectorBaselineAlpha,
	}
}

// FromSpec converts the loaded scenario section. Zero fields keep the
// firmware defaults.
func FromSpec(s config.DetectorSpec) Config {
	c := DefaultConfig()
	if s.TriggerDelta != 0 {
		c.TriggerDelta = s.TriggerDelta
	}
	if s.Hysteresis != 0 {
		c.Hysteresis = s.Hysteresis
	}
	if s.EndTicks != 0 {
		c.EndTicks = s.EndTicks
	}
	if s.CooldownTicks != 0 {
		c.CooldownTicks = s.CooldownTicks
	}
	if s.FastPeakTicks != 0 {
		c.FastPeakTicks = s.FastPeakTicks
	}
	if s.HighPeakDelta != 0 {
		c.HighPeakDelta = s.HighPeakDelta
	}
	if s.BaselineAlpha != 0 {
		c.BaselineAlpha = s.BaselineAlpha
	}
	return c
}

// Outcome is the detector output after one sample.
type Outcome struct {
	State    State
	Event    Event
	Baseline float64
	// Ended is set on the sample that classified an event.
	Ended *Classification
}

// Classification describes one completed event.
type Classification struct {
	Event     Event
	StartTick int // sample index that triggered ACTIVE
	EndTick   int // sample index that classified the event
	PeakTick  int // sample index of the peak
	PeakPPM   float64
	Baseline  float64
}

// Delta is the peak height above the baseline at classification time.
func (c Classification) Delta() float64 { return c.PeakPPM - c.Baseline }

func (c Classification) String() string {
	return fmt.Sprintf("%s start=%d end=%d peak=%.1fppm@%d baseline=%.1fppm",
		c.Event, c.StartTick, c.EndTick, c.PeakPPM, c.PeakTick, c.Baseline)
}

// Detector is not safe for concurrent use.
type Detector struct {
	cfg Config
	log *slog.Logger

	initialized bool
	tick        int
	baseline    float64
	state       State
	current     Event

	startTick     int
	peak          float64
	eventTicks    int
	peakTicks     int
	belowCount    int
	cooldownTicks int
}

// New returns a detector in IDLE with no baseline yet.
func New(cfg Config, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Detector{cfg: cfg, log: log.With("component", "detector")}
}

// Reset returns the detector to its initial state.
func (d *Detector) Reset() {
	*d = Detector{cfg: d.cfg, log: d.log}
}

// State returns the current phase.
func (d *Detector) State() State { return d.state }

// Baseline returns the current baseline estimate.
func (d *Detector) Baseline() float64 { return d.baseline }

// Update feeds one reading and returns the resulting outcome.
func (d *Detector) Update(ppm float64) Outcome {
	tick := d.tick
	d.tick++

	if !d.initialized {
		d.baseline = ppm
		d.initialized = true
		d.log.Info("baseline initialised", "ppm", ppm)
		return d.outcome(nil)
	}

	var ended *Classification

	switch d.state {
	case Idle:
		// Baseline only drifts while no event is in progress.
		d.baseline = (1-d.cfg.BaselineAlpha)*d.baseline + d.cfg.BaselineAlpha*ppm
		d.log.Debug("idle", "tick", tick, "baseline", d.baseline, "ppm", ppm)

		if ppm > d.baseline+d.cfg.TriggerDelta {
			d.state = Active
			d.startTick = tick
			d.peak = ppm
			d.eventTicks = 1
			d.peakTicks = 1
			d.belowCount = 0
			d.log.Info("event start", "tick", tick, "ppm", ppm, "baseline", d.baseline, "delta", ppm-d.baseline)
		}

	case Active:
		d.eventTicks++
		if ppm > d.peak {
			d.peak = ppm
			d.peakTicks = d.eventTicks
		}
		if ppm < d.baseline+d.cfg.Hysteresis {
			d.belowCount++
		} else {
			d.belowCount = 0
		}
		d.log.Debug("active", "tick", tick, "ppm", ppm, "peak", d.peak, "peak_tick", d.peakTicks, "below", d.belowCount)

		if d.belowCount >= d.cfg.EndTicks {
			fast := d.peakTicks <= d.cfg.FastPeakTicks
			high := d.peak-d.baseline > d.cfg.HighPeakDelta
			if fast || high {
				d.current = Urination
			} else {
				d.current = Defecation
			}
			d.state = Cooldown
			d.cooldownTicks = 0

			ended = &Classification{
				Event:     d.current,
				StartTick: d.startTick,
				EndTick:   tick,
				PeakTick:  d.startTick + d.peakTicks - 1,
				PeakPPM:   d.peak,
				Baseline:  d.baseline,
			}
			d.log.Info("event end", "event", d.current.String(), "peak", d.peak,
				"peak_tick", d.peakTicks, "baseline", d.baseline, "delta", d.peak-d.baseline)
		}

	case Cooldown:
		d.cooldownTicks++
		d.log.Debug("cooldown", "tick", tick, "count", d.cooldownTicks, "of", d.cfg.CooldownTicks)
		if d.cooldownTicks >= d.cfg.CooldownTicks {
			d.state = Idle
			d.current = None
			d.log.Info("cooldown complete", "tick", tick)
		}
	}

	return d.outcome(ended)
}

func (d *Detector) outcome(ended *Classification) Outcome {
	return Outcome{State: d.state, Event: d.current, Baseline: d.baseline, Ended: ended}
}

// Replay runs a fresh detector over every sample and returns the completed
// classifications plus the per-sample outcomes.
func Replay(cfg Config, log *slog.Logger, ppm []float64) ([]Classification, []Outcome) {
	d := New(cfg, log)
	outcomes := make([]Outcome, len(ppm))
	var events []Classification
	for i, v := range ppm {
		outcomes[i] = d.Update(v)
		if outcomes[i].Ended != nil {
			events = append(events, *outcomes[i].Ended)
		}
	}
	return events, outcomes
}
