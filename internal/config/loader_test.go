package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"nh3lab.klederson.com/internal/config"
)

func TestScenarioLoader(t *testing.T) {
	convey.Convey("Given a scenario loader", t, func() {
		clearEnv()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then the documented scenario is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SampleIntervalSec, convey.ShouldEqual, 10.0)
				convey.So(cfg.DurationMin, convey.ShouldEqual, 25.0)
				convey.So(cfg.BaselinePPM, convey.ShouldEqual, 3.0)
				convey.So(cfg.Seed, convey.ShouldEqual, uint64(42))
				convey.So(cfg.ThresholdDelta, convey.ShouldEqual, 5.0)
				convey.So(cfg.Events, convey.ShouldHaveLength, 2)
				convey.So(cfg.Events[0].Kind, convey.ShouldEqual, "urination")
				convey.So(cfg.Events[1].Kind, convey.ShouldEqual, "defecation")
				convey.So(cfg.Detector.TriggerDelta, convey.ShouldEqual, 10.0)
				convey.So(cfg.Serial.Baud, convey.ShouldEqual, 115200)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			_ = os.Setenv("NH3LAB_BASELINE_PPM", "4.5")
			_ = os.Setenv("NH3LAB_SEED", "7")
			_ = os.Setenv("NH3LAB_DETECTOR__END_TICKS", "5")
			defer clearEnv()

			cfg, err := config.Load("")

			convey.Convey("Then env overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaselinePPM, convey.ShouldEqual, 4.5)
				convey.So(cfg.Seed, convey.ShouldEqual, uint64(7))
				convey.So(cfg.Detector.EndTicks, convey.ShouldEqual, 5)
				convey.So(cfg.Events, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When loading a YAML file with its own events", func() {
			path := writeTemp(t, `
duration_min: 10
noise_stddev: 0
events:
  - kind: urination
    start_min: 1
    peak_ppm: 20
    rise_min: 0.5
    tau_min: 2
`)

			cfg, err := config.Load(path)

			convey.Convey("Then the file events replace the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DurationMin, convey.ShouldEqual, 10.0)
				convey.So(cfg.NoiseStdDev, convey.ShouldEqual, 0.0)
				convey.So(cfg.Events, convey.ShouldHaveLength, 1)
				convey.So(cfg.Events[0].PeakPPM, convey.ShouldEqual, 20.0)
				convey.So(cfg.BaselinePPM, convey.ShouldEqual, 3.0)
			})
		})

		convey.Convey("When the file path comes from NH3LAB_CONFIG", func() {
			path := writeTemp(t, "baseline_ppm: 6\n")
			_ = os.Setenv("NH3LAB_CONFIG", path)
			defer clearEnv()

			cfg, err := config.Load("")

			convey.Convey("Then it is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaselinePPM, convey.ShouldEqual, 6.0)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the serial baud is invalid", func() {
			_ = os.Setenv("NH3LAB_SERIAL__BAUD", "0")
			defer clearEnv()

			_, err := config.Load("")

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestScenarioYAMLRoundTrip(t *testing.T) {
	convey.Convey("Given the default scenario exported as YAML", t, func() {
		clearEnv()
		out, err := config.Default().YAML()
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When it is loaded back", func() {
			cfg, err := config.Load(writeTemp(t, string(out)))

			convey.Convey("Then it matches the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.Default())
			})
		})
	})
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func clearEnv() {
	for _, key := range []string{
		"NH3LAB_CONFIG",
		"NH3LAB_BASELINE_PPM",
		"NH3LAB_SEED",
		"NH3LAB_DETECTOR__END_TICKS",
		"NH3LAB_SERIAL__BAUD",
	} {
		_ = os.Unsetenv(key)
	}
}
