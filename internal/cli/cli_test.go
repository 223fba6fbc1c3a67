package cli

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/logging"
	"nh3lab.klederson.com/internal/synth"
)

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSimulateCSV(t *testing.T) {
	out, err := run(t, "simulate", "--csv", "--log-level", "error")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 151)
	assert.Equal(t, []string{"minute", "ppm", "detected"}, records[0])
	assert.Equal(t, "0.0000", records[1][0])
	assert.Equal(t, "24.8333", records[150][0])

	detected := 0
	for _, r := range records[1:] {
		if r[2] == "true" {
			detected++
		}
	}
	assert.Positive(t, detected)
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := run(t, "simulate", "--csv", "--seed", "7", "--log-level", "error")
	require.NoError(t, err)
	b, err := run(t, "simulate", "--csv", "--seed", "7", "--log-level", "error")
	require.NoError(t, err)
	c, err := run(t, "simulate", "--csv", "--seed", "8", "--log-level", "error")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSimulateTableAndPNG(t *testing.T) {
	png := filepath.Join(t.TempDir(), "trace.png")
	out, err := run(t, "simulate", "--png", png, "--duration", "10", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "MINUTE")
	assert.Contains(t, out, "samples 60")
	assert.Contains(t, out, "threshold 8.0 ppm (baseline 3.0 + 5.0)")

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestSimulateZeroDuration(t *testing.T) {
	out, err := run(t, "simulate", "--csv", "--duration", "0", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "minute,ppm,detected\n", out)
}

func TestSimulateRejectsNegativeNoise(t *testing.T) {
	_, err := run(t, "simulate", "--noise", "-1", "--log-level", "error")
	require.Error(t, err)
}

func TestDetectReport(t *testing.T) {
	out, err := run(t, "detect", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "scripted events: 2")
	assert.Contains(t, out, "URINATION")
	assert.Contains(t, out, "5.50")
}

func TestDetectNothingClassified(t *testing.T) {
	t.Setenv("NH3LAB_DETECTOR__TRIGGER_DELTA", "100")
	out, err := run(t, "detect", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "no events classified")
}

func TestScenarioRoundTrip(t *testing.T) {
	t.Setenv("NH3LAB_SEED", "7")
	out, err := run(t, "scenario", "--log-level", "error")
	require.NoError(t, err)

	var sc config.Scenario
	require.NoError(t, yaml.Unmarshal([]byte(out), &sc))
	assert.Equal(t, uint64(7), sc.Seed)
	assert.Len(t, sc.Events, 2)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	again, err := run(t, "scenario", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestChartsWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "charts", "--out", dir, "--log-level", "error")
	require.NoError(t, err)

	for _, name := range []string{"event_pattern.png", "sensitivity_curve.png", "concentration_context.png"} {
		path := filepath.Join(dir, name)
		assert.Contains(t, out, path)
		assert.FileExists(t, path)
	}
}

func TestCalibrate(t *testing.T) {
	out, err := run(t, "calibrate", "--raw", "674", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "R0 = 10.008 kOhm")
	assert.Contains(t, out, "raw=674")

	out, err = run(t, "calibrate", "--raw", "2048", "--r0", "10", "--log-level", "error")
	require.NoError(t, err)
	assert.NotContains(t, out, "R0 =")
	assert.Contains(t, out, "outside the curve's trusted range")
}

func TestCalibrateRequiresRaw(t *testing.T) {
	_, err := run(t, "calibrate")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "scenario", "--log-level", "loud")
	require.Error(t, err)
}

func TestLogFileReceivesJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nh3lab.log")
	_, err := run(t, "simulate", "--csv", "--log-level", "info", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id"`)
	assert.Contains(t, string(data), `"msg":"series synthesized"`)
}

func TestLogFileClosedWhenCommandFails(t *testing.T) {
	closed := 0
	setupLogging = func(stderr io.Writer, file string, level slog.Level) (*slog.Logger, func() error, error) {
		l, closer, err := logging.Setup(stderr, file, level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() error { closed++; return closer() }, nil
	}
	t.Cleanup(func() { setupLogging = logging.Setup })

	logPath := filepath.Join(t.TempDir(), "nh3lab.log")
	_, err := run(t, "simulate", "--duration", "1e300", "--log-file", logPath, "--log-level", "error")
	require.ErrorIs(t, err, synth.ErrInvalidGrid)
	assert.Equal(t, 1, closed)

	_, err = run(t, "scenario", "--log-file", logPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 2, closed, "closed once per run")
}

func TestMonitorMissingPort(t *testing.T) {
	_, err := run(t, "monitor", "--port", "/dev/nh3lab-does-not-exist", "--log-level", "error")
	require.Error(t, err)
}
