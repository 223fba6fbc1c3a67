package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nh3lab.klederson.com/internal/detector"
	"nh3lab.klederson.com/internal/synth"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{5.5, "05:30"},
		{24 + 50.0/60, "24:50"},
		{-1, "00:00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, formatMinutes(tc.in))
	}
}

func TestTruncRaw(t *testing.T) {
	assert.Equal(t, "abc  ", truncRaw("abc", 5))
	assert.Equal(t, "abcde", truncRaw("abcdefgh", 5))
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, renderSparkline(nil, 10))
	assert.Equal(t, "_^", renderSparkline([]float64{0, 10}, 10))
	assert.Equal(t, "___", renderSparkline([]float64{3, 3.2, 3.1}, 10), "ranges under 1 ppm stay flat")
	assert.Len(t, renderSparkline(make([]float64, 50), 10), 10)
}

func TestRenderLevelBar(t *testing.T) {
	bar := ansi.Strip(renderLevelBar(9, 8, 20, 20))
	assert.Equal(t, "["+strings.Repeat("|", 9)+strings.Repeat("-", 11)+"]", bar)

	assert.Equal(t, 22, lipgloss.Width(renderLevelBar(100, 8, 20, 20)), "clamped to the bar")
}

func TestRenderMenuBarStatus(t *testing.T) {
	assert.Contains(t, ansi.Strip(RenderMenuBar(120, "seed 42", false, false, 4)), "REPLAY x4")
	assert.Contains(t, ansi.Strip(RenderMenuBar(120, "seed 42", true, false, 1)), "PAUSED")
	assert.Contains(t, ansi.Strip(RenderMenuBar(120, "seed 42", true, true, 1)), "DONE")
}

func TestRenderStatusBar(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(160, Status{Sample: 34, Total: 150, Minutes: 5.5, PPM: 16.04, Threshold: 8, State: "ACTIVE", Events: 1}))
	assert.Contains(t, out, "[PLAYING]")
	assert.Contains(t, out, "t=05:30")
	assert.Contains(t, out, "34/150")
	assert.Contains(t, out, "16.04ppm")
	assert.Contains(t, out, "Detector: ACTIVE")
}

func TestRenderReadingPanel(t *testing.T) {
	out := RenderReadingPanel(Reading{Minutes: 5.5, PPM: 16, Baseline: 3.2, Threshold: 8, Detected: true, State: "ACTIVE", Event: "NONE"},
		40, []float64{3, 3, 16}, 18)
	assert.Len(t, strings.Split(out, "\n"), ReadingPanelHeight)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "LIVE READING")
	assert.Contains(t, plain, ">= threshold")
	assert.Contains(t, plain, "__^")
}

func TestRenderEventList(t *testing.T) {
	uri, err := synth.NewUrination(5, 13, 0.5, 3.5)
	require.NoError(t, err)
	def, err := synth.NewDefecation(14, 5, 2.5, 5)
	require.NoError(t, err)

	found := []detector.Classification{
		{Event: detector.Urination, StartTick: 33, EndTick: 59, PeakTick: 33, PeakPPM: 16.2, Baseline: 4.2},
	}
	out := RenderEventList(found, []synth.Descriptor{uri, def}, 10.0/60, 40, 20, 0)
	assert.Len(t, strings.Split(out, "\n"), 20)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "DETECTIONS [1]")
	assert.Contains(t, plain, "U@05:00")
	assert.Contains(t, plain, "D@14:00")
	assert.Contains(t, plain, "#1 URINATION")
	assert.Contains(t, plain, "05:30 -> 09:50")
	assert.Contains(t, plain, "peak 16.2ppm  +12.0 over 4.2")
}

func TestRenderEventListEmpty(t *testing.T) {
	out := ansi.Strip(RenderEventList(nil, nil, 1, 30, 10, 0))
	assert.Contains(t, out, "No events yet")
	assert.Contains(t, out, "script: none")
}
