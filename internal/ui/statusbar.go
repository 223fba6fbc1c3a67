package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the replay position summarised in the status bar.
type Status struct {
	Paused    bool
	Done      bool
	Sample    int // samples revealed
	Total     int
	Minutes   float64
	PPM       float64
	Threshold float64
	State     string
	Events    int
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	var status string
	switch {
	case s.Done:
		status = StyleStatusDone.Render("[DONE]")
	case s.Paused:
		status = StyleStatusPaused.Render("[PAUSED]")
	default:
		status = StyleStatusPlaying.Render("[PLAYING]")
	}

	info := fmt.Sprintf(" t=%s  Sample: %d/%d  NH3: %.2fppm  Threshold: %.1fppm  Detector: %s  Events: %d",
		formatMinutes(s.Minutes), s.Sample, s.Total, s.PPM, s.Threshold, s.State, s.Events)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - StyleStatusBar.GetHorizontalPadding() - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}

// formatMinutes renders fractional minutes as mm:ss.
func formatMinutes(m float64) string {
	if m < 0 {
		m = 0
	}
	total := int(m*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
