package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Reading is the sample under the playhead and the detector's view of it.
type Reading struct {
	Minutes   float64
	PPM       float64
	Baseline  float64 // detector EMA
	Threshold float64 // fixed detection level
	Detected  bool
	State     string
	Event     string
}

// ReadingPanelHeight is the number of lines RenderReadingPanel draws.
const ReadingPanelHeight = 14

// RenderReadingPanel renders the live reading with a level bar and the
// recent history as a sparkline.
func RenderReadingPanel(r Reading, width int, history []float64, scale float64) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("LIVE READING")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep}

	value := StyleValue.Render(fmt.Sprintf("%.2f ppm", r.PPM))
	if r.Detected {
		value = StyleDetected.Render(fmt.Sprintf("%.2f ppm  >= threshold", r.PPM))
	}

	fields := []struct{ label, value string }{
		{"Time", StyleValue.Render(formatMinutes(r.Minutes))},
		{"NH3", value},
		{"Baseline", StyleValue.Render(fmt.Sprintf("%.2f ppm", r.Baseline))},
		{"Detector", StyleValue.Render(r.State)},
		{"Event", eventStyle(r.Event).Render(r.Event)},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+f.value)
	}

	lines = append(lines, "")

	barWidth := innerW - 12
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, StyleLabel.Render("  Level ")+renderLevelBar(r.PPM, r.Threshold, scale, barWidth))

	lines = append(lines, "")
	sparkW := innerW - 4
	if sparkW < 10 {
		sparkW = 10
	}
	lines = append(lines, StyleLabel.Render("  History:"))
	lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(renderSparkline(history, sparkW)))

	content := strings.Join(lines, "\n")
	return clampHeight(StylePanelActive.Width(width-2).Render(content), ReadingPanelHeight)
}

func eventStyle(event string) lipgloss.Style {
	switch event {
	case "URINATION":
		return StyleEventUrination
	case "DEFECATION":
		return StyleEventDefecation
	default:
		return StyleValue
	}
}

// renderLevelBar maps 0..scale ppm onto width cells; cells past the
// threshold are drawn in the warning color.
func renderLevelBar(ppm, threshold, scale float64, width int) string {
	if scale <= 0 {
		scale = 1
	}
	ratio := math.Min(math.Max(ppm/scale, 0), 1)
	filled := int(math.Round(ratio * float64(width)))
	mark := int(math.Round(math.Min(math.Max(threshold/scale, 0), 1) * float64(width)))

	below := min(filled, mark)
	above := filled - below

	bar := lipgloss.NewStyle().Foreground(ColorGreen).Render(strings.Repeat("|", below)) +
		lipgloss.NewStyle().Foreground(ColorWarning).Render(strings.Repeat("|", above)) +
		StyleHelp.Render(strings.Repeat("-", width-filled))
	return StyleHelp.Render("[") + bar + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	// Find min/max for scaling
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}
