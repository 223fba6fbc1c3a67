// Package scope draws a concentration trace as a grid of styled terminal
// cells.
package scope

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"nh3lab.klederson.com/internal/synth"
)

var (
	colorBright     = lipgloss.Color("#00FF41")
	colorMid        = lipgloss.Color("#008F11")
	colorDim        = lipgloss.Color("#004A0A")
	colorThreshold  = lipgloss.Color("#FFAA00")
	colorHit        = lipgloss.Color("#FF3300")
	colorUrination  = lipgloss.Color("#00FFAA")
	colorDefecation = lipgloss.Color("#FFCC00")

	styleHead       = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleSample     = lipgloss.NewStyle().Foreground(colorMid).Bold(true)
	styleSampleHot  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleHit        = lipgloss.NewStyle().Foreground(colorHit).Bold(true)
	styleThreshold  = lipgloss.NewStyle().Foreground(colorThreshold)
	styleBaseline   = lipgloss.NewStyle().Foreground(colorMid)
	styleUrination  = lipgloss.NewStyle().Foreground(colorUrination).Faint(true)
	styleDefecation = lipgloss.NewStyle().Foreground(colorDefecation).Faint(true)
	styleLegUri     = lipgloss.NewStyle().Foreground(colorUrination)
	styleLegDef     = lipgloss.NewStyle().Foreground(colorDefecation)
	styleLegend     = lipgloss.NewStyle().Foreground(colorDim)
)

// Window is a shaded span of the time axis.
type Window struct {
	From, To float64 // minutes
	Kind     synth.Kind
}

// View is what the plot shows: the whole trace, of which the first Shown
// samples have been revealed.
type View struct {
	Minutes   []float64
	PPM       []float64
	Shown     int
	Threshold synth.Threshold
	Windows   []Window
}

// WindowsFor shades each event from its start until its decay falls to
// frac of the peak.
func WindowsFor(events []synth.Descriptor, frac float64) []Window {
	out := make([]Window, 0, len(events))
	for _, ev := range events {
		from, to := ev.Window(frac)
		out = append(out, Window{From: from, To: to, Kind: ev.Kind()})
	}
	return out
}

type column struct {
	has   bool
	row   int
	hit   bool
	shade bool
	kind  synth.Kind
}

// Render produces the plot as a styled string of exactly height lines.
func Render(width, height int, v View, head *Playhead) string {
	if width < 10 || height < 5 {
		return ""
	}

	n := len(v.PPM)
	shown := min(max(v.Shown, 0), n)
	yMax := AxisMax(v.PPM)
	tMax := 0.0
	if len(v.Minutes) > 0 {
		tMax = v.Minutes[len(v.Minutes)-1]
	}

	thrRow := RowForValue(v.Threshold.Level(), yMax, height)
	baseRow := RowForValue(v.Threshold.Baseline, yMax, height)

	cols := make([]column, width)
	for i := 0; i < shown; i++ {
		c := ColumnForIndex(i, n, width)
		row := RowForValue(v.PPM[i], yMax, height)
		// Several samples can share a column; keep the highest.
		if !cols[c].has || row < cols[c].row {
			cols[c].has = true
			cols[c].row = row
			cols[c].hit = v.Threshold.Detected(v.PPM[i])
		}
	}
	for _, w := range v.Windows {
		from := ColumnForMinute(w.From, tMax, width)
		to := min(ColumnForMinute(w.To, tMax, width), width-1)
		for c := max(from, 0); c <= to; c++ {
			cols[c].shade = true
			cols[c].kind = w.Kind
		}
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sb.WriteString(renderCell(col, row, cols[col], thrRow, baseRow, head))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderCell(col, row int, c column, thrRow, baseRow int, head *Playhead) string {
	intensity := head.Intensity(col)

	if c.has && row == c.row {
		switch {
		case c.hit:
			return styleHit.Render("*")
		case intensity > 0.5:
			return styleSampleHot.Render("*")
		default:
			return styleSample.Render("*")
		}
	}

	if col == head.Col {
		return styleHead.Render("|")
	}

	// The trail fills the area under the newest samples.
	if c.has && row > c.row && intensity > 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(glowColor(intensity))).Render(".")
	}

	if row == thrRow && col%2 == 0 {
		return styleThreshold.Render("-")
	}
	if row == baseRow {
		return styleBaseline.Render(".")
	}

	if c.shade {
		if c.kind == synth.Defecation {
			return styleDefecation.Render(":")
		}
		return styleUrination.Render(":")
	}

	return " "
}

func glowColor(intensity float64) string {
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the plot legend line, centred in width.
func RenderLegend(width int) string {
	legend := styleSample.Render("* sample") + "  " +
		styleHit.Render("* detected") + "  " +
		styleThreshold.Render("- threshold") + "  " +
		styleBaseline.Render(". baseline") + "  " +
		styleLegUri.Render(": urination") + "  " +
		styleLegDef.Render(": defecation") + "  " +
		styleLegend.Render("| playhead")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
