package chart

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"nh3lab.klederson.com/internal/synth"
)

// EventOptions tunes the event pattern chart.
type EventOptions struct {
	Title string
	// ShadeFraction sets where each event's shaded window ends: the point
	// its decay falls to this fraction of the peak.
	ShadeFraction float64
}

// Peak is an annotated maximum of the series.
type Peak struct {
	Kind    synth.Kind
	Minutes float64
	PPM     float64
}

// Peaks finds the largest sample attributed to each event, in start
// order. An event owns the samples from its start until a later event
// starts.
func Peaks(s synth.Series, events []synth.Descriptor) []Peak {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b synth.Descriptor) int {
		return cmp.Compare(a.Start(), b.Start())
	})

	var out []Peak
	for i, ev := range sorted {
		to := math.Inf(1)
		for _, next := range sorted[i+1:] {
			if next.Start() > ev.Start() {
				to = next.Start()
				break
			}
		}
		idx, ok := s.PeakBetween(ev.Start(), to)
		if !ok {
			continue
		}
		out = append(out, Peak{Kind: ev.Kind(), Minutes: s.Minutes[idx], PPM: s.PPM[idx]})
	}
	return out
}

func kindColor(k synth.Kind) color.RGBA {
	if k == synth.Defecation {
		return colorGreen
	}
	return colorBlue
}

func peakCaption(p Peak) string {
	shape := "sharp rise, fast decay"
	if p.Kind == synth.Defecation {
		shape = "gentle rise, slow decay"
	}
	return fmt.Sprintf("peak %.1f ppm\n(%s)", p.PPM, shape)
}

// EventPattern plots a synthesized series with its baseline, threshold,
// event windows and peak annotations.
func EventPattern(s synth.Series, events []synth.Descriptor, opts EventOptions) (*plot.Plot, error) {
	title := opts.Title
	if title == "" {
		title = "NH3 event pattern (simulated)"
	}
	p := newPlot(title, "Time (min)", "NH3 (ppm)")

	xMax := 0.0
	if n := len(s.Minutes); n > 0 {
		xMax = s.Minutes[n-1]
	}
	xMax = math.Max(xMax, 1)
	yMin, yMax := -0.5, math.Max(18, s.Summary().Max+2)

	for _, ev := range events {
		from, to := ev.Window(opts.ShadeFraction)
		shade, err := band(from, math.Min(to, xMax), yMin, yMax, withAlpha(kindColor(ev.Kind()), 0x18))
		if err != nil {
			return nil, err
		}
		p.Add(shade)
	}

	base, err := hline(s.Threshold.Baseline, 0, xMax, colorEdge, dotted())
	if err != nil {
		return nil, err
	}
	p.Add(base)
	p.Legend.Add(fmt.Sprintf("baseline (~%.1f ppm)", s.Threshold.Baseline), base)

	th, err := hline(s.Threshold.Level(), 0, xMax, colorYellow, dashed())
	if err != nil {
		return nil, err
	}
	p.Add(th)
	p.Legend.Add(fmt.Sprintf("detection threshold (baseline +%.1f = %.1f ppm)", s.Threshold.Delta, s.Threshold.Level()), th)

	if s.Len() > 0 {
		xys := make(plotter.XYs, s.Len())
		for i := range xys {
			xys[i].X = s.Minutes[i]
			xys[i].Y = s.PPM[i]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle = draw.LineStyle{Color: withAlpha(colorMauve, 0x66), Width: vg.Points(1)}
		p.Add(line)

		dots, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		dots.GlyphStyle = draw.GlyphStyle{Color: colorMauve, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		p.Add(dots)
		p.Legend.Add("sensor samples", dots)
	}

	for _, pk := range Peaks(s, events) {
		ann, err := labels(plotter.XYs{{X: pk.Minutes, Y: pk.PPM + 0.8}}, []string{peakCaption(pk)}, kindColor(pk.Kind))
		if err != nil {
			return nil, err
		}
		p.Add(ann)
	}

	p.X.Min, p.X.Max = 0, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
	return p, nil
}
