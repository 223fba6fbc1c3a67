package chart

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"nh3lab.klederson.com/internal/sensor"
)

const (
	axisMinPPM    = 5.0
	axisMaxPPM    = 1200.0
	curveMinPPM   = 5.0
	curveMaxPPM   = 1000.0
	curveSamples  = 400
	ratioAxisLow  = 0.3
	ratioAxisHigh = 6.0
)

// SensitivityCurve plots the MQ-135 NH3 curve on log-log axes with the
// datasheet points it was fitted to.
func SensitivityCurve() (*plot.Plot, error) {
	p := newPlot("MQ-135 NH3 sensitivity curve (log-log)", "NH3 (ppm)", "Rs/R0")
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := sensor.Curve(curveMinPPM, curveMaxPPM, curveSamples)
	curve := make(plotter.XYs, len(pts))
	var valid plotter.XYs
	for i, pt := range pts {
		curve[i].X, curve[i].Y = pt.PPM, pt.Ratio
		if sensor.InValidRange(pt.PPM) {
			valid = append(valid, curve[i])
		}
	}

	if len(valid) > 1 {
		area := append(plotter.XYs{}, valid...)
		area = append(area,
			plotter.XY{X: valid[len(valid)-1].X, Y: ratioAxisLow},
			plotter.XY{X: valid[0].X, Y: ratioAxisLow},
		)
		shade, err := plotter.NewPolygon(area)
		if err != nil {
			return nil, err
		}
		shade.Color = withAlpha(colorBlue, 0x1f)
		shade.LineStyle.Width = 0
		p.Add(shade)
	}

	clean, err := hline(sensor.CleanAirRatio, axisMinPPM, axisMaxPPM, colorGreen, dotted())
	if err != nil {
		return nil, err
	}
	cleanLabel, err := labels(plotter.XYs{{X: 6, Y: sensor.CleanAirRatio * 1.06}},
		[]string{fmt.Sprintf("clean air  Rs/R0 = %s", strconv.FormatFloat(sensor.CleanAirRatio, 'f', -1, 64))}, colorGreen)
	if err != nil {
		return nil, err
	}
	p.Add(clean, cleanLabel)

	refH, err := hline(1.0, axisMinPPM, axisMaxPPM, colorRed, dashed())
	if err != nil {
		return nil, err
	}
	refV, err := vline(100, ratioAxisLow, ratioAxisHigh, colorRed, dashed())
	if err != nil {
		return nil, err
	}
	refLabel, err := labels(plotter.XYs{{X: 105, Y: 1.08}}, []string{"R0 reference\n(100 ppm, Rs/R0=1.0)"}, colorRed)
	if err != nil {
		return nil, err
	}
	p.Add(refH, refV, refLabel)

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle = draw.LineStyle{Color: colorBlue, Width: vg.Points(2.2)}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("NH3: ppm = %.1f x (Rs/R0)^%.3f", sensor.CurveA, sensor.CurveB), line)

	ref := make(plotter.XYs, len(sensor.ReferencePoints))
	var refText []string
	var refXY plotter.XYs
	for i, pt := range sensor.ReferencePoints {
		ref[i].X, ref[i].Y = pt.PPM, pt.Ratio
		// 100 ppm is covered by the R0 reference annotation.
		if pt.PPM == 100 {
			continue
		}
		refXY = append(refXY, plotter.XY{X: pt.PPM * 1.08, Y: pt.Ratio * 1.04})
		refText = append(refText, fmt.Sprintf("%g ppm  Rs/R0~%.2f", pt.PPM, pt.Ratio))
	}
	dots, err := plotter.NewScatter(ref)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyle = draw.GlyphStyle{Color: colorMauve, Radius: vg.Points(3.5), Shape: draw.CircleGlyph{}}
	p.Add(dots)
	p.Legend.Add("datasheet reference", dots)

	refLabels, err := labels(refXY, refText, colorText)
	if err != nil {
		return nil, err
	}
	p.Add(refLabels)

	p.X.Min, p.X.Max = axisMinPPM, axisMaxPPM
	p.Y.Min, p.Y.Max = ratioAxisLow, ratioAxisHigh
	return p, nil
}
