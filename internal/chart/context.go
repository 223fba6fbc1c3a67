package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"nh3lab.klederson.com/internal/sensor"
)

const barHalfHeight = 0.275

var situationColors = []color.RGBA{colorRed, colorPeach, colorYellow, colorGreen, colorTeal, colorSky}

// ConcentrationContext draws one horizontal range bar per situation, with
// the sensor's lower detection limit and the urination target band.
func ConcentrationContext(situations []sensor.Situation) (*plot.Plot, error) {
	p := newPlot("Expected NH3 around a litter box", "NH3 (ppm)", "")
	yMin, yMax := -1.0, float64(len(situations))

	target, err := band(sensor.DetectionTarget.Low, sensor.DetectionTarget.High, yMin, yMax, withAlpha(colorGreen, 0x10))
	if err != nil {
		return nil, err
	}
	p.Add(target)

	names := make([]string, len(situations))
	for i, s := range situations {
		names[i] = s.Label
		// Narrow ranges still get a visible bar.
		width := s.High - s.Low
		if width < 1 {
			width = 1
		}
		c := situationColors[i%len(situationColors)]
		bar, err := band(s.Low, s.Low+width, float64(i)-barHalfHeight, float64(i)+barHalfHeight, withAlpha(c, 0xd9))
		if err != nil {
			return nil, err
		}
		text, err := labels(plotter.XYs{{X: s.High + 1.5, Y: float64(i)}},
			[]string{fmt.Sprintf("%g~%g ppm", s.Low, s.High)}, colorText)
		if err != nil {
			return nil, err
		}
		p.Add(bar, text)
	}
	if len(names) > 0 {
		p.NominalY(names...)
	}

	limit, err := vline(sensor.MinValidPPM, yMin, yMax, colorMauve, dashed())
	if err != nil {
		return nil, err
	}
	limitLabel, err := labels(plotter.XYs{{X: sensor.MinValidPPM + 0.5, Y: float64(len(situations)) - 0.5}},
		[]string{fmt.Sprintf("MQ-135 lower limit\n(%g ppm)", sensor.MinValidPPM)}, colorMauve)
	if err != nil {
		return nil, err
	}
	targetLabel, err := labels(plotter.XYs{{X: sensor.DetectionTarget.Low + 0.3, Y: -0.9}},
		[]string{"urination\ndetection target"}, colorGreen)
	if err != nil {
		return nil, err
	}
	p.Add(limit, limitLabel, targetLabel)
	p.Legend.Add(fmt.Sprintf("MQ-135 valid range (%g~%g ppm)", sensor.MinValidPPM, sensor.MaxValidPPM), limit)

	p.X.Min, p.X.Max = -1, 135
	p.Y.Min, p.Y.Max = yMin, yMax
	return p, nil
}
