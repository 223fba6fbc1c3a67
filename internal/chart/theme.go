// Package chart renders the documentation charts as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Dark palette shared by every chart.
var (
	colorBackground = hex(0x1e1e2e)
	colorEdge       = hex(0x585b70)
	colorText       = hex(0xcdd6f4)
	colorGrid       = hex(0x313244)
	colorBlue       = hex(0x89b4fa)
	colorGreen      = hex(0xa6e3a1)
	colorYellow     = hex(0xf9e2af)
	colorMauve      = hex(0xcba6f7)
	colorRed        = hex(0xf38ba8)
	colorPeach      = hex(0xfab387)
	colorTeal       = hex(0x94e2d5)
	colorSky        = hex(0x89dceb)
)

// Default output size.
const (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// newPlot returns a plot with the dark theme and a dashed grid applied.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = colorBackground

	p.Title.Text = title
	p.Title.TextStyle.Color = colorText
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = colorEdge
		ax.Label.TextStyle.Color = colorText
		ax.Tick.Label.Color = colorText
		ax.Tick.LineStyle.Color = colorEdge
	}

	p.Legend.TextStyle.Color = colorText
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = colorGrid
	grid.Vertical.Dashes = dashed()
	grid.Horizontal.Color = colorGrid
	grid.Horizontal.Dashes = dashed()
	p.Add(grid)

	return p
}

func dashed() []vg.Length { return []vg.Length{vg.Points(4), vg.Points(3)} }
func dotted() []vg.Length { return []vg.Length{vg.Points(1), vg.Points(3)} }

// hline draws a horizontal reference line across [x0, x1].
func hline(y, x0, x1 float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	return styledLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}}, c, dashes)
}

// vline draws a vertical reference line across [y0, y1].
func vline(x, y0, y1 float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	return styledLine(plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}}, c, dashes)
}

func styledLine(xys plotter.XYs, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle = draw.LineStyle{Color: c, Width: vg.Points(1.2), Dashes: dashes}
	return l, nil
}

// band shades the rectangle [x0, x1] x [y0, y1].
func band(x0, x1, y0, y1 float64, c color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	})
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	return poly, nil
}

func labels(xys plotter.XYs, text []string, c color.Color) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Color = c
	}
	return l, nil
}

// WritePNG encodes p as PNG into w.
func WritePNG(p *plot.Plot, w io.Writer, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Save writes p to path as PNG, creating parent directories.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := WritePNG(p, f, width, height); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
