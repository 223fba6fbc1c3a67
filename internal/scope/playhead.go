package scope

import "nh3lab.klederson.com/internal/config"

// Playhead marks the newest revealed sample and the glow trailing it.
type Playhead struct {
	Col   int // Column of the newest sample, -1 before the first
	Trail int // Columns the glow spans behind the head
}

// NewPlayhead creates a playhead before the first sample.
func NewPlayhead() *Playhead {
	return &Playhead{Col: -1, Trail: config.TrailColumns}
}

// Update moves the head to the last of shown samples out of n.
func (p *Playhead) Update(shown, n, width int) {
	if shown <= 0 {
		p.Col = -1
		return
	}
	p.Col = ColumnForIndex(shown-1, n, width)
}

// Intensity returns the glow [0, 1] for a column: 1 at the head, falling
// linearly to 0 Trail columns behind it. Columns ahead of the head get 0.
func (p *Playhead) Intensity(col int) float64 {
	if p.Col < 0 || p.Trail <= 0 {
		return 0
	}
	diff := p.Col - col
	if diff < 0 || diff >= p.Trail {
		return 0
	}
	return 1.0 - float64(diff)/float64(p.Trail)
}
