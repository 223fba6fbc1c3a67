package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout joins the plot panel and the side column horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, plotPanel, side, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, plotPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderPlotPanel wraps plot content with a styled border.
// The actual plot rendering is done externally to avoid import cycles.
func RenderPlotPanel(width, height int, title, plotContent, legend string) string {
	content := StylePanelTitle.Render(title) + "\n" + plotContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// clampHeight pads or cuts a rendered block to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampHeight(rendered string, height int) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
