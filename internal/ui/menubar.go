package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"nh3lab.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, paused, done bool, speed int) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"S", "tart"},
		{"P", "ause"},
		{"R", "estart"},
		{"+/-", "speed"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	var status string
	switch {
	case done:
		status = StyleStatusDone.Render("DONE")
	case paused:
		status = StyleStatusPaused.Render("PAUSED")
	default:
		status = StyleStatusPlaying.Render(fmt.Sprintf("REPLAY x%d", speed))
	}

	sourceInfo := StyleMenuLabel.Render(source)

	left := StyleMenuKey.Render(title) + menu.String()
	right := status + "  " + sourceInfo + " "

	gap := width - StyleMenuBar.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
