package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorUrination    = lipgloss.Color("#00FFAA")
	ColorDefecation   = lipgloss.Color("#FFCC00")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusPlaying = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusDone = lipgloss.NewStyle().
			Foreground(ColorMidGreen).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleValue = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleEventUrination = lipgloss.NewStyle().
				Foreground(ColorUrination).
				Bold(true)

	StyleEventDefecation = lipgloss.NewStyle().
				Foreground(ColorDefecation).
				Bold(true)

	StyleEventDetail = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StyleDetected = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleFilterInactive = lipgloss.NewStyle().
				Foreground(ColorDimGreen)
)

// Cursor row style: black text on bright green = unmissable highlight
var cursorRowSty = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(ColorMatrixGreen).
	Bold(true)
