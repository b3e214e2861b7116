package ui

import "github.com/charmbracelet/lipgloss"

// Phosphor palette
var (
	ColorPhosphor     = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorDetected     = lipgloss.Color("#FFFF00")
	ColorContact      = lipgloss.Color("#00FFAA")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorWarning      = lipgloss.Color("#FFAA00")
	ColorError        = lipgloss.Color("#FF3300")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorPhosphor).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusRunning = lipgloss.NewStyle().
				Foreground(ColorPhosphor).
				Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true).
			Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleTargetID = lipgloss.NewStyle().
			Foreground(ColorPhosphor).
			Bold(true)

	StyleTargetDetected = lipgloss.NewStyle().
				Foreground(ColorDetected).
				Bold(true)

	StyleTargetContact = lipgloss.NewStyle().
				Foreground(ColorContact)

	StyleTargetInfo = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleOverlayText = lipgloss.NewStyle().
				Foreground(ColorPhosphor)

	StyleOverlayOff = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleLegend = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)
