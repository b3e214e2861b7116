package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout joins the radar panel and the side column horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, radarPanel, side, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// clampLines pads or truncates rendered output to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(rendered string, height int) string {
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
