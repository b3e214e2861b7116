package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ppi-radar.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, feed string, paused bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"P", "ause"},
		{"+/-", "Speed"},
		{"[/]", "Tol"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	status := StyleStatusRunning.Render("SWEEPING")
	if paused {
		status = StyleStatusPaused.Render("PAUSED")
	}

	feedInfo := StyleMenuLabel.Render(fmt.Sprintf("Feed: %s", feed))

	left := StyleMenuKey.Render(title) + menu.String()
	right := status + "  " + feedInfo + " "

	gap := max(width-2-lipgloss.Width(left)-lipgloss.Width(right), 0) // 2 for padding
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
