package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar reports about the running session.
type Status struct {
	Paused    bool
	Angle     float32
	Speed     float32
	Tolerance float32
	Targets   int
	Detected  int
	Contacts  int
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	state := StyleStatusRunning.Render("[SWEEPING]")
	if st.Paused {
		state = StyleStatusPaused.Render("[PAUSED]")
	}

	info := fmt.Sprintf(" Sweep: %03.0fdeg  Speed: %.0fdeg/s  Tol: %.0fdeg  Targets: %d  Detected: %d  Contacts: %d",
		st.Angle, st.Speed, st.Tolerance, st.Targets, st.Detected, st.Contacts)

	content := state + StyleStatusBar.Render(info)
	gap := max(width-2-lipgloss.Width(content), 0)
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
