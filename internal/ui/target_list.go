package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TargetRow is one entry of the target list. Contacts from a live feed
// carry signal information; configured targets do not.
type TargetRow struct {
	ID       string
	Name     string
	Angle    float32
	Radius   float32
	Detected bool

	Contact bool
	RSSI    float64
	Age     time.Duration
}

const linesPerRow = 3 // 2 content + 1 blank

// RenderTargetList renders the target list panel. The title stays fixed at
// the top; rows are clipped to the panel height.
func RenderTargetList(rows []TargetRow, width, height int) string {
	innerW := max(width-4, 10)
	innerH := max(height-2, 3)

	detected := 0
	for _, r := range rows {
		if r.Detected {
			detected++
		}
	}
	title := StylePanelTitle.Render(fmt.Sprintf("TARGETS [%d/%d]", detected, len(rows)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, separator}

	if len(rows) == 0 {
		lines = append(lines, "", StyleHelp.Render(" No targets"))
	}
	for _, r := range rows {
		if len(lines)+linesPerRow-1 > innerH {
			break
		}
		lines = append(lines, renderTargetRow(r, innerW)...)
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
	return clampLines(rendered, height)
}

func renderTargetRow(r TargetRow, maxW int) []string {
	symbol := StyleTargetInfo.Render("*")
	tag := StyleHelp.Render("[---]")
	if r.Detected {
		symbol = StyleTargetDetected.Render("*")
		tag = StyleTargetDetected.Render("[DET]")
	}

	name := r.ID
	if r.Name != "" {
		name = r.Name
	}
	if nameMax := max(maxW-12, 4); len(name) > nameMax {
		name = name[:nameMax]
	}
	nameSty := StyleTargetID
	if r.Contact {
		nameSty = StyleTargetContact
	}

	line1 := fmt.Sprintf(" %s %s %s", symbol, nameSty.Render(name), tag)
	info := fmt.Sprintf("   %03.0fdeg r%.2f", r.Angle, r.Radius)
	if !r.Contact {
		return []string{line1, StyleTargetInfo.Render(truncRaw(info, maxW)), ""}
	}

	info += fmt.Sprintf(" %ddBm %s ", int(r.RSSI), formatAge(r.Age))
	barW := maxW - lipgloss.Width(info) - 2
	line2 := StyleTargetInfo.Render(info)
	if barW >= 4 {
		line2 += renderSignalBar(r.RSSI, barW)
	}
	return []string{line1, line2, ""}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}

// renderSignalBar maps RSSI -100..-30 onto a bar of the given width.
func renderSignalBar(rssi float64, width int) string {
	ratio := math.Max(0, math.Min(1, (rssi+100.0)/70.0))
	filled := int(math.Round(ratio * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := lipgloss.NewStyle().Foreground(proximityColor(rssi)).Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func proximityColor(rssi float64) lipgloss.Color {
	switch {
	case rssi > -50:
		return ColorError
	case rssi > -65:
		return ColorWarning
	case rssi > -80:
		return ColorPhosphor
	default:
		return ColorMidGreen
	}
}

func formatAge(d time.Duration) string {
	if d < time.Second {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
