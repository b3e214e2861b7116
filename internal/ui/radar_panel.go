package ui

import "fmt"

// RenderRadarPanel wraps the scope with a styled border and a legend line.
func RenderRadarPanel(width, height int, scope *Scope, legend string) string {
	content := scope.String() + "\n" + legend
	return clampLines(StylePanelBorder.Width(width-2).Height(height-2).Render(content), height)
}

// ScopeSize returns the scope area inside a radar panel of the given size.
func ScopeSize(width, height int) (w, h int) {
	return max(width-2, 0), max(height-3, 0)
}

// RenderLegend renders the symbol key shown under the scope.
func RenderLegend(tolerance float32) string {
	return StyleTargetDetected.Render("*") + StyleLegend.Render(" detected  ") +
		StyleTargetInfo.Render("*") + StyleLegend.Render(" target  ") +
		StyleLegend.Render(fmt.Sprintf("cone %.0fdeg", tolerance))
}
