package ui

import (
	"fmt"
	"strings"
)

// OverlayState describes the text overlay listener for the panel header.
type OverlayState struct {
	Addr    string // empty when the listener is off
	Err     error
	Dropped int
}

// RenderOverlayPanel renders the most recent overlay messages, newest at
// the bottom.
func RenderOverlayPanel(lines []string, st OverlayState, width, height int) string {
	innerW := max(width-4, 10)
	innerH := max(height-2, 3)

	var header string
	switch {
	case st.Err != nil:
		header = StyleError.Render(truncRaw("MSG "+st.Err.Error(), innerW))
	case st.Addr == "":
		header = StyleOverlayOff.Render("MSG [off]")
	default:
		h := fmt.Sprintf("MSG udp%s", st.Addr)
		if st.Dropped > 0 {
			h += fmt.Sprintf(" drop:%d", st.Dropped)
		}
		header = StylePanelTitle.Render(h)
	}
	out := []string{header, StyleSeparator.Render(strings.Repeat("-", innerW))}

	space := innerH - len(out)
	if len(lines) > space {
		lines = lines[len(lines)-space:]
	}
	for _, l := range lines {
		if len([]rune(l)) > innerW {
			l = string([]rune(l)[:innerW])
		}
		out = append(out, StyleOverlayText.Render(l))
	}

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(out, "\n"))
	return clampLines(rendered, height)
}
