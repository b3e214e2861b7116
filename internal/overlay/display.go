package overlay

// Source is anything that hands over queued overlay messages.
type Source interface {
	Drain() []string
}

// Display keeps the most recent lines for on-screen rendering. It is used
// from the frame loop only.
type Display struct {
	lines *Ring[string]
}

func NewDisplay(maxLines int) *Display {
	return &Display{lines: NewRing[string](maxLines)}
}

// Pull moves every pending message from src into the display and returns
// how many arrived.
func (d *Display) Pull(src Source) int {
	if src == nil {
		return 0
	}
	msgs := src.Drain()
	for _, m := range msgs {
		d.lines.Push(m)
	}
	return len(msgs)
}

// Add appends a line directly, e.g. for local status messages.
func (d *Display) Add(line string) {
	d.lines.Push(line)
}

// Lines returns the displayed lines, oldest first.
func (d *Display) Lines() []string {
	return d.lines.Values()
}
