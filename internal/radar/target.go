package radar

// Target is a point contact in polar coordinates.
type Target struct {
	ID              string
	Angle           float32 // degrees, [0, 360) after Animate
	Radius          float32 // normalized, [RadiusMin, RadiusMax] after Animate
	AngularVelocity float32 // degrees per second
	RadialVelocity  float32 // units per second
	Detected        bool
}

// Position returns the target's Cartesian position.
func (t Target) Position() Vec2 {
	return Polar(t.Angle, t.Radius)
}

// Tracker owns an ordered set of targets. Order is preserved across every
// operation so vertex indices stay stable between frames.
type Tracker struct {
	targets []Target
	index   map[string]int
}

// NewTracker creates a tracker holding a copy of the given targets. Of
// several targets sharing an ID the last one wins, in the first one's slot.
func NewTracker(targets []Target) *Tracker {
	t := &Tracker{
		targets: make([]Target, 0, len(targets)),
		index:   make(map[string]int),
	}
	for _, tg := range targets {
		t.add(tg)
	}
	return t
}

// add appends a target. A non-empty ID that is already present replaces
// the earlier target in its slot, so IDs stay unique.
func (t *Tracker) add(tg Target) {
	if tg.ID != "" {
		if i, ok := t.index[tg.ID]; ok {
			t.targets[i] = tg
			return
		}
		t.index[tg.ID] = len(t.targets)
	}
	t.targets = append(t.targets, tg)
}

// Animate advances every target by dt seconds.
func (t *Tracker) Animate(dt float32) {
	AnimateTargets(t.targets, dt)
}

// Detect recomputes the detected flag of every target.
func (t *Tracker) Detect(sweepAngle, tolerance float32) {
	DetectTargets(t.targets, sweepAngle, tolerance)
}

// AnimateTargets advances targets in place. The angle wraps into
// [0, 360); the radius saturates at the display bounds.
func AnimateTargets(targets []Target, dt float32) {
	for i := range targets {
		tg := &targets[i]

		tg.Angle = NormalizeDegrees(tg.Angle + tg.AngularVelocity*dt)
		tg.Radius = Clamp(tg.Radius+tg.RadialVelocity*dt, RadiusMin, RadiusMax)
	}
}

// DetectTargets marks each target whose circular distance from sweepAngle
// is within tolerance. Tolerance is the full window here, while the sweep
// cone is drawn with half of it on each side.
func DetectTargets(targets []Target, sweepAngle, tolerance float32) {
	for i := range targets {
		targets[i].Detected = AngleDiff(targets[i].Angle, sweepAngle) <= tolerance
	}
}

// Vertices returns one point per target, yellow when detected and green
// otherwise.
func (t *Tracker) Vertices() []Vertex {
	out := make([]Vertex, len(t.targets))
	for i, tg := range t.targets {
		c := UndetectedColor
		if tg.Detected {
			c = DetectedColor
		}
		out[i] = Vertex{Pos: tg.Position(), Color: c}
	}
	return out
}

// Targets returns a copy of the current targets in rendering order.
func (t *Tracker) Targets() []Target {
	out := make([]Target, len(t.targets))
	copy(out, t.targets)
	return out
}

func (t *Tracker) Len() int {
	return len(t.targets)
}

// DetectedCount returns how many targets were lit by the last Detect.
func (t *Tracker) DetectedCount() int {
	n := 0
	for _, tg := range t.targets {
		if tg.Detected {
			n++
		}
	}
	return n
}

// Upsert places or moves the target with the given ID. New targets are
// appended, existing ones keep their slot and velocities.
func (t *Tracker) Upsert(id string, angle, radius float32) {
	angle = NormalizeDegrees(angle)
	radius = Clamp(radius, RadiusMin, RadiusMax)
	if i, ok := t.index[id]; ok {
		t.targets[i].Angle = angle
		t.targets[i].Radius = radius
		return
	}
	t.add(Target{ID: id, Angle: angle, Radius: radius})
}

// Remove drops the targets with the given IDs, keeping the relative order
// of the rest. Returns the number removed.
func (t *Tracker) Remove(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := t.index[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}

	before := len(t.targets)
	kept := t.targets[:0]
	for _, tg := range t.targets {
		if tg.ID != "" && drop[tg.ID] {
			continue
		}
		kept = append(kept, tg)
	}
	t.targets = kept

	clear(t.index)
	for i, tg := range t.targets {
		if tg.ID != "" {
			t.index[tg.ID] = i
		}
	}
	return before - len(t.targets)
}
