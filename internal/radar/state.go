package radar

// State holds the sweep parameters and the colors geometry is generated
// with. It is owned by a single frame loop and is not safe for concurrent
// use.
type State struct {
	speed     float32 // degrees per second
	angle     float32 // degrees
	tolerance float32 // degrees, full cone width

	gridColor  Color
	sweepColor Color
}

// NewState creates a State with the default grid and sweep colors.
func NewState(sweepSpeed, sweepAngle, tolerance float32) *State {
	return &State{
		speed:      sweepSpeed,
		angle:      sweepAngle,
		tolerance:  tolerance,
		gridColor:  DefaultGridColor,
		sweepColor: DefaultSweepColor,
	}
}

// Configure sets the sweep speed and tolerance. angleDelta is added to the
// current angle rather than replacing it; pass 0 for a pure parameter
// update.
func (s *State) Configure(speed, angleDelta, tolerance float32) {
	s.speed = speed
	s.angle += angleDelta
	s.tolerance = tolerance
}

// AdvanceSweep rotates the sweep clockwise by speed*dt and returns the new
// angle. Negative results wrap by whole turns into [0, 360).
func (s *State) AdvanceSweep(dt float32) float32 {
	s.angle -= s.speed * dt
	if s.angle < 0 {
		s.angle = NormalizeDegrees(s.angle)
	}
	return s.angle
}

func (s *State) SetColors(grid, sweep Color) {
	s.gridColor = grid
	s.sweepColor = sweep
}

func (s *State) Angle() float32 { return s.angle }
func (s *State) Tolerance() float32 { return s.tolerance }
func (s *State) Speed() float32 { return s.speed }
func (s *State) GridColor() Color { return s.gridColor }
func (s *State) SweepColor() Color { return s.sweepColor }

// Rings generates ringCount closed polylines, ring r (1-based) at radius
// r*RingSpacing, each tessellated into segments+1 vertices where the last
// repeats the first.
func (s *State) Rings(ringCount, segments int) []Vertex {
	if ringCount <= 0 {
		return []Vertex{}
	}
	segments = guardSegments(segments)
	out := make([]Vertex, 0, ringCount*(segments+1))
	for r := 1; r <= ringCount; r++ {
		out = ring(out, float32(r)*RingSpacing, segments, s.gridColor)
	}
	return out
}

// Radials generates radialCount line segments from the origin to the unit
// circle, evenly spaced starting at 0 degrees. segments is unused.
func (s *State) Radials(radialCount, segments int) []Vertex {
	if radialCount <= 0 {
		return []Vertex{}
	}
	out := make([]Vertex, 0, radialCount*2)
	for i := 0; i < radialCount; i++ {
		deg := 360 * float32(i) / float32(radialCount)
		out = append(out,
			Vertex{Color: s.gridColor},
			Vertex{Pos: Polar(deg, 1), Color: s.gridColor})
	}
	return out
}

// Grid returns rings followed by radials in a single buffer.
func (s *State) Grid(rings, radials, segments int) []Vertex {
	return append(s.Rings(rings, segments), s.Radials(radials, segments)...)
}

// SweepGeometry builds the sweep cone at the current angle without
// touching state.
func (s *State) SweepGeometry(segments int) []Vertex {
	return cone(s.angle, s.tolerance, segments, s.sweepColor)
}

// Sweep advances the sweep by dt and then returns the cone at the new
// angle. This is the only place the sweep angle progresses during a frame.
func (s *State) Sweep(dt float32, segments int) []Vertex {
	s.AdvanceSweep(dt)
	return s.SweepGeometry(segments)
}

// StoppedSweep builds the cone at an externally driven angle, for views
// that share one sweep clock.
func (s *State) StoppedSweep(angle float32, segments int) []Vertex {
	return cone(angle, s.tolerance, segments, s.sweepColor)
}
