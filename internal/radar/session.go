package radar

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Layer is one block of geometry together with the primitive it is drawn
// with.
type Layer struct {
	Primitive Primitive
	Vertices  []Vertex

	// Stride is the vertex count of each independent strip within
	// Vertices; zero means the whole slice is one primitive batch.
	Stride int
}

// Frame is everything a front end needs to draw one update.
type Frame struct {
	Rings   Layer
	Radials Layer
	Sweep   Layer
	Targets Layer

	Angle     float32
	Tolerance float32
	Detected  int
}

// Layers returns the frame's layers in draw order.
func (f Frame) Layers() []Layer {
	return []Layer{f.Rings, f.Radials, f.Sweep, f.Targets}
}

// Layout selects the static grid geometry.
type Layout struct {
	Rings    int
	Radials  int
	Segments int
}

type gridKey struct {
	kind     Primitive
	count    int
	segments int
	color    Color
}

const gridCacheSize = 16

// Session owns the radar state, its targets and cached grid geometry, and
// is passed explicitly through the frame loop.
type Session struct {
	State   *State
	Tracker *Tracker

	layout Layout
	paused bool
	grid   *lru.Cache[gridKey, []Vertex]
}

// NewSession creates a session. A nil tracker yields an empty one.
func NewSession(state *State, tracker *Tracker, layout Layout) *Session {
	if tracker == nil {
		tracker = NewTracker(nil)
	}
	// Only fails for a non-positive size.
	cache, _ := lru.New[gridKey, []Vertex](gridCacheSize)
	return &Session{
		State:   state,
		Tracker: tracker,
		layout:  layout,
		grid:    cache,
	}
}

func (s *Session) Layout() Layout {
	return s.layout
}

// UpdateGeometry changes the ring/radial layout. Cached geometry for the
// old layout stays in the cache until evicted.
func (s *Session) UpdateGeometry(rings, radials, segments int) {
	s.layout = Layout{Rings: rings, Radials: radials, Segments: segments}
}

// UpdateParameters sets sweep speed and tolerance, leaving the angle as is.
func (s *Session) UpdateParameters(speed, tolerance float32) {
	s.State.Configure(speed, 0, tolerance)
}

// SetColors changes the grid and sweep colors. Grid geometry is keyed by
// color, so the next frame regenerates it.
func (s *Session) SetColors(grid, sweep Color) {
	s.State.SetColors(grid, sweep)
}

// SetPaused freezes the sweep and target motion; frames still render.
func (s *Session) SetPaused(p bool) {
	s.paused = p
}

func (s *Session) Paused() bool {
	return s.paused
}

// Rings returns the ring geometry for the current layout, generating it
// only when the layout or grid color changed. The returned slice is shared
// with the cache and must not be modified.
func (s *Session) Rings() []Vertex {
	key := gridKey{LineStrip, s.layout.Rings, guardSegments(s.layout.Segments), s.State.GridColor()}
	if v, ok := s.grid.Get(key); ok {
		return v
	}
	v := s.State.Rings(s.layout.Rings, s.layout.Segments)
	s.grid.Add(key, v)
	return v
}

// Radials returns the radial geometry for the current layout.
func (s *Session) Radials() []Vertex {
	key := gridKey{Lines, s.layout.Radials, 0, s.State.GridColor()}
	if v, ok := s.grid.Get(key); ok {
		return v
	}
	v := s.State.Radials(s.layout.Radials, s.layout.Segments)
	s.grid.Add(key, v)
	return v
}

// Frame advances the session by dt seconds and returns the geometry to
// draw: the sweep moves, the cone is rebuilt at the new angle, targets move
// and are re-detected against it.
func (s *Session) Frame(dt float32) Frame {
	if s.paused {
		dt = 0
	}

	sweep := s.State.Sweep(dt, s.layout.Segments)
	s.Tracker.Animate(dt)
	s.Tracker.Detect(s.State.Angle(), s.State.Tolerance())

	return Frame{
		Rings:     Layer{Primitive: LineStrip, Vertices: s.Rings(), Stride: guardSegments(s.layout.Segments) + 1},
		Radials:   Layer{Primitive: Lines, Vertices: s.Radials()},
		Sweep:     Layer{Primitive: TriangleFan, Vertices: sweep},
		Targets:   Layer{Primitive: Points, Vertices: s.Tracker.Vertices()},
		Angle:     s.State.Angle(),
		Tolerance: s.State.Tolerance(),
		Detected:  s.Tracker.DetectedCount(),
	}
}
