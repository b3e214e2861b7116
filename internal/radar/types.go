package radar

// Vec2 is a position in normalized device coordinates.
type Vec2 struct {
	X, Y float32
}

// Color is an RGBA color with channels conventionally in [0, 1]. Values
// are never clamped here; the sweep fade may legitimately produce them.
type Color struct {
	R, G, B, A float32
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Vertex is one generated point of radar geometry.
type Vertex struct {
	Pos   Vec2
	Color Color
}

// Primitive names the draw mode a layer of vertices is meant for.
type Primitive int

const (
	LineStrip   Primitive = iota // one strip per ring
	Lines                        // radial pairs
	TriangleFan                  // sweep cone
	Points                       // targets
)

func (p Primitive) String() string {
	switch p {
	case LineStrip:
		return "LINE_STRIP"
	case Lines:
		return "LINES"
	case TriangleFan:
		return "TRIANGLE_FAN"
	case Points:
		return "POINTS"
	default:
		return "UNKNOWN"
	}
}

var (
	DefaultGridColor  = Color{0, 0.4, 0, 1}
	DefaultSweepColor = Color{0, 1, 0, 0.4}

	// Target palette is fixed and independent of the grid/sweep colors.
	DetectedColor   = Color{1, 1, 0, 1}
	UndetectedColor = Color{0, 1, 0, 1}
)

const (
	DefaultSegments = 100

	// RingSpacing is the radial distance between consecutive rings; five
	// rings exactly fill the unit circle.
	RingSpacing float32 = 0.2

	RadiusMin float32 = 0.1
	RadiusMax float32 = 1.0
)
