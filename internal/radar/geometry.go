package radar

import (
	"math"

	"golang.org/x/exp/constraints"
)

// NormalizeDegrees wraps an angle to [0, 360). Angles within one turn of
// the range take a single add or subtract; anything further is folded with
// math.Mod. NaN and infinities come back as NaN.
func NormalizeDegrees(a float32) float32 {
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	if a < 0 || a >= 360 {
		a = float32(math.Mod(float64(a), 360))
		if a < 0 {
			a += 360
		}
	}
	// A tiny negative angle plus 360 rounds to a full turn in float32.
	if a >= 360 {
		a = 0
	}
	return a
}

// AngleDiff returns the shortest circular distance between two angles in
// degrees. Result is in [0, 180].
func AngleDiff(a, b float32) float32 {
	d := float32(math.Mod(math.Abs(float64(a-b)), 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Polar converts a bearing in degrees (0=+X, counter-clockwise) and a
// radius to a Cartesian position.
func Polar(deg, r float32) Vec2 {
	s, c := math.Sincos(float64(Radians(deg)))
	return Vec2{X: float32(c) * r, Y: float32(s) * r}
}

// Clamp limits x to [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

func guardSegments(segments int) int {
	if segments < 1 {
		return 1
	}
	return segments
}

func ring(out []Vertex, radius float32, segments int, c Color) []Vertex {
	for i := 0; i <= segments; i++ {
		th := 2 * math.Pi * float64(i) / float64(segments)
		s, co := math.Sincos(th)
		out = append(out, Vertex{
			Pos:   Vec2{X: radius * float32(co), Y: radius * float32(s)},
			Color: c,
		})
	}
	return out
}

// cone builds a triangle fan centered on the origin spanning
// [angle - tolerance/2, angle + tolerance/2]. Alpha fades from the base
// color's alpha at the leading edge down to zero at the trailing edge.
func cone(angle, tolerance float32, segments int, c Color) []Vertex {
	segments = guardSegments(segments)
	out := make([]Vertex, 0, segments+2)
	out = append(out, Vertex{Color: c})

	th0 := angle - tolerance/2
	th1 := angle + tolerance/2
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		out = append(out, Vertex{
			Pos:   Polar(th0+(th1-th0)*t, 1),
			Color: c.WithAlpha(c.A * (1 - t)),
		})
	}
	return out
}

// Vertex counts as reported to flat-buffer callers so they can size their
// buffers before copying. RingVertexCount deliberately over-reports
// (rings*segments*2 >= rings*(segments+1)) so a buffer sized from it always
// holds a full ring set.
func RingVertexCount(rings, segments int) int {
	if rings <= 0 {
		return 0
	}
	return rings * guardSegments(segments) * 2
}

func RadialVertexCount(radials int) int {
	if radials <= 0 {
		return 0
	}
	return radials * 2
}

func SweepVertexCount(segments int) int {
	return 1 + (guardSegments(segments) + 1)
}
