package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	tracker := NewTracker([]Target{
		{Angle: 359, Radius: 0.5},
		{Angle: 180, Radius: 0.9, AngularVelocity: -5},
	})
	return NewSession(NewState(60, 0, 5), tracker, Layout{Rings: 5, Radials: 12, Segments: 100})
}

func TestSessionFrame(t *testing.T) {
	s := testSession()
	f := s.Frame(1.0 / 60.0)

	assert.Equal(t, LineStrip, f.Rings.Primitive)
	assert.Equal(t, 101, f.Rings.Stride)
	assert.Len(t, f.Rings.Vertices, 505)
	assert.Equal(t, Lines, f.Radials.Primitive)
	assert.Len(t, f.Radials.Vertices, 24)
	assert.Equal(t, TriangleFan, f.Sweep.Primitive)
	assert.Len(t, f.Sweep.Vertices, 102)
	assert.Equal(t, Points, f.Targets.Primitive)
	require.Len(t, f.Targets.Vertices, 2)

	assert.InDelta(t, 359.0, f.Angle, eps)
	assert.Equal(t, 1, f.Detected)
	assert.Equal(t, DetectedColor, f.Targets.Vertices[0].Color)
	assert.Equal(t, UndetectedColor, f.Targets.Vertices[1].Color)

	layers := f.Layers()
	require.Len(t, layers, 4)
	assert.Equal(t, []Primitive{LineStrip, Lines, TriangleFan, Points},
		[]Primitive{layers[0].Primitive, layers[1].Primitive, layers[2].Primitive, layers[3].Primitive})
}

func TestSessionCachesGrid(t *testing.T) {
	s := testSession()
	a := s.Rings()
	b := s.Rings()
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0], "unchanged layout must reuse the cached buffer")

	s.UpdateGeometry(3, 6, 10)
	c := s.Rings()
	assert.Len(t, c, 33)
	assert.Len(t, s.Radials(), 12)

	s.SetColors(Color{1, 0, 0, 1}, DefaultSweepColor)
	d := s.Rings()
	assert.Equal(t, Color{1, 0, 0, 1}, d[0].Color)
}

func TestSessionPaused(t *testing.T) {
	s := testSession()
	s.SetPaused(true)
	assert.True(t, s.Paused())
	f := s.Frame(1)
	assert.Equal(t, float32(0), f.Angle)
	assert.Len(t, f.Sweep.Vertices, 102)

	s.SetPaused(false)
	f = s.Frame(1)
	assert.InDelta(t, 300.0, f.Angle, eps)
}

func TestSessionUpdateParameters(t *testing.T) {
	s := testSession()
	s.Frame(0.5) // angle 330
	s.UpdateParameters(10, 20)
	assert.InDelta(t, 330.0, s.State.Angle(), eps)
	assert.Equal(t, float32(10), s.State.Speed())
	assert.Equal(t, float32(20), s.State.Tolerance())
}

func TestSessionNilTracker(t *testing.T) {
	s := NewSession(NewState(60, 0, 5), nil, Layout{Rings: 1, Radials: 1, Segments: 4})
	f := s.Frame(0.1)
	assert.Empty(t, f.Targets.Vertices)
	assert.Equal(t, 0, f.Detected)
}
