package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyVertices(t *testing.T) {
	s := NewState(60, 0, 5)
	rings := s.Rings(5, 100)

	full := make([]Vertex, RingVertexCount(5, 100))
	n := CopyVertices(full, rings)
	assert.Equal(t, len(rings), n)
	assert.Equal(t, rings, full[:n])

	short := make([]Vertex, 10)
	n = CopyVertices(short, rings)
	assert.Equal(t, 10, n)
	assert.Equal(t, rings[:10], short)
}

func TestCopySweep(t *testing.T) {
	s := NewState(60, 0, 5)
	sweep := s.SweepGeometry(100)

	buf := make([]Vertex, SweepVertexCount(100))
	assert.Equal(t, 102, CopySweep(buf, sweep))
	assert.Equal(t, sweep, buf)

	short := make([]Vertex, 50)
	assert.Equal(t, 102, CopySweep(short, sweep))
	assert.Equal(t, make([]Vertex, 50), short, "short buffers are left untouched")
}

func TestPack(t *testing.T) {
	verts := []Vertex{
		{Pos: Vec2{1, 2}, Color: Color{0.1, 0.2, 0.3, 0.4}},
		{Pos: Vec2{-1, 0}, Color: Color{1, 1, 0, 1}},
	}
	out := Pack(nil, verts)
	require.Len(t, out, 2*FloatsPerVertex)
	assert.Equal(t, []float32{1, 2, 0.1, 0.2, 0.3, 0.4, -1, 0, 1, 1, 0, 1}, out)

	out = Pack(out[:0], verts[:1])
	assert.Len(t, out, FloatsPerVertex)
}
