package radar

// FloatsPerVertex is the interleaved layout written by Pack: x, y, r, g, b, a.
const FloatsPerVertex = 6

// CopyVertices copies as many vertices as fit into dst and returns the
// number written, i.e. min(len(src), len(dst)). Ring and radial buffers
// use this truncating behavior.
func CopyVertices(dst, src []Vertex) int {
	return copy(dst, src)
}

// CopySweep copies src into dst only when dst can hold all of it. It
// always returns len(src), so a short buffer is detectable by comparing the
// result with len(dst).
func CopySweep(dst, src []Vertex) int {
	if len(dst) >= len(src) {
		copy(dst, src)
	}
	return len(src)
}

// Pack appends vertices to dst in the interleaved float layout a GPU
// vertex buffer expects and returns the extended slice.
func Pack(dst []float32, verts []Vertex) []float32 {
	for _, v := range verts {
		dst = append(dst, v.Pos.X, v.Pos.Y, v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	}
	return dst
}
