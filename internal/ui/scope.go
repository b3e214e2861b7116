package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/radar"
)

// Scope rasterizes radar frames into a grid of styled terminal cells. It
// is the terminal counterpart of a GPU upload: it consumes the same vertex
// layers and honors each layer's primitive.
type Scope struct {
	width, height    int
	centerX, centerY int
	radius           float64 // in columns

	cells  []cell
	styles map[string]lipgloss.Style
}

type cell struct {
	ch    rune
	color radar.Color
	bold  bool
	set   bool
}

var (
	interiorColor = radar.Color{R: 0, G: 0.29, B: 0.04, A: 1}
	centerColor   = radar.Color{R: 0, G: 1, B: 0.25, A: 1}
	background    = radar.Color{A: 1}
)

// NewScope creates a scope for a width x height character area.
func NewScope(width, height int) *Scope {
	s := &Scope{styles: make(map[string]lipgloss.Style)}
	s.Resize(width, height)
	return s
}

// Resize changes the drawing area, keeping the style cache.
func (s *Scope) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.centerX = s.width / 2
	s.centerY = s.height / 2
	r := min(s.centerX-1, int(float64(s.centerY-1)/config.AspectRatio))
	s.radius = float64(max(r, 3))
	s.cells = make([]cell, s.width*s.height)
}

// project maps a normalized position to a cell, accounting for terminal
// aspect ratio.
func (s *Scope) project(p radar.Vec2) (col, row int) {
	col = s.centerX + int(math.Round(float64(p.X)*s.radius))
	row = s.centerY - int(math.Round(float64(p.Y)*s.radius*config.AspectRatio))
	return col, row
}

// unproject maps a cell center back to normalized coordinates.
func (s *Scope) unproject(col, row int) radar.Vec2 {
	return radar.Vec2{
		X: float32(float64(col-s.centerX) / s.radius),
		Y: float32(float64(s.centerY-row) / config.AspectRatio / s.radius),
	}
}

func (s *Scope) at(col, row int) *cell {
	if col < 0 || col >= s.width || row < 0 || row >= s.height {
		return nil
	}
	return &s.cells[row*s.width+col]
}

func (s *Scope) put(col, row int, ch rune, c radar.Color, bold bool) {
	if p := s.at(col, row); p != nil {
		*p = cell{ch: ch, color: c, bold: bold, set: true}
	}
}

func (s *Scope) clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			p := s.unproject(col, row)
			if p.X*p.X+p.Y*p.Y <= 1 {
				s.put(col, row, '.', interiorColor, false)
			}
		}
	}
}

// Draw rasterizes the frame's layers in order.
func (s *Scope) Draw(f radar.Frame) {
	if s.width < 10 || s.height < 5 {
		return
	}
	s.clear()
	for _, l := range f.Layers() {
		s.DrawLayer(l)
	}
	s.put(s.centerX, s.centerY, '+', centerColor, true)
}

// DrawLayer rasterizes a single layer according to its primitive.
func (s *Scope) DrawLayer(l radar.Layer) {
	v := l.Vertices
	switch l.Primitive {
	case radar.LineStrip:
		stride := l.Stride
		if stride <= 0 {
			stride = len(v)
		}
		for start := 0; start+1 < len(v); start += stride {
			end := min(start+stride, len(v))
			for i := start; i+1 < end; i++ {
				s.line(v[i], v[i+1])
			}
		}
	case radar.Lines:
		for i := 0; i+1 < len(v); i += 2 {
			s.line(v[i], v[i+1])
		}
	case radar.TriangleFan:
		for i := 1; i+1 < len(v); i++ {
			s.triangle(v[0], v[i], v[i+1])
		}
	case radar.Points:
		for _, p := range v {
			col, row := s.project(p.Pos)
			s.put(col, row, '*', p.Color, true)
		}
	}
}

// line draws a segment with a DDA walk, picking a character by slope.
func (s *Scope) line(a, b radar.Vertex) {
	c0, r0 := s.project(a.Pos)
	c1, r1 := s.project(b.Pos)
	ch := lineChar(float64(b.Pos.X-a.Pos.X), float64(b.Pos.Y-a.Pos.Y))

	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		s.put(c0, r0, ch, a.Color, false)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := c0 + int(math.Round(t*float64(c1-c0)))
		row := r0 + int(math.Round(t*float64(r1-r0)))
		s.put(col, row, ch, a.Color, false)
	}
}

// triangle blends the fan color over every cell whose center falls inside
// the triangle. Alpha is taken from the nearer perimeter vertex.
func (s *Scope) triangle(o, a, b radar.Vertex) {
	minC, minR := s.project(o.Pos)
	maxC, maxR := minC, minR
	for _, v := range []radar.Vertex{a, b} {
		c, r := s.project(v.Pos)
		minC, maxC = min(minC, c), max(maxC, c)
		minR, maxR = min(minR, r), max(maxR, r)
	}

	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			p := s.at(col, row)
			if p == nil || !p.set {
				continue
			}
			pt := s.unproject(col, row)
			if !inTriangle(pt, o.Pos, a.Pos, b.Pos) {
				continue
			}
			p.color = blend(p.color, a.Color)
			if a.Color.A > 0.25 {
				p.bold = true
			}
		}
	}
}

func inTriangle(p, a, b, c radar.Vec2) bool {
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(p, a, b radar.Vec2) float32 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// blend composites src over dst by src alpha, the way a GPU blends with
// SRC_ALPHA / ONE_MINUS_SRC_ALPHA. Alpha is clamped here, not upstream.
func blend(dst, src radar.Color) radar.Color {
	a := radar.Clamp(src.A, 0, 1)
	return radar.Color{
		R: src.R*a + dst.R*(1-a),
		G: src.G*a + dst.G*(1-a),
		B: src.B*a + dst.B*(1-a),
		A: 1,
	}
}

// lineChar returns the character for a segment direction, with y up.
func lineChar(dx, dy float64) rune {
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += math.Pi
	}
	// 4 sectors over a half turn
	switch int(math.Round(a/(math.Pi/4))) % 4 {
	case 0:
		return '-'
	case 1:
		return '/'
	case 2:
		return '|'
	default:
		return '\\'
	}
}

// Hex converts a color, composited over black, to a lipgloss hex string.
func Hex(c radar.Color) string {
	c = blend(background, c)
	to8 := func(v float32) int {
		return int(math.Round(float64(radar.Clamp(v, 0, 1)) * 255))
	}
	return fmt.Sprintf("#%02X%02X%02X", to8(c.R), to8(c.G), to8(c.B))
}

func (s *Scope) style(c radar.Color, bold bool) lipgloss.Style {
	key := Hex(c)
	if bold {
		key += "b"
	}
	st, ok := s.styles[key]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c))).Bold(bold)
		s.styles[key] = st
	}
	return st
}

// Rune returns the character at a cell, or ' ' outside the scope.
func (s *Scope) Rune(col, row int) rune {
	p := s.at(col, row)
	if p == nil || !p.set {
		return ' '
	}
	return p.ch
}

// Color returns the color at a cell.
func (s *Scope) Color(col, row int) radar.Color {
	if p := s.at(col, row); p != nil {
		return p.color
	}
	return radar.Color{}
}

// Center returns the cell the origin maps to.
func (s *Scope) Center() (col, row int) {
	return s.centerX, s.centerY
}

// String renders the cells as a styled multi-line string.
func (s *Scope) String() string {
	var sb strings.Builder
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			p := s.cells[row*s.width+col]
			if !p.set {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(s.style(p.color, p.bold).Render(string(p.ch)))
		}
		if row < s.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
