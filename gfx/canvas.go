// Package gfx is a small immediate-mode 2D drawing surface.
//
// The Canvas keeps a current style (stroke, fill, text settings) and a current
// transform, both saved and restored by Push and Pop. Backends differ only in
// how they rasterize.
package gfx

import (
	"image/color"
	"math"
)

// HAlign is horizontal text alignment relative to the text anchor.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical text alignment relative to the text anchor.
type VAlign uint8

const (
	AlignBaseline VAlign = iota
	AlignTop
	AlignMiddle
	AlignBottom
)

// Canvas is the drawing surface consumed by visualizations.
//
// Colors are straight (non-premultiplied) alpha.
type Canvas interface {
	Size() (w, h int)
	Background(c color.NRGBA)

	Stroke(c color.NRGBA)
	NoStroke()
	StrokeWeight(w float64)
	Fill(c color.NRGBA)
	NoFill()

	Line(x0, y0, x1, y1 float64)
	Rect(x, y, w, h float64)

	TextSize(px float64)
	TextAlign(h HAlign, v VAlign)
	Text(s string, x, y float64)

	Push()
	Pop()
	Translate(dx, dy float64)
	Rotate(rad float64)
	ResetMatrix()
}

// Gray returns an opaque gray.
func Gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 0xFF}
}

// Matrix is a 2D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Matrix{A: 1, D: 1}

// Apply maps a point through the transform.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Mul returns m followed by n applied in m's local space (m * n).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Angle returns the rotation of the transform's x axis, in radians.
func (m Matrix) Angle() float64 {
	return math.Atan2(m.B, m.A)
}

// Style is the drawing state saved by Push.
type Style struct {
	Stroke       color.NRGBA
	HasStroke    bool
	StrokeWeight float64
	Fill         color.NRGBA
	HasFill      bool
	TextSize     float64
	AlignH       HAlign
	AlignV       VAlign
	Transform    Matrix
}

// DefaultStyle mirrors a fresh sketch: black 1px stroke, white fill, left/baseline text.
func DefaultStyle() Style {
	return Style{
		Stroke:       Gray(0),
		HasStroke:    true,
		StrokeWeight: 1,
		Fill:         Gray(255),
		HasFill:      true,
		TextSize:     12,
		AlignH:       AlignLeft,
		AlignV:       AlignBaseline,
		Transform:    Identity,
	}
}

// state implements the style half of Canvas; backends embed it.
type state struct {
	cur   Style
	stack []Style
}

func newState() state {
	return state{cur: DefaultStyle()}
}

func (s *state) Stroke(c color.NRGBA) {
	s.cur.Stroke = c
	s.cur.HasStroke = true
}

func (s *state) NoStroke() { s.cur.HasStroke = false }

func (s *state) StrokeWeight(w float64) {
	if w < 0 {
		w = 0
	}
	s.cur.StrokeWeight = w
}

func (s *state) Fill(c color.NRGBA) {
	s.cur.Fill = c
	s.cur.HasFill = true
}

func (s *state) NoFill() { s.cur.HasFill = false }

func (s *state) TextSize(px float64) {
	if px > 0 {
		s.cur.TextSize = px
	}
}

func (s *state) TextAlign(h HAlign, v VAlign) {
	s.cur.AlignH = h
	s.cur.AlignV = v
}

func (s *state) Push() {
	s.stack = append(s.stack, s.cur)
}

// Pop restores the last pushed style. An unbalanced Pop is ignored.
func (s *state) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *state) Translate(dx, dy float64) {
	s.cur.Transform = s.cur.Transform.Mul(Matrix{A: 1, D: 1, E: dx, F: dy})
}

func (s *state) Rotate(rad float64) {
	sin, cos := math.Sincos(rad)
	s.cur.Transform = s.cur.Transform.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// ResetMatrix drops pushed styles and the current transform. The rest of the
// style carries over, so it is safe to call at the start of every frame.
func (s *state) ResetMatrix() {
	s.cur.Transform = Identity
	s.stack = s.stack[:0]
}

// Style returns the current drawing state.
func (s *state) Style() Style { return s.cur }

// alignFactors returns the anchor shift as fractions of the text extent: the
// pen moves left by ax*width and the baseline moves down by ay*height.
func alignFactors(h HAlign, v VAlign) (ax, ay float64) {
	switch h {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	switch v {
	case AlignTop:
		ay = 1
	case AlignMiddle:
		ay = 0.5
	}
	return ax, ay
}
