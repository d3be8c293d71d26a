package gfx

import (
	"image/color"
	"math"
	"strings"

	"climviz/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// fontAscent is the cap height of the bitmap font, used for vertical alignment.
const fontAscent = 7

// FramebufferCanvas rasterizes onto an RGB565 hal.Framebuffer.
//
// Rectangles are filled over the axis-aligned bounds of their transformed
// corners, which is exact for quarter-turn rotations. Text uses a fixed-size
// bitmap font rotated to the nearest quarter turn; TextSize has no effect.
type FramebufferCanvas struct {
	state
	fb   hal.Framebuffer
	disp *fbDisplay
	font tinyfont.Fonter
}

// NewFramebufferCanvas wraps fb. It returns nil for non-RGB565 framebuffers.
func NewFramebufferCanvas(fb hal.Framebuffer) *FramebufferCanvas {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return &FramebufferCanvas{
		state: newState(),
		fb:    fb,
		disp:  &fbDisplay{fb: fb},
		font:  &proggy.TinySZ8pt7b,
	}
}

func (c *FramebufferCanvas) Size() (w, h int) {
	return c.fb.Width(), c.fb.Height()
}

// Present flushes the framebuffer.
func (c *FramebufferCanvas) Present() error {
	return c.fb.Present()
}

func (c *FramebufferCanvas) Background(col color.NRGBA) {
	if col.A == 0xFF {
		c.fb.ClearRGB(col.R, col.G, col.B)
		return
	}
	c.fillRect(0, 0, c.fb.Width(), c.fb.Height(), col)
}

func (c *FramebufferCanvas) Line(x0, y0, x1, y1 float64) {
	st := c.cur
	if !st.HasStroke || st.StrokeWeight <= 0 {
		return
	}
	m := st.Transform
	ax, ay := m.Apply(x0, y0)
	bx, by := m.Apply(x1, y1)
	if !finite(ax, ay, bx, by) {
		return
	}

	brush := int(math.Round(st.StrokeWeight * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C))))
	if brush < 1 {
		brush = 1
	}
	c.drawLine(int(math.Round(ax)), int(math.Round(ay)), int(math.Round(bx)), int(math.Round(by)), brush, st.Stroke)
}

func (c *FramebufferCanvas) Rect(x, y, w, h float64) {
	st := c.cur
	if st.HasFill {
		m := st.Transform
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
			px, py := m.Apply(p[0], p[1])
			minX, maxX = math.Min(minX, px), math.Max(maxX, px)
			minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		}
		if !finite(minX, minY, maxX, maxY) {
			return
		}
		c.fillRect(int(math.Round(minX)), int(math.Round(minY)), int(math.Round(maxX)), int(math.Round(maxY)), st.Fill)
	}
	if st.HasStroke {
		c.Line(x, y, x+w, y)
		c.Line(x+w, y, x+w, y+h)
		c.Line(x+w, y+h, x, y+h)
		c.Line(x, y+h, x, y)
	}
}

func (c *FramebufferCanvas) Text(s string, x, y float64) {
	st := c.cur
	if !st.HasFill || st.Fill.A == 0 || s == "" {
		return
	}
	s = asciiFallback(s)

	_, outbox := tinyfont.LineWidth(c.font, s)
	ax, ay := alignFactors(st.AlignH, st.AlignV)
	px := x - ax*float64(outbox)
	py := y + ay*fontAscent
	dx, dy := st.Transform.Apply(px, py)

	c.disp.alpha = st.Fill.A
	col := color.RGBA{R: st.Fill.R, G: st.Fill.G, B: st.Fill.B, A: 0xFF}
	tinyfont.WriteLineRotated(c.disp, c.font, int16(math.Round(dx)), int16(math.Round(dy)), s, col, quarterTurn(st.Transform.Angle()))
}

// quarterTurn snaps a clockwise screen rotation to a tinyfont rotation.
func quarterTurn(rad float64) tinyfont.Rotation {
	q := int(math.Round(rad/(math.Pi/2))) % 4
	if q < 0 {
		q += 4
	}
	switch q {
	case 1:
		return tinyfont.ROTATION_90
	case 2:
		return tinyfont.ROTATION_180
	case 3:
		return tinyfont.ROTATION_270
	default:
		return tinyfont.NO_ROTATION
	}
}

// asciiFallback maps runes the 7-bit bitmap font cannot draw.
func asciiFallback(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '°':
			return 'o'
		case r == '℃':
			return 'C'
		case r < 0x20 || r > 0x7E:
			return '?'
		}
		return r
	}, s)
}

func (c *FramebufferCanvas) drawLine(x0, y0, x1, y1, brush int, col color.NRGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := brush / 2
	err := dx + dy
	for {
		c.fillRect(x0-half, y0-half, x0-half+brush, y0-half+brush, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillRect blends col over the half-open pixel range [x0,x1) x [y0,y1).
func (c *FramebufferCanvas) fillRect(x0, y0, x1, y1 int, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	buf := c.fb.Buffer()
	if buf == nil {
		return
	}
	w := c.fb.Width()
	h := c.fb.Height()
	x0 = clampInt(x0, 0, w)
	y0 = clampInt(y0, 0, h)
	x1 = clampInt(x1, 0, w)
	y1 = clampInt(y1, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	stride := c.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			blendAt(buf, row+px*2, col)
		}
	}
}

func blendAt(buf []byte, off int, col color.NRGBA) {
	hal.Put565(buf, off, hal.Blend565(hal.At565(buf, off), col))
}

var _ drivers.Displayer = (*fbDisplay)(nil)

// fbDisplay adapts the framebuffer to the tinyfont Displayer contract.
type fbDisplay struct {
	fb    hal.Framebuffer
	alpha uint8
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	a := d.alpha
	if a == 0 {
		a = 0xFF
	}
	blendAt(d.fb.Buffer(), iy*d.fb.StrideBytes()+ix*2, color.NRGBA{R: c.R, G: c.G, B: c.B, A: a})
}

func (d *fbDisplay) Display() error {
	return d.fb.Present()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
