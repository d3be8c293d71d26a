package gfx

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// baseFontPx is the pixel height of basicfont.Face7x13.
const baseFontPx = 13

// ImageCanvas rasterizes with gg onto an in-memory RGBA image.
type ImageCanvas struct {
	state
	dc *gg.Context
}

// NewImageCanvas creates a w x h canvas.
func NewImageCanvas(w, h int) *ImageCanvas {
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)
	return &ImageCanvas{state: newState(), dc: dc}
}

func (c *ImageCanvas) Size() (w, h int) {
	return c.dc.Width(), c.dc.Height()
}

// Image returns the backing image.
func (c *ImageCanvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the current image as PNG.
func (c *ImageCanvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the current image to path.
func (c *ImageCanvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

func (c *ImageCanvas) Background(col color.NRGBA) {
	c.dc.Push()
	c.dc.Identity()
	c.dc.SetColor(col)
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.dc.Fill()
	c.dc.Pop()
}

// apply loads the current transform into the gg context.
func (c *ImageCanvas) apply() {
	m := c.cur.Transform
	c.dc.Identity()
	// gg composes as M' = M * T, so translate first, then the linear part.
	c.dc.Translate(m.E, m.F)
	c.dc.Rotate(m.Angle())
	sx := math.Hypot(m.A, m.B)
	if sx == 0 {
		return
	}
	sy := (m.A*m.D - m.B*m.C) / sx
	c.dc.Scale(sx, sy)
}

func (c *ImageCanvas) Line(x0, y0, x1, y1 float64) {
	st := c.cur
	if !st.HasStroke || st.StrokeWeight <= 0 {
		return
	}
	c.apply()
	c.dc.SetColor(st.Stroke)
	c.dc.SetLineWidth(st.StrokeWeight)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

func (c *ImageCanvas) Rect(x, y, w, h float64) {
	st := c.cur
	c.apply()
	if st.HasFill {
		c.dc.SetColor(st.Fill)
		c.dc.DrawRectangle(x, y, w, h)
		c.dc.Fill()
	}
	if st.HasStroke && st.StrokeWeight > 0 {
		c.dc.SetColor(st.Stroke)
		c.dc.SetLineWidth(st.StrokeWeight)
		c.dc.DrawRectangle(x, y, w, h)
		c.dc.Stroke()
	}
}

func (c *ImageCanvas) Text(s string, x, y float64) {
	st := c.cur
	if !st.HasFill || s == "" {
		return
	}
	c.apply()
	ax, ay := alignFactors(st.AlignH, st.AlignV)
	k := st.TextSize / baseFontPx
	c.dc.Push()
	c.dc.Translate(x, y)
	c.dc.Scale(k, k)
	c.dc.SetColor(st.Fill)
	c.dc.DrawStringAnchored(s, 0, 0, ax, ay)
	c.dc.Pop()
}
