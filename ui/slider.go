// Package ui holds the on-canvas input controls a visualization can create.
package ui

import (
	"math"
	"strconv"

	"climviz/gfx"
)

const (
	sliderHeight = 12
	knobWidth    = 6

	defaultSliderWidth = 120
)

// Slider is an integer range control.
//
// Its value is always within [min, max] and on the min + k*step grid.
type Slider struct {
	owner *Controls

	min, max, step int
	value          int

	x, y, width int
	removed     bool
}

// Value returns the current value.
func (s *Slider) Value() int { return s.value }

// SetValue moves the slider, clamping and snapping v.
func (s *Slider) SetValue(v int) {
	s.value = s.snap(v)
}

// Range returns the inclusive bounds.
func (s *Slider) Range() (min, max int) { return s.min, s.max }

// Step returns the value increment.
func (s *Slider) Step() int { return s.step }

// Position places the slider's top-left corner in canvas coordinates.
func (s *Slider) Position(x, y int) {
	s.x = x
	s.y = y
}

// SetWidth sets the track length in pixels.
func (s *Slider) SetWidth(w int) {
	if w > 0 {
		s.width = w
	}
}

// Bounds returns the hit rectangle.
func (s *Slider) Bounds() (x, y, w, h int) {
	return s.x - knobWidth/2, s.y, s.width + knobWidth, sliderHeight
}

// Remove detaches the slider from its owner. Further input is ignored.
func (s *Slider) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	if s.owner != nil {
		s.owner.remove(s)
	}
}

// Removed reports whether Remove was called.
func (s *Slider) Removed() bool { return s.removed }

func (s *Slider) snap(v int) int {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	if s.step > 1 {
		k := int(math.Round(float64(v-s.min) / float64(s.step)))
		v = s.min + k*s.step
		if v > s.max {
			v -= s.step
		}
	}
	return v
}

func (s *Slider) contains(px, py int) bool {
	x, y, w, h := s.Bounds()
	return px >= x && px < x+w && py >= y && py < y+h
}

func (s *Slider) valueAt(px int) int {
	if s.width <= 0 || s.max == s.min {
		return s.min
	}
	frac := float64(px-s.x) / float64(s.width)
	return s.snap(s.min + int(math.Round(frac*float64(s.max-s.min))))
}

func (s *Slider) knobX() float64 {
	if s.max == s.min {
		return float64(s.x)
	}
	return float64(s.x) + float64(s.width)*float64(s.value-s.min)/float64(s.max-s.min)
}

func (s *Slider) draw(c gfx.Canvas, focused bool) {
	mid := float64(s.y) + sliderHeight/2

	c.Push()
	c.Stroke(gfx.Gray(170))
	c.StrokeWeight(2)
	c.Line(float64(s.x), mid, float64(s.x+s.width), mid)

	c.NoStroke()
	if focused {
		c.Fill(colorKnobFocus)
	} else {
		c.Fill(colorKnob)
	}
	c.Rect(s.knobX()-knobWidth/2, float64(s.y), knobWidth, sliderHeight)

	c.Fill(gfx.Gray(0))
	c.TextSize(12)
	c.TextAlign(gfx.AlignLeft, gfx.AlignMiddle)
	c.Text(strconv.Itoa(s.value), float64(s.x+s.width+knobWidth), mid)
	c.Pop()
}
