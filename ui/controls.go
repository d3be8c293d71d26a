package ui

import (
	"image/color"

	"climviz/gfx"
	"climviz/hal"
)

var (
	colorKnob      = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	colorKnobFocus = color.NRGBA{R: 0x1E, G: 0x5A, B: 0xC8, A: 0xFF}
)

// Controls owns every live control, routes input to them and draws them.
type Controls struct {
	sliders []*Slider
	focus   int
	drag    *Slider
}

// NewControls returns an empty registry.
func NewControls() *Controls {
	return &Controls{focus: -1}
}

// CreateSlider creates a slider over [min, max] starting at value.
// A non-positive step is treated as 1; max below min collapses to min.
func (c *Controls) CreateSlider(min, max, value, step int) *Slider {
	if step <= 0 {
		step = 1
	}
	if max < min {
		max = min
	}
	s := &Slider{
		owner: c,
		min:   min,
		max:   max,
		step:  step,
		width: defaultSliderWidth,
	}
	s.SetValue(value)
	c.sliders = append(c.sliders, s)
	if c.focus < 0 {
		c.focus = 0
	}
	return s
}

// Len returns the number of live controls.
func (c *Controls) Len() int { return len(c.sliders) }

// Focused returns the slider receiving keyboard input, if any.
func (c *Controls) Focused() *Slider {
	if c.focus < 0 || c.focus >= len(c.sliders) {
		return nil
	}
	return c.sliders[c.focus]
}

func (c *Controls) remove(s *Slider) {
	for i, v := range c.sliders {
		if v != s {
			continue
		}
		c.sliders = append(c.sliders[:i], c.sliders[i+1:]...)
		switch {
		case len(c.sliders) == 0:
			c.focus = -1
		case c.focus > i || c.focus >= len(c.sliders):
			c.focus--
		}
		break
	}
	if c.drag == s {
		c.drag = nil
	}
}

// HandleKey applies a key event and reports whether a control consumed it.
func (c *Controls) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press || len(c.sliders) == 0 {
		return false
	}
	if ev.Code == hal.KeyTab {
		c.focus = (c.focus + 1) % len(c.sliders)
		return true
	}

	s := c.Focused()
	if s == nil {
		return false
	}
	switch ev.Code {
	case hal.KeyLeft:
		s.SetValue(s.value - s.step)
	case hal.KeyRight:
		s.SetValue(s.value + s.step)
	case hal.KeyHome:
		s.SetValue(s.min)
	case hal.KeyEnd:
		s.SetValue(s.max)
	default:
		return false
	}
	return true
}

// HandlePointer applies a pointer event and reports whether a control consumed it.
func (c *Controls) HandlePointer(ev hal.PointerEvent) bool {
	switch ev.Action {
	case hal.PointerPress:
		for i, s := range c.sliders {
			if !s.contains(ev.X, ev.Y) {
				continue
			}
			c.focus = i
			c.drag = s
			s.SetValue(s.valueAt(ev.X))
			return true
		}
	case hal.PointerMove:
		if c.drag != nil {
			c.drag.SetValue(c.drag.valueAt(ev.X))
			return true
		}
	case hal.PointerRelease:
		if c.drag != nil {
			c.drag = nil
			return true
		}
	}
	return false
}

// Draw renders every live control on top of the current frame.
func (c *Controls) Draw(cv gfx.Canvas) {
	for i, s := range c.sliders {
		s.draw(cv, i == c.focus)
	}
}
