package climate

import (
	"image/color"
	"math"
)

// bandAlpha is the opacity of the temperature bands behind the line.
const bandAlpha = 100

// Geometry is the plot rectangle inside the canvas. Left and bottom carry a
// double margin for the axis and tick labels.
type Geometry struct {
	Margin float64
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewGeometry lays out a w x h canvas with the given margin.
func NewGeometry(w, h int, margin float64) Geometry {
	return Geometry{
		Margin: margin,
		Left:   2 * margin,
		Right:  float64(w) - margin,
		Top:    margin,
		Bottom: float64(h) - 2*margin,
	}
}

func (g Geometry) PlotWidth() float64  { return g.Right - g.Left }
func (g Geometry) PlotHeight() float64 { return g.Bottom - g.Top }

// Window is the selected year range. EndYear > StartYear once resolved.
type Window struct {
	StartYear int
	EndYear   int
}

// NumYears is the number of one-year steps the window spans.
func (w Window) NumYears() int { return w.EndYear - w.StartYear }

// RangeControl is a numeric input the window is read from.
type RangeControl interface {
	Value() int
	SetValue(int)
}

// ResolveWindow reads both controls. A start at or past the end is written
// back as end-1 before use.
func ResolveWindow(start, end RangeControl) Window {
	w := clampWindow(start.Value(), end.Value())
	if w.StartYear != start.Value() {
		start.SetValue(w.StartYear)
	}
	return Window{StartYear: start.Value(), EndYear: end.Value()}
}

// clampWindow moves start below end without touching any control.
func clampWindow(start, end int) Window {
	if start >= end {
		start = end - 1
	}
	return Window{StartYear: start, EndYear: end}
}

// Mapper converts data values to canvas positions and colours for one
// tick. The colour scale uses the whole series' temperature bounds, so it
// does not shift when the window changes.
type Mapper struct {
	Window   Window
	Stats    Stats
	Geometry Geometry
}

// YearToX maps [StartYear, EndYear] onto [Left, Right]. Years outside the
// window extrapolate.
func (m Mapper) YearToX(year int) float64 {
	return remap(float64(year),
		float64(m.Window.StartYear), float64(m.Window.EndYear),
		m.Geometry.Left, m.Geometry.Right)
}

// TemperatureToY maps [MinTemperature, MaxTemperature] onto
// [Bottom, Top]. A flat series maps to the vertical middle of the plot.
func (m Mapper) TemperatureToY(t float64) float64 {
	if m.Stats.MinTemperature == m.Stats.MaxTemperature {
		return (m.Geometry.Top + m.Geometry.Bottom) / 2
	}
	return remap(t, m.Stats.MinTemperature, m.Stats.MaxTemperature, m.Geometry.Bottom, m.Geometry.Top)
}

// TemperatureToColor returns a semi-transparent band colour running from
// blue at the coldest temperature to red at the hottest. Red and blue
// always sum to 255.
func (m Mapper) TemperatureToColor(t float64) color.NRGBA {
	red := 128.0
	if m.Stats.MinTemperature != m.Stats.MaxTemperature {
		red = remap(t, m.Stats.MinTemperature, m.Stats.MaxTemperature, 0, 255)
	}
	r := uint8(math.Round(math.Max(0, math.Min(255, red))))
	return color.NRGBA{R: r, G: 0, B: 255 - r, A: bandAlpha}
}

// remap linearly maps v from [a, b] to [c, d] without clamping.
func remap(v, a, b, c, d float64) float64 {
	return c + (v-a)*(d-c)/(b-a)
}
