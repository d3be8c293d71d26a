package climate

import (
	"math"
	"strconv"

	"climviz/gfx"
)

const (
	textSize = 16

	meanLineGray = 200
)

// Layout holds the fixed chart decoration.
type Layout struct {
	Geometry    Geometry
	XAxisLabel  string
	YAxisLabel  string
	XTickLabels int
	YTickLabels int
}

// Render draws one tick of p. Canvas style is restored on return.
func (l Layout) Render(c gfx.Canvas, st Stats, p Plan) {
	m := Mapper{Window: p.Window, Stats: st, Geometry: l.Geometry}
	g := l.Geometry

	c.Push()
	defer c.Pop()
	c.TextSize(textSize)
	c.TextAlign(gfx.AlignCenter, gfx.AlignMiddle)

	l.drawAxisLabels(c)
	l.drawYTickLabels(c, m)

	c.Stroke(gfx.Gray(meanLineGray))
	c.StrokeWeight(1)
	mean := m.TemperatureToY(st.MeanTemperature)
	c.Line(g.Left, mean, g.Right, mean)

	for _, seg := range p.Segments {
		x0 := m.YearToX(seg.From.Year)

		c.NoStroke()
		c.Fill(m.TemperatureToColor(seg.To.Temperature))
		c.Rect(x0, g.Top, p.SegmentWidth, g.Bottom-g.Top)

		c.Stroke(gfx.Gray(0))
		c.Line(x0, m.TemperatureToY(seg.From.Temperature),
			m.YearToX(seg.To.Year), m.TemperatureToY(seg.To.Temperature))

		for _, year := range seg.Labels {
			l.drawXTickLabel(c, m, year)
		}
	}
}

func (l Layout) drawAxisLabels(c gfx.Canvas) {
	g := l.Geometry
	c.Fill(gfx.Gray(0))
	c.NoStroke()

	c.Text(l.XAxisLabel, g.PlotWidth()/2+g.Left, g.Bottom+g.Margin*1.5)

	c.Push()
	c.Translate(g.Left-g.Margin*1.5, g.Bottom/2)
	c.Rotate(-math.Pi / 2)
	c.Text(l.YAxisLabel, 0, 0)
	c.Pop()
}

func (l Layout) drawYTickLabels(c gfx.Canvas, m Mapper) {
	c.Fill(gfx.Gray(0))
	c.NoStroke()

	n := l.YTickLabels
	step := (m.Stats.MaxTemperature - m.Stats.MinTemperature) / float64(n)
	for i := 0; i <= n; i++ {
		t := m.Stats.MinTemperature + float64(i)*step
		c.Text(strconv.FormatFloat(t, 'f', 1, 64), l.Geometry.Left-l.Geometry.Margin/2, m.TemperatureToY(t))
	}
}

func (l Layout) drawXTickLabel(c gfx.Canvas, m Mapper, year int) {
	c.Fill(gfx.Gray(0))
	c.NoStroke()
	c.Text(strconv.Itoa(year), m.YearToX(year), l.Geometry.Bottom+l.Geometry.Margin/2)
}

// RenderMessage draws msg centred in the canvas.
func RenderMessage(c gfx.Canvas, msg string) {
	w, h := c.Size()
	c.Push()
	defer c.Pop()
	c.Fill(gfx.Gray(0))
	c.NoStroke()
	c.TextSize(textSize)
	c.TextAlign(gfx.AlignCenter, gfx.AlignMiddle)
	c.Text(msg, float64(w)/2, float64(h)/2)
}
