package climate

import (
	"math"
	"testing"

	"climviz/gfx"
)

func testLayout() Layout {
	return Layout{
		Geometry:    NewGeometry(640, 360, 35),
		XAxisLabel:  "year",
		YAxisLabel:  "°C",
		XTickLabels: 8,
		YTickLabels: 8,
	}
}

func TestRenderDrawsDecorationAndSegments(t *testing.T) {
	l := testLayout()
	s := Series{{1900, 10.0}, {1901, 10.5}, {1902, 11.0}}
	st := s.Stats()
	p := PlanFrame(s, Window{StartYear: 1900, EndYear: 1902}, 2, l.Geometry.PlotWidth(), l.XTickLabels)

	r := gfx.NewRecorder(640, 360)
	l.Render(r, st, p)

	if got := r.Count(gfx.OpRect); got != 2 {
		t.Fatalf("rects = %d, want 2", got)
	}
	if got := r.Count(gfx.OpLine); got != 3 {
		t.Fatalf("lines = %d, want mean + 2", got)
	}
	// 2 axis labels, 9 y ticks, 3 x ticks (the last one for the short window).
	if got := r.Count(gfx.OpText); got != 14 {
		t.Fatalf("texts = %d, want 14: %v", got, r.Texts())
	}

	texts := r.Texts()
	if texts[0] != "year" || texts[1] != "°C" || texts[2] != "10.0" || texts[10] != "11.0" || texts[13] != "1902" {
		t.Fatalf("texts = %v", texts)
	}

	for _, op := range r.Ops {
		switch {
		case op.Kind == gfx.OpText && op.Text == "°C":
			if math.Abs(op.Style.Transform.Angle()+math.Pi/2) > 1e-9 {
				t.Fatalf("y label angle = %v", op.Style.Transform.Angle())
			}
			x, y := op.Style.Transform.Apply(0, 0)
			if x != l.Geometry.Left-l.Geometry.Margin*1.5 || y != l.Geometry.Bottom/2 {
				t.Fatalf("y label origin = %v,%v", x, y)
			}
		case op.Kind == gfx.OpLine && op.Color == gfx.Gray(meanLineGray):
			want := Mapper{Stats: st, Geometry: l.Geometry}.TemperatureToY(st.MeanTemperature)
			if op.Args[1] != want || op.Args[3] != want || op.Args[0] != l.Geometry.Left || op.Args[2] != l.Geometry.Right {
				t.Fatalf("mean line = %v", op.Args)
			}
		case op.Kind == gfx.OpRect:
			if op.Style.HasStroke || op.Color.A != bandAlpha || op.Args[2] != p.SegmentWidth {
				t.Fatalf("band = %+v", op)
			}
		case op.Kind == gfx.OpLine && op.Color == gfx.Gray(0):
			if !op.Style.HasStroke || op.Style.StrokeWeight != 1 {
				t.Fatalf("segment style = %+v", op.Style)
			}
		}
	}

	if st := r.Style(); st.Transform != gfx.Identity || st.TextSize != gfx.DefaultStyle().TextSize {
		t.Fatalf("Render leaked style: %+v", st)
	}
}

func TestRenderMessageCentres(t *testing.T) {
	r := gfx.NewRecorder(200, 100)
	RenderMessage(r, "oops")
	if len(r.Ops) != 1 || r.Ops[0].Text != "oops" || r.Ops[0].Args[0] != 100 || r.Ops[0].Args[1] != 50 {
		t.Fatalf("ops = %+v", r.Ops)
	}
}
