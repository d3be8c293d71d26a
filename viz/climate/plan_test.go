package climate

import "testing"

func years(from, to int) Series {
	var s Series
	for y := from; y <= to; y++ {
		s = append(s, Record{Year: y, Temperature: 10 + float64(y-from)*0.5})
	}
	return s
}

func TestPlanFrameRevealsOneSegmentPerTick(t *testing.T) {
	s := Series{{1900, 10.0}, {1901, 10.5}, {1902, 11.0}}
	w := Window{StartYear: 1900, EndYear: 1902}

	want := []int{0, 1, 2, 2, 2}
	for frames, n := range want {
		p := PlanFrame(s, w, frames, 500, 8)
		if len(p.Segments) != n {
			t.Fatalf("PlanFrame(frames=%d) segments = %d, want %d", frames, len(p.Segments), n)
		}
	}

	p := PlanFrame(s, w, 2, 500, 8)
	if p.Segments[0].From.Year != 1900 || p.Segments[0].To.Year != 1901 ||
		p.Segments[1].From.Year != 1901 || p.Segments[1].To.Year != 1902 {
		t.Fatalf("segments = %+v", p.Segments)
	}
	if p.NumYears != 2 || p.SegmentWidth != 250 {
		t.Fatalf("NumYears=%d SegmentWidth=%v", p.NumYears, p.SegmentWidth)
	}
	if !p.Complete(2) || p.Complete(1) {
		t.Fatal("Complete() wrong at window boundary")
	}
}

func labels(p Plan) []int {
	var out []int
	for _, seg := range p.Segments {
		out = append(out, seg.Labels...)
	}
	return out
}

func TestPlanFrameFinalYearLabelInShortWindow(t *testing.T) {
	s := years(2000, 2003)
	w := Window{StartYear: 2000, EndYear: 2003}

	if got := labels(PlanFrame(s, w, 2, 500, 8)); len(got) != 2 || got[0] != 2000 || got[1] != 2001 {
		t.Fatalf("labels before final segment = %v", got)
	}

	got := labels(PlanFrame(s, w, 3, 500, 8))
	want := []int{2000, 2001, 2002, 2003}
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
}

func TestPlanFrameSkipsLabelsInLongWindow(t *testing.T) {
	s := years(1900, 1920)
	p := PlanFrame(s, Window{StartYear: 1900, EndYear: 1920}, 100, 500, 8)
	if len(p.Segments) != 20 {
		t.Fatalf("segments = %d, want 20", len(p.Segments))
	}
	got := labels(p)
	want := []int{1900, 1903, 1906, 1909, 1912, 1915, 1918}
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
}

func TestPlanFrameWindowInsideSeries(t *testing.T) {
	s := years(1900, 1910)
	w := Window{StartYear: 1905, EndYear: 1908}

	if p := PlanFrame(s, w, 0, 300, 8); len(p.Segments) != 0 {
		t.Fatalf("first tick segments = %d, want 0", len(p.Segments))
	}
	p := PlanFrame(s, w, 1, 300, 8)
	if len(p.Segments) != 1 || p.Segments[0].From.Year != 1905 {
		t.Fatalf("second tick segments = %+v", p.Segments)
	}
	p = PlanFrame(s, w, 50, 300, 8)
	if len(p.Segments) != 3 || p.Segments[2].To.Year != 1908 {
		t.Fatalf("settled segments = %+v", p.Segments)
	}
}
