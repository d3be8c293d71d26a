package climate

// Segment joins two consecutive in-window records. Labels lists the years
// that get an x-axis tick label when the segment is drawn.
type Segment struct {
	From, To Record
	Labels   []int
}

// Plan is what one tick draws, computed without touching a canvas.
type Plan struct {
	Window       Window
	NumYears     int
	SegmentWidth float64
	Segments     []Segment
}

// PlanFrame walks s from the start and collects the in-window segments
// revealed after framesDrawn previous ticks: none on the first tick, then
// one more per tick until the window is complete. w must be resolved.
func PlanFrame(s Series, w Window, framesDrawn int, plotWidth float64, numXTickLabels int) Plan {
	numYears := w.NumYears()
	p := Plan{
		Window:       w,
		NumYears:     numYears,
		SegmentWidth: plotWidth / float64(numYears),
	}
	if numXTickLabels <= 0 {
		numXTickLabels = 1
	}
	skip := (numYears + numXTickLabels - 1) / numXTickLabels

	var prev *Record
	count := 0
	for i := range s {
		cur := &s[i]
		if prev != nil && cur.Year > w.StartYear && cur.Year <= w.EndYear {
			seg := Segment{From: *prev, To: *cur}
			if count%skip == 0 {
				seg.Labels = append(seg.Labels, prev.Year)
			}
			if numYears <= 6 && count == numYears-1 {
				seg.Labels = append(seg.Labels, cur.Year)
			}
			p.Segments = append(p.Segments, seg)
			count++
		}
		if count >= framesDrawn {
			break
		}
		prev = cur
	}
	return p
}

// Complete reports whether framesDrawn ticks reveal the whole window.
func (p Plan) Complete(framesDrawn int) bool {
	return framesDrawn >= p.NumYears
}
