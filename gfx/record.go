package gfx

import "image/color"

// OpKind names a recorded drawing primitive.
type OpKind uint8

const (
	OpBackground OpKind = iota + 1
	OpLine
	OpRect
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpBackground:
		return "background"
	case OpLine:
		return "line"
	case OpRect:
		return "rect"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive with the style in effect when it was issued.
type Op struct {
	Kind  OpKind
	Args  [4]float64
	Text  string
	Color color.NRGBA
	Style Style
}

// Recorder is a Canvas that keeps every primitive instead of rasterizing.
type Recorder struct {
	state
	w, h int
	Ops  []Op
}

// NewRecorder returns an empty recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{state: newState(), w: w, h: h}
}

func (r *Recorder) Size() (w, h int) { return r.w, r.h }

// Reset drops recorded ops; style and transform are kept.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Background(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpBackground, Color: c, Style: r.cur})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Args: [4]float64{x0, y0, x1, y1}, Color: r.cur.Stroke, Style: r.cur})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Args: [4]float64{x, y, w, h}, Color: r.cur.Fill, Style: r.cur})
}

func (r *Recorder) Text(s string, x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Args: [4]float64{x, y}, Text: s, Color: r.cur.Fill, Style: r.cur})
}

// Count returns the number of recorded ops of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the recorded strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
