package climate

import (
	"errors"
	"fmt"

	"climviz/gallery"
	"climviz/gfx"
	"climviz/hal"
	"climviz/internal/config"
	"climviz/internal/table"
	"climviz/ui"
)

const (
	id   = "climate-change"
	name = "Climate Change"
)

var (
	errNotLoaded = errors.New("climate: setup before load")
	errNotSetUp  = errors.New("climate: not set up")
)

// State is where the reveal animation stands.
type State uint8

const (
	StateNotLoaded State = iota
	StateReady
	StateAnimating
	StateSettled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not-loaded"
	case StateReady:
		return "ready"
	case StateAnimating:
		return "animating"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Visualization is the climate chart as a gallery visual.
type Visualization struct {
	cfg config.Climate
	log hal.Logger

	loaded  bool
	loadErr error
	series  Series

	stats       Stats
	layout      Layout
	start, end  *ui.Slider
	framesDrawn int
}

var _ gallery.Visual = (*Visualization)(nil)

// New returns an unloaded chart.
func New(cfg config.Climate, log hal.Logger) *Visualization {
	return &Visualization{cfg: cfg, log: log}
}

func (v *Visualization) ID() string   { return id }
func (v *Visualization) Name() string { return name }

// Preload starts loading the configured table.
func (v *Visualization) Preload(l *gallery.Loader) {
	l.LoadTable(v.cfg.Data, table.Options{Sheet: v.cfg.Sheet}, v.onLoad)
}

func (v *Visualization) onLoad(t *table.Table, err error) {
	if err == nil {
		v.series, err = DecodeSeries(t)
	}
	if err != nil {
		v.loadErr = err
		v.logLine("load failed: " + err.Error())
		return
	}
	v.loaded = true
}

// Loaded reports whether the series is available.
func (v *Visualization) Loaded() bool { return v.loaded }

// Setup derives the statistics, lays out the plot and creates the two
// year sliders covering the full range.
func (v *Visualization) Setup(env *gallery.Env) error {
	if !v.loaded {
		return errNotLoaded
	}
	v.stats = v.series.Stats()
	if v.stats.MaxYear <= v.stats.MinYear {
		return fmt.Errorf("%w: %d..%d", ErrEmptyYearRange, v.stats.MinYear, v.stats.MaxYear)
	}
	v.layout = Layout{
		Geometry:    NewGeometry(env.Width, env.Height, float64(v.cfg.MarginSize)),
		XAxisLabel:  v.cfg.XAxisLabel,
		YAxisLabel:  v.cfg.YAxisLabel,
		XTickLabels: v.cfg.XTickLabels,
		YTickLabels: v.cfg.YTickLabels,
	}
	v.framesDrawn = 0

	v.start = env.Controls.CreateSlider(v.stats.MinYear, v.stats.MaxYear-1, v.stats.MinYear, 1)
	placeSlider(v.start, v.cfg.StartSlider)
	v.end = env.Controls.CreateSlider(v.stats.MinYear+1, v.stats.MaxYear, v.stats.MaxYear, 1)
	placeSlider(v.end, v.cfg.EndSlider)
	return nil
}

func placeSlider(s *ui.Slider, p config.Placement) {
	s.Position(p.X, p.Y)
	s.SetWidth(p.Width)
}

// Draw renders one tick and advances the reveal by one segment.
func (v *Visualization) Draw(c gfx.Canvas) {
	if v.loadErr != nil {
		RenderMessage(c, "failed to load data: "+v.loadErr.Error())
		return
	}
	if !v.loaded || v.start == nil {
		v.logLine("data not yet loaded")
		return
	}

	w := ResolveWindow(v.start, v.end)
	p := PlanFrame(v.series, w, v.framesDrawn, v.layout.Geometry.PlotWidth(), v.layout.XTickLabels)
	v.layout.Render(c, v.stats, p)
	v.framesDrawn++
}

// Destroy removes the sliders created by Setup.
func (v *Visualization) Destroy() {
	if v.start != nil {
		v.start.Remove()
		v.start = nil
	}
	if v.end != nil {
		v.end.Remove()
		v.end = nil
	}
}

// SetRange moves both sliders. The start is clamped below the end on the
// next draw.
func (v *Visualization) SetRange(start, end int) error {
	if v.start == nil {
		return errNotSetUp
	}
	v.end.SetValue(end)
	v.start.SetValue(start)
	return nil
}

// Window returns the window the next draw will use, without writing the
// clamp back to the sliders.
func (v *Visualization) Window() (Window, bool) {
	if v.start == nil {
		return Window{}, false
	}
	return clampWindow(v.start.Value(), v.end.Value()), true
}

// Stats returns the series statistics once set up.
func (v *Visualization) Stats() (Stats, bool) {
	return v.stats, v.start != nil
}

// Err returns the load error, if loading failed.
func (v *Visualization) Err() error { return v.loadErr }

// FramesDrawn returns the number of chart ticks since setup.
func (v *Visualization) FramesDrawn() int { return v.framesDrawn }

// State reports the reveal progress against the current window. The
// chart is settled once a draw ran with framesDrawn >= NumYears, so every
// segment of the window is on screen.
func (v *Visualization) State() State {
	switch {
	case v.loadErr != nil:
		return StateFailed
	case !v.loaded:
		return StateNotLoaded
	case v.framesDrawn == 0:
		return StateReady
	}
	w, ok := v.Window()
	if !ok {
		return StateReady
	}
	if v.framesDrawn > w.NumYears() {
		return StateSettled
	}
	return StateAnimating
}

func (v *Visualization) logLine(msg string) {
	if v.log != nil {
		v.log.WriteLineString(id + ": " + msg)
	}
}
