// Package gallery mounts visuals and drives their lifecycle: preload when
// added, setup once loaded, draw every tick, destroy when deselected.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"climviz/gfx"
	"climviz/hal"
	"climviz/kernel"
	"climviz/ui"
)

var (
	ErrDuplicateID   = errors.New("gallery: duplicate visual id")
	ErrUnknownVisual = errors.New("gallery: unknown visual")
)

// Visual is one mountable visualization.
type Visual interface {
	ID() string
	Name() string

	// Preload starts the visual's resource loads.
	Preload(l *Loader)
	// Loaded reports whether Setup may run.
	Loaded() bool
	Setup(env *Env) error
	Draw(c gfx.Canvas)
	// Destroy releases everything Setup created.
	Destroy()
}

// Env is what a visual gets at setup.
type Env struct {
	Width, Height int
	Controls      *ui.Controls
}

const (
	menuX        = 8
	menuY        = 8
	menuTextSize = 13
	menuCharW    = 7
	menuGap      = 14
)

var (
	menuColor         = color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xFF}
	menuSelectedColor = color.NRGBA{R: 0x1E, G: 0x5A, B: 0xC8, A: 0xFF}
)

// Gallery owns the visuals, the shared controls and the background loader.
type Gallery struct {
	log hal.Logger

	ctx    context.Context
	cancel context.CancelFunc
	sys    *kernel.System
	loader *Loader

	controls *ui.Controls
	visuals  []Visual
	selected int
	setUp    bool
}

// New creates an empty gallery.
func New(log hal.Logger) *Gallery {
	ctx, cancel := context.WithCancel(context.Background())
	sys := kernel.NewSystem()
	return &Gallery{
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		sys:      sys,
		loader:   &Loader{ctx: ctx, sys: sys},
		controls: ui.NewControls(),
		selected: -1,
	}
}

// AddVisual registers v and starts its preload. The first visual added is
// selected.
func (g *Gallery) AddVisual(v Visual) error {
	for _, have := range g.visuals {
		if have.ID() == v.ID() {
			return fmt.Errorf("%w: %s", ErrDuplicateID, v.ID())
		}
	}
	g.visuals = append(g.visuals, v)
	v.Preload(g.loader)
	if g.selected < 0 {
		g.selected = len(g.visuals) - 1
	}
	return nil
}

// Visuals returns the registered visuals in menu order.
func (g *Gallery) Visuals() []Visual {
	return append([]Visual(nil), g.visuals...)
}

// Select makes the visual with the given id current, destroying the
// previous one if it was set up.
func (g *Gallery) Select(id string) error {
	for i, v := range g.visuals {
		if v.ID() != id {
			continue
		}
		if i == g.selected {
			return nil
		}
		g.deselect()
		g.selected = i
		g.logLine("select " + id)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownVisual, id)
}

func (g *Gallery) deselect() {
	if g.selected >= 0 && g.setUp {
		g.visuals[g.selected].Destroy()
	}
	g.setUp = false
}

func (g *Gallery) logLine(msg string) {
	if g.log != nil {
		g.log.WriteLineString("gallery: " + msg)
	}
}

// Selected returns the current visual, or nil.
func (g *Gallery) Selected() Visual {
	if g.selected < 0 {
		return nil
	}
	return g.visuals[g.selected]
}

// Controls returns the shared control registry.
func (g *Gallery) Controls() *ui.Controls { return g.controls }

// Prepare runs load completions and sets up the selected visual for a
// w x h canvas once it has loaded. It reports whether the selected visual
// is set up.
func (g *Gallery) Prepare(w, h int) (bool, error) {
	g.sys.Drain()

	v := g.Selected()
	if v == nil {
		return false, nil
	}
	if !g.setUp && v.Loaded() {
		if err := v.Setup(&Env{Width: w, Height: h, Controls: g.controls}); err != nil {
			return false, fmt.Errorf("gallery: setup %s: %w", v.ID(), err)
		}
		g.setUp = true
		g.logLine("setup " + v.ID())
	}
	return g.setUp, nil
}

// Tick prepares the selected visual and draws one frame.
func (g *Gallery) Tick(c gfx.Canvas) error {
	if _, err := g.Prepare(c.Size()); err != nil {
		return err
	}
	v := g.Selected()

	c.ResetMatrix()
	c.Background(gfx.Gray(255))
	g.drawMenu(c)
	if v != nil {
		v.Draw(c)
	}
	g.controls.Draw(c)
	return nil
}

func (g *Gallery) drawMenu(c gfx.Canvas) {
	c.Push()
	defer c.Pop()
	c.NoStroke()
	c.TextSize(menuTextSize)
	c.TextAlign(gfx.AlignLeft, gfx.AlignTop)

	x := float64(menuX)
	for i, v := range g.visuals {
		if i == g.selected {
			c.Fill(menuSelectedColor)
		} else {
			c.Fill(menuColor)
		}
		label := strconv.Itoa(i+1) + " " + v.Name()
		c.Text(label, x, menuY)
		x += float64(len([]rune(label))*menuCharW + menuGap)
	}
}

// HandleKey routes a key event. Digits select visuals, Escape returns
// hal.ErrExit and everything else goes to the controls.
func (g *Gallery) HandleKey(ev hal.KeyEvent) error {
	if ev.Press && ev.Code == hal.KeyEscape {
		return hal.ErrExit
	}
	if ev.Press && ev.Code == hal.KeyUnknown && ev.Rune >= '1' && ev.Rune <= '9' {
		i := int(ev.Rune - '1')
		if i < len(g.visuals) {
			return g.Select(g.visuals[i].ID())
		}
		return nil
	}
	g.controls.HandleKey(ev)
	return nil
}

// HandlePointer routes a pointer event to the controls.
func (g *Gallery) HandlePointer(ev hal.PointerEvent) {
	g.controls.HandlePointer(ev)
}

// AwaitLoads blocks until every started load has completed and its
// callback has run.
func (g *Gallery) AwaitLoads(ctx context.Context) error {
	return g.sys.Await(ctx)
}

// Close destroys the selected visual and cancels pending loads.
func (g *Gallery) Close() {
	g.deselect()
	g.cancel()
}
