package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"climviz/gfx"
	"climviz/hal"
	"climviz/internal/table"
)

type fakeVisual struct {
	id     string
	loaded bool

	preloads, setups, draws, destroys int
	setupErr                          error
	env                               *Env
}

func (f *fakeVisual) ID() string      { return f.id }
func (f *fakeVisual) Name() string    { return "Fake " + f.id }
func (f *fakeVisual) Preload(*Loader) { f.preloads++ }
func (f *fakeVisual) Loaded() bool    { return f.loaded }
func (f *fakeVisual) Draw(gfx.Canvas) { f.draws++ }
func (f *fakeVisual) Destroy()        { f.destroys++ }
func (f *fakeVisual) Setup(env *Env) error {
	f.setups++
	f.env = env
	if f.setupErr != nil {
		return f.setupErr
	}
	env.Controls.CreateSlider(0, 10, 0, 1)
	return nil
}

func TestAddVisualPreloadsAndSelectsFirst(t *testing.T) {
	g := New(nil)
	a := &fakeVisual{id: "a"}
	b := &fakeVisual{id: "b"}
	if err := g.AddVisual(a); err != nil {
		t.Fatal(err)
	}
	if err := g.AddVisual(b); err != nil {
		t.Fatal(err)
	}
	if a.preloads != 1 || b.preloads != 1 {
		t.Fatalf("preloads = %d,%d, want 1,1", a.preloads, b.preloads)
	}
	if g.Selected() != a {
		t.Fatal("first visual not selected")
	}
	if err := g.AddVisual(&fakeVisual{id: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate err = %v", err)
	}
	if err := g.Select("zzz"); !errors.Is(err, ErrUnknownVisual) {
		t.Fatalf("unknown err = %v", err)
	}
	if got := len(g.Visuals()); got != 2 {
		t.Fatalf("Visuals() = %d", got)
	}
}

func TestTickSetsUpOnceLoaded(t *testing.T) {
	g := New(nil)
	v := &fakeVisual{id: "v"}
	g.AddVisual(v)

	r := gfx.NewRecorder(320, 200)
	if err := g.Tick(r); err != nil {
		t.Fatal(err)
	}
	if v.setups != 0 || v.draws != 1 {
		t.Fatalf("before load: setups=%d draws=%d", v.setups, v.draws)
	}

	v.loaded = true
	g.Tick(r)
	g.Tick(r)
	if v.setups != 1 || v.draws != 3 {
		t.Fatalf("after load: setups=%d draws=%d", v.setups, v.draws)
	}
	if v.env.Width != 320 || v.env.Height != 200 {
		t.Fatalf("env = %+v", v.env)
	}

	// Every frame starts from a white background and the menu.
	if r.Ops[0].Kind != gfx.OpBackground || r.Ops[0].Color != gfx.Gray(255) {
		t.Fatalf("first op = %+v", r.Ops[0])
	}
	if got := r.Texts(); len(got) == 0 || got[0] != "1 Fake v" {
		t.Fatalf("menu = %v", got)
	}
}

func TestSetupErrorIsReturned(t *testing.T) {
	g := New(nil)
	boom := errors.New("boom")
	g.AddVisual(&fakeVisual{id: "v", loaded: true, setupErr: boom})
	if err := g.Tick(gfx.NewRecorder(10, 10)); !errors.Is(err, boom) {
		t.Fatalf("Tick err = %v", err)
	}
}

func TestSelectDestroysPrevious(t *testing.T) {
	g := New(nil)
	a := &fakeVisual{id: "a", loaded: true}
	b := &fakeVisual{id: "b", loaded: true}
	g.AddVisual(a)
	g.AddVisual(b)

	r := gfx.NewRecorder(100, 100)
	g.Tick(r)
	if ok, _ := g.Prepare(100, 100); !ok {
		t.Fatal("Prepare() not set up")
	}

	if err := g.HandleKey(hal.KeyEvent{Press: true, Rune: '2'}); err != nil {
		t.Fatal(err)
	}
	if a.destroys != 1 || g.Selected() != b {
		t.Fatalf("destroys=%d selected=%v", a.destroys, g.Selected().ID())
	}
	g.Tick(r)
	if b.setups != 1 {
		t.Fatalf("b.setups = %d", b.setups)
	}

	// Out of range digits are ignored.
	if err := g.HandleKey(hal.KeyEvent{Press: true, Rune: '9'}); err != nil || g.Selected() != b {
		t.Fatalf("digit 9: err=%v", err)
	}

	g.Close()
	if b.destroys != 1 {
		t.Fatalf("Close did not destroy selected: %d", b.destroys)
	}
}

func TestHandleKeyEscapeAndControls(t *testing.T) {
	g := New(nil)
	g.AddVisual(&fakeVisual{id: "v", loaded: true})
	g.Tick(gfx.NewRecorder(100, 100))

	if err := g.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true}); !errors.Is(err, hal.ErrExit) {
		t.Fatalf("Escape err = %v", err)
	}
	s := g.Controls().Focused()
	if err := g.HandleKey(hal.KeyEvent{Code: hal.KeyRight, Press: true}); err != nil {
		t.Fatal(err)
	}
	if s.Value() != 1 {
		t.Fatalf("slider = %d, want 1", s.Value())
	}
}

func TestLoaderLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte("date,temperature\n1900,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := New(nil)
	defer g.Close()

	var got *table.Table
	var gotErr error
	g.loader.LoadTable(path, table.Options{}, func(tb *table.Table, err error) {
		got, gotErr = tb, err
	})
	g.loader.LoadTable(filepath.Join(t.TempDir(), "none.csv"), table.Options{}, func(tb *table.Table, err error) {
		if tb != nil || err == nil {
			t.Errorf("missing file: tb=%v err=%v", tb, err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.AwaitLoads(ctx); err != nil {
		t.Fatalf("AwaitLoads: %v", err)
	}
	if gotErr != nil || got == nil || got.RowCount() != 1 {
		t.Fatalf("LoadTable = %v, %v", got, gotErr)
	}
}
