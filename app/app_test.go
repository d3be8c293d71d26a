package app

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"climviz/hal"
	"climviz/internal/config"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB { return &testFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }

func (f *testFB) Present() error {
	f.presents++
	return nil
}

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type testHAL struct {
	log *testLogger
	fb  hal.Framebuffer
	kbd testKeyboard
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) Input() hal.Input     { return h }

func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *testHAL) Pointer() hal.Pointer         { return nil }

func newTestHAL() (*testHAL, *testFB) {
	fb := newTestFB(320, 180)
	return &testHAL{
		log: &testLogger{},
		fb:  fb,
		kbd: testKeyboard{ch: make(chan hal.KeyEvent, 4)},
	}, fb
}

func testConfig(t *testing.T, csv string) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surface-temperature.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Canvas.Width = 320
	cfg.Canvas.Height = 180
	cfg.Climate.Data = path
	return cfg
}

const sixYears = "date,temperature\n2000,14.1\n2001,14.3\n2002,14.2\n2003,14.6\n2004,14.5\n2005,14.8\n"

func TestStepPresentsAndExitsOnEscape(t *testing.T) {
	h, fb := newTestHAL()
	step := New(h, testConfig(t, sixYears))

	for i := 0; i < 3; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if fb.presents != 3 {
		t.Fatalf("presents = %d, want 3", fb.presents)
	}

	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := step(); !errors.Is(err, hal.ErrExit) {
		t.Fatalf("step after Escape = %v, want ErrExit", err)
	}
}

func TestNewWithoutFramebuffer(t *testing.T) {
	h, _ := newTestHAL()
	h.fb = nil
	if err := New(h, config.Default())(); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("step = %v, want ErrNoFramebuffer", err)
	}
}

func TestGuardStepRecoversPanic(t *testing.T) {
	h, fb := newTestHAL()
	step := guardStep(h, func() error { panic("boom") })

	err := step()
	var perr *PanicError
	if !errors.As(err, &perr) || perr.Value != "boom" {
		t.Fatalf("step = %v, want PanicError(boom)", err)
	}
	if !h.log.has("climviz panic:") || !h.log.has("panic: boom") {
		t.Fatalf("log = %v", h.log.lines)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}
	white := hal.RGB565(255, 255, 255)
	inked := false
	for i := 0; i+1 < len(fb.buf); i += 2 {
		if uint16(fb.buf[i])|uint16(fb.buf[i+1])<<8 != white {
			inked = true
			break
		}
	}
	if !inked {
		t.Fatal("panic screen is blank")
	}
}

func TestTakeRunes(t *testing.T) {
	if p, r := takeRunes("héllo", 2); p != "hé" || r != "llo" {
		t.Fatalf("takeRunes = %q, %q", p, r)
	}
	if p, r := takeRunes("ab", 5); p != "ab" || r != "" {
		t.Fatalf("takeRunes short = %q, %q", p, r)
	}
}

func TestExportFinalFrame(t *testing.T) {
	cfg := testConfig(t, sixYears)
	out := filepath.Join(t.TempDir(), "chart.png")

	res, err := Export(context.Background(), cfg, nil, ExportOptions{Out: out})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// Five one-year steps settle after the sixth draw.
	if res.Ticks != 6 {
		t.Fatalf("Ticks = %d, want 6", res.Ticks)
	}
	if res.Window.StartYear != 2000 || res.Window.EndYear != 2005 {
		t.Fatalf("Window = %+v", res.Window)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestExportFramesWithRange(t *testing.T) {
	cfg := testConfig(t, sixYears)
	dir := filepath.Join(t.TempDir(), "frames")

	res, err := Export(context.Background(), cfg, nil, ExportOptions{Out: dir, Start: 2002, End: 2004, Frames: true})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Window.StartYear != 2002 || res.Window.EndYear != 2004 {
		t.Fatalf("Window = %+v", res.Window)
	}
	if len(res.Files) != res.Ticks || res.Ticks != 3 {
		t.Fatalf("files = %d ticks = %d, want 3", len(res.Files), res.Ticks)
	}
	if filepath.Base(res.Files[0]) != "frame-0001.png" {
		t.Fatalf("first frame = %s", res.Files[0])
	}
	for _, p := range res.Files {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}

	capped, err := Export(context.Background(), cfg, nil, ExportOptions{Out: filepath.Join(t.TempDir(), "x.png"), Ticks: 2})
	if err != nil || capped.Ticks != 2 {
		t.Fatalf("capped export = %+v, %v", capped, err)
	}
}

func TestExportLoadFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Climate.Data = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := Export(context.Background(), cfg, nil, ExportOptions{Out: filepath.Join(t.TempDir(), "x.png")}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Export = %v, want ErrNotExist", err)
	}
}
