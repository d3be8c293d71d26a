package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"climviz/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// PanicError is returned by a step that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// guardStep turns a panic inside step into a logged PanicError and a
// crash screen on the framebuffer. The run loop then ends with that error.
func guardStep(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			perr := &PanicError{Value: v, Stack: debug.Stack()}
			lines := panicLines(perr)
			if l := h.Logger(); l != nil {
				for _, line := range lines {
					l.WriteLineString(line)
				}
			}
			showPanic(h, lines)
			err = perr
		}()
		return step()
	}
}

func panicLines(e *PanicError) []string {
	lines := []string{
		"climviz panic:",
		fmt.Sprintf("panic: %v", e.Value),
	}
	if len(e.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(e.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

func showPanic(h hal.HAL, lines []string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	const fontHeight, fontOffset = int16(10), int16(7)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{R: 0xB0, G: 0, B: 0, A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > int16(fb.Height()) {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, 0, y+fontOffset, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
		fg = color.RGBA{A: 255}
	}
	_ = fb.Present()
}

func drawTextLine(d panicDisplay, font tinyfont.Fonter, fontWidth, x, y int16, s string, fg color.RGBA) {
	for _, r := range s {
		tinyfont.DrawChar(d, font, x, y, r, fg)
		x += fontWidth
	}
}

// panicDisplay draws straight into the framebuffer, bypassing the canvas
// whose state may be what panicked.
type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	hal.Put565(buf, iy*d.fb.StrideBytes()+ix*2, hal.RGB565(c.R, c.G, c.B))
}

func (d panicDisplay) Display() error { return nil }

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
