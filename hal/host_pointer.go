//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	lastX, lastY int
	down         bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) poll() {
	emit := func(a PointerAction, x, y int) {
		select {
		case p.ch <- PointerEvent{Action: a, X: x, Y: y}:
		default:
		}
	}

	// Cursor position is already in layout (framebuffer) coordinates.
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.down = true
		emit(PointerPress, x, y)
	} else if p.down && (x != p.lastX || y != p.lastY) {
		emit(PointerMove, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.down = false
		emit(PointerRelease, x, y)
	}
	p.lastX, p.lastY = x, y
}
