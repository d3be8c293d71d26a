//go:build !cgo

package hal

// Without the window backend the input channels exist but never fire.

type hostKeyboard struct{ ch chan KeyEvent }

func newHostKeyboard() *hostKeyboard { return &hostKeyboard{ch: make(chan KeyEvent, 64)} }

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }
func (k *hostKeyboard) poll()                   {}

type hostPointer struct{ ch chan PointerEvent }

func newHostPointer() *hostPointer { return &hostPointer{ch: make(chan PointerEvent, 64)} }

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }
func (p *hostPointer) poll()                       {}
