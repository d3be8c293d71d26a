package app

import (
	"errors"
	"fmt"

	"climviz/gallery"
	"climviz/gfx"
	"climviz/hal"
	"climviz/internal/config"
	"climviz/viz/climate"
)

var ErrNoFramebuffer = errors.New("app: no RGB565 framebuffer")

type system struct {
	h       hal.HAL
	gallery *gallery.Gallery
	canvas  *gfx.FramebufferCanvas
}

// New mounts the visuals on h and returns the per-tick step function.
func New(h hal.HAL, cfg config.Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return guardStep(h, s.step)
}

func newSystem(h hal.HAL, cfg config.Config) (*system, error) {
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb == nil {
		return nil, ErrNoFramebuffer
	}
	canvas := gfx.NewFramebufferCanvas(fb)
	if canvas == nil {
		return nil, ErrNoFramebuffer
	}

	g := gallery.New(h.Logger())
	if err := g.AddVisual(climate.New(cfg.Climate, h.Logger())); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return &system{h: h, gallery: g, canvas: canvas}, nil
}

func (s *system) step() error {
	if err := s.pollInput(); err != nil {
		s.gallery.Close()
		return err
	}
	if err := s.gallery.Tick(s.canvas); err != nil {
		return err
	}
	return s.canvas.Present()
}

// pollInput routes every queued input event without blocking.
func (s *system) pollInput() error {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	if kbd := in.Keyboard(); kbd != nil {
		ch := kbd.Events()
	keys:
		for {
			select {
			case ev := <-ch:
				if err := s.gallery.HandleKey(ev); err != nil {
					return err
				}
			default:
				break keys
			}
		}
	}
	if ptr := in.Pointer(); ptr != nil {
		ch := ptr.Events()
		for {
			select {
			case ev := <-ch:
				s.gallery.HandlePointer(ev)
			default:
				return nil
			}
		}
	}
	return nil
}
