package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"climviz/gallery"
	"climviz/gfx"
	"climviz/hal"
	"climviz/internal/config"
	"climviz/viz/climate"
)

// ExportOptions selects what Export writes.
type ExportOptions struct {
	// Out is a PNG file, or a directory when Frames is set.
	Out string

	// Start and End override the full year range when non-zero.
	Start, End int

	// Frames writes every tick as frame-0001.png, frame-0002.png, ...
	Frames bool

	// Ticks caps the number of ticks; 0 runs until the chart settles.
	Ticks int
}

// ExportResult summarises a finished export.
type ExportResult struct {
	Window climate.Window
	Ticks  int
	Files  []string
}

// Export runs the climate chart headlessly on an image canvas and writes
// the final frame, or every frame, as PNG.
func Export(ctx context.Context, cfg config.Config, log hal.Logger, opts ExportOptions) (ExportResult, error) {
	var res ExportResult
	if opts.Out == "" {
		return res, errors.New("export: no output path")
	}

	g := gallery.New(log)
	defer g.Close()
	v := climate.New(cfg.Climate, log)
	if err := g.AddVisual(v); err != nil {
		return res, err
	}
	if err := g.AwaitLoads(ctx); err != nil {
		return res, fmt.Errorf("export: %w", err)
	}
	if err := v.Err(); err != nil {
		return res, fmt.Errorf("export: %w", err)
	}

	c := gfx.NewImageCanvas(cfg.Canvas.Width, cfg.Canvas.Height)
	if _, err := g.Prepare(c.Size()); err != nil {
		return res, err
	}
	if opts.Start != 0 || opts.End != 0 {
		st, _ := v.Stats()
		start, end := opts.Start, opts.End
		if start == 0 {
			start = st.MinYear
		}
		if end == 0 {
			end = st.MaxYear
		}
		if err := v.SetRange(start, end); err != nil {
			return res, err
		}
	}
	if opts.Frames {
		if err := os.MkdirAll(opts.Out, 0o755); err != nil {
			return res, fmt.Errorf("export: %w", err)
		}
	}

	for v.State() != climate.StateSettled {
		if opts.Ticks > 0 && res.Ticks >= opts.Ticks {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := g.Tick(c); err != nil {
			return res, err
		}
		res.Ticks++
		if opts.Frames {
			path := filepath.Join(opts.Out, fmt.Sprintf("frame-%04d.png", res.Ticks))
			if err := c.SavePNG(path); err != nil {
				return res, fmt.Errorf("export: %w", err)
			}
			res.Files = append(res.Files, path)
		}
	}
	res.Window, _ = v.Window()

	if !opts.Frames {
		if err := c.SavePNG(opts.Out); err != nil {
			return res, fmt.Errorf("export: %w", err)
		}
		res.Files = append(res.Files, opts.Out)
	}
	return res, nil
}
