package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	Ticks   uint64

	// SnapshotPath, when set, receives the last framebuffer contents as PNG.
	SnapshotPath string
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New(HostConfig{Width: cfg.Width, Height: cfg.Height}).(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	err := runTicks(ctx, t.C, step, cfg.Ticks)
	if cfg.SnapshotPath != "" {
		if serr := writeSnapshot(h.fb, cfg.SnapshotPath); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runTicks(ctx context.Context, ticks <-chan time.Time, step func() error, limit uint64) error {
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	img, _ := fb.snapshotRGBA(nil, nil)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return f.Close()
}
