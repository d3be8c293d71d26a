package gallery

import (
	"context"

	"climviz/internal/table"
	"climviz/kernel"
)

// Loader starts background resource loads for a visual. Completion
// callbacks run on the tick thread, inside Gallery.Tick.
type Loader struct {
	ctx context.Context
	sys *kernel.System
}

// Go runs work off the tick thread and hands its result to done.
func (l *Loader) Go(work func(context.Context) error, done func(error)) {
	l.sys.Go(l.ctx, work, done)
}

// LoadTable reads a CSV or XLSX file in the background.
func (l *Loader) LoadTable(path string, opts table.Options, done func(*table.Table, error)) {
	var t *table.Table
	l.Go(func(ctx context.Context) error {
		var err error
		t, err = table.Load(ctx, path, opts)
		return err
	}, func(err error) {
		if err != nil {
			done(nil, err)
			return
		}
		done(t, nil)
	})
}
