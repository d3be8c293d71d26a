package table

import (
	"errors"
	"fmt"
)

// ErrEmpty indicates a table without a header row.
var ErrEmpty = errors.New("table has no header row")

// ErrNoColumn indicates a lookup of a column the header does not name.
var ErrNoColumn = errors.New("no such column")

// ErrUnsupportedFormat indicates a file extension with no reader.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// ParseError reports a cell that could not be read as the requested type.
type ParseError struct {
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %q: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
