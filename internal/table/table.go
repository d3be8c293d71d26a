// Package table loads small header-first tabular files (CSV or XLSX) into
// memory and gives typed access to their cells by column name.
package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is an immutable header + rows view.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// Options tunes Load.
type Options struct {
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
}

// New builds a table from a header and rows. Short rows read as empty cells.
func New(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	t := &Table{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
		rows:    rows,
	}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.columns[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t, nil
}

// Load reads path, choosing the reader by extension (.csv, .xlsx).
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return readXLSX(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV parses comma-separated values with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return New(header, rows)
}

func readXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, ErrEmpty
	}

	rows := make([][]string, 0, len(all)-1)
	for _, rec := range all[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return New(all[0], rows)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.rows) }

// Columns returns the header names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the header names col.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.index[col]
	return ok
}

// String returns the raw cell text.
func (t *Table) String(row int, col string) (string, error) {
	i, ok := t.index[col]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoColumn, col)
	}
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range [0,%d)", row, len(t.rows))
	}
	rec := t.rows[row]
	if i >= len(rec) {
		return "", nil
	}
	return strings.TrimSpace(rec[i]), nil
}

// Num parses the cell as a float.
func (t *Table) Num(row int, col string) (float64, error) {
	s, err := t.String(row, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Row: row, Column: col, Err: err}
	}
	return v, nil
}

// Column parses a whole column as floats.
func (t *Table) Column(col string) ([]float64, error) {
	out := make([]float64, t.RowCount())
	for i := range out {
		v, err := t.Num(i, col)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
