// Package climate draws global surface temperature against year as an
// animated, colour-banded line chart over a slider-selected year window.
package climate

import (
	"errors"
	"fmt"
	"math"

	"climviz/internal/table"
)

const (
	colDate        = "date"
	colTemperature = "temperature"
)

var (
	ErrTooFewRows     = errors.New("climate: need at least two rows")
	ErrNotYear        = errors.New("not a whole year")
	ErrNotFinite      = errors.New("not a finite number")
	ErrEmptyYearRange = errors.New("climate: last year must be after the first")
)

// Record is one row of the series.
type Record struct {
	Year        int
	Temperature float64
}

// Series is the loaded data in file order. Rows are expected ascending by
// year; they are not sorted or checked.
type Series []Record

// Stats summarises a Series.
type Stats struct {
	MinYear, MaxYear int

	MinTemperature  float64
	MaxTemperature  float64
	MeanTemperature float64
}

// DecodeSeries converts the date and temperature columns of t.
func DecodeSeries(t *table.Table) (Series, error) {
	for _, col := range []string{colDate, colTemperature} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("climate: column %q: %w", col, table.ErrNoColumn)
		}
	}
	n := t.RowCount()
	if n < 2 {
		return nil, fmt.Errorf("%w, have %d", ErrTooFewRows, n)
	}

	s := make(Series, n)
	for i := range s {
		date, err := t.Num(i, colDate)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(date) || math.IsInf(date, 0) {
			return nil, &table.ParseError{Row: i, Column: colDate, Err: ErrNotFinite}
		}
		if date != math.Trunc(date) || math.Abs(date) > math.MaxInt32 {
			return nil, &table.ParseError{Row: i, Column: colDate, Err: ErrNotYear}
		}
		temp, err := t.Num(i, colTemperature)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return nil, &table.ParseError{Row: i, Column: colTemperature, Err: ErrNotFinite}
		}
		s[i] = Record{Year: int(date), Temperature: temp}
	}
	if first, last := s[0].Year, s[n-1].Year; last <= first {
		return nil, fmt.Errorf("%w: %d..%d", ErrEmptyYearRange, first, last)
	}
	return s, nil
}

// Stats returns the year bounds from the first and last rows and the
// temperature bounds and mean from a full scan. s must not be empty.
func (s Series) Stats() Stats {
	st := Stats{
		MinYear:        s[0].Year,
		MaxYear:        s[len(s)-1].Year,
		MinTemperature: s[0].Temperature,
		MaxTemperature: s[0].Temperature,
	}
	sum := 0.0
	for _, r := range s {
		st.MinTemperature = math.Min(st.MinTemperature, r.Temperature)
		st.MaxTemperature = math.Max(st.MaxTemperature, r.Temperature)
		sum += r.Temperature
	}
	st.MeanTemperature = sum / float64(len(s))
	return st
}

// Window returns the records whose year lies in [w.StartYear, w.EndYear].
func (s Series) Window(w Window) Series {
	var out Series
	for _, r := range s {
		if r.Year >= w.StartYear && r.Year <= w.EndYear {
			out = append(out, r)
		}
	}
	return out
}
