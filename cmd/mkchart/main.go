// Command mkchart renders a temperature table as a static PNG line chart.
package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	"climviz/internal/table"
	"climviz/viz/climate"

	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type options struct {
	data, sheet, out string
	start, end       int
	width, height    int
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "mkchart --data surface-temperature.csv --out chart.png",
		Short: "Render a temperature table as a static chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.data, "data", "", "Input table (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output PNG")
	cmd.Flags().IntVar(&opts.start, "start", 0, "First year to include (default: first year in the data)")
	cmd.Flags().IntVar(&opts.end, "end", 0, "Last year to include (default: last year in the data)")
	cmd.Flags().IntVar(&opts.width, "width", 1024, "Image width")
	cmd.Flags().IntVar(&opts.height, "height", 512, "Image height")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fatalf("mkchart: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func run(ctx context.Context, opts options) error {
	if opts.data == "" || opts.out == "" {
		return fmt.Errorf("usage: mkchart --data in.csv --out out.png [--start Y --end Y] [--width W --height H]")
	}
	t, err := table.Load(ctx, opts.data, table.Options{Sheet: opts.sheet})
	if err != nil {
		return err
	}
	s, err := climate.DecodeSeries(t)
	if err != nil {
		return err
	}
	st := s.Stats()
	s, err = window(s, opts.start, opts.end)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := renderChart(f, s, st, opts.width, opts.height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// window keeps [start, end] of s; zero bounds keep the series' own ends.
func window(s climate.Series, start, end int) (climate.Series, error) {
	st := s.Stats()
	if start == 0 {
		start = st.MinYear
	}
	if end == 0 {
		end = st.MaxYear
	}
	out := s.Window(climate.Window{StartYear: start, EndYear: end})
	if len(out) < 2 {
		return nil, fmt.Errorf("%d-%d: %w", start, end, climate.ErrTooFewRows)
	}
	return out, nil
}

// renderChart draws s as a line with dots coloured on the chart's
// cold-to-hot scale, plus a dashed mean line. st holds the whole series'
// statistics so a year gets the same colour whatever window is drawn.
func renderChart(w io.Writer, s climate.Series, st climate.Stats, width, height int) error {
	dots := dotColors(s, st)

	xs := make([]float64, len(s))
	ys := make([]float64, len(s))
	for i, r := range s {
		xs[i] = float64(r.Year)
		ys[i] = r.Temperature
	}

	temps := chart.ContinuousSeries{
		Name:    "temperature",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlack,
			StrokeWidth: 1.5,
			DotWidth:    2.5,
			DotColorProvider: func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
				return dots[i]
			},
		},
	}
	mean := chart.ContinuousSeries{
		Name:    fmt.Sprintf("mean %.2f", st.MeanTemperature),
		XValues: []float64{xs[0], xs[len(xs)-1]},
		YValues: []float64{st.MeanTemperature, st.MeanTemperature},
		Style: chart.Style{
			StrokeColor:     drawing.Color{R: 200, G: 200, B: 200, A: 255},
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 3},
		},
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Global surface temperature %d-%d", s[0].Year, s[len(s)-1].Year),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: "year", ValueFormatter: chart.IntValueFormatter},
		YAxis:      chart.YAxis{Name: "°C"},
		Series:     []chart.Series{temps, mean},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// dotColors colours each record of s on the cold-to-hot scale of st.
func dotColors(s climate.Series, st climate.Stats) []drawing.Color {
	m := climate.Mapper{Stats: st}
	out := make([]drawing.Color, len(s))
	for i, r := range s {
		out[i] = toDrawing(m.TemperatureToColor(r.Temperature))
	}
	return out
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
