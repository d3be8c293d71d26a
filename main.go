// Command climviz shows global surface temperature against year as an
// animated chart, in a window, headless, or exported to PNG.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"climviz/app"
	"climviz/hal"
	"climviz/internal/buildinfo"
	"climviz/internal/config"
	"climviz/internal/table"
	"climviz/viz/climate"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataPath   string
	sheetName  string

	headless     hal.HeadlessConfig
	snapshotPath string

	exportOpts app.ExportOptions
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "climviz",
		Short: "Animated global surface temperature chart",
		Long: `climviz draws global surface temperature against year, revealing one
year per tick inside a slider-selected year window.`,
		SilenceUsage: true,
		RunE:         runChart,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Temperature table (.csv or .xlsx); overrides climate.data")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "XLSX sheet name; overrides climate.sheet")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Open the chart in a window, or tick it headlessly",
		Args:  cobra.NoArgs,
		RunE:  runChart,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&headless.Enabled, "headless", false, "Run without a window")
		c.Flags().IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode")
		c.Flags().Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever)")
		c.Flags().StringVar(&snapshotPath, "snapshot", "", "Headless mode: write the last frame to this PNG")
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Render the chart to PNG without a window",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&exportOpts.Out, "out", "o", "climate.png", "Output PNG, or directory with --frames")
	exportCmd.Flags().IntVar(&exportOpts.Start, "start", 0, "First year of the window (default: first year in the data)")
	exportCmd.Flags().IntVar(&exportOpts.End, "end", 0, "Last year of the window (default: last year in the data)")
	exportCmd.Flags().BoolVar(&exportOpts.Frames, "frames", false, "Write every tick as frame-NNNN.png")
	exportCmd.Flags().IntVar(&exportOpts.Ticks, "ticks", 0, "Stop after N ticks (0 = until the chart settles)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the series statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}

	rootCmd.AddCommand(runCmd, exportCmd, statsCmd, versionCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dataPath != "" {
		cfg.Climate.Data = dataPath
	}
	if sheetName != "" {
		cfg.Climate.Sheet = sheetName
	}
	return cfg, nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, cfg) }

	if headless.Enabled {
		headless.Width = cfg.Canvas.Width
		headless.Height = cfg.Canvas.Height
		headless.SnapshotPath = snapshotPath
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, headless)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(newApp, hal.WindowConfig{
		Title:  "climviz",
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Scale:  cfg.Window.Scale,
		TPS:    cfg.TPS,
	})
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := hal.NewLogger(cmd.ErrOrStderr())
	res, err := app.Export(ctx, cfg, log, exportOpts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d-%d: %d ticks, %d file(s)\n",
		res.Window.StartYear, res.Window.EndYear, res.Ticks, len(res.Files))
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := table.Load(cmd.Context(), cfg.Climate.Data, table.Options{Sheet: cfg.Climate.Sheet})
	if err != nil {
		return err
	}
	s, err := climate.DecodeSeries(t)
	if err != nil {
		return err
	}
	st := s.Stats()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rows:             %d\n", len(s))
	fmt.Fprintf(out, "years:            %d-%d\n", st.MinYear, st.MaxYear)
	fmt.Fprintf(out, "min temperature:  %.3f\n", st.MinTemperature)
	fmt.Fprintf(out, "max temperature:  %.3f\n", st.MaxTemperature)
	fmt.Fprintf(out, "mean temperature: %.3f\n", st.MeanTemperature)
	return nil
}
