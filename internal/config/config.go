// Package config loads the YAML run configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the complete run configuration. Zero fields in a file keep
// their defaults.
type Config struct {
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
	Window struct {
		Scale int `yaml:"scale"`
	} `yaml:"window"`
	TPS     int     `yaml:"tps"`
	Climate Climate `yaml:"climate"`
}

// Climate configures the temperature chart.
type Climate struct {
	Data        string `yaml:"data"`
	Sheet       string `yaml:"sheet"` // xlsx only; empty selects the first sheet
	MarginSize  int    `yaml:"margin_size"`
	XTickLabels int    `yaml:"x_tick_labels"`
	YTickLabels int    `yaml:"y_tick_labels"`
	XAxisLabel  string `yaml:"x_axis_label"`
	YAxisLabel  string `yaml:"y_axis_label"`

	StartSlider Placement `yaml:"start_slider"`
	EndSlider   Placement `yaml:"end_slider"`
}

// Placement positions a slider on the canvas.
type Placement struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Width int `yaml:"width"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Canvas.Width = 640
	c.Canvas.Height = 360
	c.Window.Scale = 2
	c.TPS = 60
	c.Climate = Climate{
		Data:        "data/surface-temperature/surface-temperature.csv",
		MarginSize:  35,
		XTickLabels: 8,
		YTickLabels: 8,
		XAxisLabel:  "year",
		YAxisLabel:  "°C",
		StartSlider: Placement{X: 330, Y: 10, Width: 120},
		EndSlider:   Placement{X: 490, Y: 10, Width: 120},
	}
	return c
}

// Load returns Default overlaid with the file at path. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	fillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields a file explicitly zeroed.
func fillDefaults(c *Config) {
	d := Default()
	if c.Window.Scale <= 0 {
		c.Window.Scale = d.Window.Scale
	}
	if c.TPS <= 0 {
		c.TPS = d.TPS
	}
	if c.Climate.Data == "" {
		c.Climate.Data = d.Climate.Data
	}
	if c.Climate.StartSlider.Width <= 0 {
		c.Climate.StartSlider.Width = d.Climate.StartSlider.Width
	}
	if c.Climate.EndSlider.Width <= 0 {
		c.Climate.EndSlider.Width = d.Climate.EndSlider.Width
	}
}

// Validate reports the first setting that cannot produce a chart.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	m := c.Climate.MarginSize
	if m < 0 {
		return fmt.Errorf("%w: margin_size %d", ErrInvalid, m)
	}
	// Left and bottom margins are 2m, right and top are m.
	if c.Canvas.Width-3*m <= 0 || c.Canvas.Height-3*m <= 0 {
		return fmt.Errorf("%w: margin_size %d leaves no plot area in %dx%d", ErrInvalid, m, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Climate.XTickLabels <= 0 || c.Climate.YTickLabels <= 0 {
		return fmt.Errorf("%w: tick labels x=%d y=%d", ErrInvalid, c.Climate.XTickLabels, c.Climate.YTickLabels)
	}
	return nil
}
