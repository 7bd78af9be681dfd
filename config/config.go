// Package config provides configuration loading and access for the nebula.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all nebula configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Nebula    NebulaConfig    `yaml:"nebula"`
	Balls     BallsConfig     `yaml:"balls"`
	Links     LinksConfig     `yaml:"links"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RGB is an opaque color as written in YAML.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"` // Initial window width; the field follows resizes
	TargetFPS  int    `yaml:"target_fps"`
	Resizable  bool   `yaml:"resizable"`
	Background RGB    `yaml:"background"`
}

// NebulaConfig holds the field parameters.
type NebulaConfig struct {
	Size       int     `yaml:"size"`        // Target regular population
	Height     int     `yaml:"height"`      // Fixed field height in pixels
	BufferZone float64 `yaml:"buffer_zone"` // Margin beyond the visible area before culling
}

// BallsConfig holds regular particle parameters.
type BallsConfig struct {
	Color             RGB     `yaml:"color"`
	Radius            float64 `yaml:"radius"`
	Alpha             float64 `yaml:"alpha"`
	MinVelocity       float64 `yaml:"min_velocity"`
	MaxVelocity       float64 `yaml:"max_velocity"`
	MinInwardVelocity float64 `yaml:"min_inward_velocity"` // Inward speed floor for the edge-perpendicular axis
}

// LinksConfig holds proximity link parameters.
type LinksConfig struct {
	Color       RGB     `yaml:"color"`
	Width       float64 `yaml:"width"`
	MaxDistance float64 `yaml:"max_distance"`
}

// TerminalConfig holds the terminal backend cell geometry.
// Each terminal cell covers CellWidth x CellHeight field pixels.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of frames per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	BookmarkHistory     int     `yaml:"bookmark_history"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDT    float64    // Seconds per frame at TargetFPS
	Background color.RGBA // Screen.Background as color.RGBA
	BallColor  color.RGBA // Balls.Color as color.RGBA
	LinkColor  color.RGBA // Links.Color as color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first parameter that would make the field meaningless.
func (c *Config) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}

	switch {
	case c.Nebula.Size < 0:
		return errors.New("nebula.size must not be negative")
	case c.Nebula.Height <= 0:
		return errors.New("nebula.height must be positive")
	case c.Nebula.BufferZone < 0:
		return errors.New("nebula.buffer_zone must not be negative")
	case c.Balls.Radius < 0:
		return errors.New("balls.radius must not be negative")
	case c.Balls.Alpha < 0 || c.Balls.Alpha > 1:
		return errors.New("balls.alpha must be within [0, 1]")
	case c.Balls.MinInwardVelocity <= 0:
		return errors.New("balls.min_inward_velocity must be positive")
	case c.Balls.MaxVelocity <= c.Balls.MinInwardVelocity:
		return errors.New("balls.max_velocity must exceed balls.min_inward_velocity")
	case c.Balls.MinVelocity >= -c.Balls.MinInwardVelocity:
		return errors.New("balls.min_velocity must be below -balls.min_inward_velocity")
	case c.Links.MaxDistance <= 0:
		return errors.New("links.max_distance must be positive")
	case c.Screen.TargetFPS <= 0:
		return errors.New("screen.target_fps must be positive")
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return errors.New("terminal cell size must be positive")
	}
	return nil
}

// checkFinite rejects NaN and infinite floats, which slip past the range checks.
func (c *Config) checkFinite() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"nebula.buffer_zone", c.Nebula.BufferZone},
		{"balls.radius", c.Balls.Radius},
		{"balls.alpha", c.Balls.Alpha},
		{"balls.min_velocity", c.Balls.MinVelocity},
		{"balls.max_velocity", c.Balls.MaxVelocity},
		{"balls.min_inward_velocity", c.Balls.MinInwardVelocity},
		{"links.width", c.Links.Width},
		{"links.max_distance", c.Links.MaxDistance},
		{"terminal.cell_width", c.Terminal.CellWidth},
		{"terminal.cell_height", c.Terminal.CellHeight},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameDT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.Background = c.Screen.Background.RGBA()
	c.Derived.BallColor = c.Balls.Color.RGBA()
	c.Derived.LinkColor = c.Links.Color.RGBA()
}

// RGBA returns the color as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
