package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Terminal display
	AspectRatio = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	TargetFPS   = 30  // Target frames per second

	// Tuning steps for keyboard controls
	SpeedStep     = 10.0 // deg/s per keypress
	ToleranceStep = 1.0  // degrees per keypress

	// Contact feed
	ContactTimeout  = 30 * time.Second // Remove contacts not seen for this long
	EvictInterval   = 5 * time.Second  // How often to run eviction
	SmoothingAlpha  = 0.3              // EMA smoothing factor (30% new, 70% old)
	MeasuredPower   = -59.0            // RSSI at 1 meter (dBm)
	PathLossExp     = 2.5              // Path loss exponent (N)
	ContactMaxRange = 30.0             // Meters mapped to the outer ring

	// App
	AppName    = "PPI-RADAR"
	AppVersion = "1.0"
)

// Feed sources.
const (
	FeedNone = "none"
	FeedDemo = "demo"
	FeedBLE  = "ble"
)

// RGBA is a color as written in the config file: [r, g, b, a].
type RGBA [4]float32

type RadarConfig struct {
	SweepSpeed float32 `yaml:"sweep_speed"` // deg/s
	SweepAngle float32 `yaml:"sweep_angle"` // deg
	Tolerance  float32 `yaml:"tolerance"`   // deg
	Rings      int     `yaml:"rings"`
	Radials    int     `yaml:"radials"`
	Segments   int     `yaml:"segments"`
	GridColor  RGBA    `yaml:"grid_color"`
	SweepColor RGBA    `yaml:"sweep_color"`
}

type TargetConfig struct {
	Angle           float32 `yaml:"angle"`
	Radius          float32 `yaml:"radius"`
	AngularVelocity float32 `yaml:"angular_velocity"`
	RadialVelocity  float32 `yaml:"radial_velocity"`
}

type OverlayConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	QueueSize int    `yaml:"queue_size"`
	Lines     int    `yaml:"lines"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

type FeedConfig struct {
	Source  string `yaml:"source"`
	Adapter string `yaml:"adapter"`
}

// Config is the top-level structure of the radar config file.
type Config struct {
	Radar   RadarConfig    `yaml:"radar"`
	Targets []TargetConfig `yaml:"targets"`
	Overlay OverlayConfig  `yaml:"overlay"`
	Log     LogConfig      `yaml:"log"`
	Feed    FeedConfig     `yaml:"feed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Radar: RadarConfig{
			SweepSpeed: 60,
			SweepAngle: 0,
			Tolerance:  5,
			Rings:      5,
			Radials:    12,
			Segments:   100,
			GridColor:  RGBA{0, 0.4, 0, 1},
			SweepColor: RGBA{0, 1, 0, 0.4},
		},
		Targets: []TargetConfig{
			{30, 0.6, 10, 0},
			{90, 0.75, -15, 0},
			{135, 0.5, 20, 0},
			{180, 0.9, -5, 0},
			{210, 0.85, 0, -0.1},
			{240, 0.4, 0, 0.2},
			{300, 0.65, -10, 0},
			{330, 0.3, 5, 0},
		},
		Overlay: OverlayConfig{
			Enabled:   true,
			Addr:      ":5555",
			QueueSize: 100,
			Lines:     20,
		},
		Log: LogConfig{
			Level: "info",
		},
		Feed: FeedConfig{
			Source:  FeedNone,
			Adapter: "hci0",
		},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values the display cannot work without. Numeric
// sweep parameters are deliberately not range checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Radar.Rings < 0 {
		errs = append(errs, fmt.Errorf("radar.rings must be >= 0, got %d", c.Radar.Rings))
	}
	if c.Radar.Radials < 0 {
		errs = append(errs, fmt.Errorf("radar.radials must be >= 0, got %d", c.Radar.Radials))
	}
	if c.Overlay.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("overlay.queue_size must be >= 1, got %d", c.Overlay.QueueSize))
	}
	if c.Overlay.Lines < 1 {
		errs = append(errs, fmt.Errorf("overlay.lines must be >= 1, got %d", c.Overlay.Lines))
	}
	switch c.Feed.Source {
	case FeedNone, FeedDemo, FeedBLE:
	default:
		errs = append(errs, fmt.Errorf("feed.source %q is not one of none, demo, ble", c.Feed.Source))
	}
	return errors.Join(errs...)
}
