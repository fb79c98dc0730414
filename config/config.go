// Package config provides configuration loading and access for the rain widget.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all widget and host configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Widget    WidgetConfig    `yaml:"widget"`
	Clouds    CloudsConfig    `yaml:"clouds"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Widgets shown by the windowed host. Each entry starts from the
	// top-level widget block and overrides only the keys it sets.
	Widgets []WidgetConfig `yaml:"widgets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`

	rawWidgets []yaml.Node
}

// ScreenConfig holds display settings for the windowed and terminal hosts.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WidgetConfig describes one rain widget.
type WidgetConfig struct {
	Name         string       `yaml:"name"`
	Width        float32      `yaml:"width"`         // layout width in pixels
	Height       float32      `yaml:"height"`        // layout height in pixels
	TickInterval int          `yaml:"tick_interval"` // milliseconds between engine ticks
	Rain         RainConfig   `yaml:"rain"`
	Colors       ColorsConfig `yaml:"colors"`
}

// CloudsConfig holds the cloud sway animation parameters.
type CloudsConfig struct {
	LeftPeriod  int     `yaml:"left_period"`  // milliseconds per sweep of the left cloud
	RightPeriod int     `yaml:"right_period"` // milliseconds per sweep of the right cloud
	ScaleRatio  float32 `yaml:"scale_ratio"`  // right cloud size relative to the left
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickInterval time.Duration  // Widget.TickInterval as a duration
	LeftPeriod   time.Duration  // Clouds.LeftPeriod as a duration
	RightPeriod  time.Duration  // Clouds.RightPeriod as a duration
	Palettes     []Palette      // parsed colors, parallel to Widgets
	WidgetIndex  map[string]int // name -> index into Widgets
}

// widgetsDoc re-reads the widgets list as raw nodes so each entry can be
// decoded on top of the top-level widget block.
type widgetsDoc struct {
	Widgets []yaml.Node `yaml:"widgets"`
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
	if err := cfg.merge(defaultsYAML); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse builds a configuration from YAML bytes merged over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := cfg.merge(defaultsYAML); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := cfg.merge(data); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge unmarshals data into c. Only keys present in data are overwritten;
// a widgets list replaces the previous one.
func (c *Config) merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	var doc widgetsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Widgets) > 0 {
		c.rawWidgets = doc.Widgets
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Widget.normalize()
	if c.Clouds.LeftPeriod <= 0 {
		c.Clouds.LeftPeriod = DefaultLeftCloudPeriod
	}
	if c.Clouds.RightPeriod <= 0 {
		c.Clouds.RightPeriod = DefaultRightCloudPeriod
	}
	if c.Clouds.ScaleRatio <= 0 {
		c.Clouds.ScaleRatio = DefaultCloudScaleRatio
	}

	// Resolve widget entries against the final top-level block
	if len(c.rawWidgets) > 0 {
		c.Widgets = make([]WidgetConfig, len(c.rawWidgets))
		for i := range c.rawWidgets {
			c.Widgets[i] = c.Widget
			c.Widgets[i].Name = ""
			if err := c.rawWidgets[i].Decode(&c.Widgets[i]); err != nil {
				return fmt.Errorf("decoding widget %d: %w", i, err)
			}
		}
	}

	c.Derived.TickInterval = time.Duration(c.Widget.TickInterval) * time.Millisecond
	c.Derived.LeftPeriod = time.Duration(c.Clouds.LeftPeriod) * time.Millisecond
	c.Derived.RightPeriod = time.Duration(c.Clouds.RightPeriod) * time.Millisecond

	// Synthesize a single widget from the top-level block if none specified
	if len(c.Widgets) == 0 {
		w := c.Widget
		if w.Name == "" {
			w.Name = "default"
		}
		c.Widgets = []WidgetConfig{w}
	}

	c.Derived.Palettes = make([]Palette, len(c.Widgets))
	c.Derived.WidgetIndex = make(map[string]int, len(c.Widgets))
	for i := range c.Widgets {
		w := &c.Widgets[i]
		w.normalize()
		if w.Name == "" {
			w.Name = fmt.Sprintf("widget-%d", i)
		}

		palette, err := w.Colors.Parse()
		if err != nil {
			return fmt.Errorf("widget %q colors: %w", w.Name, err)
		}
		c.Derived.Palettes[i] = palette
		c.Derived.WidgetIndex[w.Name] = i
	}
	return nil
}

// normalize resets out-of-range widget values to their defaults.
func (w *WidgetConfig) normalize() {
	if w.Width <= 0 {
		w.Width = DefaultWidgetSize
	}
	if w.Height <= 0 {
		w.Height = DefaultWidgetSize
	}
	if w.TickInterval <= 0 {
		w.TickInterval = DefaultTickInterval
	}
	w.Rain.Normalize()
}

// TickDuration returns the widget's tick interval as a duration.
func (w WidgetConfig) TickDuration() time.Duration {
	return time.Duration(w.TickInterval) * time.Millisecond
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
