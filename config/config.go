// Package config provides configuration loading and validation for the petal display.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all display and simulation parameters.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Field     FieldConfig     `yaml:"field"`
	Layers    LayersConfig    `yaml:"layers"`
	Wind      WindConfig      `yaml:"wind"`
	Drift     DriftConfig     `yaml:"drift"`
	Input     InputConfig     `yaml:"input"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// DisplayConfig holds pixel sink settings.
type DisplayConfig struct {
	Backend       string       `yaml:"backend"`        // window, terminal, is31fl3731, headless
	Width         int          `yaml:"width"`          // Grid columns
	Height        int          `yaml:"height"`         // Grid rows
	Brightness    int          `yaml:"brightness"`     // Initial global brightness scale
	BrightnessMax int          `yaml:"brightness_max"` // Upper clamp for the brightness buttons
	Window        WindowConfig `yaml:"window"`
	I2C           I2CConfig    `yaml:"i2c"`
}

// WindowConfig holds raylib window settings.
type WindowConfig struct {
	CellSize int  `yaml:"cell_size"` // Screen pixels per LED
	ShowHUD  bool `yaml:"show_hud"`
}

// I2CConfig holds LED driver bus settings.
type I2CConfig struct {
	Bus  string `yaml:"bus"`  // Bus name passed to i2creg.Open ("" = first available)
	Addr uint16 `yaml:"addr"` // IS31FL3731 address (0x74 on the Scroll pHAT HD)
}

// FieldConfig holds simulation-wide settings.
type FieldConfig struct {
	Mode            string `yaml:"mode"`              // layered (discrete petals) or drift (continuous)
	FramesPerSecond int    `yaml:"frames_per_second"` // Ticks per second
	Edge            string `yaml:"edge"`              // Side petals fall from: top, bottom, left, right
	Rasterizer      string `yaml:"rasterizer"`        // exact or bilinear ("" = mode default)
}

// LayersConfig holds the layered (discrete) mode parameters.
type LayersConfig struct {
	Count             int     `yaml:"count"`
	BrightnessMin     int     `yaml:"brightness_min"`
	BrightnessMax     int     `yaml:"brightness_max"`
	BloomChance       float64 `yaml:"bloom_chance"`         // Chance per tick that a layer blooms
	PetalsPerBloomMax int     `yaml:"petals_per_bloom_max"` // Bloom size is uniform in [0, max]
	PetalDecayRateMax int     `yaml:"petal_decay_rate_max"`
	PetalDriftChance  float64 `yaml:"petal_drift_chance"` // Chance a petal does NOT fall this tick
	DecaySkipChance   float64 `yaml:"decay_skip_chance"`  // Chance a petal does not fade this tick
}

// WindConfig holds gust parameters.
type WindConfig struct {
	GustChance      float64 `yaml:"gust_chance"`       // Higher creates more gusts
	GustDurationMax int     `yaml:"gust_duration_max"` // Higher allows longer gusts
	GustMissChance  float64 `yaml:"gust_miss_chance"`  // Higher blows fewer petals
	GustStrengthMax int     `yaml:"gust_strength_max"` // Higher allows stronger gusts
}

// DriftConfig holds the continuous (drift) mode parameters.
type DriftConfig struct {
	Petals           int     `yaml:"petals"`             // Initial petal count
	StepsPerInterval int     `yaml:"steps_per_interval"` // Ticks per queued motion batch
	Motion           string  `yaml:"motion"`             // walk or drop
	DriftChance      float64 `yaml:"drift_chance"`       // Chance a drop refill is preceded by sideways drift
	DriftFramesMax   int     `yaml:"drift_frames_max"`   // Drift batch length is uniform in [0, max)
	MaxPetals        int     `yaml:"max_petals"`
}

// InputConfig holds button handling parameters.
type InputConfig struct {
	RepeatTicks  int        `yaml:"repeat_ticks"`  // Ticks between add/remove repeats while held
	MessageTicks int        `yaml:"message_ticks"` // Ticks a text message stays on screen
	GPIO         GPIOConfig `yaml:"gpio"`
}

// GPIOConfig maps logical buttons to pin names understood by gpioreg.ByName.
// Empty names disable the button.
type GPIOConfig struct {
	Brighter string `yaml:"brighter"`
	Dimmer   string `yaml:"dimmer"`
	Add      string `yaml:"add"`
	Remove   string `yaml:"remove"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TicksPerWindow int32  // Telemetry window length in ticks
	Rasterizer     string // Effective rasterizer after applying the mode default
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
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}

// Clone returns a copy that can be modified without affecting c.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ticks := int32(c.Telemetry.StatsWindow * float64(c.Field.FramesPerSecond))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerWindow = ticks

	c.Derived.Rasterizer = strings.ToLower(c.Field.Rasterizer)
	if c.Derived.Rasterizer == "" {
		if c.Field.Mode == ModeDrift {
			c.Derived.Rasterizer = RasterBilinear
		} else {
			c.Derived.Rasterizer = RasterExact
		}
	}
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
