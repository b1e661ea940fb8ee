package config

import (
	"errors"
	"fmt"
)

// Field modes.
const (
	ModeLayered = "layered"
	ModeDrift   = "drift"
)

// Rasterizer names.
const (
	RasterExact    = "exact"
	RasterBilinear = "bilinear"
)

// Display backends.
const (
	BackendWindow     = "window"
	BackendTerminal   = "terminal"
	BackendIS31FL3731 = "is31fl3731"
	BackendHeadless   = "headless"
)

// Drift motions.
const (
	MotionWalk = "walk"
	MotionDrop = "drop"
)

// ValidationError reports a configuration value that cannot produce a working display.
// It is fatal at startup.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(e *ValidationError) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	d := c.Display
	switch d.Backend {
	case BackendWindow, BackendTerminal, BackendIS31FL3731, BackendHeadless:
	default:
		add(invalid("display.backend", "unknown backend %q", d.Backend))
	}
	if d.Width < 1 || d.Height < 1 {
		add(invalid("display.width/height", "grid must be at least 1x1, got %dx%d", d.Width, d.Height))
	}
	if d.BrightnessMax < 1 || d.BrightnessMax > 255 {
		add(invalid("display.brightness_max", "must be in [1, 255], got %d", d.BrightnessMax))
	}
	if d.Brightness < 0 || d.Brightness > d.BrightnessMax {
		add(invalid("display.brightness", "must be in [0, %d], got %d", d.BrightnessMax, d.Brightness))
	}

	f := c.Field
	switch f.Mode {
	case ModeLayered, ModeDrift:
	default:
		add(invalid("field.mode", "unknown mode %q", f.Mode))
	}
	if f.FramesPerSecond < 1 {
		add(invalid("field.frames_per_second", "must be at least 1, got %d", f.FramesPerSecond))
	}
	switch f.Edge {
	case "top", "bottom", "left", "right":
	default:
		add(invalid("field.edge", "unknown edge %q", f.Edge))
	}
	switch f.Rasterizer {
	case "", RasterExact, RasterBilinear:
	default:
		add(invalid("field.rasterizer", "unknown rasterizer %q", f.Rasterizer))
	}

	l := c.Layers
	if l.Count < 1 {
		add(invalid("layers.count", "must be at least 1, got %d", l.Count))
	}
	if l.BrightnessMin < 0 || l.BrightnessMax > 255 {
		add(invalid("layers.brightness", "band edges must be within [0, 255], got [%d, %d]", l.BrightnessMin, l.BrightnessMax))
	}
	if l.BrightnessMin > l.BrightnessMax {
		add(invalid("layers.brightness", "brightness_min %d > brightness_max %d", l.BrightnessMin, l.BrightnessMax))
	} else if l.Count >= 1 && l.BrightnessMax-l.BrightnessMin+1 < l.Count {
		add(invalid("layers.count", "%d layers cannot split the %d brightness values in [%d, %d]",
			l.Count, l.BrightnessMax-l.BrightnessMin+1, l.BrightnessMin, l.BrightnessMax))
	}
	add(probability("layers.bloom_chance", l.BloomChance))
	add(probability("layers.petal_drift_chance", l.PetalDriftChance))
	add(probability("layers.decay_skip_chance", l.DecaySkipChance))
	if l.PetalsPerBloomMax < 0 {
		add(invalid("layers.petals_per_bloom_max", "must not be negative, got %d", l.PetalsPerBloomMax))
	}
	if l.PetalDecayRateMax < 0 {
		add(invalid("layers.petal_decay_rate_max", "must not be negative, got %d", l.PetalDecayRateMax))
	}

	w := c.Wind
	add(probability("wind.gust_chance", w.GustChance))
	add(probability("wind.gust_miss_chance", w.GustMissChance))
	if w.GustDurationMax < 0 {
		add(invalid("wind.gust_duration_max", "must not be negative, got %d", w.GustDurationMax))
	}
	if w.GustStrengthMax < 0 {
		add(invalid("wind.gust_strength_max", "must not be negative, got %d", w.GustStrengthMax))
	}

	dr := c.Drift
	if dr.StepsPerInterval < 1 {
		add(invalid("drift.steps_per_interval", "must be at least 1, got %d", dr.StepsPerInterval))
	}
	switch dr.Motion {
	case MotionWalk, MotionDrop:
	default:
		add(invalid("drift.motion", "unknown motion %q", dr.Motion))
	}
	add(probability("drift.drift_chance", dr.DriftChance))
	if dr.DriftFramesMax < 1 {
		add(invalid("drift.drift_frames_max", "must be at least 1, got %d", dr.DriftFramesMax))
	}
	if dr.Petals < 0 || dr.MaxPetals < dr.Petals {
		add(invalid("drift.petals", "need 0 <= petals <= max_petals, got %d and %d", dr.Petals, dr.MaxPetals))
	}

	if c.Input.RepeatTicks < 1 {
		add(invalid("input.repeat_ticks", "must be at least 1, got %d", c.Input.RepeatTicks))
	}
	if c.Input.MessageTicks < 0 {
		add(invalid("input.message_ticks", "must not be negative, got %d", c.Input.MessageTicks))
	}
	if c.Telemetry.StatsWindow <= 0 {
		add(invalid("telemetry.stats_window", "must be positive, got %v", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

func probability(field string, p float64) *ValidationError {
	if p < 0 || p > 1 {
		return invalid(field, "probability must be in [0, 1], got %v", p)
	}
	return nil
}
