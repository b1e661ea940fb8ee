package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Derived(t *testing.T) {
	cfg := Default()
	if cfg.Derived.TicksPerWindow != 100 {
		t.Errorf("ticks per window = %d, want 100", cfg.Derived.TicksPerWindow)
	}
	if cfg.Derived.Rasterizer != RasterExact {
		t.Errorf("rasterizer = %q, want %q for layered mode", cfg.Derived.Rasterizer, RasterExact)
	}
	if cfg.Display.I2C.Addr != 0x74 {
		t.Errorf("i2c addr = %#x", cfg.Display.I2C.Addr)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petals.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "field:\n  mode: drift\n  edge: left\nlayers:\n  count: 1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Field.Mode != ModeDrift || cfg.Field.Edge != "left" || cfg.Layers.Count != 1 {
		t.Errorf("overlay not applied: %+v %+v", cfg.Field, cfg.Layers)
	}
	// untouched keys keep their defaults
	if cfg.Display.Width != 17 || cfg.Wind.GustStrengthMax != 3 {
		t.Errorf("defaults lost: width=%d gust=%d", cfg.Display.Width, cfg.Wind.GustStrengthMax)
	}
	if cfg.Derived.Rasterizer != RasterBilinear {
		t.Errorf("rasterizer = %q, want drift default %q", cfg.Derived.Rasterizer, RasterBilinear)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"band inverted", func(c *Config) { c.Layers.BrightnessMin, c.Layers.BrightnessMax = 200, 10 }, "layers.brightness"},
		{"band outside byte", func(c *Config) { c.Layers.BrightnessMax = 300 }, "layers.brightness"},
		{"too many layers", func(c *Config) { c.Layers.BrightnessMin, c.Layers.BrightnessMax, c.Layers.Count = 10, 11, 3 }, "layers.count"},
		{"no layers", func(c *Config) { c.Layers.Count = 0 }, "layers.count"},
		{"probability", func(c *Config) { c.Wind.GustChance = 1.5 }, "wind.gust_chance"},
		{"negative max", func(c *Config) { c.Layers.PetalsPerBloomMax = -1 }, "layers.petals_per_bloom_max"},
		{"empty grid", func(c *Config) { c.Display.Width = 0 }, "display.width/height"},
		{"zero fps", func(c *Config) { c.Field.FramesPerSecond = 0 }, "field.frames_per_second"},
		{"unknown edge", func(c *Config) { c.Field.Edge = "diagonal" }, "field.edge"},
		{"unknown backend", func(c *Config) { c.Display.Backend = "hologram" }, "display.backend"},
		{"unknown rasterizer", func(c *Config) { c.Field.Rasterizer = "smooth" }, "field.rasterizer"},
		{"drift over max", func(c *Config) { c.Drift.Petals, c.Drift.MaxPetals = 20, 10 }, "drift.petals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default().Clone()
			tt.edit(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %v is not a ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

func TestValidate_JoinsAllProblems(t *testing.T) {
	cfg := Default().Clone()
	cfg.Field.Edge = "diagonal"
	cfg.Wind.GustMissChance = -1
	err := cfg.Validate()
	for _, field := range []string{"field.edge", "wind.gust_miss_chance"} {
		if err == nil || !strings.Contains(err.Error(), field) {
			t.Errorf("error %v missing %s", err, field)
		}
	}
}

func TestWriteYAML_Reloads(t *testing.T) {
	cfg := Default().Clone()
	cfg.Layers.BloomChance = 0.42
	cfg.Field.Edge = "right"

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Layers.BloomChance != 0.42 || back.Field.Edge != "right" {
		t.Errorf("reloaded %+v %+v", back.Layers, back.Field)
	}
}
