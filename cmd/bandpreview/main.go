// Band preview tool - run the layered field with live parameter sliders.
// The band sliders rebuild the field; the rest retune it in place.
//
// Usage: go run ./cmd/bandpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/display"
	"github.com/pthm-cable/petals/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	cellSize     = 28
	panelX       = 520
	sliderWidth  = 300
)

// slider binds one config value to a raygui slider. Changing a rebuild
// slider re-splits the bands, so it needs a fresh field.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.Config) float32
	set      func(*config.Config, float32)
	rebuild  bool
}

var sliders = []slider{
	{"Layer count", 1, 5, "%.0f",
		func(c *config.Config) float32 { return float32(c.Layers.Count) },
		func(c *config.Config, v float32) { c.Layers.Count = int(v) }, true},
	{"Band brightness min", 0, 255, "%.0f",
		func(c *config.Config) float32 { return float32(c.Layers.BrightnessMin) },
		func(c *config.Config, v float32) { c.Layers.BrightnessMin = int(v) }, true},
	{"Band brightness max", 0, 255, "%.0f",
		func(c *config.Config) float32 { return float32(c.Layers.BrightnessMax) },
		func(c *config.Config, v float32) { c.Layers.BrightnessMax = int(v) }, true},
	{"Bloom chance", 0, 1, "%.2f",
		func(c *config.Config) float32 { return float32(c.Layers.BloomChance) },
		func(c *config.Config, v float32) { c.Layers.BloomChance = float64(v) }, false},
	{"Petals per bloom max", 0, 10, "%.0f",
		func(c *config.Config) float32 { return float32(c.Layers.PetalsPerBloomMax) },
		func(c *config.Config, v float32) { c.Layers.PetalsPerBloomMax = int(v) }, false},
	{"Petal decay rate max", 1, 20, "%.0f",
		func(c *config.Config) float32 { return float32(c.Layers.PetalDecayRateMax) },
		func(c *config.Config, v float32) { c.Layers.PetalDecayRateMax = max(int(v), 1) }, false},
	{"Petal drift chance", 0, 1, "%.2f",
		func(c *config.Config) float32 { return float32(c.Layers.PetalDriftChance) },
		func(c *config.Config, v float32) { c.Layers.PetalDriftChance = float64(v) }, false},
	{"Decay skip chance", 0, 1, "%.2f",
		func(c *config.Config) float32 { return float32(c.Layers.DecaySkipChance) },
		func(c *config.Config, v float32) { c.Layers.DecaySkipChance = float64(v) }, false},
	{"Gust chance", 0, 1, "%.2f",
		func(c *config.Config) float32 { return float32(c.Wind.GustChance) },
		func(c *config.Config, v float32) { c.Wind.GustChance = float64(v) }, false},
	{"Gust strength max", 0, 3, "%.0f",
		func(c *config.Config) float32 { return float32(c.Wind.GustStrengthMax) },
		func(c *config.Config, v float32) { c.Wind.GustStrengthMax = int(v) }, false},
	{"Brightness", 0, 255, "%.0f",
		func(c *config.Config) float32 { return float32(c.Display.Brightness) },
		func(c *config.Config, v float32) { c.Display.Brightness = int(v) }, false},
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if not specified)")
	out := flag.String("out", "petals.yaml", "Where Save writes the tuned config")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Field.Mode = config.ModeLayered

	rng := rand.New(rand.NewSource(*seed))
	field, err := systems.NewField(cfg, rng)
	if err != nil {
		slog.Error("failed to create field", "error", err)
		os.Exit(1)
	}
	mem := display.NewMemory(cfg.Display.Width, cfg.Display.Height)

	rl.InitWindow(windowWidth, windowHeight, "Petal Band Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Field.FramesPerSecond))

	paused := false
	status := ""

	for !rl.WindowShouldClose() {
		mem.Clear()
		if paused {
			field.Render(mem)
		} else {
			field.Step(mem)
		}
		mem.Present()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawGrid(mem, 10, 10)
		drawStats(field, 15, int32(cfg.Display.Height*cellSize+25))

		// Control panel
		y := float32(10)
		rl.DrawText("Layer Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		changed, rebuild := false, false
		for _, s := range sliders {
			rl.DrawText(s.label, panelX, int32(y), 14, rl.Gray)
			y += 18
			cur := s.get(cfg)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: y, Width: sliderWidth, Height: 20},
				fmt.Sprintf(s.format, s.min), fmt.Sprintf(s.format, s.max),
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), panelX+sliderWidth+40, int32(y+2), 16, rl.DarkGray)
			if next != cur {
				s.set(cfg, next)
				changed = true
				rebuild = rebuild || s.rebuild
			}
			y += 30
		}
		if rebuild {
			// Invalid bands keep the previous field running
			if f, err := systems.NewField(cfg, rng); err == nil {
				field = f
				status = ""
			} else {
				status = err.Error()
			}
		} else if changed {
			apply(field, cfg)
			status = ""
		}

		// Buttons
		y += 5
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset") {
			if f, err := systems.NewField(cfg, rng); err == nil {
				field = f
			} else {
				status = err.Error()
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: y, Width: 120, Height: 30}, "Save") {
			status = save(cfg, *out)
		}
		if paused && gui.Button(rl.Rectangle{X: panelX + 390, Y: y, Width: 60, Height: 30}, "Step") {
			field.Advance()
		}
		if status != "" {
			rl.DrawText(status, panelX, int32(y+40), 14, rl.DarkGray)
		}

		rl.EndDrawing()
	}
}

// apply pushes slider values into the running field.
func apply(field *systems.Field, cfg *config.Config) {
	for _, l := range field.Layers {
		l.Params = systems.LayerParams{
			BloomChance:       cfg.Layers.BloomChance,
			PetalsPerBloomMax: cfg.Layers.PetalsPerBloomMax,
			PetalDecayRateMax: cfg.Layers.PetalDecayRateMax,
			PetalDriftChance:  cfg.Layers.PetalDriftChance,
			DecaySkipChance:   cfg.Layers.DecaySkipChance,
		}
	}
	field.Wind.GustChance = cfg.Wind.GustChance
	field.Wind.GustStrengthMax = cfg.Wind.GustStrengthMax
	field.SetScale(cfg.Display.Brightness)
}

func save(cfg *config.Config, path string) string {
	if err := cfg.Validate(); err != nil {
		return err.Error()
	}
	if err := cfg.WriteYAML(path); err != nil {
		return err.Error()
	}
	return "saved " + path
}

func drawGrid(mem *display.Memory, x0, y0 int32) {
	w, h := mem.Size()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			x := x0 + int32(col)*cellSize
			y := y0 + int32(row)*cellSize
			rl.DrawRectangle(x+2, y+2, cellSize-4, cellSize-4, levelColor(mem.At(col, row)))
		}
	}
	rl.DrawRectangleLines(x0, y0, int32(w)*cellSize, int32(h)*cellSize, rl.DarkGray)
}

func drawStats(field *systems.Field, x, y int32) {
	st := field.Stats()
	rl.DrawText(fmt.Sprintf("Tick: %d  Petals: %d  Gust: %+d", st.Ticks, st.Live, st.WindStrength), x, y, 16, rl.DarkGray)
	y += 22
	for i, l := range field.Layers {
		c := l.Counts()
		rl.DrawText(
			fmt.Sprintf("Layer %d [%d, %d]: %d live  %d spawned  %d faded  %d fell",
				i, l.Band.Min, l.Band.Max, l.Len(), c.Spawned, c.Faded, c.Fell),
			x, y, 14, rl.Gray,
		)
		y += 18
	}
}

func levelColor(level int) rl.Color {
	l := uint8(min(max(level, 0), 255))
	return rl.Color{R: l, G: l, B: l, A: 255}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
