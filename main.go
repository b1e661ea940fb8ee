package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/display"
	"github.com/pthm-cable/petals/game"
	"github.com/pthm-cable/petals/input"
	"github.com/pthm-cable/petals/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", "", "Display backend: window, terminal, is31fl3731, headless (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Display.Backend = strings.ToLower(*backend)
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid backend", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal backend owns stdout, so logs go to stderr there
	logOut := os.Stdout
	if cfg.Display.Backend == config.BackendTerminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg, game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxTicks:  int32(*maxTicks),
	}); err != nil {
		slog.Error("display stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, quit func(), cfg *config.Config, opts game.Options) error {
	sink, source, err := openBackend(cfg, quit)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			slog.Error("failed to close display", "error", err)
		}
	}()

	g, err := game.New(cfg, sink, source, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	if w, ok := sink.(*display.Window); ok && cfg.Display.Window.ShowHUD {
		hud := ui.NewHUD(cfg.Wind.GustStrengthMax)
		w.Overlay = func() {
			st := g.Status()
			hud.Draw(ui.HUDData{
				Tick:         st.Tick,
				Petals:       st.Petals,
				Scale:        st.Scale,
				Mode:         st.Mode,
				Layers:       st.Stats.LayerLive(),
				WindStrength: st.Stats.WindStrength,
				FPS:          rl.GetFPS(),
				Message:      st.Message,
				ScreenWidth:  int32(rl.GetScreenWidth()),
				ScreenHeight: int32(rl.GetScreenHeight()),
			})
			hud.DrawControls(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), ui.ControlsText)
		}
	}

	slog.Info("starting display",
		"backend", cfg.Display.Backend,
		"seed", opts.Seed,
		"max_ticks", opts.MaxTicks,
		"fps", cfg.Field.FramesPerSecond,
	)
	return g.Run(ctx)
}

// openBackend creates the sink and input source selected by the config.
func openBackend(cfg *config.Config, quit func()) (display.Sink, input.Source, error) {
	w, h := cfg.Display.Width, cfg.Display.Height

	switch cfg.Display.Backend {
	case config.BackendWindow:
		cell := cfg.Display.Window.CellSize
		return display.NewWindow(w, h, cell, "Petals"), input.Keyboard{}, nil

	case config.BackendTerminal:
		// Terminals only report key presses, so hold each for a few ticks
		latch := input.NewLatch(32, max(cfg.Input.RepeatTicks, 1)+1)
		t, err := display.NewTerminal(w, h, latch, quit)
		if err != nil {
			return nil, nil, err
		}
		return t, latch, nil

	case config.BackendIS31FL3731:
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("initializing host drivers: %w", err)
		}
		bus, err := i2creg.Open(cfg.Display.I2C.Bus)
		if err != nil {
			return nil, nil, fmt.Errorf("opening i2c bus %q: %w", cfg.Display.I2C.Bus, err)
		}
		d, err := display.NewIS31FL3731(bus, cfg.Display.I2C.Addr, w, h)
		if err != nil {
			bus.Close()
			return nil, nil, err
		}
		buttons, err := input.NewGPIO(map[input.Button]string{
			input.Brighter: cfg.Input.GPIO.Brighter,
			input.Dimmer:   cfg.Input.GPIO.Dimmer,
			input.Add:      cfg.Input.GPIO.Add,
			input.Remove:   cfg.Input.GPIO.Remove,
		})
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		slog.Info("led driver ready", "bus", bus.String(), "addr", cfg.Display.I2C.Addr, "buttons", buttons.Len())
		return d, buttons, nil

	case config.BackendHeadless:
		return display.NewMemory(w, h), input.None{}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Display.Backend)
}
