// Package game owns the display loop: it polls input, steps the simulation,
// presents frames and paces ticks.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/display"
	"github.com/pthm-cable/petals/input"
	"github.com/pthm-cable/petals/systems"
	"github.com/pthm-cable/petals/telemetry"
)

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed      int64  // RNG seed
	LogStats  bool   // Log window stats via slog
	OutputDir string // Directory for CSV logs and config snapshot ("" = disabled)
	MaxTicks  int32  // Stop Run after N ticks (0 = unlimited)

	// StatsCallback, when set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete loop state. It is owned by a single goroutine.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	sim    systems.Simulation
	sink   display.Sink
	texter display.Texter // nil if the sink cannot show text
	source input.Source

	// State
	tick     int32
	maxTicks int32
	skipped  int
	buttons  buttonState

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New builds the simulation selected by cfg and wires it to sink and source.
func New(cfg *config.Config, sink display.Sink, source input.Source, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	sim, err := systems.New(cfg, rng)
	if err != nil {
		return nil, err
	}
	if source == nil {
		source = input.None{}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		rng:           rng,
		sim:           sim,
		sink:          sink,
		source:        source,
		maxTicks:      opts.MaxTicks,
		buttons:       newButtonState(),
		collector:     telemetry.NewCollector(cfg.Derived.TicksPerWindow, 1/float64(cfg.Field.FramesPerSecond)),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if t, ok := sink.(display.Texter); ok {
		g.texter = t
	}

	slog.Info("game created",
		"mode", cfg.Field.Mode,
		"edge", cfg.Field.Edge,
		"rasterizer", cfg.Derived.Rasterizer,
		"width", cfg.Display.Width,
		"height", cfg.Display.Height,
		"petals", sim.Count(),
		"seed", opts.Seed,
	)
	return g, nil
}

// Step runs exactly one tick. It returns display.ErrClosed once the sink was
// closed by the user; an unavailable sink only skips the frame.
func (g *Game) Step() error {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput(g.source.Poll())

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	g.sink.BeginFrame()
	g.sink.Clear()
	g.sim.Step(g.sink)
	g.drawMessage()

	g.perfCollector.StartPhase(telemetry.PhasePresent)
	err := g.sink.Present()
	g.tick++
	switch {
	case err == nil:
	case errors.Is(err, display.ErrUnavailable):
		g.skipped++
		g.collector.RecordSkippedFrame()
		slog.Warn("frame skipped", "tick", g.tick, "error", err)
	case errors.Is(err, display.ErrClosed):
		g.perfCollector.EndTick()
		return err
	default:
		g.perfCollector.EndTick()
		return fmt.Errorf("presenting frame %d: %w", g.tick, err)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
	return nil
}

// Run steps the game at the configured frame rate until ctx is cancelled,
// the sink is closed or MaxTicks is reached.
func (g *Game) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(g.cfg.Field.FramesPerSecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := g.Step(); err != nil {
			if errors.Is(err, display.ErrClosed) {
				slog.Info("display closed", "tick", g.tick)
				return nil
			}
			return err
		}

		if g.maxTicks > 0 && g.tick >= g.maxTicks {
			slog.Info("max ticks reached", "tick", g.tick)
			return nil
		}

		select {
		case <-ctx.Done():
			slog.Info("shutting down", "tick", g.tick, "reason", context.Cause(ctx))
			return nil
		case <-ticker.C:
		}
	}
}

// Unload flushes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of ticks run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Skipped returns the number of frames the sink did not accept.
func (g *Game) Skipped() int {
	return g.skipped
}

// Simulation returns the simulation being displayed.
func (g *Game) Simulation() systems.Simulation {
	return g.sim
}

// Status is a snapshot of the loop for on-screen display.
type Status struct {
	Tick    int32
	Petals  int
	Scale   int
	Mode    string
	Message string
	Stats   systems.Stats
	Perf    telemetry.PerfStats
}

// Status returns the current loop snapshot.
func (g *Game) Status() Status {
	return Status{
		Tick:    g.tick,
		Petals:  g.sim.Count(),
		Scale:   g.sim.Scale(),
		Mode:    g.cfg.Field.Mode,
		Message: g.buttons.message,
		Stats:   g.sim.Stats(),
		Perf:    g.perfCollector.Stats(),
	}
}
