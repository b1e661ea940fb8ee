package telemetry

import (
	"github.com/pthm-cable/petals/systems"
)

// Collector accumulates events within tick windows and produces WindowStats.
// Simulation counters are cumulative, so each window reports the difference
// from the previous flush.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32
	prev            systems.Stats

	// Event counters for current window
	skippedFrames int
	adjustments   int

	brightness []float64
}

// NewCollector creates a new stats collector.
// ticksPerWindow: window length in ticks
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(ticksPerWindow int32, dt float64) *Collector {
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSkippedFrame records a frame the sink did not accept.
func (c *Collector) RecordSkippedFrame() {
	c.skippedFrames++
}

// RecordAdjustment records a button action that changed the display.
func (c *Collector) RecordAdjustment() {
	c.adjustments++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the simulation's current state and resets
// counters for the next window.
func (c *Collector) Flush(currentTick int32, sim systems.Simulation) WindowStats {
	cur := sim.Stats()
	c.brightness = sim.Brightnesses(c.brightness[:0])
	dist := Summarize(c.brightness)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Petals: cur.Live,
		Layers: c.layerWindows(currentTick, cur),

		Spawned: cur.Spawned - c.prev.Spawned,
		Faded:   cur.Faded - c.prev.Faded,
		Fell:    cur.Fell - c.prev.Fell,
		Gusts:   cur.Gusts - c.prev.Gusts,

		SkippedFrames: c.skippedFrames,
		Adjustments:   c.adjustments,
		Scale:         sim.Scale(),

		BrightnessMean: dist.Mean,
		BrightnessStd:  dist.Std,
		BrightnessP10:  dist.P10,
		BrightnessP50:  dist.P50,
		BrightnessP90:  dist.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.prev = cur
	c.skippedFrames = 0
	c.adjustments = 0

	return stats
}

// layerWindows reports each layer's population and its counters since the last flush.
func (c *Collector) layerWindows(currentTick int32, cur systems.Stats) []LayerWindow {
	out := make([]LayerWindow, len(cur.Layers))
	for i, l := range cur.Layers {
		var prev systems.LayerStats
		if i < len(c.prev.Layers) {
			prev = c.prev.Layers[i]
		}
		out[i] = LayerWindow{
			WindowEndTick: currentTick,
			Layer:         i,
			BandMin:       l.Band.Min,
			BandMax:       l.Band.Max,
			Live:          l.Live,
			Spawned:       l.Spawned - prev.Spawned,
			Faded:         l.Faded - prev.Faded,
			Fell:          l.Fell - prev.Fell,
		}
	}
	return out
}
