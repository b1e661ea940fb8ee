package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Petals int           `csv:"petals"`
	Layers []LayerWindow `csv:"-"` // Written to layers.csv, one row per layer

	// Events during window
	Spawned int `csv:"spawned"`
	Faded   int `csv:"faded"`
	Fell    int `csv:"fell"`
	Gusts   int `csv:"gusts"`

	// Loop health
	SkippedFrames int `csv:"skipped_frames"`
	Adjustments   int `csv:"adjustments"` // Button actions applied
	Scale         int `csv:"scale"`       // Global brightness at window end

	// Brightness distribution (sampled at window end)
	BrightnessMean float64 `csv:"brightness_mean"`
	BrightnessStd  float64 `csv:"brightness_std"`
	BrightnessP10  float64 `csv:"brightness_p10"`
	BrightnessP50  float64 `csv:"brightness_p50"`
	BrightnessP90  float64 `csv:"brightness_p90"`
}

// LayerWindow is one layer's share of a stats window.
type LayerWindow struct {
	WindowEndTick int32 `csv:"window_end"`
	Layer         int   `csv:"layer"`
	BandMin       int   `csv:"band_min"`
	BandMax       int   `csv:"band_max"`
	Live          int   `csv:"live"`
	Spawned       int   `csv:"spawned"`
	Faded         int   `csv:"faded"`
	Fell          int   `csv:"fell"`
}

// LayerLive returns the live petal count of each layer.
func (s WindowStats) LayerLive() []int {
	live := make([]int, len(s.Layers))
	for i, l := range s.Layers {
		live[i] = l.Live
	}
	return live
}

// Distribution summarizes a sample of values.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation and empirical percentiles.
// An empty sample yields all zeros; a single value has zero spread.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		P10: stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n == 1 {
		d.Mean = sorted[0]
		return d
	}
	d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("petals", s.Petals),
		slog.Any("layers", s.LayerLive()),
		slog.Int("spawned", s.Spawned),
		slog.Int("faded", s.Faded),
		slog.Int("fell", s.Fell),
		slog.Int("gusts", s.Gusts),
		slog.Int("skipped_frames", s.SkippedFrames),
		slog.Int("adjustments", s.Adjustments),
		slog.Int("scale", s.Scale),
		slog.Float64("brightness_mean", s.BrightnessMean),
		slog.Float64("brightness_std", s.BrightnessStd),
		slog.Float64("brightness_p10", s.BrightnessP10),
		slog.Float64("brightness_p50", s.BrightnessP50),
		slog.Float64("brightness_p90", s.BrightnessP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"petals", s.Petals,
		"layers", s.LayerLive(),
		"spawned", s.Spawned,
		"faded", s.Faded,
		"fell", s.Fell,
		"gusts", s.Gusts,
		"skipped_frames", s.SkippedFrames,
		"scale", s.Scale,
		"brightness_mean", s.BrightnessMean,
		"brightness_p50", s.BrightnessP50,
	)
}
