package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/petals/renderer"
	"github.com/pthm-cable/petals/systems"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Distribution
	}{
		{"empty slice", []float64{}, Distribution{}},
		{"single element", []float64{42}, Distribution{Mean: 42, P10: 42, P50: 42, P90: 42}},
		{"constant", []float64{7, 7, 7, 7}, Distribution{Mean: 7, P10: 7, P50: 7, P90: 7}},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
			Distribution{Mean: 5.5, Std: 3.02765, P10: 1, P50: 5, P90: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			check := func(name string, got, want float64) {
				if math.Abs(got-want) > 0.001 {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
			check("mean", got.Mean, tt.want.Mean)
			check("std", got.Std, tt.want.Std)
			check("p10", got.P10, tt.want.P10)
			check("p50", got.P50, tt.want.P50)
			check("p90", got.P90, tt.want.P90)
		})
	}
}

func TestSummarizeLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

// fakeSim reports fixed cumulative stats.
type fakeSim struct {
	stats  systems.Stats
	levels []float64
	scale  int
}

func (f *fakeSim) Step(c renderer.Canvas)               {}
func (f *fakeSim) AddPetal() int                        { return 0 }
func (f *fakeSim) RemovePetal() int                     { return 0 }
func (f *fakeSim) Count() int                           { return f.stats.Live }
func (f *fakeSim) Brightnesses(dst []float64) []float64 { return append(dst, f.levels...) }
func (f *fakeSim) Stats() systems.Stats                 { return f.stats }
func (f *fakeSim) SetScale(scale int)                   { f.scale = scale }
func (f *fakeSim) Scale() int                           { return f.scale }

func TestCollector_FlushReportsWindowDeltas(t *testing.T) {
	c := NewCollector(10, 0.1)
	sim := &fakeSim{scale: 200}

	if c.ShouldFlush(9) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("no flush at window end")
	}

	sim.stats = systems.Stats{Live: 4, Spawned: 10, Faded: 5, Fell: 1, Gusts: 3, Layers: []systems.LayerStats{
		{Band: systems.Band{Min: 10, Max: 73}, Live: 1, LayerCounts: systems.LayerCounts{Spawned: 4, Faded: 3}},
		{Band: systems.Band{Min: 74, Max: 136}, Live: 2, LayerCounts: systems.LayerCounts{Spawned: 4, Faded: 1, Fell: 1}},
		{Band: systems.Band{Min: 137, Max: 200}, Live: 1, LayerCounts: systems.LayerCounts{Spawned: 2, Faded: 1}},
	}}
	sim.levels = []float64{10, 20, 30, 40}
	c.RecordSkippedFrame()
	c.RecordAdjustment()
	c.RecordAdjustment()

	w := c.Flush(10, sim)
	if w.Spawned != 10 || w.Faded != 5 || w.Fell != 1 || w.Gusts != 3 {
		t.Errorf("first window = %+v", w)
	}
	if w.SkippedFrames != 1 || w.Adjustments != 2 || w.Scale != 200 {
		t.Errorf("first window loop counters = %+v", w)
	}
	if got := w.LayerLive(); w.Petals != 4 || len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 1 {
		t.Errorf("population = %d %v", w.Petals, got)
	}
	if l := w.Layers[1]; l.BandMin != 74 || l.BandMax != 136 || l.Spawned != 4 || l.Fell != 1 || l.WindowEndTick != 10 {
		t.Errorf("layer 1 = %+v", l)
	}
	if math.Abs(w.SimTimeSec-1.0) > 1e-9 || math.Abs(w.BrightnessMean-25) > 1e-9 {
		t.Errorf("sim_time = %v, mean = %v", w.SimTimeSec, w.BrightnessMean)
	}

	sim.stats = systems.Stats{Live: 2, Spawned: 12, Faded: 9, Fell: 1, Gusts: 3, Layers: []systems.LayerStats{
		{Band: systems.Band{Min: 10, Max: 73}, Live: 0, LayerCounts: systems.LayerCounts{Spawned: 4, Faded: 4}},
		{Band: systems.Band{Min: 74, Max: 136}, Live: 1, LayerCounts: systems.LayerCounts{Spawned: 5, Faded: 3, Fell: 1}},
		{Band: systems.Band{Min: 137, Max: 200}, Live: 1, LayerCounts: systems.LayerCounts{Spawned: 3, Faded: 2}},
	}}
	w = c.Flush(20, sim)
	if w.Spawned != 2 || w.Faded != 4 || w.Fell != 0 || w.Gusts != 0 {
		t.Errorf("second window = %+v", w)
	}
	wantLayers := []LayerWindow{
		{WindowEndTick: 20, Layer: 0, BandMin: 10, BandMax: 73, Live: 0, Spawned: 0, Faded: 1},
		{WindowEndTick: 20, Layer: 1, BandMin: 74, BandMax: 136, Live: 1, Spawned: 1, Faded: 2},
		{WindowEndTick: 20, Layer: 2, BandMin: 137, BandMax: 200, Live: 1, Spawned: 1, Faded: 1},
	}
	for i, want := range wantLayers {
		if w.Layers[i] != want {
			t.Errorf("layer %d = %+v, want %+v", i, w.Layers[i], want)
		}
	}
	if w.SkippedFrames != 0 || w.Adjustments != 0 || w.WindowStartTick != 10 {
		t.Errorf("counters not reset: %+v", w)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := int32(1); i <= 2; i++ {
		w := WindowStats{WindowEndTick: i * 10, Petals: int(i), Layers: []LayerWindow{
			{WindowEndTick: i * 10, Layer: 0, BandMin: 10, BandMax: 105, Live: int(i)},
			{WindowEndTick: i * 10, Layer: 1, BandMin: 106, BandMax: 200},
		}}
		if err := om.WriteWindow(w, PerfStats{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,petals") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.HasPrefix(lines[2], "window_end") {
		t.Error("header repeated")
	}
	if strings.Contains(lines[0], "layers") {
		t.Errorf("telemetry.csv carries layer data: %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "layers.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"window_end,layer,band_min,band_max,live,spawned,faded,fell",
		"10,0,10,105,1,0,0,0",
		"10,1,106,200,0,0,0,0",
		"20,0,10,105,2,0,0,0",
		"20,1,106,200,0,0,0,0",
	}
	if len(lines) != len(want) {
		t.Fatalf("layers.csv = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("layers.csv line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 3 {
		t.Errorf("perf.csv has %d lines, want header + 2 rows", n)
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("om = %v, err = %v", om, err)
	}
	// Nil manager is a no-op
	if err := om.WriteWindow(WindowStats{}, PerfStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}
