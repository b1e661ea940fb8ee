package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/petals/components"
	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/renderer"
)

// Field is the layered discrete simulation. Layer 0 is the leading layer: it
// is the only one pushed by the wind and the one the add/remove buttons act on.
type Field struct {
	Layers []*Layer
	Wind   *Wind

	raster renderer.Rasterizer
	scale  int
	ticks  int64
}

// NewField builds a layered field from configuration and blooms each layer once.
func NewField(cfg *config.Config, rng *rand.Rand) (*Field, error) {
	side, err := components.ParseSide(cfg.Field.Edge)
	if err != nil {
		return nil, fmt.Errorf("building field: %w", err)
	}
	lc := cfg.Layers
	bands, err := NewBands(lc.BrightnessMin, lc.BrightnessMax, lc.Count)
	if err != nil {
		return nil, fmt.Errorf("building field: %w", err)
	}

	edge := components.NewEdge(side, cfg.Display.Width, cfg.Display.Height)
	params := LayerParams{
		BloomChance:       lc.BloomChance,
		PetalsPerBloomMax: lc.PetalsPerBloomMax,
		PetalDecayRateMax: lc.PetalDecayRateMax,
		PetalDriftChance:  lc.PetalDriftChance,
		DecaySkipChance:   lc.DecaySkipChance,
	}
	wind := NewWind(edge, WindParams{
		GustChance:      cfg.Wind.GustChance,
		GustDurationMax: cfg.Wind.GustDurationMax,
		GustMissChance:  cfg.Wind.GustMissChance,
		GustStrengthMax: cfg.Wind.GustStrengthMax,
	}, rng)

	f := &Field{
		Layers: make([]*Layer, len(bands)),
		Wind:   wind,
		raster: renderer.ByName(cfg.Derived.Rasterizer),
		scale:  cfg.Display.Brightness,
	}
	for i, b := range bands {
		f.Layers[i] = NewLayer(b, params, edge, rng)
		f.Layers[i].GenerateBlooms()
	}
	return f, nil
}

// Step runs one tick: every layer is drawn, faded, dropped, compacted and
// re-bloomed in order, then the wind blows the leading layer.
func (f *Field) Step(c renderer.Canvas) {
	for _, l := range f.Layers {
		l.Render(c, f.raster, f.scale)
		advanceLayer(l)
	}
	f.blow()
}

// Render draws every layer without advancing the simulation.
func (f *Field) Render(c renderer.Canvas) {
	for _, l := range f.Layers {
		l.Render(c, f.raster, f.scale)
	}
}

// Advance runs the simulation half of Step without drawing.
func (f *Field) Advance() {
	for _, l := range f.Layers {
		advanceLayer(l)
	}
	f.blow()
}

func advanceLayer(l *Layer) {
	l.DecayAll()
	l.DropAll()
	l.Cleanup()
	l.GenerateBlooms()
}

func (f *Field) blow() {
	if len(f.Layers) > 0 {
		f.Wind.Blow(f.Layers[0].Petals)
	}
	f.ticks++
}

// AddPetal blooms one petal into the leading layer and returns the new total.
func (f *Field) AddPetal() int {
	f.Layers[0].Bloom()
	return f.Count()
}

// RemovePetal removes the oldest petal of the leading layer and returns the new total.
func (f *Field) RemovePetal() int {
	f.Layers[0].RemoveOldest()
	return f.Count()
}

// Count returns the number of petals across all layers.
func (f *Field) Count() int {
	n := 0
	for _, l := range f.Layers {
		n += l.Len()
	}
	return n
}

// Brightnesses appends the brightness of every live petal to dst.
func (f *Field) Brightnesses(dst []float64) []float64 {
	for _, l := range f.Layers {
		for i := range l.Petals {
			if l.Petals[i].Alive() {
				dst = append(dst, float64(l.Petals[i].Brightness))
			}
		}
	}
	return dst
}

// Stats returns cumulative counters and the current population.
func (f *Field) Stats() Stats {
	s := Stats{
		Ticks:  f.ticks,
		Layers: make([]LayerStats, len(f.Layers)),
		Gusts:  f.Wind.GustsStarted(),

		WindStrength: f.Wind.Strength(),
	}
	for i, l := range f.Layers {
		c := l.Counts()
		s.Layers[i] = LayerStats{Band: l.Band, Live: l.Len(), LayerCounts: c}
		s.Live += l.Len()
		s.Spawned += c.Spawned
		s.Faded += c.Faded
		s.Fell += c.Fell
	}
	return s
}

// SetScale sets the global brightness scale (0..255).
func (f *Field) SetScale(scale int) { f.scale = scale }

// Scale returns the global brightness scale.
func (f *Field) Scale() int { return f.scale }
