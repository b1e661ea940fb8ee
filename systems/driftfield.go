package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/petals/components"
	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/renderer"
)

// DriftField is the continuous simulation: a flat population of drifters that
// never die, drawn with bilinear splats at the global brightness.
type DriftField struct {
	Drifters []components.Drifter

	edge             components.Edge
	motion           string
	stepsPerInterval int
	driftChance      float64
	driftFramesMax   int
	maxPetals        int

	raster renderer.Rasterizer
	scale  int
	rng    *rand.Rand

	ticks   int64
	spawned int
}

// NewDriftField builds a drift field from configuration with the initial petals
// placed uniformly over the grid.
func NewDriftField(cfg *config.Config, rng *rand.Rand) (*DriftField, error) {
	side, err := components.ParseSide(cfg.Field.Edge)
	if err != nil {
		return nil, fmt.Errorf("building drift field: %w", err)
	}
	dc := cfg.Drift
	d := &DriftField{
		Drifters:         make([]components.Drifter, 0, dc.Petals),
		edge:             components.NewEdge(side, cfg.Display.Width, cfg.Display.Height),
		motion:           dc.Motion,
		stepsPerInterval: dc.StepsPerInterval,
		driftChance:      dc.DriftChance,
		driftFramesMax:   dc.DriftFramesMax,
		maxPetals:        dc.MaxPetals,
		raster:           renderer.ByName(cfg.Derived.Rasterizer),
		scale:            cfg.Display.Brightness,
		rng:              rng,
	}
	for i := 0; i < dc.Petals; i++ {
		d.AddPetal()
	}
	return d, nil
}

// Step draws every drifter and then moves it one tick.
func (d *DriftField) Step(c renderer.Canvas) {
	for i := range d.Drifters {
		dr := &d.Drifters[i]
		d.raster.Draw(c, dr.X, dr.Y, d.scale)
	}
	for i := range d.Drifters {
		dr := &d.Drifters[i]
		if d.motion == config.MotionDrop {
			dr.Drop(d.rng, d.driftChance, d.driftFramesMax)
		} else {
			dr.Walk(d.rng)
		}
	}
	d.ticks++
}

// AddPetal places a new drifter at a random cell and returns the new count.
// The population is capped at the configured maximum.
func (d *DriftField) AddPetal() int {
	if d.maxPetals > 0 && len(d.Drifters) >= d.maxPetals {
		return len(d.Drifters)
	}
	x := float64(d.rng.Intn(d.edge.Width))
	y := float64(d.rng.Intn(d.edge.Height))
	d.Drifters = append(d.Drifters, components.NewDrifter(x, y, d.edge, d.stepsPerInterval, d.rng))
	d.spawned++
	return len(d.Drifters)
}

// RemovePetal removes the oldest drifter and returns the new count.
func (d *DriftField) RemovePetal() int {
	if len(d.Drifters) > 0 {
		copy(d.Drifters, d.Drifters[1:])
		d.Drifters = d.Drifters[:len(d.Drifters)-1]
	}
	return len(d.Drifters)
}

// Count returns the number of drifters.
func (d *DriftField) Count() int { return len(d.Drifters) }

// Brightnesses appends the global brightness once per drifter.
func (d *DriftField) Brightnesses(dst []float64) []float64 {
	for range d.Drifters {
		dst = append(dst, float64(d.scale))
	}
	return dst
}

// Stats returns the drift field counters. Drifters never fade or fall.
func (d *DriftField) Stats() Stats {
	n := len(d.Drifters)
	return Stats{
		Ticks:   d.ticks,
		Live:    n,
		Layers:  []LayerStats{{Live: n, LayerCounts: LayerCounts{Spawned: d.spawned}}},
		Spawned: d.spawned,
	}
}

// SetScale sets the global brightness scale (0..255).
func (d *DriftField) SetScale(scale int) { d.scale = scale }

// Scale returns the global brightness scale.
func (d *DriftField) Scale() int { return d.scale }
