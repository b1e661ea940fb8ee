package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/renderer"
)

// Simulation is a petal population the game loop can step and adjust.
type Simulation interface {
	Step(c renderer.Canvas)
	AddPetal() int
	RemovePetal() int
	Count() int
	Brightnesses(dst []float64) []float64
	Stats() Stats
	SetScale(scale int)
	Scale() int
}

// Stats holds cumulative counters and the current population of a simulation.
type Stats struct {
	Ticks   int64
	Live    int
	Layers  []LayerStats // One entry per layer; a single entry for drift mode
	Spawned int
	Faded   int
	Fell    int
	Gusts   int

	WindStrength int // Current gust strength pushing the leading layer
}

// LayerStats holds one layer's band, population and cumulative counters.
// Drift mode has no bands and reports a zero band.
type LayerStats struct {
	Band Band
	Live int
	LayerCounts
}

// LayerLive returns the live petal count of each layer.
func (s Stats) LayerLive() []int {
	live := make([]int, len(s.Layers))
	for i, l := range s.Layers {
		live[i] = l.Live
	}
	return live
}

// New builds the simulation selected by cfg.Field.Mode.
func New(cfg *config.Config, rng *rand.Rand) (Simulation, error) {
	switch cfg.Field.Mode {
	case config.ModeLayered:
		f, err := NewField(cfg, rng)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.ModeDrift:
		d, err := NewDriftField(cfg, rng)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown field mode %q", cfg.Field.Mode)
}
