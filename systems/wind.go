package systems

import (
	"math/rand"

	"github.com/pthm-cable/petals/components"
)

// Wind is a two-state gust process. While a gust is blowing its strength is
// held constant, so consecutive ticks push petals coherently instead of jittering.
type Wind struct {
	edge components.Edge
	rng  *rand.Rand

	GustChance      float64 // Chance a gust decision is evaluated this tick
	GustDurationMax int     // Gust length is uniform in [0, max] evaluated ticks
	GustMissChance  float64 // Chance each petal is skipped by the current gust
	GustStrengthMax int     // Gust strength is uniform in [-max, max]

	remaining int
	strength  int

	gustsStarted int
}

// WindParams holds the tunable gust parameters.
type WindParams struct {
	GustChance      float64
	GustDurationMax int
	GustMissChance  float64
	GustStrengthMax int
}

// NewWind creates an idle wind blowing across the given edge.
func NewWind(edge components.Edge, params WindParams, rng *rand.Rand) *Wind {
	return &Wind{
		edge:            edge,
		rng:             rng,
		GustChance:      params.GustChance,
		GustDurationMax: params.GustDurationMax,
		GustMissChance:  params.GustMissChance,
		GustStrengthMax: params.GustStrengthMax,
	}
}

// Blow advances the gust process by one tick and pushes petals across the fall direction.
func (w *Wind) Blow(petals []components.Petal) {
	if w.rng.Float64() > w.GustChance {
		return
	}

	if w.remaining < 1 {
		w.remaining = w.rng.Intn(w.GustDurationMax + 1)
		w.strength = w.rng.Intn(2*w.GustStrengthMax+1) - w.GustStrengthMax
		w.gustsStarted++
	}

	dx, dy := w.edge.Perpendicular(w.strength)
	for i := range petals {
		if w.rng.Float64() < w.GustMissChance {
			continue
		}
		petals[i].Advance(dx, dy, w.edge)
	}

	// Gust slowly dies down
	w.remaining--
	if w.remaining < 0 {
		w.remaining = 0
	}
}

// Strength returns the current gust strength.
func (w *Wind) Strength() int { return w.strength }

// Remaining returns the evaluated ticks left in the current gust.
func (w *Wind) Remaining() int { return w.remaining }

// GustsStarted returns the number of gusts started so far.
func (w *Wind) GustsStarted() int { return w.gustsStarted }
