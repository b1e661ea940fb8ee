package systems

import (
	"math/rand"

	"github.com/pthm-cable/petals/components"
	"github.com/pthm-cable/petals/renderer"
)

// LayerParams holds per-layer spawn and movement tuning.
type LayerParams struct {
	BloomChance       float64 // Chance per tick that the layer blooms
	PetalsPerBloomMax int     // Bloom size is uniform in [0, max]
	PetalDecayRateMax int     // Decay rate is uniform in [0, max]
	// PetalDriftChance is the chance a petal does NOT fall on a given tick
	// ("drifts in place"). Higher values mean slower petals.
	PetalDriftChance float64
	// DecaySkipChance is the chance a petal does not fade on a given tick,
	// so petals fade at staggered times instead of in lockstep.
	DecaySkipChance float64
}

// LayerCounts holds cumulative lifecycle counters for a layer.
type LayerCounts struct {
	Spawned int
	Faded   int // Removed at brightness 0
	Fell    int // Removed after leaving the grid
}

// Layer is a population of petals restricted to one brightness band.
// Petals are kept in spawn order.
type Layer struct {
	Band   Band
	Params LayerParams
	Petals []components.Petal

	edge   components.Edge
	rng    *rand.Rand
	counts LayerCounts
}

// NewLayer creates an empty layer spawning onto edge.
func NewLayer(band Band, params LayerParams, edge components.Edge, rng *rand.Rand) *Layer {
	return &Layer{
		Band:   band,
		Params: params,
		Petals: make([]components.Petal, 0, 32),
		edge:   edge,
		rng:    rng,
	}
}

// Bloom creates one petal on the spawn edge and appends it to the layer.
func (l *Layer) Bloom() components.Petal {
	xr, yr := l.edge.SpawnBounds()
	p := components.NewPetal(
		randInclusive(l.rng, xr.Min, xr.Max),
		randInclusive(l.rng, yr.Min, yr.Max),
		randInclusive(l.rng, l.Band.Min, l.Band.Max),
		randInclusive(l.rng, 0, l.Params.PetalDecayRateMax),
	)
	l.Add(p)
	return p
}

// Add appends an externally created petal.
func (l *Layer) Add(p components.Petal) {
	l.Petals = append(l.Petals, p)
	l.counts.Spawned++
}

// RemoveOldest removes the earliest spawned petal. Returns false if the layer is empty.
func (l *Layer) RemoveOldest() bool {
	if len(l.Petals) == 0 {
		return false
	}
	copy(l.Petals, l.Petals[1:])
	l.Petals = l.Petals[:len(l.Petals)-1]
	return true
}

// GenerateBlooms spawns [0, PetalsPerBloomMax] petals with probability BloomChance.
func (l *Layer) GenerateBlooms() int {
	if l.rng.Float64() >= l.Params.BloomChance {
		return 0
	}
	n := l.rng.Intn(l.Params.PetalsPerBloomMax + 1)
	for i := 0; i < n; i++ {
		l.Bloom()
	}
	return n
}

// DecayAll fades each petal unless it is skipped this tick.
func (l *Layer) DecayAll() {
	for i := range l.Petals {
		if l.rng.Float64() < l.Params.DecaySkipChance {
			continue
		}
		l.Petals[i].Decay()
	}
}

// DropAll applies one gravity step to each petal that is not drifting in place.
func (l *Layer) DropAll() {
	dx, dy := l.edge.Gravity()
	for i := range l.Petals {
		if l.rng.Float64() < l.Params.PetalDriftChance {
			continue
		}
		l.Petals[i].Advance(dx, dy, l.edge)
	}
}

// Cleanup removes dead petals in place, keeping spawn order.
func (l *Layer) Cleanup() int {
	alive := 0
	removed := 0
	for i := range l.Petals {
		p := &l.Petals[i]
		if !p.Alive() {
			if p.Brightness == 0 {
				l.counts.Faded++
			} else {
				l.counts.Fell++
			}
			removed++
			continue
		}
		l.Petals[alive] = l.Petals[i]
		alive++
	}
	l.Petals = l.Petals[:alive]
	return removed
}

// Render draws every live petal. A petal the rasterizer cannot place is marked dead.
func (l *Layer) Render(c renderer.Canvas, r renderer.Rasterizer, scale int) {
	for i := range l.Petals {
		p := &l.Petals[i]
		if !p.Alive() {
			continue
		}
		if !r.Draw(c, float64(p.X), float64(p.Y), renderer.Scale(p.Brightness, scale)) {
			p.Dead = true
		}
	}
}

// Len returns the number of petals, dead ones included until the next cleanup.
func (l *Layer) Len() int { return len(l.Petals) }

// Counts returns the cumulative lifecycle counters.
func (l *Layer) Counts() LayerCounts { return l.counts }

// randInclusive returns a uniform integer in [lo, hi].
func randInclusive(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
