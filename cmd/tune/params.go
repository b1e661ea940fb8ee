package main

import (
	"math"

	"github.com/pthm-cable/petals/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the layer parameter set searched by the tuner.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "bloom_chance", Path: "layers.bloom_chance", Min: 0, Max: 1, Default: 0.3},
			{Name: "petals_per_bloom_max", Path: "layers.petals_per_bloom_max", Min: 0, Max: 6, Default: 2, Integer: true},
			{Name: "petal_decay_rate_max", Path: "layers.petal_decay_rate_max", Min: 1, Max: 20, Default: 10, Integer: true},
			{Name: "petal_drift_chance", Path: "layers.petal_drift_chance", Min: 0, Max: 1, Default: 0.5},
			{Name: "decay_skip_chance", Path: "layers.decay_skip_chance", Min: 0, Max: 0.99, Default: 0.9},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Layers.BloomChance = clamped[0]
	cfg.Layers.PetalsPerBloomMax = int(clamped[1])
	cfg.Layers.PetalDecayRateMax = int(clamped[2])
	cfg.Layers.PetalDriftChance = clamped[3]
	cfg.Layers.DecaySkipChance = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Layers.BloomChance,
		float64(cfg.Layers.PetalsPerBloomMax),
		float64(cfg.Layers.PetalDecayRateMax),
		cfg.Layers.PetalDriftChance,
		cfg.Layers.DecaySkipChance,
	}
}
