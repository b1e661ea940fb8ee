package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/petals/config"
	"github.com/pthm-cable/petals/display"
	"github.com/pthm-cable/petals/game"
	"github.com/pthm-cable/petals/telemetry"
)

// Windows discarded while the field fills up from empty.
const warmupWindows = 2

// FitnessEvaluator runs headless displays and scores how close they stay to a
// target density.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     float64 // Desired live petals per LED

	mu          sync.Mutex
	lastDensity float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastDensity returns the mean density from the most recent evaluation.
func (fe *FitnessEvaluator) LastDensity() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDensity
}

// runResult holds the per-window petal densities of one run.
type runResult struct {
	densities []float64
	err       error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the squared relative density error plus the coefficient of
// variation across windows, so flat, on-target runs score best.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return math.Inf(1)
	}

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var all []float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		all = append(all, r.densities...)
	}
	if len(all) == 0 {
		return math.Inf(1)
	}

	mean, std := stat.MeanStdDev(all, nil)
	if len(all) < 2 {
		std = 0
	}

	fe.mu.Lock()
	fe.lastDensity = mean
	fe.mu.Unlock()

	return fitness(mean, std, fe.target)
}

func fitness(mean, std, target float64) float64 {
	rel := (mean - target) / target
	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}
	return rel*rel + cv
}

// runSimulation runs one seed to maxTicks on an in-memory display.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	cells := float64(cfg.Display.Width * cfg.Display.Height)
	sink := display.NewMemory(cfg.Display.Width, cfg.Display.Height)

	var res runResult
	windows := 0
	g, err := game.New(cfg, sink, nil, game.Options{
		Seed:     seed,
		MaxTicks: fe.maxTicks,
		StatsCallback: func(s telemetry.WindowStats) {
			windows++
			if windows > warmupWindows {
				res.densities = append(res.densities, float64(s.Petals)/cells)
			}
		},
	})
	if err != nil {
		return runResult{err: err}
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		if err := g.Step(); err != nil {
			return runResult{err: err}
		}
	}
	return res
}
