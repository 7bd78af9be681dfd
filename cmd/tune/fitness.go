package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/game"
	"github.com/pthm-cable/nebula/telemetry"
)

// Target describes the look a tuning run aims for.
type Target struct {
	LinksPerFrame float64 // Mean links drawn per frame
	LinkAlpha     float64 // Mean link opacity
}

// FitnessEvaluator runs headless simulations and scores how far the field's
// link density and opacity land from the target.
type FitnessEvaluator struct {
	params      *ParamVector
	target      Target
	ticks       int32
	warmup      int // windows skipped while the field fills
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu   sync.Mutex
	last evalResult // most recent Evaluate call
}

// evalResult holds the averaged measurements of one evaluation.
type evalResult struct {
	LinksMean float64
	LinkAlpha float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, target Target, ticks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		target:      target,
		ticks:       ticks,
		warmup:      2,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// Last returns the measurements from the most recent evaluation.
func (fe *FitnessEvaluator) Last() evalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	if !isFinite(x) {
		return math.Inf(1)
	}

	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]evalResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg evalResult
	for _, r := range results {
		avg.LinksMean += r.LinksMean
		avg.LinkAlpha += r.LinkAlpha
	}
	n := float64(len(results))
	avg.LinksMean /= n
	avg.LinkAlpha /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fe.computeFitness(avg)
}

// runSimulation executes a single headless run and averages the windows
// after warmup.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) evalResult {
	var windows []telemetry.WindowStats

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return evalResult{}
	}
	defer g.Unload()

	for g.Tick() < fe.ticks {
		g.UpdateHeadless()
	}

	return summarize(windows, fe.warmup)
}

// summarize averages link measurements over the windows after warmup.
func summarize(windows []telemetry.WindowStats, warmup int) evalResult {
	if len(windows) <= warmup {
		return evalResult{}
	}
	valid := windows[warmup:]

	var r evalResult
	for _, w := range valid {
		r.LinksMean += w.LinksMean
		r.LinkAlpha += w.LinkAlphaMean
	}
	r.LinksMean /= float64(len(valid))
	r.LinkAlpha /= float64(len(valid))
	return r
}

// copyConfig creates a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness is the squared relative error in link count plus the
// squared error in opacity.
func (fe *FitnessEvaluator) computeFitness(r evalResult) float64 {
	linkErr := 1.0
	if fe.target.LinksPerFrame > 0 {
		linkErr = r.LinksMean/fe.target.LinksPerFrame - 1
	}
	alphaErr := r.LinkAlpha - fe.target.LinkAlpha
	return linkErr*linkErr + alphaErr*alphaErr
}

// isFinite reports whether every value is a real number.
func isFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
