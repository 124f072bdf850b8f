package main

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/world"
)

// sampleInterval is how often (in ticks) the population is sampled for
// the stability score.
const sampleInterval = 10

// warmupTicks are skipped before sampling so the founder population can
// settle into its dynamics.
const warmupTicks = 100

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	lastQuality float64 // quality from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int
	popSamples    []float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness rewards surviving the full run with a steady population:
// -(survivalTicks × (1 + 0.2 × quality)), where quality in (0,1] grows
// as the population's coefficient of variation shrinks.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	var totalFitness, totalQuality float64

	for _, seed := range fe.seeds {
		result := fe.runSimulation(x, seed)
		quality := stabilityQuality(result.popSamples)
		totalFitness += -float64(result.survivalTicks) * (1 + 0.2*quality)
		totalQuality += quality
	}

	n := float64(len(fe.seeds))
	fe.lastQuality = totalQuality / n
	return totalFitness / n
}

// runSimulation executes a single headless run until extinction or
// maxTicks, sampling the population along the way.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	rng := rand.New(rand.NewSource(seed))
	w, err := world.New(&cfg, rng)
	if err != nil {
		// Parameter vectors are clamped to valid ranges, so a rejected
		// config means the ParamSpec table itself is wrong.
		panic(err)
	}
	w = w.Populate()

	result := runResult{}
	for w.Generation < fe.maxTicks {
		if len(w.Creatures) == 0 {
			result.survivalTicks = w.Generation
			return result
		}
		if w.Generation >= warmupTicks && w.Generation%sampleInterval == 0 {
			result.popSamples = append(result.popSamples, float64(len(w.Creatures)))
		}
		w = w.NextStep()
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// stabilityQuality scores how steady the population stayed, in (0, 1].
// A flat population scores 1; heavy boom-bust cycles approach 0.
func stabilityQuality(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := stat.Mean(samples, nil)
	if mean <= 0 {
		return 0
	}
	cv := stat.PopStdDev(samples, nil) / mean
	if math.IsNaN(cv) {
		return 0
	}
	return 1 / (1 + cv)
}
