package genes

import (
	"math/rand"

	"github.com/pthm-cable/meadow/config"
)

// Mutate returns a new gene set with each gene independently mutated with
// probability params.Rate. Integer genes step by ±1 (±2 on a large
// mutation); continuous genes are scaled by 1 + U(-s, s) where s is the
// normal or large strength. Every result is clamped to its declared range.
func (g Genes) Mutate(rng *rand.Rand, params config.MutationConfig) Genes {
	return Genes{
		MoveCost:              MutateValue(rng, GeneMoveCost, g.MoveCost, params),
		VisionRange:           int(MutateValue(rng, GeneVisionRange, float64(g.VisionRange), params)),
		ReproductionThreshold: MutateValue(rng, GeneReproductionThreshold, g.ReproductionThreshold, params),
		Metabolism:            MutateValue(rng, GeneMetabolism, g.Metabolism, params),
		Speed:                 int(MutateValue(rng, GeneSpeed, float64(g.Speed), params)),
		MaxEnergy:             MutateValue(rng, GeneMaxEnergy, g.MaxEnergy, params),
		FoodEfficiency:        MutateValue(rng, GeneFoodEfficiency, g.FoodEfficiency, params),
	}
}

// MutateValue mutates a single gene value identified by name.
// An unknown name passes through unchanged; that never happens under
// correct wiring but must not fail.
func MutateValue(rng *rand.Rand, name string, value float64, params config.MutationConfig) float64 {
	if rng.Float64() >= params.Rate {
		return value
	}

	con, ok := Constraints[name]
	if !ok {
		return value
	}

	if con.Integer {
		return mutateInteger(rng, value, con, params)
	}
	return mutateContinuous(rng, value, con, params)
}

// mutateInteger applies a discrete step of ±1, or ±2 on a large mutation.
func mutateInteger(rng *rand.Rand, value float64, con Constraint, params config.MutationConfig) float64 {
	step := 1.0
	if rng.Float64() < params.LargeChance {
		step = 2.0
	}
	if rng.Intn(2) == 0 {
		step = -step
	}
	return clamp(value+step, con.Min, con.Max)
}

// mutateContinuous applies a multiplicative factor drawn around 1.
func mutateContinuous(rng *rand.Rand, value float64, con Constraint, params config.MutationConfig) float64 {
	strength := params.Strength
	if rng.Float64() < params.LargeChance {
		strength = params.LargeStrength
	}

	// Uniform draw in [-strength, strength)
	factor := 1.0 + (rng.Float64()*2-1)*strength
	return clamp(value*factor, con.Min, con.Max)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
