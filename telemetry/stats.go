// Package telemetry derives population statistics from world snapshots
// and records them for logging and CSV output. It only ever reads the
// world; nothing here feeds back into the simulation.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/world"
)

// Stats summarizes one world snapshot: population and food counts, mean
// and population standard deviation of energy, age, and every gene, and
// the spawn rate in effect. Deviations use the population formula
// (denominator n), matching how diversity is reported.
type Stats struct {
	Generation    int
	CreatureCount int
	FoodCount     int

	AvgEnergy float64
	StdEnergy float64
	AvgAge    float64
	StdAge    float64

	AvgMoveCost              float64
	StdMoveCost              float64
	AvgVisionRange           float64
	StdVisionRange           float64
	AvgReproductionThreshold float64
	StdReproductionThreshold float64
	AvgMetabolism            float64
	StdMetabolism            float64
	AvgSpeed                 float64
	StdSpeed                 float64
	AvgMaxEnergy             float64
	StdMaxEnergy             float64
	AvgFoodEfficiency        float64
	StdFoodEfficiency        float64

	SpawnRate float64
}

// FromWorld computes statistics for a world snapshot. An empty population
// yields zero means and deviations, never NaN.
func FromWorld(w world.World) Stats {
	s := Stats{
		Generation:    w.Generation,
		CreatureCount: len(w.Creatures),
		FoodCount:     len(w.Foods),
		SpawnRate:     w.CurrentSpawnRate(),
	}

	n := len(w.Creatures)
	if n == 0 {
		return s
	}

	energies := make([]float64, n)
	ages := make([]float64, n)
	moveCosts := make([]float64, n)
	visions := make([]float64, n)
	reproThresholds := make([]float64, n)
	metabolisms := make([]float64, n)
	speeds := make([]float64, n)
	maxEnergies := make([]float64, n)
	foodEffs := make([]float64, n)

	for i, c := range w.Creatures {
		energies[i] = c.Energy
		ages[i] = float64(c.Age)
		moveCosts[i] = c.Genes.MoveCost
		visions[i] = float64(c.Genes.VisionRange)
		reproThresholds[i] = c.Genes.ReproductionThreshold
		metabolisms[i] = c.Genes.Metabolism
		speeds[i] = float64(c.Genes.Speed)
		maxEnergies[i] = c.Genes.MaxEnergy
		foodEffs[i] = c.Genes.FoodEfficiency
	}

	s.AvgEnergy, s.StdEnergy = meanPopStd(energies)
	s.AvgAge, s.StdAge = meanPopStd(ages)
	s.AvgMoveCost, s.StdMoveCost = meanPopStd(moveCosts)
	s.AvgVisionRange, s.StdVisionRange = meanPopStd(visions)
	s.AvgReproductionThreshold, s.StdReproductionThreshold = meanPopStd(reproThresholds)
	s.AvgMetabolism, s.StdMetabolism = meanPopStd(metabolisms)
	s.AvgSpeed, s.StdSpeed = meanPopStd(speeds)
	s.AvgMaxEnergy, s.StdMaxEnergy = meanPopStd(maxEnergies)
	s.AvgFoodEfficiency, s.StdFoodEfficiency = meanPopStd(foodEffs)

	return s
}

func meanPopStd(values []float64) (mean, std float64) {
	return stat.Mean(values, nil), stat.PopStdDev(values, nil)
}

// Read-only accessors satisfying the Provider interface consumed by
// StatsHistory. History cares about a handful of series, not the whole
// snapshot.

// Tick returns the snapshot's generation counter.
func (s Stats) Tick() int { return s.Generation }

// Population returns the live creature count.
func (s Stats) Population() int { return s.CreatureCount }

// FoodItems returns the live food count.
func (s Stats) FoodItems() int { return s.FoodCount }

// MeanEnergy returns average creature energy.
func (s Stats) MeanEnergy() float64 { return s.AvgEnergy }

// MeanSpeed returns average speed gene value.
func (s Stats) MeanSpeed() float64 { return s.AvgSpeed }

// MeanVisionRange returns average vision range gene value.
func (s Stats) MeanVisionRange() float64 { return s.AvgVisionRange }

// MeanMaxEnergy returns average energy capacity gene value.
func (s Stats) MeanMaxEnergy() float64 { return s.AvgMaxEnergy }

// SpeedSpread returns population standard deviation of the speed gene.
func (s Stats) SpeedSpread() float64 { return s.StdSpeed }

// VisionSpread returns population standard deviation of the vision gene.
func (s Stats) VisionSpread() float64 { return s.StdVisionRange }

// FoodSpawnRate returns the spawn rate in effect for the snapshot's tick.
func (s Stats) FoodSpawnRate() float64 { return s.SpawnRate }
