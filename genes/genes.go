// Package genes defines heritable creature traits and their mutation.
package genes

import (
	"fmt"
	"math"

	"github.com/pthm-cable/meadow/config"
)

// Genes holds the heritable numeric traits of a creature.
type Genes struct {
	MoveCost              float64 // Energy per unit of declared speed when moving
	VisionRange           int     // Manhattan radius for spotting food
	ReproductionThreshold float64 // Retained and mutated; not read by the decision policy
	Metabolism            float64 // Energy drained every tick
	Speed                 int     // Cells moved per tick
	MaxEnergy             float64 // Energy storage capacity
	FoodEfficiency        float64 // Fraction of food energy absorbed
}

// Constraint declares the closed valid range of one gene.
type Constraint struct {
	Min     float64
	Max     float64
	Integer bool // Integer genes mutate in discrete steps
}

// Gene field names, used to look up constraints during mutation.
const (
	GeneMoveCost              = "move_cost"
	GeneVisionRange           = "vision_range"
	GeneReproductionThreshold = "reproduction_threshold"
	GeneMetabolism            = "metabolism"
	GeneSpeed                 = "speed"
	GeneMaxEnergy             = "max_energy"
	GeneFoodEfficiency        = "food_efficiency"
)

// Constraints is the single source of truth for valid gene ranges.
var Constraints = map[string]Constraint{
	GeneMoveCost:              {Min: 0.5, Max: 2.0},
	GeneVisionRange:           {Min: 1, Max: 10, Integer: true},
	GeneReproductionThreshold: {Min: 10.0, Max: math.Inf(1)},
	GeneMetabolism:            {Min: 0.8, Max: 2.0},
	GeneSpeed:                 {Min: 1, Max: 3, Integer: true},
	GeneMaxEnergy:             {Min: 100.0, Max: 300.0},
	GeneFoodEfficiency:        {Min: 0.7, Max: 1.3},
}

// FromConfig builds a founder gene set from configured defaults.
func FromConfig(gc config.GenesConfig) Genes {
	return Genes{
		MoveCost:              gc.MoveCost,
		VisionRange:           gc.VisionRange,
		ReproductionThreshold: gc.ReproductionThreshold,
		Metabolism:            gc.Metabolism,
		Speed:                 gc.Speed,
		MaxEnergy:             gc.MaxEnergy,
		FoodEfficiency:        gc.FoodEfficiency,
	}
}

// Validate checks every gene against its declared range.
// A failure here after mutation indicates a bug in the mutation engine's
// clamping, not a runtime condition to recover from.
func (g Genes) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{GeneMoveCost, g.MoveCost},
		{GeneVisionRange, float64(g.VisionRange)},
		{GeneReproductionThreshold, g.ReproductionThreshold},
		{GeneMetabolism, g.Metabolism},
		{GeneSpeed, float64(g.Speed)},
		{GeneMaxEnergy, g.MaxEnergy},
		{GeneFoodEfficiency, g.FoodEfficiency},
	}
	for _, c := range checks {
		con := Constraints[c.name]
		if c.value < con.Min || c.value > con.Max {
			return fmt.Errorf("gene %s value %v outside [%v, %v]", c.name, c.value, con.Min, con.Max)
		}
	}
	return nil
}
