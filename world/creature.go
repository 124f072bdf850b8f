package world

import (
	"math/rand"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/genes"
)

// Creature is an autonomous agent on the grid. All state transitions
// return a new value; a Creature is never mutated in place, which keeps
// the shared pre-tick world safe to read during action resolution.
type Creature struct {
	ID         int
	X, Y       int
	Energy     float64
	Age        int
	Generation int
	Genes      genes.Genes
}

// MoveTo returns the creature relocated to the given cell.
func (c Creature) MoveTo(x, y int) Creature {
	c.X = x
	c.Y = y
	return c
}

// Spend returns the creature with energy reduced by amount, floored at 0.
func (c Creature) Spend(amount float64) Creature {
	c.Energy -= amount
	if c.Energy < 0 {
		c.Energy = 0
	}
	return c
}

// ConsumeMetabolism returns the creature after paying its per-tick
// metabolic cost.
func (c Creature) ConsumeMetabolism() Creature {
	return c.Spend(c.Genes.Metabolism)
}

// Eat returns the creature after absorbing food energy, scaled by food
// efficiency and capped at the creature's energy capacity.
func (c Creature) Eat(foodEnergy float64) Creature {
	c.Energy += foodEnergy * c.Genes.FoodEfficiency
	if c.Energy > c.Genes.MaxEnergy {
		c.Energy = c.Genes.MaxEnergy
	}
	return c
}

// AgeOneTurn returns the creature one tick older.
func (c Creature) AgeOneTurn() Creature {
	c.Age++
	return c
}

// Alive reports whether the creature has energy left to survive.
func (c Creature) Alive() bool {
	return c.Energy > 0
}

// Reproduce splits the creature's energy 50/50 between parent and child.
// The child starts at the parent's cell with age 0, the next generation
// number, and a mutated copy of the parent's genes. Selection pressure
// comes from resource scarcity, not from a reproduction surcharge.
func (c Creature) Reproduce(childID int, rng *rand.Rand, params config.MutationConfig) (parent, child Creature) {
	half := c.Energy * 0.5

	parent = c
	parent.Energy = half

	child = Creature{
		ID:         childID,
		X:          c.X,
		Y:          c.Y,
		Energy:     half,
		Age:        0,
		Generation: c.Generation + 1,
		Genes:      c.Genes.Mutate(rng, params),
	}
	return parent, child
}
