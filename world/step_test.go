package world

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/config"
)

// quietConfig turns off respawn and mutation noise so a single tick's
// energy accounting is exact.
func quietConfig(cfg *config.Config) {
	cfg.Season.Enabled = false
	cfg.Food.SpawnPerTick = 0
	cfg.Mutation.Rate = 0
}

func TestNextStepMoveEatAndBlockedMove(t *testing.T) {
	// Two creatures race for the same food cell on a 3x1 strip. The
	// first in processing order wins the cell and the food; the loser's
	// move resolves to zero steps and costs nothing.
	w := newTestWorld(t, 3, 1, 21, quietConfig)
	g := testGenes()
	g.Speed = 1
	g.VisionRange = 3
	g.MoveCost = 0.9
	g.Metabolism = 1.2
	g.FoodEfficiency = 1.0
	g.MaxEnergy = 200

	w.Creatures = []Creature{
		{ID: 0, X: 0, Y: 0, Energy: 50, Genes: g},
		{ID: 1, X: 2, Y: 0, Energy: 50, Genes: g},
	}
	w.Foods = []Food{{X: 1, Y: 0, Energy: 60}}

	next := w.NextStep()

	if len(next.Creatures) != 2 {
		t.Fatalf("creature count = %d, want 2", len(next.Creatures))
	}
	winner, loser := next.Creatures[0], next.Creatures[1]

	if winner.X != 1 || winner.Y != 0 {
		t.Errorf("winner at (%d,%d), want (1,0)", winner.X, winner.Y)
	}
	if loser.X != 2 || loser.Y != 0 {
		t.Errorf("loser at (%d,%d), want to stay at (2,0)", loser.X, loser.Y)
	}

	// Winner: 50 - 0.9 move + 60 food - 1.2 metabolism.
	if want := 50 - 0.9 + 60 - 1.2; math.Abs(winner.Energy-want) > 1e-9 {
		t.Errorf("winner energy = %v, want %v", winner.Energy, want)
	}
	// Loser never left its cell, so only metabolism applies.
	if want := 50 - 1.2; math.Abs(loser.Energy-want) > 1e-9 {
		t.Errorf("loser energy = %v, want %v", loser.Energy, want)
	}

	if len(next.Foods) != 0 {
		t.Errorf("eaten food still present: %v", next.Foods)
	}
	if winner.Age != 1 || loser.Age != 1 {
		t.Errorf("ages = %d, %d, want both 1", winner.Age, loser.Age)
	}
	if next.Generation != w.Generation+1 {
		t.Errorf("generation = %d, want %d", next.Generation, w.Generation+1)
	}
}

func TestNextStepChargesDeclaredSpeed(t *testing.T) {
	// Speed 3 toward food two cells away: the creature covers both cells
	// in one tick but is charged for three steps.
	w := newTestWorld(t, 10, 1, 22, quietConfig)
	g := testGenes()
	g.Speed = 3
	g.VisionRange = 5
	g.MoveCost = 0.5
	g.Metabolism = 1.0
	g.FoodEfficiency = 1.0

	w.Creatures = []Creature{{ID: 0, X: 0, Y: 0, Energy: 50, Genes: g}}
	w.Foods = []Food{{X: 2, Y: 0, Energy: 60}}

	next := w.NextStep()
	c := next.Creatures[0]

	// All three steps are free, so the creature overshoots the food cell
	// by one and does not eat this tick.
	if c.Y != 0 {
		t.Fatalf("creature left the strip: (%d,%d)", c.X, c.Y)
	}
	if c.X != 3 {
		t.Fatalf("creature at x=%d, want 3 (three steps at speed 3)", c.X)
	}
	if want := 50 - 0.5*3 - 1.0; math.Abs(c.Energy-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", c.Energy, want)
	}
	if len(next.Foods) != 1 {
		t.Errorf("food count = %d, want the stepped-over food to survive", len(next.Foods))
	}
}

func TestNextStepPartialMoveAtWall(t *testing.T) {
	// Speed 3 but only two cells of room before the wall: two steps
	// happen, and the full speed-3 cost is still charged.
	w := newTestWorld(t, 5, 1, 23, quietConfig)
	g := testGenes()
	g.Speed = 3
	g.VisionRange = 5
	g.MoveCost = 0.5
	g.Metabolism = 1.0

	w.Creatures = []Creature{{ID: 0, X: 2, Y: 0, Energy: 50, Genes: g}}
	w.Foods = []Food{{X: 4, Y: 0, Energy: 60}}

	next := w.NextStep()
	c := next.Creatures[0]

	if c.X != 4 {
		t.Fatalf("creature at x=%d, want 4 (stopped at the wall)", c.X)
	}
	if want := 50 - 0.5*3 + 60 - 1.0; math.Abs(c.Energy-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", c.Energy, want)
	}
}

func TestNextStepDeath(t *testing.T) {
	w := newTestWorld(t, 5, 5, 24, quietConfig)
	g := testGenes()
	g.Metabolism = 1.2

	w.Creatures = []Creature{{ID: 0, X: 2, Y: 2, Energy: 1.0, Genes: g}}

	next := w.NextStep()
	if len(next.Creatures) != 0 {
		t.Errorf("creature with energy below metabolism survived: %+v", next.Creatures)
	}
}

func TestNextStepReproduction(t *testing.T) {
	w := newTestWorld(t, 5, 5, 25, func(cfg *config.Config) {
		quietConfig(cfg)
		cfg.Reproduction.MinAge = 5
	})
	g := testGenes()
	g.MaxEnergy = 200
	g.Metabolism = 1.2

	parentGen := 3
	w.Creatures = []Creature{{ID: 0, X: 2, Y: 2, Energy: 160, Age: 6, Generation: parentGen, Genes: g}}
	w.NextCreatureID = 1

	next := w.NextStep()

	if len(next.Creatures) != 2 {
		t.Fatalf("creature count = %d, want parent and child", len(next.Creatures))
	}
	parent, child := next.Creatures[0], next.Creatures[1]

	if child.ID != 1 {
		t.Errorf("child id = %d, want 1", child.ID)
	}
	if next.NextCreatureID != 2 {
		t.Errorf("next id = %d, want 2", next.NextCreatureID)
	}
	if manhattan(parent.X, parent.Y, child.X, child.Y) != 1 {
		t.Errorf("child at (%d,%d) not adjacent to parent at (%d,%d)", child.X, child.Y, parent.X, parent.Y)
	}
	if child.Generation != parentGen+1 {
		t.Errorf("child generation = %d, want %d", child.Generation, parentGen+1)
	}

	// Each gets half of 160, then pays one tick of metabolism.
	if want := 80 - 1.2; math.Abs(parent.Energy-want) > 1e-9 || math.Abs(child.Energy-want) > 1e-9 {
		t.Errorf("energies = %v, %v, want both %v", parent.Energy, child.Energy, want)
	}
	if child.Age != 1 {
		t.Errorf("child age after its birth tick = %d, want 1", child.Age)
	}
	// Mutation rate is zero, so the child inherits unchanged genes.
	if child.Genes != parent.Genes {
		t.Errorf("child genes %+v differ from parent %+v with mutation off", child.Genes, parent.Genes)
	}
}

func TestNextStepReproductionBlocked(t *testing.T) {
	// Parent boxed in on all four sides keeps its energy and stays.
	w := newTestWorld(t, 5, 5, 26, func(cfg *config.Config) {
		quietConfig(cfg)
		cfg.Reproduction.MinAge = 0
	})
	g := testGenes()
	g.MaxEnergy = 200
	g.Metabolism = 1.2

	w.Creatures = []Creature{
		{ID: 0, X: 2, Y: 2, Energy: 160, Age: 9, Genes: g},
		{ID: 1, X: 1, Y: 2, Energy: 20, Genes: g},
		{ID: 2, X: 3, Y: 2, Energy: 20, Genes: g},
		{ID: 3, X: 2, Y: 1, Energy: 20, Genes: g},
		{ID: 4, X: 2, Y: 3, Energy: 20, Genes: g},
	}
	w.NextCreatureID = 5

	next := w.NextStep()

	if len(next.Creatures) != 5 {
		t.Fatalf("creature count = %d, want 5 (no birth)", len(next.Creatures))
	}
	parent := next.Creatures[0]
	if parent.X != 2 || parent.Y != 2 {
		t.Errorf("blocked parent moved to (%d,%d)", parent.X, parent.Y)
	}
	if want := 160 - 1.2; math.Abs(parent.Energy-want) > 1e-9 {
		t.Errorf("blocked parent energy = %v, want %v (no split)", parent.Energy, want)
	}
	if next.NextCreatureID != 5 {
		t.Errorf("next id = %d, want unchanged 5", next.NextCreatureID)
	}
}

// Long-run invariants: no shared cells, everything in bounds, food never
// exceeds its cap.
func TestNextStepInvariants(t *testing.T) {
	w := newTestWorld(t, 30, 20, 27, func(cfg *config.Config) {
		cfg.Population.Initial = 40
		cfg.Food.Initial = 20
	})
	w = w.Populate()

	for tick := 0; tick < 300; tick++ {
		w = w.NextStep()

		cells := make(map[Point]bool, len(w.Creatures))
		for _, c := range w.Creatures {
			if !w.InBounds(c.X, c.Y) {
				t.Fatalf("tick %d: creature %d out of bounds at (%d,%d)", tick, c.ID, c.X, c.Y)
			}
			p := Point{X: c.X, Y: c.Y}
			if cells[p] {
				t.Fatalf("tick %d: two creatures share cell %v", tick, p)
			}
			cells[p] = true

			if c.Energy <= 0 {
				t.Fatalf("tick %d: dead creature %d retained (energy %v)", tick, c.ID, c.Energy)
			}
			if err := c.Genes.Validate(); err != nil {
				t.Fatalf("tick %d: creature %d has invalid genes: %v", tick, c.ID, err)
			}
		}

		if len(w.Foods) > w.cfg.Food.Max {
			t.Fatalf("tick %d: food count %d exceeds cap %d", tick, len(w.Foods), w.cfg.Food.Max)
		}
		for _, f := range w.Foods {
			if !w.InBounds(f.X, f.Y) {
				t.Fatalf("tick %d: food out of bounds at (%d,%d)", tick, f.X, f.Y)
			}
		}

		if len(w.Creatures) == 0 {
			break
		}
	}
}
