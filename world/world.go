// Package world implements the grid world state-transition engine:
// creatures, food, the per-tick behavior policy, and the NextStep
// transition that resolves movement, reproduction, feeding, death, and
// food respawn into a new consistent world state.
package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/genes"
)

// spawnAttempts bounds the placement retries for one food item.
const spawnAttempts = 20

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// World holds the full simulation state for one tick. NextStep consumes
// one World and produces a new, independent one; the cluster list and the
// random source are the only mutable context carried across ticks.
type World struct {
	Width, Height  int
	Creatures      []Creature
	Foods          []Food
	Generation     int
	NextCreatureID int
	Clusters       []Point

	cfg *config.Config
	rng *rand.Rand
}

// New creates an empty world from a validated configuration and a single
// pseudorandom source. All randomness (direction shuffles, mutation
// draws, food placement) is drawn from rng, so seeding it makes a run
// deterministic.
func New(cfg *config.Config, rng *rand.Rand) (World, error) {
	if err := cfg.Validate(); err != nil {
		return World{}, fmt.Errorf("invalid world config: %w", err)
	}

	w := World{
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
		cfg:    cfg,
		rng:    rng,
	}
	w.InitializeClusters()
	return w, nil
}

// Config returns the configuration the world was constructed with.
func (w World) Config() *config.Config {
	return w.cfg
}

// InBounds reports whether a cell lies inside the grid.
func (w World) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// CreatureAt returns the creature occupying a cell, if any.
func (w World) CreatureAt(x, y int) (Creature, bool) {
	for _, c := range w.Creatures {
		if c.X == x && c.Y == y {
			return c, true
		}
	}
	return Creature{}, false
}

// InitializeClusters places the configured number of cluster centers at
// uniformly random cells.
func (w *World) InitializeClusters() {
	clusters := make([]Point, w.cfg.Clusters.Count)
	for i := range clusters {
		clusters[i] = Point{X: w.rng.Intn(w.Width), Y: w.rng.Intn(w.Height)}
	}
	w.Clusters = clusters
}

// maybeMoveClusters relocates one random cluster center every
// MoveInterval ticks, modelling slowly shifting environmental niches.
func (w World) maybeMoveClusters() {
	interval := w.cfg.Clusters.MoveInterval
	if interval <= 0 || w.Generation == 0 || w.Generation%interval != 0 {
		return
	}
	if len(w.Clusters) == 0 {
		return
	}
	idx := w.rng.Intn(len(w.Clusters))
	w.Clusters[idx] = Point{X: w.rng.Intn(w.Width), Y: w.rng.Intn(w.Height)}
}

// SpawnNearCluster tries to place one food item near a random cluster
// center, drawing an exponentially distributed radial distance and a
// uniform angle. Cells holding a creature or existing food are rejected.
// Failure within the attempt budget is a silent miss, never an error.
func (w World) SpawnNearCluster(occupied, foodPos map[Point]bool) (Food, bool) {
	if len(w.Clusters) == 0 {
		return Food{}, false
	}

	center := w.Clusters[w.rng.Intn(len(w.Clusters))]

	for i := 0; i < spawnAttempts; i++ {
		// ExpFloat64 has mean 1; dividing by the spread rate gives the
		// exponential distribution with mean 1/spread.
		distance := w.rng.ExpFloat64() / w.cfg.Clusters.Spread
		angle := w.rng.Float64() * 2 * math.Pi

		fx := center.X + int(distance*math.Cos(angle))
		fy := center.Y + int(distance*math.Sin(angle))

		fx = clampInt(fx, 0, w.Width-1)
		fy = clampInt(fy, 0, w.Height-1)

		p := Point{X: fx, Y: fy}
		if !occupied[p] && !foodPos[p] {
			return Food{X: fx, Y: fy, Energy: w.cfg.Food.Energy}, true
		}
	}

	return Food{}, false
}

// CurrentSpawnRate returns the food spawn rate for the current tick.
// With seasons disabled it is the fixed configured rate; otherwise it
// follows a sinusoid over the season cycle, oscillating between the
// configured minimum and maximum.
func (w World) CurrentSpawnRate() float64 {
	s := w.cfg.Season
	if !s.Enabled {
		return w.cfg.Food.SpawnPerTick
	}

	phase := float64(w.Generation%s.CycleLength) / float64(s.CycleLength)
	base := (s.MinSpawnRate + s.MaxSpawnRate) / 2
	amplitude := (s.MaxSpawnRate - s.MinSpawnRate) / 2
	return base + amplitude*math.Sin(2*math.Pi*phase)
}

// Populate places the configured founder creatures on distinct random
// cells and seeds the initial food supply near the cluster centers.
func (w World) Populate() World {
	defaults := genes.FromConfig(w.cfg.Genes)

	creatures := make([]Creature, 0, w.cfg.Population.Initial)
	occupied := make(map[Point]bool, w.cfg.Population.Initial)
	nextID := w.NextCreatureID

	for len(creatures) < w.cfg.Population.Initial {
		p := Point{X: w.rng.Intn(w.Width), Y: w.rng.Intn(w.Height)}
		if occupied[p] {
			continue
		}
		occupied[p] = true
		creatures = append(creatures, Creature{
			ID:     nextID,
			X:      p.X,
			Y:      p.Y,
			Energy: w.cfg.Population.InitialEnergy,
			Genes:  defaults,
		})
		nextID++
	}

	foods := make([]Food, 0, w.cfg.Food.Initial)
	foodPos := make(map[Point]bool, w.cfg.Food.Initial)
	for i := 0; i < w.cfg.Food.Initial && len(foods) < w.cfg.Food.Max; i++ {
		if f, ok := w.SpawnNearCluster(occupied, foodPos); ok {
			foods = append(foods, f)
			foodPos[Point{X: f.X, Y: f.Y}] = true
		}
	}

	w.Creatures = creatures
	w.Foods = foods
	w.NextCreatureID = nextID
	return w
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
