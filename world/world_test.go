package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/meadow/config"
)

// newTestWorld builds an empty deterministic world for tests.
func newTestWorld(t *testing.T, width, height int, seed int64, mod func(*config.Config)) World {
	t.Helper()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	cfg.World.Width = width
	cfg.World.Height = height
	if mod != nil {
		mod(cfg)
	}

	w, err := New(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	return w
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	cfg.World.Width = 0

	if _, err := New(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for zero-width world")
	}
}

func TestInBounds(t *testing.T) {
	w := newTestWorld(t, 10, 5, 1, nil)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 4, true},
		{10, 4, false},
		{9, 5, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := w.InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestInitializeClusters(t *testing.T) {
	w := newTestWorld(t, 30, 20, 2, func(cfg *config.Config) {
		cfg.Clusters.Count = 4
	})

	if len(w.Clusters) != 4 {
		t.Fatalf("cluster count = %d, want 4", len(w.Clusters))
	}
	for _, c := range w.Clusters {
		if !w.InBounds(c.X, c.Y) {
			t.Errorf("cluster %v out of bounds", c)
		}
	}
}

func TestSpawnNearClusterAvoidsOccupiedCells(t *testing.T) {
	// A 2x2 world with every cell taken leaves nowhere to spawn.
	w := newTestWorld(t, 2, 2, 3, nil)

	occupied := map[Point]bool{{0, 0}: true, {1, 0}: true}
	foodPos := map[Point]bool{{0, 1}: true, {1, 1}: true}

	if _, ok := w.SpawnNearCluster(occupied, foodPos); ok {
		t.Error("spawned food on a fully occupied grid")
	}
}

func TestSpawnNearClusterPlacesInBounds(t *testing.T) {
	w := newTestWorld(t, 15, 15, 4, nil)

	for i := 0; i < 200; i++ {
		f, ok := w.SpawnNearCluster(map[Point]bool{}, map[Point]bool{})
		if !ok {
			t.Fatal("spawn failed on an empty grid")
		}
		if !w.InBounds(f.X, f.Y) {
			t.Fatalf("food spawned out of bounds at (%d,%d)", f.X, f.Y)
		}
		if f.Energy != w.cfg.Food.Energy {
			t.Fatalf("food energy = %v, want %v", f.Energy, w.cfg.Food.Energy)
		}
	}
}

func TestCurrentSpawnRateFixedWhenSeasonsDisabled(t *testing.T) {
	w := newTestWorld(t, 10, 10, 5, func(cfg *config.Config) {
		cfg.Season.Enabled = false
		cfg.Food.SpawnPerTick = 3
	})

	for gen := 0; gen < 250; gen++ {
		w.Generation = gen
		if got := w.CurrentSpawnRate(); got != 3 {
			t.Fatalf("spawn rate at generation %d = %v, want 3", gen, got)
		}
	}
}

// With seasons on, the rate must stay inside [min,max] for every
// generation and actually vary across a full cycle.
func TestCurrentSpawnRateSeasonal(t *testing.T) {
	w := newTestWorld(t, 10, 10, 6, func(cfg *config.Config) {
		cfg.Season.Enabled = true
		cfg.Season.CycleLength = 100
		cfg.Season.MinSpawnRate = 1.5
		cfg.Season.MaxSpawnRate = 3.5
	})

	min, max := math.Inf(1), math.Inf(-1)
	for gen := 0; gen < 300; gen++ {
		w.Generation = gen
		rate := w.CurrentSpawnRate()
		if rate < 1.5-1e-9 || rate > 3.5+1e-9 {
			t.Fatalf("spawn rate at generation %d = %v, outside [1.5, 3.5]", gen, rate)
		}
		min = math.Min(min, rate)
		max = math.Max(max, rate)
	}

	if max-min < 1e-6 {
		t.Error("seasonal spawn rate never varied across a full cycle")
	}
}

func TestPopulatePlacesCreaturesOnDistinctCells(t *testing.T) {
	w := newTestWorld(t, 20, 20, 7, func(cfg *config.Config) {
		cfg.Population.Initial = 25
		cfg.Population.InitialEnergy = 60
		cfg.Food.Initial = 15
	})
	w = w.Populate()

	if len(w.Creatures) != 25 {
		t.Fatalf("creature count = %d, want 25", len(w.Creatures))
	}

	seen := make(map[Point]bool)
	ids := make(map[int]bool)
	for _, c := range w.Creatures {
		p := Point{X: c.X, Y: c.Y}
		if seen[p] {
			t.Fatalf("two creatures share cell %v", p)
		}
		seen[p] = true

		if ids[c.ID] {
			t.Fatalf("duplicate creature id %d", c.ID)
		}
		ids[c.ID] = true

		if c.Energy != 60 {
			t.Errorf("initial energy = %v, want 60", c.Energy)
		}
		if !w.InBounds(c.X, c.Y) {
			t.Errorf("creature out of bounds at (%d,%d)", c.X, c.Y)
		}
	}

	if w.NextCreatureID != 25 {
		t.Errorf("next id = %d, want 25", w.NextCreatureID)
	}
	if len(w.Foods) == 0 || len(w.Foods) > 15 {
		t.Errorf("food count = %d, want in (0, 15]", len(w.Foods))
	}
}

func TestCreatureAt(t *testing.T) {
	w := newTestWorld(t, 10, 10, 8, nil)
	w.Creatures = []Creature{{ID: 1, X: 3, Y: 4, Energy: 10, Genes: testGenes()}}

	if c, ok := w.CreatureAt(3, 4); !ok || c.ID != 1 {
		t.Errorf("CreatureAt(3,4) = (%+v, %v), want creature 1", c, ok)
	}
	if _, ok := w.CreatureAt(4, 3); ok {
		t.Error("CreatureAt(4,3) found a creature on an empty cell")
	}
}
