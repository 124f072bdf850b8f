package world

// NextStep advances the simulation by one tick and returns the resulting
// world. The input world is left untouched apart from the carried cluster
// list and random source.
//
// Actions are decided for every creature against the pre-tick world,
// then resolved in a single sequential pass over a shared occupancy set,
// so no two creatures ever end a tick on the same cell. After resolution
// come feeding, metabolism, aging, death, food removal, cluster drift,
// and food respawn.
func (w World) NextStep() World {
	// Phase 1: decide every action against the pre-tick world.
	actions := make([]Action, len(w.Creatures))
	for i, c := range w.Creatures {
		actions[i] = w.Decide(c)
	}

	// claimed holds every cell taken by a resolved creature this tick.
	// pending holds pre-tick cells of creatures not yet resolved; moves
	// treat those as blocked too, otherwise a multi-step move could land
	// on a creature that ends up staying put.
	claimed := make(map[Point]bool, len(w.Creatures))
	pending := make(map[Point]bool, len(w.Creatures))
	for _, c := range w.Creatures {
		pending[Point{X: c.X, Y: c.Y}] = true
	}

	resolved := make([]Creature, 0, len(w.Creatures)+1)
	nextID := w.NextCreatureID

	// Phase 2: resolve reproduction and movement in creature order.
	for i, c := range w.Creatures {
		delete(pending, Point{X: c.X, Y: c.Y})
		act := actions[i]

		switch {
		case act.Reproduce:
			if nb, ok := w.findEmptyNeighbor(c.X, c.Y, claimed); ok {
				parent, child := c.Reproduce(nextID, w.rng, w.cfg.Mutation)
				nextID++
				child = child.MoveTo(nb.X, nb.Y)
				claimed[Point{X: parent.X, Y: parent.Y}] = true
				claimed[nb] = true
				resolved = append(resolved, parent, child)
			} else {
				// No free neighbor: stay put at no cost.
				claimed[Point{X: c.X, Y: c.Y}] = true
				resolved = append(resolved, c)
			}

		case act.DX == 0 && act.DY == 0:
			claimed[Point{X: c.X, Y: c.Y}] = true
			resolved = append(resolved, c)

		default:
			x, y := c.X, c.Y
			steps := 0
			for s := 0; s < c.Genes.Speed; s++ {
				nx, ny := x+act.DX, y+act.DY
				p := Point{X: nx, Y: ny}
				if !w.InBounds(nx, ny) || claimed[p] || pending[p] {
					break
				}
				x, y = nx, ny
				steps++
			}

			if steps > 0 {
				// Cost is charged at the declared speed regardless of
				// steps completed, keeping selection pressure on the
				// speed gene consistent.
				c = c.MoveTo(x, y).Spend(c.Genes.MoveCost * float64(c.Genes.Speed))
			}
			claimed[Point{X: c.X, Y: c.Y}] = true
			resolved = append(resolved, c)
		}
	}

	// Phase 3: feeding at final positions. A food cell feeds at most one
	// creature per tick; first claim in processing order wins.
	eaten := make(map[Point]bool)
	for i, c := range resolved {
		p := Point{X: c.X, Y: c.Y}
		if eaten[p] {
			continue
		}
		for _, f := range w.Foods {
			if f.X == c.X && f.Y == c.Y {
				resolved[i] = c.Eat(f.Energy)
				eaten[p] = true
				break
			}
		}
	}

	// Phase 4: metabolism, aging, death.
	survivors := make([]Creature, 0, len(resolved))
	for _, c := range resolved {
		c = c.ConsumeMetabolism().AgeOneTurn()
		if c.Alive() {
			survivors = append(survivors, c)
		}
	}

	// Phase 5: drop eaten food.
	remaining := make([]Food, 0, len(w.Foods))
	for _, f := range w.Foods {
		if !eaten[Point{X: f.X, Y: f.Y}] {
			remaining = append(remaining, f)
		}
	}

	// Phase 6: cluster drift, then respawn for this tick.
	w.maybeMoveClusters()
	remaining = w.respawnFood(survivors, remaining)

	return World{
		Width:          w.Width,
		Height:         w.Height,
		Creatures:      survivors,
		Foods:          remaining,
		Generation:     w.Generation + 1,
		NextCreatureID: nextID,
		Clusters:       w.Clusters,
		cfg:            w.cfg,
		rng:            w.rng,
	}
}

// respawnFood adds up to floor(CurrentSpawnRate()) new food items near
// cluster centers, never exceeding the configured food cap. Placement
// misses silently yield fewer items this tick.
func (w World) respawnFood(survivors []Creature, remaining []Food) []Food {
	toSpawn := int(w.CurrentSpawnRate())
	if room := w.cfg.Food.Max - len(remaining); toSpawn > room {
		toSpawn = room
	}
	if toSpawn <= 0 {
		return remaining
	}

	occupied := make(map[Point]bool, len(survivors))
	for _, c := range survivors {
		occupied[Point{X: c.X, Y: c.Y}] = true
	}
	foodPos := make(map[Point]bool, len(remaining))
	for _, f := range remaining {
		foodPos[Point{X: f.X, Y: f.Y}] = true
	}

	for i := 0; i < toSpawn; i++ {
		if f, ok := w.SpawnNearCluster(occupied, foodPos); ok {
			remaining = append(remaining, f)
			foodPos[Point{X: f.X, Y: f.Y}] = true
		}
	}
	return remaining
}
