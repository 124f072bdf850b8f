package world

// Action is one creature's decision for a tick: reproduce, move one unit
// direction, or stay (DX == DY == 0). Decisions are made against the
// pre-tick world and never mutate it.
type Action struct {
	Reproduce bool
	DX, DY    int
}

// reproductionEnergyFraction is the fraction of energy capacity at which
// a creature reproduces. A percentage-of-capacity threshold creates r/K
// selection: small-capacity creatures reproduce sooner, large-capacity
// ones invest in survival.
const reproductionEnergyFraction = 0.6

// Decide picks an action for one creature, in strict priority order:
// reproduce when ready, else move toward the closest visible food, else
// wander in a random unblocked direction.
func (w World) Decide(c Creature) Action {
	if w.canReproduce(c) {
		return Action{Reproduce: true}
	}

	if target, ok := w.closestVisibleFood(c); ok {
		return w.moveTowards(c, target.X, target.Y)
	}

	return w.randomMove(c)
}

// canReproduce checks the energy and age gates for reproduction.
func (w World) canReproduce(c Creature) bool {
	threshold := c.Genes.MaxEnergy * reproductionEnergyFraction
	return c.Energy >= threshold && c.Age >= w.cfg.Reproduction.MinAge
}

// closestVisibleFood returns the nearest food within the creature's
// vision range by Manhattan distance. Ties resolve to the earliest food
// in the collection, which keeps a fixed enumeration deterministic.
func (w World) closestVisibleFood(c Creature) (Food, bool) {
	best := Food{}
	bestDist := c.Genes.VisionRange + 1
	found := false

	for _, f := range w.Foods {
		d := manhattan(c.X, c.Y, f.X, f.Y)
		if d < bestDist {
			best = f
			bestDist = d
			found = true
		}
	}
	return best, found
}

// moveTowards steps one cell toward the target, preferring the axis with
// the larger offset. A blocked or out-of-bounds preferred axis falls back
// to the other axis; if both are blocked the creature stays.
func (w World) moveTowards(c Creature, targetX, targetY int) Action {
	dx := targetX - c.X
	dy := targetY - c.Y
	stepX := sign(dx)
	stepY := sign(dy)

	horizontal := Action{DX: stepX}
	vertical := Action{DY: stepY}

	order := []Action{horizontal, vertical}
	if abs(dx) < abs(dy) {
		order = []Action{vertical, horizontal}
	}

	for _, a := range order {
		if w.cellFree(c.X+a.DX, c.Y+a.DY) {
			return a
		}
	}
	return Action{}
}

// randomMove shuffles the four axis moves plus stay and returns the first
// that is in bounds and unoccupied in the current world state.
func (w World) randomMove(c Creature) Action {
	moves := []Action{
		{DX: -1},
		{DX: 1},
		{DY: -1},
		{DY: 1},
		{},
	}
	w.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	for _, a := range moves {
		if a.DX == 0 && a.DY == 0 {
			return a
		}
		if w.cellFree(c.X+a.DX, c.Y+a.DY) {
			return a
		}
	}
	return Action{}
}

// findEmptyNeighbor returns a random orthogonal neighbor of (x, y) that
// is empty in the pre-tick world and not yet claimed this tick.
func (w World) findEmptyNeighbor(x, y int, claimed map[Point]bool) (Point, bool) {
	neighbors := []Point{
		{X: x - 1, Y: y},
		{X: x + 1, Y: y},
		{X: x, Y: y - 1},
		{X: x, Y: y + 1},
	}
	w.rng.Shuffle(len(neighbors), func(i, j int) {
		neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
	})

	for _, n := range neighbors {
		if w.cellFree(n.X, n.Y) && !claimed[n] {
			return n, true
		}
	}
	return Point{}, false
}

// cellFree reports whether a cell is in bounds and creature-free in the
// pre-tick world.
func (w World) cellFree(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	_, taken := w.CreatureAt(x, y)
	return !taken
}

func manhattan(x1, y1, x2, y2 int) int {
	return abs(x2-x1) + abs(y2-y1)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
