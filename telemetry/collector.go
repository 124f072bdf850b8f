package telemetry

import (
	"sort"

	"github.com/pthm-cable/meadow/world"
)

// WindowStats aggregates simulation state over a fixed window of ticks.
type WindowStats struct {
	WindowEndTick int `csv:"window_end"`

	// Population at window end plus extremes during the window
	Population    int `csv:"population"`
	PopulationMin int `csv:"population_min"`
	PopulationMax int `csv:"population_max"`
	FoodCount     int `csv:"food"`

	// Energy distribution sampled at window end
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	SpawnRate float64 `csv:"spawn_rate"`
}

// Collector accumulates per-tick observations and produces WindowStats
// once per window.
type Collector struct {
	windowTicks int
	ticksSeen   int

	popMin int
	popMax int
}

// NewCollector creates a collector emitting one WindowStats every
// windowTicks observed ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Observe folds one tick's world into the current window. When the
// window completes it returns the aggregated stats and resets.
func (c *Collector) Observe(w world.World) (WindowStats, bool) {
	pop := len(w.Creatures)
	if c.ticksSeen == 0 {
		c.popMin = pop
		c.popMax = pop
	} else {
		if pop < c.popMin {
			c.popMin = pop
		}
		if pop > c.popMax {
			c.popMax = pop
		}
	}
	c.ticksSeen++

	if c.ticksSeen < c.windowTicks {
		return WindowStats{}, false
	}

	energies := make([]float64, len(w.Creatures))
	for i, cr := range w.Creatures {
		energies[i] = cr.Energy
	}
	mean, p10, p50, p90 := energyDistribution(energies)

	ws := WindowStats{
		WindowEndTick: w.Generation,
		Population:    pop,
		PopulationMin: c.popMin,
		PopulationMax: c.popMax,
		FoodCount:     len(w.Foods),
		EnergyMean:    mean,
		EnergyP10:     p10,
		EnergyP50:     p50,
		EnergyP90:     p90,
		SpawnRate:     w.CurrentSpawnRate(),
	}

	c.ticksSeen = 0
	return ws, true
}

// energyDistribution calculates mean and percentiles from energy values.
func energyDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
