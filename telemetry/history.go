package telemetry

// Provider is the narrow read-only view StatsHistory records from.
// The concrete Stats type satisfies it; history stays decoupled from the
// full snapshot so graphing or export layers can evolve independently.
type Provider interface {
	Tick() int
	Population() int
	FoodItems() int
	MeanEnergy() float64
	MeanSpeed() float64
	MeanVisionRange() float64
	MeanMaxEnergy() float64
	SpeedSpread() float64
	VisionSpread() float64
	FoodSpawnRate() float64
}

// Snapshot is one recorded point of the statistics time series.
// CSV tags drive the stats.csv output format.
type Snapshot struct {
	Generation     int     `csv:"generation"`
	CreatureCount  int     `csv:"creatures"`
	FoodCount      int     `csv:"food"`
	AvgEnergy      float64 `csv:"avg_energy"`
	AvgSpeed       float64 `csv:"avg_speed"`
	AvgVisionRange float64 `csv:"avg_vision"`
	AvgMaxEnergy   float64 `csv:"avg_max_energy"`
	StdSpeed       float64 `csv:"std_speed"`
	StdVisionRange float64 `csv:"std_vision"`
	SpawnRate      float64 `csv:"spawn_rate"`
}

// StatsHistory keeps a bounded chronological series of snapshots in
// memory for presentation layers. It does no rendering and no I/O.
type StatsHistory struct {
	snapshots []Snapshot
	maxPoints int
}

// NewStatsHistory creates a history bounded to maxPoints snapshots.
func NewStatsHistory(maxPoints int) *StatsHistory {
	if maxPoints < 1 {
		maxPoints = 1
	}
	return &StatsHistory{maxPoints: maxPoints}
}

// NewSnapshot captures the provider's current values.
func NewSnapshot(p Provider) Snapshot {
	return Snapshot{
		Generation:     p.Tick(),
		CreatureCount:  p.Population(),
		FoodCount:      p.FoodItems(),
		AvgEnergy:      p.MeanEnergy(),
		AvgSpeed:       p.MeanSpeed(),
		AvgVisionRange: p.MeanVisionRange(),
		AvgMaxEnergy:   p.MeanMaxEnergy(),
		StdSpeed:       p.SpeedSpread(),
		StdVisionRange: p.VisionSpread(),
		SpawnRate:      p.FoodSpawnRate(),
	}
}

// Record appends a snapshot, dropping the oldest once full.
func (h *StatsHistory) Record(p Provider) {
	h.snapshots = append(h.snapshots, NewSnapshot(p))

	if len(h.snapshots) > h.maxPoints {
		h.snapshots = h.snapshots[len(h.snapshots)-h.maxPoints:]
	}
}

// All returns the recorded snapshots in chronological order.
func (h *StatsHistory) All() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

// Generations returns the generation number of every recorded snapshot.
func (h *StatsHistory) Generations() []int {
	out := make([]int, len(h.snapshots))
	for i, s := range h.snapshots {
		out[i] = s.Generation
	}
	return out
}

// Series extracts one named time series from the history.
func (h *StatsHistory) Series(extract func(Snapshot) float64) []float64 {
	out := make([]float64, len(h.snapshots))
	for i, s := range h.snapshots {
		out[i] = extract(s)
	}
	return out
}

// Clear drops all recorded history.
func (h *StatsHistory) Clear() {
	h.snapshots = h.snapshots[:0]
}

// Len returns the number of recorded snapshots.
func (h *StatsHistory) Len() int {
	return len(h.snapshots)
}

// IsEmpty reports whether nothing has been recorded yet.
func (h *StatsHistory) IsEmpty() bool {
	return len(h.snapshots) == 0
}
