package telemetry

import (
	"testing"
)

func statsAt(gen, pop int, energy float64) Stats {
	return Stats{Generation: gen, CreatureCount: pop, AvgEnergy: energy}
}

func TestStatsHistoryRecordAndTrim(t *testing.T) {
	h := NewStatsHistory(3)

	if !h.IsEmpty() {
		t.Error("new history not empty")
	}

	for gen := 0; gen < 5; gen++ {
		h.Record(statsAt(gen, 10+gen, float64(gen)))
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want cap of 3", h.Len())
	}

	// The two oldest snapshots were dropped.
	want := []int{2, 3, 4}
	got := h.Generations()
	if len(got) != len(want) {
		t.Fatalf("generations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("generations = %v, want %v", got, want)
		}
	}
}

func TestStatsHistorySeries(t *testing.T) {
	h := NewStatsHistory(10)
	for gen := 0; gen < 4; gen++ {
		h.Record(statsAt(gen, 20, float64(gen)*1.5))
	}

	series := h.Series(func(s Snapshot) float64 { return s.AvgEnergy })
	want := []float64{0, 1.5, 3, 4.5}
	for i := range want {
		if series[i] != want[i] {
			t.Fatalf("energy series = %v, want %v", series, want)
		}
	}
}

func TestStatsHistoryAllReturnsCopy(t *testing.T) {
	h := NewStatsHistory(10)
	h.Record(statsAt(1, 20, 50))

	all := h.All()
	all[0].CreatureCount = 999

	if h.All()[0].CreatureCount != 20 {
		t.Error("mutating All's result altered the stored history")
	}
}

func TestStatsHistoryClear(t *testing.T) {
	h := NewStatsHistory(10)
	h.Record(statsAt(1, 20, 50))
	h.Clear()

	if !h.IsEmpty() || h.Len() != 0 {
		t.Errorf("after Clear: len = %d, want 0", h.Len())
	}
}

func TestNewStatsHistoryClampsCapacity(t *testing.T) {
	h := NewStatsHistory(0)
	h.Record(statsAt(1, 20, 50))
	h.Record(statsAt(2, 21, 51))

	if h.Len() != 1 {
		t.Errorf("len = %d, want 1 with clamped capacity", h.Len())
	}
	if h.Generations()[0] != 2 {
		t.Errorf("kept generation %d, want the newest (2)", h.Generations()[0])
	}
}

func TestNewSnapshotCapturesProvider(t *testing.T) {
	s := Stats{
		Generation:     9,
		CreatureCount:  4,
		FoodCount:      6,
		AvgEnergy:      55,
		AvgSpeed:       1.25,
		AvgVisionRange: 3.5,
		AvgMaxEnergy:   190,
		StdSpeed:       0.4,
		StdVisionRange: 0.9,
		SpawnRate:      2.0,
	}

	snap := NewSnapshot(s)
	want := Snapshot{
		Generation:     9,
		CreatureCount:  4,
		FoodCount:      6,
		AvgEnergy:      55,
		AvgSpeed:       1.25,
		AvgVisionRange: 3.5,
		AvgMaxEnergy:   190,
		StdSpeed:       0.4,
		StdVisionRange: 0.9,
		SpawnRate:      2.0,
	}
	if snap != want {
		t.Errorf("snapshot = %+v, want %+v", snap, want)
	}
}
