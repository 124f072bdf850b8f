// Package main provides CMA-ES optimization for simulation parameters.
package main

import (
	"github.com/pthm-cable/meadow/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Gene defaults stay inside the ranges the genes package declares, so
// every candidate config passes validation.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Founder gene defaults
			{Name: "metabolism", Path: "genes.metabolism", Min: 0.8, Max: 2.0, Default: 1.2},
			{Name: "move_cost", Path: "genes.move_cost", Min: 0.5, Max: 2.0, Default: 0.9},
			// Food economy
			{Name: "food_energy", Path: "food.energy", Min: 20, Max: 120, Default: 60},
			{Name: "season_min_rate", Path: "season.min_spawn_rate", Min: 0.5, Max: 3.0, Default: 1.5},
			{Name: "season_max_rate", Path: "season.max_spawn_rate", Min: 3.0, Max: 6.0, Default: 3.5},
			// Evolution pressure
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0.05, Max: 0.6, Default: 0.3},
			{Name: "min_repro_age", Path: "reproduction.min_age", Min: 1, Max: 15, Default: 5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Genes.Metabolism = clamped[0]
	cfg.Genes.MoveCost = clamped[1]
	cfg.Food.Energy = clamped[2]
	cfg.Season.MinSpawnRate = clamped[3]
	cfg.Season.MaxSpawnRate = clamped[4]
	cfg.Mutation.Rate = clamped[5]
	cfg.Reproduction.MinAge = int(clamped[6])
}
