// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// It is threaded explicitly through construction so multiple simulations
// with different parameters can coexist in one process.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Food         FoodConfig         `yaml:"food"`
	Season       SeasonConfig       `yaml:"season"`
	Clusters     ClusterConfig      `yaml:"clusters"`
	Genes        GenesConfig        `yaml:"genes"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial population parameters.
type PopulationConfig struct {
	Initial       int     `yaml:"initial"`        // Creatures placed at setup
	InitialEnergy float64 `yaml:"initial_energy"` // Starting energy per creature
}

// FoodConfig holds food energy and spawning parameters.
type FoodConfig struct {
	Energy       float64 `yaml:"energy"`         // Energy payload per food item
	Initial      int     `yaml:"initial"`        // Food items placed at setup
	Max          int     `yaml:"max"`            // Hard cap on live food items
	SpawnPerTick float64 `yaml:"spawn_per_tick"` // Base spawn rate when seasons are off
}

// SeasonConfig holds temporal resource variation parameters.
// When enabled, the spawn rate follows a sinusoid over CycleLength ticks,
// oscillating between MinSpawnRate and MaxSpawnRate.
type SeasonConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CycleLength  int     `yaml:"cycle_length"`
	MinSpawnRate float64 `yaml:"min_spawn_rate"`
	MaxSpawnRate float64 `yaml:"max_spawn_rate"`
}

// ClusterConfig holds food cluster parameters.
type ClusterConfig struct {
	Count        int     `yaml:"count"`         // Number of cluster centers
	Spread       float64 `yaml:"spread"`        // Exponential rate; lower = wider clusters
	MoveInterval int     `yaml:"move_interval"` // Ticks between cluster relocations
}

// GenesConfig holds default gene values for founder creatures.
type GenesConfig struct {
	MoveCost              float64 `yaml:"move_cost"`
	VisionRange           int     `yaml:"vision_range"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	Metabolism            float64 `yaml:"metabolism"`
	Speed                 int     `yaml:"speed"`
	MaxEnergy             float64 `yaml:"max_energy"`
	FoodEfficiency        float64 `yaml:"food_efficiency"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate          float64 `yaml:"rate"`           // Per-gene mutation probability
	Strength      float64 `yaml:"strength"`       // Normal multiplicative variation
	LargeChance   float64 `yaml:"large_chance"`   // Probability of a large mutation
	LargeStrength float64 `yaml:"large_strength"` // Large multiplicative variation
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	MinAge int `yaml:"min_age"` // Minimum age in ticks before reproducing
}

// TelemetryConfig holds stats recording parameters.
type TelemetryConfig struct {
	RecordInterval int `yaml:"record_interval"` // Record stats every N ticks
	HistorySize    int `yaml:"history_size"`    // Snapshots kept in memory
	WindowTicks    int `yaml:"window_ticks"`    // Ticks aggregated per CSV window
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can construct a consistent world.
// Range checks happen once here; downstream code does not re-validate.
func (c *Config) Validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return fmt.Errorf("world dimensions must be at least 1x1, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Population.Initial < 0 {
		return fmt.Errorf("initial population must be non-negative, got %d", c.Population.Initial)
	}
	if c.Population.Initial > c.World.Width*c.World.Height {
		return fmt.Errorf("initial population %d exceeds grid capacity %d", c.Population.Initial, c.World.Width*c.World.Height)
	}
	if c.Population.InitialEnergy < 0 {
		return fmt.Errorf("initial energy must be non-negative, got %v", c.Population.InitialEnergy)
	}
	if c.Food.Energy < 0 {
		return fmt.Errorf("food energy must be non-negative, got %v", c.Food.Energy)
	}
	if c.Food.Max < 0 {
		return fmt.Errorf("max food must be non-negative, got %d", c.Food.Max)
	}
	if c.Clusters.Count < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", c.Clusters.Count)
	}
	if c.Clusters.Spread <= 0 {
		return fmt.Errorf("cluster spread must be positive, got %v", c.Clusters.Spread)
	}
	if c.Season.Enabled && c.Season.CycleLength < 1 {
		return fmt.Errorf("season cycle length must be at least 1, got %d", c.Season.CycleLength)
	}
	if c.Season.Enabled && c.Season.MinSpawnRate > c.Season.MaxSpawnRate {
		return fmt.Errorf("season min spawn rate %v exceeds max %v", c.Season.MinSpawnRate, c.Season.MaxSpawnRate)
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return fmt.Errorf("mutation rate must be in [0,1], got %v", c.Mutation.Rate)
	}
	if c.Mutation.LargeChance < 0 || c.Mutation.LargeChance > 1 {
		return fmt.Errorf("large mutation chance must be in [0,1], got %v", c.Mutation.LargeChance)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
