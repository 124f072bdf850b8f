package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/telemetry"
	"github.com/pthm-cable/meadow/world"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	delay := flag.Duration("delay", 0, "Pause between ticks (0 = run flat out)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logInterval := flag.Int("log-interval", 100, "Log stats every N ticks")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	w, err := world.New(cfg, rng)
	if err != nil {
		slog.Error("failed to create world", "error", err)
		os.Exit(1)
	}
	w = w.Populate()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	history := telemetry.NewStatsHistory(cfg.Telemetry.HistorySize)
	collector := telemetry.NewCollector(cfg.Telemetry.WindowTicks)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"world", cfg.World,
		"creatures", len(w.Creatures),
		"food", len(w.Foods),
		"max_ticks", *maxTicks,
	)

	for {
		if cfg.Telemetry.RecordInterval > 0 && w.Generation%cfg.Telemetry.RecordInterval == 0 {
			stats := telemetry.FromWorld(w)
			history.Record(stats)
			if err := output.WriteSnapshot(telemetry.NewSnapshot(stats)); err != nil {
				slog.Error("failed to write stats snapshot", "error", err)
				os.Exit(1)
			}
		}

		if ws, done := collector.Observe(w); done {
			if err := output.WriteWindow(ws); err != nil {
				slog.Error("failed to write stats window", "error", err)
				os.Exit(1)
			}
		}

		if *logInterval > 0 && w.Generation%*logInterval == 0 {
			stats := telemetry.FromWorld(w)
			slog.Info("tick",
				"generation", stats.Generation,
				"creatures", stats.CreatureCount,
				"food", stats.FoodCount,
				"avg_energy", stats.AvgEnergy,
				"avg_speed", stats.AvgSpeed,
				"avg_vision", stats.AvgVisionRange,
				"spawn_rate", stats.SpawnRate,
			)
		}

		if len(w.Creatures) == 0 {
			slog.Info("extinction", "generation", w.Generation)
			break
		}
		if *maxTicks > 0 && w.Generation >= *maxTicks {
			slog.Info("max ticks reached", "generation", w.Generation)
			break
		}

		if *delay > 0 {
			time.Sleep(*delay)
		}
		w = w.NextStep()
	}

	final := telemetry.FromWorld(w)
	slog.Info("simulation finished",
		"generation", final.Generation,
		"creatures", final.CreatureCount,
		"food", final.FoodCount,
	)
}
