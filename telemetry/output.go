package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/meadow/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	statsFile   *os.File
	windowsFile *os.File

	// Track if headers have been written
	statsHeaderWritten   bool
	windowsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	statsPath := filepath.Join(dir, "stats.csv")
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	windowsPath := filepath.Join(dir, "windows.csv")
	f, err = os.Create(windowsPath)
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSnapshot appends one stats snapshot to stats.csv.
func (om *OutputManager) WriteSnapshot(snap Snapshot) error {
	if om == nil {
		return nil
	}

	records := []Snapshot{snap}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WriteWindow appends one window record to windows.csv.
func (om *OutputManager) WriteWindow(ws WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{ws}

	if !om.windowsHeaderWritten {
		if err := gocsv.Marshal(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
		om.windowsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.windowsFile); err != nil {
			return fmt.Errorf("writing windows: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.statsFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.windowsFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
