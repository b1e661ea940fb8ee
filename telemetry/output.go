package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/petals/config"
)

// csvLog appends gocsv records to a file, writing the header once.
type csvLog struct {
	f      *os.File
	header bool
}

func createCSV(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{f: f}, nil
}

// append writes records, which must be a slice of csv-tagged structs.
func (l *csvLog) append(records any) error {
	if l.header {
		return gocsv.MarshalWithoutHeaders(records, l.f)
	}
	if err := gocsv.Marshal(records, l.f); err != nil {
		return err
	}
	l.header = true
	return nil
}

// OutputManager writes per-window CSV logs and the run config to a directory:
// telemetry.csv (whole field), layers.csv (one row per layer) and perf.csv.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	layers    *csvLog
	perf      *csvLog
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, out := range []struct {
		name string
		dst  **csvLog
	}{
		{"telemetry.csv", &om.telemetry},
		{"layers.csv", &om.layers},
		{"perf.csv", &om.perf},
	} {
		l, err := createCSV(dir, out.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*out.dst = l
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends one stats window: a telemetry row, a row per layer and a perf row.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	if len(stats.Layers) > 0 {
		if err := om.layers.append(stats.Layers); err != nil {
			return fmt.Errorf("writing layers: %w", err)
		}
	}
	if err := om.perf.append([]PerfStatsCSV{perf.ToCSV(stats.WindowEndTick)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.layers, om.perf} {
		if l != nil {
			errs = append(errs, l.f.Close())
		}
	}
	return errors.Join(errs...)
}
