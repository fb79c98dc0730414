package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
)

// DropRecord is one active drop in drops.csv.
type DropRecord struct {
	Widget  string  `csv:"widget"`
	Tick    int64   `csv:"tick"`
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	XLength float32 `csv:"x_length"`
	YLength float32 `csv:"y_length"`
	SpeedX  float32 `csv:"speed_x"`
	SpeedY  float32 `csv:"speed_y"`
}

// csvStream appends records to one CSV file, writing the header once.
type csvStream struct {
	file          *os.File
	headerWritten bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{file: f}, nil
}

// write marshals records, which must be a slice of csv-tagged structs.
func (s *csvStream) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvStream) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager handles structured run output with CSV logging.
// It is safe for concurrent use by per-widget goroutines.
type OutputManager struct {
	mu  sync.Mutex
	dir string

	telemetry *csvStream
	perf      *csvStream
	drops     *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = openStream(dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = openStream(dir, "perf.csv"); err != nil {
		om.telemetry.close()
		return nil, err
	}
	if om.drops, err = openStream(dir, "drops.csv"); err != nil {
		om.telemetry.close()
		om.perf.close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	om.mu.Lock()
	defer om.mu.Unlock()

	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	om.mu.Lock()
	defer om.mu.Unlock()

	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteDrops appends a snapshot of active drops to drops.csv.
func (om *OutputManager) WriteDrops(widget string, tick int64, drops []components.Drop) error {
	if om == nil || len(drops) == 0 {
		return nil
	}

	records := make([]DropRecord, len(drops))
	for i, d := range drops {
		records[i] = DropRecord{
			Widget:  widget,
			Tick:    tick,
			X:       d.X,
			Y:       d.Y,
			XLength: d.XLength,
			YLength: d.YLength,
			SpeedX:  d.SpeedX,
			SpeedY:  d.SpeedY,
		}
	}

	om.mu.Lock()
	defer om.mu.Unlock()
	if err := om.drops.write(records); err != nil {
		return fmt.Errorf("writing drops: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	om.mu.Lock()
	defer om.mu.Unlock()

	var firstErr error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.drops} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
