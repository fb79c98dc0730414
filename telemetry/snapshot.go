package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/widget"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of every widget at one tick.
type Snapshot struct {
	Version int    `json:"version"`
	RNGSeed int64  `json:"rng_seed"`
	Tick    int64  `json:"tick"`
	Reason  string `json:"reason,omitempty"` // e.g. "final", "fault"

	Widgets []WidgetState `json:"widgets"`
}

// WidgetState holds one widget's complete state.
type WidgetState struct {
	Name    string  `json:"name"`
	Width   float32 `json:"width"`
	Height  float32 `json:"height"`
	Running bool    `json:"running"`

	Rain config.RainConfig `json:"rain"`

	LeftPhase  float32 `json:"left_phase"`
	RightPhase float32 `json:"right_phase"`

	RainRect components.Rect `json:"rain_rect"`
	Drops    []DropState     `json:"drops"`
}

// DropState is the JSON form of an active drop.
type DropState struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	SpeedX  float32 `json:"speed_x"`
	SpeedY  float32 `json:"speed_y"`
	XLength float32 `json:"x_length"`
	YLength float32 `json:"y_length"`
	Slope   float32 `json:"slope"`
}

// CaptureWidget records the state of v.
func CaptureWidget(v *widget.View) WidgetState {
	f := v.Frame(nil)
	ws := WidgetState{
		Name:       v.Name(),
		Width:      f.Layout.Width,
		Height:     f.Layout.Height,
		Running:    f.Running,
		Rain:       v.RainConfig(),
		LeftPhase:  f.LeftPhase,
		RightPhase: f.RightPhase,
		RainRect:   f.Layout.RainRect,
		Drops:      make([]DropState, len(f.Drops)),
	}
	for i, d := range f.Drops {
		ws.Drops[i] = DropState{
			X:       d.X,
			Y:       d.Y,
			SpeedX:  d.SpeedX,
			SpeedY:  d.SpeedY,
			XLength: d.XLength,
			YLength: d.YLength,
			Slope:   d.Slope,
		}
	}
	return ws
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Reason != "" {
		name += "_" + strings.ReplaceAll(snapshot.Reason, " ", "_")
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
