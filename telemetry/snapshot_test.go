package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/widget"
)

func testView(t *testing.T) *widget.View {
	t.Helper()
	v := widget.New(widget.Options{
		Widget: config.WidgetConfig{
			Name:         "snap",
			Width:        300,
			Height:       300,
			TickInterval: 20,
			Rain:         config.DefaultRain(),
		},
		Palette: config.DefaultPalette(),
		RNG:     rand.New(rand.NewSource(11)),
	})

	now := time.UnixMilli(0)
	for i := 0; i < 40; i++ {
		if _, err := v.Step(now); err != nil {
			t.Fatal(err)
		}
		now = now.Add(20 * time.Millisecond)
	}
	return v
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	v := testView(t)

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 11,
		Tick:    40,
		Widgets: []WidgetState{CaptureWidget(v)},
	}
	if len(snapshot.Widgets[0].Drops) != v.Count() {
		t.Fatalf("captured %d drops, view has %d", len(snapshot.Widgets[0].Drops), v.Count())
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.RNGSeed != 11 || loaded.Tick != 40 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Widgets) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(loaded.Widgets))
	}

	got, want := loaded.Widgets[0], snapshot.Widgets[0]
	if got.Name != "snap" || got.Rain != want.Rain || got.RainRect != want.RainRect {
		t.Errorf("widget mismatch: got %+v", got)
	}
	if len(got.Drops) != len(want.Drops) {
		t.Fatalf("drop count mismatch: got %d, want %d", len(got.Drops), len(want.Drops))
	}
	for i := range want.Drops {
		if got.Drops[i] != want.Drops[i] {
			t.Errorf("drop %d mismatch: got %+v, want %+v", i, got.Drops[i], want.Drops[i])
		}
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 5000, Reason: "config fault"}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_5000_config_fault.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_3000.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version mismatch error")
	}
}
