package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/rainy/telemetry"
	"github.com/pthm-cable/rainy/widget"
)

// tracker is the telemetry state of one widget. In windowed mode it is only
// touched by that widget's goroutine.
type tracker struct {
	view      *widget.View
	collector *telemetry.Collector
	ticks     int64
	next      time.Time // headless: when the widget is due next
}

func newTracker(v *widget.View, windowSec float64, start time.Time) *tracker {
	return &tracker{
		view:      v,
		collector: telemetry.NewCollector(v.Name(), windowSec, v.TickInterval()),
		next:      start,
	}
}

// record feeds one ticked step into the widget's collector.
func (g *Game) record(tr *tracker, res widget.StepResult) {
	tr.ticks++
	if res.Spawned {
		tr.collector.RecordSpawn(res.Drop.SpeedX, res.Drop.YLength)
	}
	tr.collector.RecordRetired(res.Retired)
	tr.collector.SampleActive(res.Active)

	g.flushTelemetry(tr, res)
}

// recordFault counts a configuration fault and snapshots the state it left.
func (g *Game) recordFault(tr *tracker, err error) {
	tr.collector.RecordFault()
	g.faults.Add(1)
	slog.Warn("widget stopped on fault", "widget", tr.view.Name(), "tick", tr.ticks, "error", err)

	if g.snapshotDir != "" {
		g.saveSnapshot("fault")
	}
}

// flushTelemetry checks if the stats window should be flushed and writes it.
func (g *Game) flushTelemetry(tr *tracker, res widget.StepResult) {
	if !tr.collector.ShouldFlush(tr.ticks) {
		return
	}

	stats := tr.collector.Flush(tr.ticks, res.Active, res.PoolLen, res.Allocated)

	if g.logStats {
		stats.LogStats()
	}

	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}

	if g.headless {
		g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	}
	frame := tr.view.Frame(nil)
	if err := g.outputManager.WriteDrops(tr.view.Name(), tr.ticks, frame.Drops); err != nil {
		slog.Error("failed to write drops", "error", err)
	}
}

// flushPerf logs and writes perf stats once per perf window. Called from the
// goroutine that owns the perf collector.
func (g *Game) flushPerf(counter int64) {
	window := int64(g.config().Telemetry.PerfCollectorWindow)
	if window <= 0 || counter%window != 0 {
		return
	}

	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, counter); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// saveSnapshot writes the state of every widget to the snapshot directory.
func (g *Game) saveSnapshot(reason string) {
	snapshot := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		RNGSeed: g.rngSeed,
		Tick:    g.snapshotTick(),
		Reason:  reason,
	}
	for _, v := range g.views {
		snapshot.Widgets = append(snapshot.Widgets, telemetry.CaptureWidget(v))
	}

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "reason", reason)
}

// snapshotTick is the host tick in headless mode and the wall clock in
// milliseconds otherwise.
func (g *Game) snapshotTick() int64 {
	if g.headless {
		return g.tick
	}
	return time.Now().UnixMilli()
}
