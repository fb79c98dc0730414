// Package game hosts rain widgets: a raylib window with one ticker goroutine
// per widget, or a headless loop driven by a virtual clock.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/rainy/camera"
	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/renderer"
	"github.com/pthm-cable/rainy/telemetry"
	"github.com/pthm-cable/rainy/ui"
	"github.com/pthm-cable/rainy/widget"
)

// Stage layout, in stage units
const (
	stageGap    = 20
	stageFooter = 40
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	Only           string // show a single widget by name; empty = all
}

// Game holds the widgets and everything that drives and observes them.
type Game struct {
	views    []*widget.View
	trackers []*tracker
	rects    []components.Rect // widget placement on the stage

	camera   *camera.Camera
	renderer *renderer.RainRenderer
	hud      *ui.HUD
	controls *ui.WidgetControls
	runners  *runners

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	faults atomic.Int64

	headless    bool
	logStats    bool
	rngSeed     int64
	snapshotDir string

	// Headless state
	tick     int64
	clock    time.Time
	baseTick time.Duration // virtual clock step: the shortest widget tick

	// Windowed state
	frames                    int64
	screenWidth, screenHeight float32

	// Scratch buffers reused every frame
	drops []components.Drop
	lines []widget.Line
}

func (g *Game) config() *config.Config {
	return config.Cfg()
}

// NewGameWithOptions builds a widget for every configured entry. In windowed
// mode it also starts their ticker goroutines.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		renderer:      renderer.NewRainRenderer(),
		hud:           ui.NewHUD(),
		controls:      ui.NewWidgetControls(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		headless:      opts.Headless,
		logStats:      opts.LogStats,
		rngSeed:       opts.Seed,
		snapshotDir:   opts.SnapshotDir,
		clock:         time.UnixMilli(0),
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}

	var sizes []camera.Size
	for i, wc := range cfg.Widgets {
		if opts.Only != "" && wc.Name != opts.Only {
			continue
		}
		v := widget.New(widget.Options{
			Widget:  wc,
			Clouds:  cfg.Clouds,
			Palette: cfg.Derived.Palettes[i],
			RNG:     rand.New(rand.NewSource(opts.Seed + int64(i))),
			Logger:  slog.Default(),
		})
		g.views = append(g.views, v)
		g.trackers = append(g.trackers, newTracker(v, statsWindow, g.clock))
		sizes = append(sizes, camera.Size{W: wc.Width, H: wc.Height})
	}
	if len(g.views) == 0 {
		slog.Warn("no widgets to show", "only", opts.Only)
	}

	g.baseTick = config.DefaultTickInterval * time.Millisecond
	for i, v := range g.views {
		if i == 0 || v.TickInterval() < g.baseTick {
			g.baseTick = v.TickInterval()
		}
	}

	rects, stage := camera.Row(sizes, stageGap, stageFooter)
	g.rects = rects
	g.camera = camera.New(g.screenWidth, g.screenHeight, stage.W, stage.H)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !g.headless {
		g.runners = newRunners(g)
		g.runners.start(context.Background())
	}

	slog.Info("game created",
		"widgets", len(g.views),
		"seed", opts.Seed,
		"headless", opts.Headless,
		"stats_window", statsWindow,
	)
	return g
}

// Views returns the hosted widgets.
func (g *Game) Views() []*widget.View {
	return g.views
}

// Tick returns the number of headless host ticks so far.
func (g *Game) Tick() int64 {
	return g.tick
}

// Frames returns the number of frames drawn.
func (g *Game) Frames() int64 {
	return g.frames
}

// Faults returns how many configuration faults stopped a widget.
func (g *Game) Faults() int64 {
	return g.faults.Load()
}

// Active reports whether any widget is still running.
func (g *Game) Active() bool {
	for _, v := range g.views {
		if v.Running() {
			return true
		}
	}
	return false
}

// Unload stops every widget goroutine, saves a final snapshot and closes output.
func (g *Game) Unload() {
	if g.runners != nil {
		g.runners.stop()
	}

	if g.snapshotDir != "" {
		g.saveSnapshot("final")
	}

	for _, v := range g.views {
		v.Release()
	}

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
