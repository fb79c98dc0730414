package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/game"
	"github.com/pthm-cable/rainy/terminal"
	"github.com/pthm-cable/rainy/widget"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics on a virtual clock")
	term := flag.Bool("terminal", false, "Draw a single widget in the terminal")
	widgetName := flag.String("widget", "", "Widget to show (empty = all; terminal mode uses the first)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout (terminal mode defaults to rainy.log)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON for structured logging)
	out := io.Writer(os.Stdout)
	if *term && *logFile == "" {
		*logFile = "rainy.log"
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if *term {
		return runTerminal(cfg, *widgetName, rngSeed)
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Only:           *widgetName,
	}

	if *headless {
		// Headless mode - virtual clock, no raylib needed
		g := game.NewGameWithOptions(opts)

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
		)

		for g.Active() {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				break
			}
		}
		return finish(g)
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Rainy")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Frames()) >= *maxTicks {
			break
		}
	}
	return finish(g)
}

// finish unloads the game and turns faults into a failing exit code.
func finish(g *game.Game) int {
	g.Unload()
	if n := g.Faults(); n > 0 {
		slog.Error("run ended with faults", "faults", n)
		return 1
	}
	return 0
}

func runTerminal(cfg *config.Config, name string, seed int64) int {
	i := 0
	if name != "" {
		idx, ok := cfg.Derived.WidgetIndex[name]
		if !ok {
			slog.Error("unknown widget", "widget", name)
			return 1
		}
		i = idx
	}

	v := widget.New(widget.Options{
		Widget:  cfg.Widgets[i],
		Clouds:  cfg.Clouds,
		Palette: cfg.Derived.Palettes[i],
		RNG:     rand.New(rand.NewSource(seed)),
		Logger:  slog.Default(),
	})
	defer v.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := terminal.New(v, cfg.Screen.TargetFPS).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rainy: %v\n", err)
		return 1
	}
	return 0
}
