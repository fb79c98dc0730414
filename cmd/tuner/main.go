// Rain tuner - a live widget with sliders for every rain parameter.
//
// Usage: go run ./cmd/tuner [-config config.yaml] [-widget dusk] [-out tuned.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rainy/camera"
	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/renderer"
	"github.com/pthm-cable/rainy/widget"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 40
)

var background = rl.Color{R: 24, G: 26, B: 32, A: 255}

// slider binds one rain parameter to a SliderBar.
type slider struct {
	label  string
	lo, hi float32
	format string
	get    func() float32
	set    func(float32)
}

func sliders(v *widget.View) []slider {
	return []slider{
		{"Max drops", 0, 200, "%.0f",
			func() float32 { return float32(v.MaxDrops()) },
			func(x float32) { v.SetMaxDrops(int(x)) }},
		{"Creation interval (ms)", 0, 500, "%.0f",
			func() float32 { return float32(v.CreationInterval()) },
			func(x float32) { v.SetCreationInterval(int(x)) }},
		{"Min length", 0, 150, "%.0f",
			func() float32 { return float32(v.MinLength()) },
			func(x float32) { v.SetMinLength(int(x)) }},
		{"Max length", 0, 150, "%.0f",
			func() float32 { return float32(v.MaxLength()) },
			func(x float32) { v.SetMaxLength(int(x)) }},
		{"Min speed", 0, 10, "%.2f",
			func() float32 { return v.MinSpeed() },
			v.SetMinSpeed},
		{"Max speed", 0, 10, "%.2f",
			func() float32 { return v.MaxSpeed() },
			v.SetMaxSpeed},
		{"Slope (negative snaps to default)", -10, 10, "%.2f",
			func() float32 { return v.Slope() },
			v.SetSlope},
		{"Drop size", 0, 40, "%.0f",
			func() float32 { return float32(v.DropSize()) },
			func(x float32) { v.SetDropSize(int(x)) }},
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	widgetName := flag.String("widget", "", "Widget to tune (empty = first)")
	outPath := flag.String("out", "tuned.yaml", "Where Save YAML writes the config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	idx := 0
	if *widgetName != "" {
		i, ok := cfg.Derived.WidgetIndex[*widgetName]
		if !ok {
			slog.Error("unknown widget", "widget", *widgetName)
			os.Exit(1)
		}
		idx = i
	}

	rl.InitWindow(windowWidth, windowHeight, "Rain Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	v := widget.New(widget.Options{
		Widget:  cfg.Widgets[idx],
		Clouds:  cfg.Clouds,
		Palette: cfg.Derived.Palettes[idx],
	})
	defer v.Release()

	// Ticking runs beside the draw loop. A fault stops the widget until the
	// next Start, so Run is simply called again.
	var lastFault atomic.Value
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ctx.Err() == nil {
			if err := v.Run(ctx, nil); err != nil {
				lastFault.Store(err.Error())
			}
		}
	}()
	defer func() {
		cancel()
		<-done
	}()

	params := sliders(v)
	rr := renderer.NewRainRenderer()
	preview := components.Rect{Left: 10, Top: 10, Right: 10 + previewSize, Bottom: 10 + previewSize}
	status := ""
	var drops []components.Drop
	var lines []widget.Line

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(background)

		// Preview
		frame := v.Frame(drops)
		drops = frame.Drops
		scene := frame.Scene(camera.Fit(frame.Layout.Width, frame.Layout.Height, preview), lines)
		lines = scene.Drops
		rr.Draw(scene)
		rl.DrawRectangleLinesEx(
			rl.Rectangle{X: preview.Left, Y: preview.Top, Width: preview.Width(), Height: preview.Height()},
			1, rl.DarkGray,
		)

		statsY := int32(preview.Bottom + 15)
		rl.DrawText(fmt.Sprintf("Drops: %d  Pooled: %d  Allocated: %d", len(frame.Drops), v.PoolLen(), v.Allocated()),
			15, statsY, 16, rl.LightGray)
		if msg, ok := lastFault.Load().(string); ok && !frame.Running {
			rl.DrawText(msg, 15, statsY+22, 14, rl.Red)
		}

		// Control panel
		panelX := float32(previewSize + 30)
		panelY := float32(10)

		rl.DrawText(fmt.Sprintf("Rain Parameters: %s", v.Name()), int32(panelX), int32(panelY), 20, rl.White)
		panelY += 35

		for _, s := range params {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get()
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.lo, s.hi,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if next != cur {
				s.set(next)
			}
			panelY += 35
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(frame.Running, "Stop", "Start")) {
			if frame.Running {
				v.Stop()
			} else {
				v.Start()
			}
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			v.SetRainConfig(cfg.Widgets[idx].Rain)
			status = "reset to loaded values"
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save YAML") {
			cfg.Widgets[idx].Rain = v.RainConfig()
			if err := cfg.WriteYAML(*outPath); err != nil {
				status = err.Error()
				slog.Error("failed to save config", "error", err)
			} else {
				status = "saved " + *outPath
				slog.Info("config saved", "path", *outPath, "widget", v.Name())
			}
		}
		panelY += 45

		rl.DrawText(status, int32(panelX), int32(panelY), 14, rl.LightGray)

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
