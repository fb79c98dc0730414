package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rainy/telemetry"
	"github.com/pthm-cable/rainy/ui"
)

var backgroundColor = rl.Color{R: 24, G: 26, B: 32, A: 255}

const controlsLegend = "Space: start/stop all | Arrows: pan | Wheel/+/-: zoom | Home: reset view | F11: fullscreen"

// Draw renders every visible widget, its controls and the HUD.
func (g *Game) Draw() {
	g.perfCollector.StartTick()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	var drops, running int
	for i, v := range g.views {
		stageRect := g.rects[i]
		if !g.camera.IsVisible(stageRect) {
			continue
		}

		g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
		frame := v.Frame(g.drops)
		g.drops = frame.Drops
		scene := frame.Scene(g.camera.Transform(stageRect.Left, stageRect.Top), g.lines)
		g.lines = scene.Drops

		g.perfCollector.StartPhase(telemetry.PhaseRender)
		g.renderer.Draw(scene)

		screenRect := g.camera.Transform(0, 0).Rect(stageRect)
		action := g.controls.Draw(screenRect, ui.WidgetState{
			Name:     v.Name(),
			Running:  frame.Running,
			Released: v.Released(),
			Drops:    len(frame.Drops),
		})
		g.applyAction(i, action)

		drops += len(frame.Drops)
		if frame.Running {
			running++
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.hud.Draw(ui.HUDData{
		Title:   "Rainy",
		Widgets: len(g.views),
		Running: running,
		Drops:   drops,
		Zoom:    g.camera.Zoom,
		FPS:     rl.GetFPS(),
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
	g.frames++
	g.flushPerf(g.frames)
}

// applyAction carries out a widget button click.
func (g *Game) applyAction(i int, action ui.ControlAction) {
	v := g.views[i]
	switch action {
	case ui.ActionToggle:
		if v.Running() {
			v.Stop()
		} else {
			v.Start()
		}
	case ui.ActionRelease:
		v.Release()
	}
}
