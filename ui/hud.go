// Package ui draws the windowed host's overlays: the HUD and per-widget controls.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Widgets int
	Running int
	Drops   int
	Zoom    float32
	FPS     int32
}

// HUD renders the main heads-up display.
type HUD struct {
	Theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, h.Theme.Title)

	rl.DrawText(
		fmt.Sprintf("Widgets: %d | Running: %d | Drops: %d", data.Widgets, data.Running, data.Drops),
		10, 35, 16, h.Theme.Text,
	)
	rl.DrawText(
		fmt.Sprintf("Zoom: %.2fx | FPS: %d", data.Zoom, data.FPS),
		10, 55, 16, h.Theme.Text,
	)

	if data.Running == 0 && data.Widgets > 0 {
		rl.DrawText("STOPPED", 10, 75, 16, h.Theme.Warning)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.Theme.Muted)
}
