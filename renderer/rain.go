// Package renderer draws rain widgets with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rainy/widget"
)

// RainRenderer draws widget scenes.
type RainRenderer struct {
	// Segments used for rounded shapes
	Segments int32
}

// NewRainRenderer creates a new rain renderer.
func NewRainRenderer() *RainRenderer {
	return &RainRenderer{Segments: 16}
}

// Draw renders a scene: drops clipped to the rain area, then both clouds.
func (r *RainRenderer) Draw(s widget.Scene) {
	clip := s.Clip
	if !clip.Empty() {
		rl.BeginScissorMode(int32(clip.Left), int32(clip.Top), int32(clip.Width()), int32(clip.Height()))
		r.drawDrops(s)
		rl.EndScissorMode()
	}

	for _, c := range s.Clouds {
		r.drawCloud(c)
	}
}

func (r *RainRenderer) drawDrops(s widget.Scene) {
	col := toRL(s.DropColor)
	capRadius := s.DropWidth / 2
	for _, l := range s.Drops {
		start := rl.Vector2{X: l.X0, Y: l.Y0}
		end := rl.Vector2{X: l.X1, Y: l.Y1}
		rl.DrawLineEx(start, end, s.DropWidth, col)
		// Round caps
		if capRadius >= 1 {
			rl.DrawCircleV(start, capRadius, col)
			rl.DrawCircleV(end, capRadius, col)
		}
	}
}

func (r *RainRenderer) drawCloud(c widget.Cloud) {
	col := toRL(c.Color)

	base := c.Base
	if !base.Empty() {
		rec := rl.Rectangle{X: base.Left, Y: base.Top, Width: base.Width(), Height: base.Height()}
		// raylib roundness is relative to half the shorter side
		roundness := float32(1)
		if short := min(base.Width(), base.Height()); short > 0 {
			roundness = min(1, c.Radius/(short/2))
		}
		rl.DrawRectangleRounded(rec, roundness, r.Segments, col)
	}

	for _, p := range c.Puffs {
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, p.Radius, col)
	}
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
