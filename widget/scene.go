package widget

import (
	"image/color"

	"github.com/pthm-cable/rainy/camera"
	"github.com/pthm-cable/rainy/components"
)

// Line is a drop segment in screen coordinates.
type Line struct {
	X0, Y0, X1, Y1 float32
}

// Cloud is a cloud shape in screen coordinates: a rounded base bar with
// two puffs on top.
type Cloud struct {
	Base   components.Rect
	Radius float32 // corner radius of the base
	Puffs  [2]components.Circle
	Color  color.RGBA
}

// Scene is a Frame resolved to screen coordinates, ready to draw.
// Drops are drawn first inside Clip, then Clouds in order.
type Scene struct {
	Clip      components.Rect
	Drops     []Line
	DropWidth float32
	DropColor color.RGBA
	Clouds    [2]Cloud // right cloud, then left cloud on top
}

// Scene maps the frame through t, reusing lines' storage.
func (f Frame) Scene(t camera.Transform, lines []Line) Scene {
	lines = lines[:0]
	for i := range f.Drops {
		x0, y0, x1, y1 := f.Drops[i].Segment()
		sx0, sy0 := t.Apply(x0, y0)
		sx1, sy1 := t.Apply(x1, y1)
		lines = append(lines, Line{X0: sx0, Y0: sy0, X1: sx1, Y1: sy1})
	}

	leftDX, rightDX := f.Layout.CloudOffsets(f.LeftPhase, f.RightPhase)
	return Scene{
		Clip:      t.Rect(f.Layout.ClipRect),
		Drops:     lines,
		DropWidth: t.Len(float32(f.DropSize)),
		DropColor: f.Palette.Drop,
		Clouds: [2]Cloud{
			mapCloud(f.Layout.RightCloud.Translate(rightDX, 0), t, f.Palette.RightCloud),
			mapCloud(f.Layout.LeftCloud.Translate(leftDX, 0), t, f.Palette.LeftCloud),
		},
	}
}

func mapCloud(c components.CloudShape, t camera.Transform, col color.RGBA) Cloud {
	out := Cloud{
		Base:   t.Rect(c.Base),
		Radius: t.Len(c.BaseRadius),
		Color:  col,
	}
	for i, p := range c.Puffs {
		x, y := t.Apply(p.X, p.Y)
		out.Puffs[i] = components.Circle{X: x, Y: y, Radius: t.Len(p.Radius)}
	}
	return out
}
