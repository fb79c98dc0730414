// Package camera provides the 2D viewport onto the stage where widgets are laid out.
package camera

import "github.com/pthm-cable/rainy/components"

// Camera controls the viewport into the stage.
// Pan is clamped so the view never leaves the stage on an axis it fits in.
type Camera struct {
	// Position is the camera center in stage coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Stage dimensions
	StageW, StageH float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the stage, zoomed to fit it.
func New(viewportW, viewportH, stageW, stageH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		StageW:    stageW,
		StageH:    stageH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
	c.Reset()
	return c
}

// Transform maps widget-local coordinates to the screen.
type Transform struct {
	OffsetX, OffsetY float32
	Scale            float32
}

// Identity leaves coordinates unchanged.
var Identity = Transform{Scale: 1}

// Apply maps a point.
func (t Transform) Apply(x, y float32) (float32, float32) {
	return t.OffsetX + x*t.Scale, t.OffsetY + y*t.Scale
}

// Len maps a length.
func (t Transform) Len(l float32) float32 {
	return l * t.Scale
}

// Rect maps a rectangle.
func (t Transform) Rect(r components.Rect) components.Rect {
	left, top := t.Apply(r.Left, r.Top)
	right, bottom := t.Apply(r.Right, r.Bottom)
	return components.Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Fit returns the transform that scales a w x h area uniformly into dst,
// centered on both axes.
func Fit(w, h float32, dst components.Rect) Transform {
	if w <= 0 || h <= 0 {
		return Transform{OffsetX: dst.Left, OffsetY: dst.Top, Scale: 1}
	}
	scale := min(dst.Width()/w, dst.Height()/h)
	return Transform{
		OffsetX: dst.Left + (dst.Width()-w*scale)/2,
		OffsetY: dst.Top + (dst.Height()-h*scale)/2,
		Scale:   scale,
	}
}

// Transform returns the mapping for a widget whose origin sits at
// (originX, originY) on the stage.
func (c *Camera) Transform(originX, originY float32) Transform {
	sx, sy := c.WorldToScreen(originX, originY)
	return Transform{OffsetX: sx, OffsetY: sy, Scale: c.Zoom}
}

// WorldToScreen converts stage coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to stage coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible reports whether any part of the stage rect r is on screen.
func (c *Camera) IsVisible(r components.Rect) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return r.Right >= minX && r.Left <= maxX && r.Bottom >= minY && r.Top <= maxY
}

// Resize updates viewport dimensions and keeps the view on the stage.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampPosition()
}

// SetStage changes the stage size, e.g. when widgets are added.
func (c *Camera) SetStage(stageW, stageH float32) {
	c.StageW = stageW
	c.StageH = stageH
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and zooms so the whole stage fits, never
// magnifying beyond 1:1.
func (c *Camera) Reset() {
	c.X = c.StageW / 2
	c.Y = c.StageH / 2
	zoom := float32(1)
	if c.StageW > 0 && c.StageH > 0 {
		zoom = min(1, c.ViewportW/c.StageW, c.ViewportH/c.StageH)
	}
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// VisibleWorldBounds returns the stage-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampPosition keeps the stage covering the view on each axis where it is
// larger than the view, and centered where it is smaller.
func (c *Camera) clampPosition() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.StageW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.StageH)
}

func clampAxis(pos, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(pos, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Size is a width and height in stage units.
type Size struct {
	W, H float32
}

// Row lays areas of the given sizes left to right, top aligned, with gap
// between them and around the edges. footer extra units are reserved under
// each area. It returns each area's stage rect and the stage size.
func Row(sizes []Size, gap, footer float32) ([]components.Rect, Size) {
	rects := make([]components.Rect, len(sizes))
	x := gap
	var tallest float32
	for i, s := range sizes {
		rects[i] = components.Rect{Left: x, Top: gap, Right: x + s.W, Bottom: gap + s.H}
		x += s.W + gap
		tallest = max(tallest, s.H)
	}
	return rects, Size{W: x, H: gap + tallest + footer + gap}
}
