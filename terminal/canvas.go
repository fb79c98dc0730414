// Package terminal renders a rain widget in a terminal with termbox. Each
// cell shows two vertically stacked pixels using half-block glyphs.
package terminal

import (
	"image/color"
	"math"

	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/widget"
)

// Canvas is a small RGBA pixel buffer. A pixel with zero alpha is empty.
type Canvas struct {
	W, H int
	Pix  []color.RGBA
}

// NewCanvas creates a canvas of w x h pixels.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffer for w x h pixels.
func (c *Canvas) Resize(w, h int) {
	c.W, c.H = max(w, 0), max(h, 0)
	c.Pix = make([]color.RGBA, c.W*c.H)
}

// Clear empties every pixel.
func (c *Canvas) Clear() {
	clear(c.Pix)
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.Pix[y*c.W+x]
}

// Draw rasterizes a scene: drops inside the clip rect, then both clouds.
func (c *Canvas) Draw(s widget.Scene) {
	clip := s.Clip
	half := max(s.DropWidth/2, 0.5)
	for _, l := range s.Drops {
		c.drawLine(l, half, clip, s.DropColor)
	}
	for _, cl := range s.Clouds {
		c.fillRoundedRect(cl.Base, cl.Radius, cl.Color)
		for _, p := range cl.Puffs {
			c.fillCircle(p, cl.Color)
		}
	}
}

// drawLine sets every pixel whose center lies within half of the segment
// and inside clip.
func (c *Canvas) drawLine(l widget.Line, half float32, clip components.Rect, col color.RGBA) {
	bounds := components.Rect{
		Left:   min(l.X0, l.X1) - half,
		Top:    min(l.Y0, l.Y1) - half,
		Right:  max(l.X0, l.X1) + half,
		Bottom: max(l.Y0, l.Y1) + half,
	}
	bounds = intersect(bounds, clip)
	c.each(bounds, func(px, py float32) bool {
		return segmentDistance(px, py, l) <= half
	}, col)
}

func (c *Canvas) fillRoundedRect(r components.Rect, radius float32, col color.RGBA) {
	radius = min(radius, r.Width()/2, r.Height()/2)
	inner := components.Rect{
		Left:   r.Left + radius,
		Top:    r.Top + radius,
		Right:  r.Right - radius,
		Bottom: r.Bottom - radius,
	}
	c.each(r, func(px, py float32) bool {
		if px < r.Left || px > r.Right || py < r.Top || py > r.Bottom {
			return false
		}
		dx := px - clampf(px, inner.Left, inner.Right)
		dy := py - clampf(py, inner.Top, inner.Bottom)
		return dx*dx+dy*dy <= radius*radius
	}, col)
}

func (c *Canvas) fillCircle(p components.Circle, col color.RGBA) {
	c.each(p.Bounds(), func(px, py float32) bool {
		dx, dy := px-p.X, py-p.Y
		return dx*dx+dy*dy <= p.Radius*p.Radius
	}, col)
}

// each paints col on the pixels in r whose centers satisfy inside.
func (c *Canvas) each(r components.Rect, inside func(px, py float32) bool, col color.RGBA) {
	x0 := max(int(math.Floor(float64(r.Left))), 0)
	y0 := max(int(math.Floor(float64(r.Top))), 0)
	x1 := min(int(math.Ceil(float64(r.Right))), c.W)
	y1 := min(int(math.Ceil(float64(r.Bottom))), c.H)
	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x < x1; x++ {
			px := float32(x) + 0.5
			if px < r.Left || px > r.Right || py < r.Top || py > r.Bottom {
				continue
			}
			if inside(px, py) {
				c.Pix[y*c.W+x] = col
			}
		}
	}
}

// Cells packs pixel rows in pairs into half-block cells, reusing dst.
// The grid is W x ceil(H/2).
func (c *Canvas) Cells(q *Quantizer, dst []termbox.Cell) []termbox.Cell {
	rows := (c.H + 1) / 2
	dst = dst[:0]
	for row := 0; row < rows; row++ {
		for x := 0; x < c.W; x++ {
			top := c.Pix[2*row*c.W+x]
			var bottom color.RGBA
			if 2*row+1 < c.H {
				bottom = c.Pix[(2*row+1)*c.W+x]
			}
			dst = append(dst, cell(q, top, bottom))
		}
	}
	return dst
}

func cell(q *Quantizer, top, bottom color.RGBA) termbox.Cell {
	switch {
	case top.A != 0 && bottom.A != 0:
		return termbox.Cell{Ch: '▀', Fg: q.Attribute(top), Bg: q.Attribute(bottom)}
	case top.A != 0:
		return termbox.Cell{Ch: '▀', Fg: q.Attribute(top), Bg: termbox.ColorDefault}
	case bottom.A != 0:
		return termbox.Cell{Ch: '▄', Fg: q.Attribute(bottom), Bg: termbox.ColorDefault}
	default:
		return termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	}
}

func segmentDistance(px, py float32, l widget.Line) float32 {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	t := float32(0)
	if lenSq := dx*dx + dy*dy; lenSq > 0 {
		t = clampf(((px-l.X0)*dx+(py-l.Y0)*dy)/lenSq, 0, 1)
	}
	ex, ey := px-(l.X0+t*dx), py-(l.Y0+t*dy)
	return float32(math.Sqrt(float64(ex*ex + ey*ey)))
}

func intersect(a, b components.Rect) components.Rect {
	return components.Rect{
		Left:   max(a.Left, b.Left),
		Top:    max(a.Top, b.Top),
		Right:  min(a.Right, b.Right),
		Bottom: min(a.Bottom, b.Bottom),
	}
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
