package components

// Rect is an axis-aligned rectangle in widget coordinates.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Contains reports whether (x, y) lies inside the rect (right/bottom exclusive).
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Offset returns the rect translated by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Circle is a filled circle.
type Circle struct {
	X, Y   float32
	Radius float32
}

// Bounds returns the circle's bounding rect.
func (c Circle) Bounds() Rect {
	return Rect{Left: c.X - c.Radius, Top: c.Y - c.Radius, Right: c.X + c.Radius, Bottom: c.Y + c.Radius}
}

// CloudShape is a rounded base with two puffs on top.
type CloudShape struct {
	Base       Rect
	BaseRadius float32 // corner radius of the base
	Puffs      [2]Circle
}

// Bounds returns the bounding rect of the whole cloud.
func (c CloudShape) Bounds() Rect {
	b := c.Base
	for _, p := range c.Puffs {
		b = b.Union(p.Bounds())
	}
	return b
}

// Translate returns the cloud moved by (dx, dy).
func (c CloudShape) Translate(dx, dy float32) CloudShape {
	out := c
	out.Base = c.Base.Offset(dx, dy)
	for i := range out.Puffs {
		out.Puffs[i].X += dx
		out.Puffs[i].Y += dy
	}
	return out
}

// Scale returns the cloud scaled by s about the pivot (px, py).
func (c CloudShape) Scale(s, px, py float32) CloudShape {
	sx := func(x float32) float32 { return px + (x-px)*s }
	sy := func(y float32) float32 { return py + (y-py)*s }
	out := CloudShape{
		Base:       Rect{Left: sx(c.Base.Left), Top: sy(c.Base.Top), Right: sx(c.Base.Right), Bottom: sy(c.Base.Bottom)},
		BaseRadius: c.BaseRadius * s,
	}
	for i, p := range c.Puffs {
		out.Puffs[i] = Circle{X: sx(p.X), Y: sy(p.Y), Radius: p.Radius * s}
	}
	return out
}
