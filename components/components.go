// Package components defines the plain data types shared by the rain engine,
// the widget and the renderers.
package components

// Drop is a single falling raindrop segment.
// SpeedY is always SpeedX * |Slope|; XLength and YLength are the non-negative
// projections of the drop length at the angle atan(Slope).
type Drop struct {
	X, Y             float32 // head position in widget coordinates
	SpeedX, SpeedY   float32 // per-tick displacement
	XLength, YLength float32
	Slope            float32
}

// Segment returns the line the drop is drawn as.
// Drops lean right only for a strictly positive slope, so a zero slope draws
// leaning left while it still moves right.
func (d *Drop) Segment() (x0, y0, x1, y1 float32) {
	x1 = d.X - d.XLength
	if d.Slope > 0 {
		x1 = d.X + d.XLength
	}
	return d.X, d.Y, x1, d.Y + d.YLength
}

// Advance moves the drop by one tick.
func (d *Drop) Advance() {
	if d.Slope >= 0 {
		d.X += d.SpeedX
	} else {
		d.X -= d.SpeedX
	}
	d.Y += d.SpeedY
}

// Reset zeroes a drop taken from the pool.
func (d *Drop) Reset() {
	*d = Drop{}
}
