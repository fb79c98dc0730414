package terminal

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"
)

// cubeLevels are the channel values of the xterm 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Quantizer maps RGB colors to the nearest xterm-256 entry in Lab space.
// Only indices 16-255 are used since the first 16 are themeable.
type Quantizer struct {
	palette []colorful.Color
	cache   map[color.RGBA]termbox.Attribute
}

// NewQuantizer builds the xterm cube and grayscale ramp.
func NewQuantizer() *Quantizer {
	q := &Quantizer{
		palette: make([]colorful.Color, 0, 240),
		cache:   make(map[color.RGBA]termbox.Attribute),
	}
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				q.palette = append(q.palette, fromRGB(cubeLevels[r], cubeLevels[g], cubeLevels[b]))
			}
		}
	}
	for i := range 24 {
		v := uint8(8 + 10*i)
		q.palette = append(q.palette, fromRGB(v, v, v))
	}
	return q
}

// Index returns the xterm color index nearest to c.
func (q *Quantizer) Index(c color.RGBA) int {
	target := fromRGB(c.R, c.G, c.B)
	best, bestDist := 0, -1.0
	for i, p := range q.palette {
		if d := target.DistanceLab(p); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return 16 + best
}

// Attribute returns the termbox attribute for c in Output256 mode.
func (q *Quantizer) Attribute(c color.RGBA) termbox.Attribute {
	c.A = 0xff
	if a, ok := q.cache[c]; ok {
		return a
	}
	a := termbox.Attribute(q.Index(c) + 1)
	q.cache[c] = a
	return a
}

func fromRGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
