package terminal

import (
	"image/color"
	"testing"

	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/widget"
)

var (
	blue  = color.RGBA{R: 0x80, G: 0xB9, B: 0xC5, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func fullClip(w, h float32) components.Rect {
	return components.Rect{Right: w, Bottom: h}
}

func TestCanvasDrawsVerticalLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Draw(widget.Scene{
		Clip:      fullClip(10, 10),
		Drops:     []widget.Line{{X0: 2.5, Y0: 0, X1: 2.5, Y1: 10}},
		DropWidth: 1,
		DropColor: blue,
	})

	for y := range 10 {
		if got := c.At(2, y); got != blue {
			t.Errorf("pixel (2,%d) = %v, want drop color", y, got)
		}
		if c.At(1, y).A != 0 || c.At(3, y).A != 0 {
			t.Errorf("row %d: neighbours of the line should stay empty", y)
		}
	}
}

func TestCanvasClipsDrops(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Draw(widget.Scene{
		Clip:      components.Rect{Top: 5, Right: 10, Bottom: 10},
		Drops:     []widget.Line{{X0: 2.5, Y0: 0, X1: 2.5, Y1: 10}},
		DropWidth: 1,
		DropColor: blue,
	})

	for y := range 10 {
		set := c.At(2, y).A != 0
		if want := y >= 5; set != want {
			t.Errorf("pixel (2,%d) set = %v, want %v", y, set, want)
		}
	}
}

func TestCanvasCloudsCoverDrops(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Draw(widget.Scene{
		Clip:      fullClip(10, 10),
		Drops:     []widget.Line{{X0: 1.5, Y0: 0, X1: 1.5, Y1: 10}},
		DropWidth: 1,
		DropColor: blue,
		Clouds: [2]widget.Cloud{
			{Base: components.Rect{Right: 4, Bottom: 2}, Color: white},
		},
	})

	for y := range 2 {
		for x := range 4 {
			if got := c.At(x, y); got != white {
				t.Errorf("pixel (%d,%d) = %v, want cloud color", x, y, got)
			}
		}
	}
	if got := c.At(1, 5); got != blue {
		t.Errorf("drop below the cloud = %v, want drop color", got)
	}
	if got := c.At(5, 1); got.A != 0 {
		t.Errorf("pixel right of the cloud = %v, want empty", got)
	}
}

func TestCanvasRoundedCorners(t *testing.T) {
	c := NewCanvas(10, 10)
	c.fillRoundedRect(components.Rect{Right: 10, Bottom: 10}, 5, white)

	if c.At(0, 0).A != 0 {
		t.Error("corner pixel should be cut by the radius")
	}
	if c.At(5, 5) != white {
		t.Error("center pixel should be filled")
	}
	if c.At(5, 0) != white {
		t.Error("top edge midpoint should be filled")
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.fillCircle(components.Circle{X: 5, Y: 5, Radius: 2}, white)

	if c.At(4, 4) != white {
		t.Error("pixel at the center should be filled")
	}
	if c.At(1, 5).A != 0 {
		t.Error("pixel outside the radius should stay empty")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Draw(widget.Scene{
		Clip:      fullClip(100, 100),
		Drops:     []widget.Line{{X0: -20, Y0: -20, X1: 50, Y1: 50}},
		DropWidth: 3,
		DropColor: blue,
	})
	if c.At(0, 0) != blue || c.At(3, 3) != blue {
		t.Error("diagonal should cross the canvas")
	}
}

func TestCellsPackHalfBlocks(t *testing.T) {
	q := NewQuantizer()
	c := NewCanvas(3, 3)
	c.Pix[0] = white     // (0,0) top only
	c.Pix[3+1] = white   // (1,1) bottom only
	c.Pix[2] = white     // (2,0) top
	c.Pix[3+2] = blue    // (2,1) bottom
	c.Pix[2*3+0] = white // (0,2) last row, no pair

	cells := c.Cells(q, nil)
	if len(cells) != 3*2 {
		t.Fatalf("cells = %d, want 6", len(cells))
	}

	wa := q.Attribute(white)
	want := []termbox.Cell{
		{Ch: '▀', Fg: wa, Bg: termbox.ColorDefault},
		{Ch: '▄', Fg: wa, Bg: termbox.ColorDefault},
		{Ch: '▀', Fg: wa, Bg: q.Attribute(blue)},
		{Ch: '▀', Fg: wa, Bg: termbox.ColorDefault},
		{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault},
		{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault},
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Resize(5, 4)
	if len(c.Pix) != 20 {
		t.Errorf("len(Pix) = %d, want 20", len(c.Pix))
	}
	c.Resize(-1, 3)
	if c.W != 0 || len(c.Pix) != 0 {
		t.Errorf("negative width should give an empty canvas, got %dx%d", c.W, c.H)
	}
}
