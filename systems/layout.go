package systems

import "github.com/pthm-cable/rainy/components"

// Layout is the widget geometry for one size: both clouds, where rain falls,
// where it is clipped, and how far the clouds sway.
type Layout struct {
	Width, Height float32
	LeftCloud     components.CloudShape
	RightCloud    components.CloudShape
	RainRect      components.Rect
	ClipRect      components.Rect
	MaxSway       float32
}

// ComputeLayout builds the geometry for a w x h widget. scale is the right
// cloud's size relative to the left one.
func ComputeLayout(w, h, scale float32) Layout {
	minSize := min(w, h)

	cloudW := minSize / 2.5
	bottomH := cloudW / 3
	radius := bottomH

	rightShift := cloudW * 2 / 3
	leftEndX := (w-cloudW-cloudW*scale/2)/2 + cloudW
	endY := h / 3

	topY := endY - bottomH
	left := components.CloudShape{
		Base:       components.Rect{Left: leftEndX - cloudW, Top: topY, Right: leftEndX, Bottom: endY},
		BaseRadius: bottomH,
		Puffs: [2]components.Circle{
			{X: leftEndX - radius, Y: topY, Radius: radius * 3 / 4},
			{X: leftEndX - cloudW + radius, Y: topY, Radius: radius / 2},
		},
	}
	leftBounds := left.Bounds()

	// Shift right and up, then shrink about the right cloud's anchor
	pivotX := rightShift + w/2 - cloudW/2
	right := left.
		Translate(rightShift, -leftBounds.Height()*(1-scale)/2).
		Scale(scale, pivotX, endY)
	rightBounds := right.Bounds()

	rain := components.Rect{
		Left:   leftBounds.Left + radius,
		Top:    rightBounds.Bottom,
		Right:  rightBounds.Right,
		Bottom: h * 3 / 4,
	}

	return Layout{
		Width:      w,
		Height:     h,
		LeftCloud:  left,
		RightCloud: right,
		RainRect:   rain,
		ClipRect:   components.Rect{Left: 0, Top: rain.Top, Right: w, Bottom: rain.Bottom},
		MaxSway:    radius / 2,
	}
}

// CloudOffsets returns the horizontal shift of each cloud for the given
// sway phases.
func (l Layout) CloudOffsets(leftPhase, rightPhase float32) (leftDX, rightDX float32) {
	return l.MaxSway * leftPhase, l.MaxSway / 2 * rightPhase
}
