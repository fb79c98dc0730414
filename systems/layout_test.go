package systems

import (
	"testing"

	"github.com/pthm-cable/rainy/components"
)

func rectApprox(a, b components.Rect) bool {
	return approx(a.Left, b.Left) && approx(a.Top, b.Top) && approx(a.Right, b.Right) && approx(a.Bottom, b.Bottom)
}

func TestComputeLayoutSquare(t *testing.T) {
	l := ComputeLayout(300, 300, 0.85)

	wantBase := components.Rect{Left: 64.5, Top: 60, Right: 184.5, Bottom: 100}
	if !rectApprox(l.LeftCloud.Base, wantBase) {
		t.Errorf("left base = %+v, want %+v", l.LeftCloud.Base, wantBase)
	}
	if l.LeftCloud.Puffs[0] != (components.Circle{X: 144.5, Y: 60, Radius: 30}) {
		t.Errorf("unexpected big puff %+v", l.LeftCloud.Puffs[0])
	}
	if l.LeftCloud.Puffs[1] != (components.Circle{X: 104.5, Y: 60, Radius: 20}) {
		t.Errorf("unexpected small puff %+v", l.LeftCloud.Puffs[1])
	}

	wantRain := components.Rect{Left: 104.5, Top: 95.5375, Right: 250.325, Bottom: 225}
	if !rectApprox(l.RainRect, wantRain) {
		t.Errorf("rain rect = %+v, want %+v", l.RainRect, wantRain)
	}
	wantClip := components.Rect{Left: 0, Top: 95.5375, Right: 300, Bottom: 225}
	if !rectApprox(l.ClipRect, wantClip) {
		t.Errorf("clip rect = %+v, want %+v", l.ClipRect, wantClip)
	}
	if l.MaxSway != 20 {
		t.Errorf("max sway = %v, want 20", l.MaxSway)
	}
}

func TestComputeLayoutRightCloudSmaller(t *testing.T) {
	l := ComputeLayout(480, 320, 0.85)

	lb := l.LeftCloud.Bounds()
	rb := l.RightCloud.Bounds()
	if !approx(rb.Width(), lb.Width()*0.85) || !approx(rb.Height(), lb.Height()*0.85) {
		t.Errorf("right cloud %vx%v should be 0.85 of left %vx%v", rb.Width(), rb.Height(), lb.Width(), lb.Height())
	}
	if rb.Right <= lb.Right {
		t.Error("right cloud should extend further right")
	}
	if l.RainRect.Empty() {
		t.Error("rain rect should not be empty")
	}
}

func TestComputeLayoutZeroSize(t *testing.T) {
	l := ComputeLayout(0, 0, 0.85)
	if !l.RainRect.Empty() {
		t.Errorf("zero-size widget should have an empty rain rect, got %+v", l.RainRect)
	}
}

func TestCloudOffsets(t *testing.T) {
	l := ComputeLayout(300, 300, 0.85)
	left, right := l.CloudOffsets(1, 1)
	if left != 20 || right != 10 {
		t.Errorf("offsets = (%v, %v), want (20, 10)", left, right)
	}
}
