package ui

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/rainy/components"
)

// ControlAction is what the user asked of a widget this frame.
type ControlAction int

const (
	ActionNone ControlAction = iota
	ActionToggle
	ActionRelease
)

// WidgetControls draws the outline, label and buttons of one widget.
type WidgetControls struct {
	Theme        Theme
	ButtonWidth  float32
	ButtonHeight float32
}

// NewWidgetControls creates widget controls with the default theme.
func NewWidgetControls() *WidgetControls {
	return &WidgetControls{
		Theme:        DefaultTheme(),
		ButtonWidth:  70,
		ButtonHeight: 24,
	}
}

// WidgetState is the part of a widget the controls display.
type WidgetState struct {
	Name     string
	Running  bool
	Released bool
	Drops    int
}

// Draw renders the controls around screen rect r and returns the clicked action.
func (c *WidgetControls) Draw(r components.Rect, st WidgetState) ControlAction {
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: r.Left, Y: r.Top, Width: r.Width(), Height: r.Height()},
		1, c.Theme.Outline,
	)

	x := r.Left
	y := r.Bottom + c.Theme.Padding

	if st.Released {
		rl.DrawText(st.Name+" (released)", int32(x), int32(y+4), 14, c.Theme.Muted)
		return ActionNone
	}

	action := ActionNone
	label := "Start"
	if st.Running {
		label = "Stop"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.ButtonWidth, Height: c.ButtonHeight}, label) {
		action = ActionToggle
	}
	x += c.ButtonWidth + c.Theme.Padding
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.ButtonWidth, Height: c.ButtonHeight}, "Release") {
		action = ActionRelease
	}
	x += c.ButtonWidth + c.Theme.Padding

	text := st.Name
	if st.Running {
		text += " " + strconv.Itoa(st.Drops)
	}
	if fits := r.Right - x; float32(rl.MeasureText(text, 14)) <= fits {
		rl.DrawText(text, int32(x), int32(y+4), 14, c.Theme.Text)
	}
	return action
}
