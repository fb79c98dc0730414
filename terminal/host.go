package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/rainy/camera"
	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/widget"
)

// Host draws one widget into the terminal until the user quits or the
// widget faults.
type Host struct {
	view      *widget.View
	frameRate time.Duration

	canvas *Canvas
	quant  *Quantizer
	fit    camera.Transform
	cols   int
	rows   int

	drops []components.Drop
	lines []widget.Line
	cells []termbox.Cell
}

// New creates a host for v redrawing at fps frames per second.
func New(v *widget.View, fps int) *Host {
	if fps <= 0 {
		fps = 30
	}
	return &Host{
		view:      v,
		frameRate: time.Second / time.Duration(fps),
		canvas:    NewCanvas(0, 0),
		quant:     NewQuantizer(),
	}
}

// Run takes over the terminal. It returns nil when the user quits and the
// widget's error when ticking faults.
func (h *Host) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer termbox.Interrupt()

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	faults := make(chan error, 1)
	go func() {
		if err := h.view.Run(ctx, nil); err != nil {
			faults <- err
		}
	}()

	h.resize(termbox.Size())

	ticker := time.NewTicker(h.frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-faults:
			slog.Error("widget fault", "widget", h.view.Name(), "error", err)
			return err
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
					return nil
				}
				if ev.Ch == 's' {
					h.toggle()
				}
			case termbox.EventResize:
				h.resize(ev.Width, ev.Height)
			case termbox.EventError:
				return fmt.Errorf("terminal event: %w", ev.Err)
			}
		case <-ticker.C:
			h.redraw()
		}
	}
}

func (h *Host) toggle() {
	if h.view.Running() {
		h.view.Stop()
		return
	}
	h.view.Start()
}

// resize fits the widget into the terminal, leaving the last row for status.
func (h *Host) resize(cols, rows int) {
	h.cols, h.rows = cols, rows
	pixelRows := max(rows-1, 0) * 2
	h.canvas.Resize(cols, pixelRows)

	layout := h.view.Layout()
	h.fit = camera.Fit(layout.Width, layout.Height, components.Rect{
		Right:  float32(cols),
		Bottom: float32(pixelRows),
	})
	slog.Debug("terminal resized", "cols", cols, "rows", rows, "scale", h.fit.Scale)
}

func (h *Host) redraw() {
	frame := h.view.Frame(h.drops)
	h.drops = frame.Drops
	scene := frame.Scene(h.fit, h.lines)
	h.lines = scene.Drops

	h.canvas.Clear()
	h.canvas.Draw(scene)
	h.cells = h.canvas.Cells(h.quant, h.cells)

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	copy(termbox.CellBuffer(), h.cells)
	h.status(frame)
	termbox.Flush()
}

func (h *Host) status(frame widget.Frame) {
	state := "stopped"
	if frame.Running {
		state = "running"
	}
	line := fmt.Sprintf(" %s | %s | drops %d | s: start/stop  q: quit", h.view.Name(), state, len(frame.Drops))
	y := h.rows - 1
	x := 0
	for _, r := range line {
		if x >= h.cols {
			break
		}
		termbox.SetCell(x, y, r, termbox.ColorDefault, termbox.ColorDefault)
		x++
	}
}
