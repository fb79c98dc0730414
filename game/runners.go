package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pthm-cable/rainy/systems"
	"github.com/pthm-cable/rainy/widget"
)

// runners owns one ticker goroutine per widget.
type runners struct {
	g *Game

	cancel  context.CancelFunc
	wg      sync.WaitGroup // tracks active goroutines
	running bool
}

func newRunners(g *Game) *runners {
	return &runners{g: g}
}

// start launches a goroutine per widget.
func (r *runners) start(parent context.Context) {
	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.running = true

	for i := range r.g.trackers {
		r.wg.Add(1)
		go r.run(ctx, r.g.trackers[i])
	}
}

// stop cancels every goroutine and waits for them.
func (r *runners) stop() {
	if !r.running {
		return
	}

	r.cancel()
	r.wg.Wait()
	r.running = false
}

// run ticks one widget until ctx is done. A configuration fault stops the
// widget but not the goroutine, so a later Start resumes ticking.
func (r *runners) run(ctx context.Context, tr *tracker) {
	defer r.wg.Done()

	observe := func(res widget.StepResult) { r.g.record(tr, res) }
	for {
		err := tr.view.Run(ctx, observe)
		if err == nil {
			return
		}
		if !errors.Is(err, systems.ErrInvertedRange) {
			slog.Error("widget stopped", "widget", tr.view.Name(), "error", err)
			return
		}
		r.g.recordFault(tr, err)
	}
}
