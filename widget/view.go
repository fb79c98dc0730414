// Package widget is the embeddable rain view: two swaying clouds over a rain
// engine, driven by a periodic ticker and read by renderers one frame at a time.
package widget

import (
	"context"
	"image/color"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
	"github.com/pthm-cable/rainy/systems"
)

// Options configures a new View.
type Options struct {
	Widget  config.WidgetConfig
	Clouds  config.CloudsConfig
	Palette config.Palette
	RNG     systems.RNG  // nil = time-seeded source
	Logger  *slog.Logger // nil = slog.Default()
}

// Frame is everything a renderer needs for one draw. Drops are copies.
type Frame struct {
	Drops      []components.Drop
	LeftPhase  float32
	RightPhase float32
	Layout     systems.Layout
	Palette    config.Palette
	DropSize   int
	Running    bool
}

// StepResult summarizes one Step.
type StepResult struct {
	Ticked    bool // false when the view is stopped or released
	Spawned   bool
	Drop      components.Drop // the spawned drop, valid when Spawned
	Retired   int
	Active    int
	AnyActive bool
	PoolLen   int
	Allocated int
}

// View is a rain widget. All methods are safe for concurrent use; ticks are
// serialized with configuration changes and frame reads.
type View struct {
	mu sync.Mutex

	name   string
	tick   time.Duration
	scale  float32
	layout systems.Layout

	rain        *systems.RainSystem
	left, right *systems.Sway
	palette     config.Palette

	running  bool
	released bool
	lastStep time.Time

	logger *slog.Logger
}

// New creates a view sized from opts.Widget and starts it.
func New(opts Options) *View {
	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clouds := opts.Clouds
	if clouds.LeftPeriod <= 0 {
		clouds.LeftPeriod = config.DefaultLeftCloudPeriod
	}
	if clouds.RightPeriod <= 0 {
		clouds.RightPeriod = config.DefaultRightCloudPeriod
	}
	if clouds.ScaleRatio <= 0 {
		clouds.ScaleRatio = config.DefaultCloudScaleRatio
	}

	tick := opts.Widget.TickDuration()
	if tick <= 0 {
		tick = config.DefaultTickInterval * time.Millisecond
	}

	v := &View{
		name:    opts.Widget.Name,
		tick:    tick,
		scale:   clouds.ScaleRatio,
		rain:    systems.NewRainSystem(opts.Widget.Rain, rng),
		left:    systems.NewSway(0, 1, time.Duration(clouds.LeftPeriod)*time.Millisecond),
		right:   systems.NewSway(1, 0, time.Duration(clouds.RightPeriod)*time.Millisecond),
		palette: opts.Palette,
		logger:  logger.With("widget", opts.Widget.Name),
	}
	v.Resize(opts.Widget.Width, opts.Widget.Height)
	return v
}

// Resize recomputes the layout for a w x h widget and restarts the
// animation from the beginning. Active drops keep falling in the new rect.
func (v *View) Resize(w, h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.layout = systems.ComputeLayout(w, h, v.scale)
	v.left.Reset()
	v.right.Reset()

	if v.released {
		return
	}
	v.startLocked()
	v.logger.Debug("resized", "width", w, "height", h, "rain_rect", v.layout.RainRect)
}

// Start resumes ticking and the cloud sway from where Stop left them.
// It has no effect after Release.
func (v *View) Start() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.released {
		v.logger.Warn("start ignored on released view")
		return
	}
	v.startLocked()
}

func (v *View) startLocked() {
	if v.running {
		return
	}
	v.running = true
	v.lastStep = time.Time{}
	v.left.Start()
	v.right.Start()
	v.logger.Debug("started")
}

// Stop halts ticking and preserves all state. Calling it again is a no-op.
func (v *View) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

func (v *View) stopLocked() {
	if !v.running {
		return
	}
	v.running = false
	v.left.Stop()
	v.right.Stop()
	v.logger.Debug("stopped")
}

// Release stops the view and discards every drop. It cannot be undone.
func (v *View) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.rain.Release()
	v.released = true
	v.logger.Debug("released")
}

// Step advances the clouds by the time since the previous step and runs one
// rain tick. A configuration fault stops the view and is returned.
func (v *View) Step(now time.Time) (StepResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.running || v.released {
		return StepResult{}, nil
	}

	if !v.lastStep.IsZero() {
		dt := now.Sub(v.lastStep)
		v.left.Advance(dt)
		v.right.Advance(dt)
	}
	v.lastStep = now

	res, err := v.rain.Tick(now.UnixMilli(), v.layout.RainRect)
	if err != nil {
		v.stopLocked()
		v.logger.Error("rain tick failed", "error", err)
		return StepResult{Active: v.rain.Count(), AnyActive: res.AnyActive}, err
	}

	out := StepResult{
		Ticked:    true,
		Retired:   res.Retired,
		Active:    len(res.Drops),
		AnyActive: res.AnyActive,
		PoolLen:   v.rain.PoolLen(),
		Allocated: v.rain.Allocated(),
	}
	if res.Spawned != nil {
		out.Spawned = true
		out.Drop = *res.Spawned
	}
	return out, nil
}

// Run steps the view every tick interval until ctx is done or a step fails.
// observe, when non-nil, sees every step that ticked.
func (v *View) Run(ctx context.Context, observe func(StepResult)) error {
	ticker := time.NewTicker(v.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			res, err := v.Step(now)
			if err != nil {
				return err
			}
			if observe != nil && res.Ticked {
				observe(res)
			}
		}
	}
}

// Frame copies the current state for a renderer, reusing dst's storage.
func (v *View) Frame(dst []components.Drop) Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	cfg := v.rain.Config()
	return Frame{
		Drops:      v.rain.Snapshot(dst[:0]),
		LeftPhase:  v.left.Value(),
		RightPhase: v.right.Value(),
		Layout:     v.layout,
		Palette:    v.palette,
		DropSize:   cfg.DropSize,
		Running:    v.running,
	}
}

// Name returns the configured widget name.
func (v *View) Name() string {
	return v.name
}

// TickInterval returns the cadence Run ticks at.
func (v *View) TickInterval() time.Duration {
	return v.tick
}

// Running reports whether the view is ticking.
func (v *View) Running() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.running
}

// Released reports whether Release has been called.
func (v *View) Released() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.released
}

// Layout returns the current geometry.
func (v *View) Layout() systems.Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// Count returns the number of active drops.
func (v *View) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rain.Count()
}

// PoolLen returns the number of pooled drops.
func (v *View) PoolLen() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rain.PoolLen()
}

// Allocated returns how many drop instances have been allocated.
func (v *View) Allocated() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rain.Allocated()
}

// Palette returns the current colors.
func (v *View) Palette() config.Palette {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.palette
}

// SetLeftCloudColor sets the left cloud fill.
func (v *View) SetLeftCloudColor(c color.RGBA) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.palette.LeftCloud = c
}

// SetRightCloudColor sets the right cloud fill.
func (v *View) SetRightCloudColor(c color.RGBA) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.palette.RightCloud = c
}

// SetDropColor sets the raindrop stroke color.
func (v *View) SetDropColor(c color.RGBA) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.palette.Drop = c
}

// RainConfig returns the engine configuration.
func (v *View) RainConfig() config.RainConfig {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rain.Config()
}

// SetRainConfig replaces the engine configuration after normalizing it.
// Inverted ranges are kept and surface as a fault on the next spawn.
func (v *View) SetRainConfig(cfg config.RainConfig) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rain.SetConfig(cfg)
}

func (v *View) updateRain(fn func(*config.RainConfig)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cfg := v.rain.Config()
	fn(&cfg)
	v.rain.SetConfig(cfg)
}

func (v *View) SetMaxDrops(n int) { v.updateRain(func(c *config.RainConfig) { c.SetMaxDrops(n) }) }
func (v *View) SetCreationInterval(ms int) { v.updateRain(func(c *config.RainConfig) { c.SetCreationInterval(ms) }) }
func (v *View) SetMinLength(n int) { v.updateRain(func(c *config.RainConfig) { c.SetMinLength(n) }) }
func (v *View) SetMaxLength(n int) { v.updateRain(func(c *config.RainConfig) { c.SetMaxLength(n) }) }
func (v *View) SetMinSpeed(s float32) { v.updateRain(func(c *config.RainConfig) { c.SetMinSpeed(s) }) }
func (v *View) SetMaxSpeed(s float32) { v.updateRain(func(c *config.RainConfig) { c.SetMaxSpeed(s) }) }
func (v *View) SetSlope(s float32) { v.updateRain(func(c *config.RainConfig) { c.SetSlope(s) }) }
func (v *View) SetDropSize(n int) { v.updateRain(func(c *config.RainConfig) { c.SetDropSize(n) }) }

func (v *View) MaxDrops() int { return v.RainConfig().MaxDrops }
func (v *View) CreationInterval() int { return v.RainConfig().CreationInterval }
func (v *View) MinLength() int { return v.RainConfig().MinLength }
func (v *View) MaxLength() int { return v.RainConfig().MaxLength }
func (v *View) MinSpeed() float32 { return v.RainConfig().MinSpeed }
func (v *View) MaxSpeed() float32 { return v.RainConfig().MaxSpeed }
func (v *View) Slope() float32 { return v.RainConfig().Slope }
func (v *View) DropSize() int { return v.RainConfig().DropSize }
