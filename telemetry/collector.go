package telemetry

import "time"

// Collector accumulates rain events within time windows and produces WindowStats.
type Collector struct {
	widget              string
	windowDurationSec   float64
	windowDurationTicks int64
	tickSec             float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	spawns      int
	retirements int
	faults      int

	// Per-tick samples
	activeSum   int
	activeMax   int
	activeTicks int

	// Spawned drop samples
	speeds  []float64
	lengths []float64
}

// NewCollector creates a stats collector for one widget.
// windowDurationSec: how long each stats window lasts in simulated seconds
// tick: simulated time per tick
func NewCollector(widget string, windowDurationSec float64, tick time.Duration) *Collector {
	tickSec := tick.Seconds()
	if tickSec <= 0 {
		tickSec = 0.02
	}
	ticksPerWindow := int64(windowDurationSec / tickSec)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		widget:              widget,
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tickSec:             tickSec,
	}
}

// RecordSpawn records a spawned drop's horizontal speed and vertical length.
func (c *Collector) RecordSpawn(speed, length float32) {
	c.spawns++
	c.speeds = append(c.speeds, float64(speed))
	c.lengths = append(c.lengths, float64(length))
}

// RecordRetired records n retired drops.
func (c *Collector) RecordRetired(n int) {
	c.retirements += n
}

// RecordFault records a tick aborted by an invalid configuration.
func (c *Collector) RecordFault() {
	c.faults++
}

// SampleActive records the active drop count after a tick.
func (c *Collector) SampleActive(n int) {
	c.activeSum += n
	c.activeTicks++
	if n > c.activeMax {
		c.activeMax = n
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// active, pooled and allocated are the engine's counts at currentTick.
func (c *Collector) Flush(currentTick int64, active, pooled, allocated int) WindowStats {
	var activeMean float64
	if c.activeTicks > 0 {
		activeMean = float64(c.activeSum) / float64(c.activeTicks)
	}

	var spawnRate float64
	if elapsed := float64(currentTick-c.windowStartTick) * c.tickSec; elapsed > 0 {
		spawnRate = float64(c.spawns) / elapsed
	}

	speed := Summarize(c.speeds)
	length := Summarize(c.lengths)

	stats := WindowStats{
		Widget:          c.widget,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tickSec,

		Active:    active,
		Pooled:    pooled,
		Allocated: allocated,

		Spawns:      c.spawns,
		Retirements: c.retirements,
		Faults:      c.faults,
		SpawnRate:   spawnRate,

		ActiveMean: activeMean,
		ActiveMax:  c.activeMax,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		LengthMean: length.Mean,
		LengthP50:  length.P50,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.retirements = 0
	c.faults = 0
	c.activeSum = 0
	c.activeMax = 0
	c.activeTicks = 0
	c.speeds = c.speeds[:0]
	c.lengths = c.lengths[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
