// Package systems holds the rain simulation: the drop engine, its spawn gate
// and pool, the cloud sway animators and the widget layout.
package systems

import (
	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
)

// TickResult reports what one engine tick did.
// Drops and Spawned point into engine-owned memory and are only valid until
// the next call into the engine.
type TickResult struct {
	Drops     []*components.Drop
	AnyActive bool
	Spawned   *components.Drop // nil when the gate refused
	Retired   int
}

// RainSystem owns the active drops and advances them each tick.
type RainSystem struct {
	drops   []*components.Drop
	retired []*components.Drop
	pool    *DropPool
	gate    *SpawnGate
}

// NewRainSystem creates an engine. cfg is normalized before use.
func NewRainSystem(cfg config.RainConfig, rng RNG) *RainSystem {
	cfg.Normalize()
	pool := NewDropPool(cfg.MaxDrops)
	return &RainSystem{
		drops:   make([]*components.Drop, 0, cfg.MaxDrops),
		retired: make([]*components.Drop, 0, cfg.MaxDrops),
		pool:    pool,
		gate:    NewSpawnGate(cfg, pool, rng),
	}
}

// Tick spawns, advances and retires drops, in that order.
// A drop retires once Y - YLength passes rect.Bottom. On ErrInvertedRange
// the tick stops before anything moves.
func (s *RainSystem) Tick(nowMillis int64, rect components.Rect) (TickResult, error) {
	spawned, err := s.gate.TrySpawn(nowMillis, rect, len(s.drops))
	if err != nil {
		return TickResult{Drops: s.drops, AnyActive: len(s.drops) > 0}, err
	}
	if spawned != nil {
		s.drops = append(s.drops, spawned)
	}

	s.retired = s.retired[:0]
	alive := 0
	for _, d := range s.drops {
		if d.Y-d.YLength > rect.Bottom {
			s.retired = append(s.retired, d)
			continue
		}
		d.Advance()

		// Keep drop
		s.drops[alive] = d
		alive++
	}
	clear(s.drops[alive:])
	s.drops = s.drops[:alive]

	for _, d := range s.retired {
		s.pool.Release(d)
	}
	retired := len(s.retired)
	clear(s.retired)

	return TickResult{
		Drops:     s.drops,
		AnyActive: len(s.drops) > 0,
		Spawned:   spawned,
		Retired:   retired,
	}, nil
}

// Drops returns the active drops. The slice is engine-owned; do not modify.
func (s *RainSystem) Drops() []*components.Drop {
	return s.drops
}

// Snapshot appends a copy of every active drop to dst.
func (s *RainSystem) Snapshot(dst []components.Drop) []components.Drop {
	for _, d := range s.drops {
		dst = append(dst, *d)
	}
	return dst
}

// Count returns the current number of active drops.
func (s *RainSystem) Count() int {
	return len(s.drops)
}

// PoolLen returns the number of retired drops waiting for reuse.
func (s *RainSystem) PoolLen() int {
	return s.pool.Len()
}

// Allocated returns how many drop instances the engine has ever allocated.
func (s *RainSystem) Allocated() int {
	return s.pool.Allocated()
}

// Config returns the current rain parameters.
func (s *RainSystem) Config() config.RainConfig {
	return s.gate.Config()
}

// SetConfig normalizes and applies new rain parameters. Active drops keep
// their speeds and lengths; only future spawns see the change.
func (s *RainSystem) SetConfig(cfg config.RainConfig) {
	cfg.Normalize()
	s.gate.SetConfig(cfg)
	s.pool.SetCapacity(cfg.MaxDrops)
}

// Release discards every active and pooled drop.
func (s *RainSystem) Release() {
	clear(s.drops)
	s.drops = s.drops[:0]
	clear(s.retired)
	s.retired = s.retired[:0]
	s.pool.Clear()
}
