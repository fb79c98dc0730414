package systems

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
)

// ErrInvertedRange is returned when a configured minimum exceeds its maximum
// at the moment a drop would be spawned.
var ErrInvertedRange = errors.New("minimum value is greater than maximum value")

// RNG is the random source behind every spawn. *rand.Rand satisfies it.
type RNG interface {
	Float32() float32
	Intn(n int) int
}

// SpawnGate decides once per tick whether a new drop may be created.
type SpawnGate struct {
	cfg  config.RainConfig
	pool *DropPool
	rng  RNG

	lastSpawn  int64 // milliseconds
	hasSpawned bool
}

// NewSpawnGate creates a gate drawing drops from pool.
func NewSpawnGate(cfg config.RainConfig, pool *DropPool, rng RNG) *SpawnGate {
	return &SpawnGate{cfg: cfg, pool: pool, rng: rng}
}

// TrySpawn returns a new drop positioned just above rect, or nil when the
// gate refuses. Refusals (capacity, empty rect, interval) are not errors.
// An inverted length or speed range returns ErrInvertedRange and changes nothing.
func (g *SpawnGate) TrySpawn(nowMillis int64, rect components.Rect, active int) (*components.Drop, error) {
	if active >= g.cfg.MaxDrops || rect.Empty() {
		return nil, nil
	}
	if g.hasSpawned && nowMillis-g.lastSpawn < int64(g.cfg.CreationInterval) {
		return nil, nil
	}
	if err := g.checkRanges(); err != nil {
		return nil, err
	}

	g.lastSpawn = nowMillis
	g.hasSpawned = true

	d := g.pool.Obtain()
	d.Slope = g.cfg.Slope
	// Samples [min, min+max), not [min, max).
	d.SpeedX = g.cfg.MinSpeed + g.rng.Float32()*g.cfg.MaxSpeed
	d.SpeedY = d.SpeedX * float32(math.Abs(float64(d.Slope)))

	length := g.cfg.MinLength
	if spread := g.cfg.MaxLength - g.cfg.MinLength; spread > 0 {
		length += g.rng.Intn(spread)
	}
	angle := math.Atan(float64(d.Slope))
	d.XLength = float32(math.Abs(math.Cos(angle) * float64(length)))
	d.YLength = float32(math.Abs(math.Sin(angle) * float64(length)))

	offset := 0
	if w := int(rect.Width()); w > 0 {
		offset = g.rng.Intn(w)
	}
	d.X = rect.Left + float32(offset)
	d.Y = rect.Top - d.YLength

	return d, nil
}

func (g *SpawnGate) checkRanges() error {
	if g.cfg.MinLength > g.cfg.MaxLength {
		return fmt.Errorf("%w: drop length %d > %d", ErrInvertedRange, g.cfg.MinLength, g.cfg.MaxLength)
	}
	if g.cfg.MinSpeed > g.cfg.MaxSpeed {
		return fmt.Errorf("%w: drop speed %g > %g", ErrInvertedRange, g.cfg.MinSpeed, g.cfg.MaxSpeed)
	}
	return nil
}

// LastSpawn returns the time of the last successful spawn and whether one happened.
func (g *SpawnGate) LastSpawn() (int64, bool) {
	return g.lastSpawn, g.hasSpawned
}

// Config returns the gate's current parameters.
func (g *SpawnGate) Config() config.RainConfig {
	return g.cfg
}

// SetConfig replaces the gate's parameters.
func (g *SpawnGate) SetConfig(cfg config.RainConfig) {
	g.cfg = cfg
}
