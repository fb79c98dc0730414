package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/rainy/components"
	"github.com/pthm-cable/rainy/config"
)

// stubRNG returns fixed values so spawns are predictable.
type stubRNG struct {
	f float32
	n int
}

func (r stubRNG) Float32() float32 { return r.f }

func (r stubRNG) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// scenarioConfig is the single-drop setup used by the end-to-end tests.
func scenarioConfig() config.RainConfig {
	return config.RainConfig{
		MaxDrops:         1,
		CreationInterval: 50,
		MinLength:        10,
		MaxLength:        10,
		MinSpeed:         1,
		MaxSpeed:         1,
		Slope:            -3,
		DropSize:         2,
	}
}

var scenarioRect = components.Rect{Left: 0, Top: 0, Right: 100, Bottom: 200}

func TestRainSystemScenario(t *testing.T) {
	s := NewRainSystem(scenarioConfig(), stubRNG{})

	// t=0: spawn admitted and advanced once in the same tick
	res, err := s.Tick(0, scenarioRect)
	if err != nil {
		t.Fatalf("tick 0: %v", err)
	}
	if res.Spawned == nil || s.Count() != 1 {
		t.Fatalf("expected one spawned drop, got spawned=%v count=%d", res.Spawned, s.Count())
	}
	d := s.Drops()[0]
	yLength := d.YLength
	if d.SpeedX != 1 || d.SpeedY != 3 {
		t.Errorf("expected speed (1, 3), got (%v, %v)", d.SpeedX, d.SpeedY)
	}
	if want := -yLength + d.SpeedY; d.Y != want {
		t.Errorf("after first tick expected y=%v, got %v", want, d.Y)
	}

	// t=10: interval refuses, the drop still advances
	prevY := d.Y
	res, err = s.Tick(10, scenarioRect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Spawned != nil {
		t.Error("spawn should be refused inside the interval")
	}
	if d.Y != prevY+3 {
		t.Errorf("expected drop to advance to %v, got %v", prevY+3, d.Y)
	}

	// Keep ticking every 10ms: capacity refuses spawns until the drop retires
	retiredAt := -1
	respawnAt := -1
	for tick := 2; tick < 200; tick++ {
		now := int64(tick * 10)
		res, err := s.Tick(now, scenarioRect)
		if err != nil {
			t.Fatal(err)
		}
		if res.Retired > 0 && retiredAt < 0 {
			retiredAt = tick
			if res.AnyActive {
				t.Error("expected no active drops right after retirement")
			}
		}
		if res.Spawned != nil {
			if retiredAt < 0 {
				t.Fatalf("spawn at tick %d while at capacity", tick)
			}
			respawnAt = tick
			break
		}
	}

	// y before tick k is 3k - yLength; it retires once 3k - 2*yLength > 200
	wantRetire := int(math.Floor(float64(200+2*yLength)/3)) + 1
	if retiredAt != wantRetire {
		t.Errorf("expected retirement at tick %d, got %d", wantRetire, retiredAt)
	}
	if respawnAt != retiredAt+1 {
		t.Errorf("expected respawn on the tick after retirement (%d), got %d", retiredAt+1, respawnAt)
	}
	if s.Allocated() != 1 {
		t.Errorf("expected the retired drop to be reused, allocated=%d", s.Allocated())
	}
}

func TestRainSystemNegativeSlopeDrift(t *testing.T) {
	cfg := scenarioConfig()
	cfg.MinSpeed = 2
	cfg.MaxSpeed = 2
	s := NewRainSystem(cfg, stubRNG{})

	if _, err := s.Tick(0, scenarioRect); err != nil {
		t.Fatal(err)
	}
	d := s.Drops()[0]
	if d.SpeedX != 2 || d.SpeedY != 6 {
		t.Fatalf("expected speed (2, 6), got (%v, %v)", d.SpeedX, d.SpeedY)
	}

	for i := 1; i < 10; i++ {
		x, y := d.X, d.Y
		if _, err := s.Tick(int64(i*10), scenarioRect); err != nil {
			t.Fatal(err)
		}
		if d.X != x-2 {
			t.Errorf("tick %d: expected x to decrease to %v, got %v", i, x-2, d.X)
		}
		if d.Y != y+6 {
			t.Errorf("tick %d: expected y to increase to %v, got %v", i, y+6, d.Y)
		}
	}
}

func TestRainSystemPositiveSlopeDrift(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Slope = 2
	s := NewRainSystem(cfg, stubRNG{})

	if _, err := s.Tick(0, scenarioRect); err != nil {
		t.Fatal(err)
	}
	d := s.Drops()[0]
	x := d.X
	if _, err := s.Tick(10, scenarioRect); err != nil {
		t.Fatal(err)
	}
	if d.X != x+d.SpeedX {
		t.Errorf("expected x to increase by %v, got %v -> %v", d.SpeedX, x, d.X)
	}
}

func TestRainSystemCapacityNeverExceeded(t *testing.T) {
	cfg := config.DefaultRain()
	cfg.MaxDrops = 4
	cfg.CreationInterval = 0
	s := NewRainSystem(cfg, rand.New(rand.NewSource(7)))

	for tick := 0; tick < 500; tick++ {
		before := s.Count()
		res, err := s.Tick(int64(tick*20), scenarioRect)
		if err != nil {
			t.Fatal(err)
		}
		if before == cfg.MaxDrops && res.Spawned != nil {
			t.Fatalf("tick %d: spawned while at capacity", tick)
		}
		if s.Count() > cfg.MaxDrops {
			t.Fatalf("tick %d: %d active drops, max %d", tick, s.Count(), cfg.MaxDrops)
		}
	}
}

func TestRainSystemReusesDrops(t *testing.T) {
	cfg := config.DefaultRain()
	cfg.MaxDrops = 5
	cfg.CreationInterval = 0
	rect := components.Rect{Left: 0, Top: 0, Right: 50, Bottom: 30}
	s := NewRainSystem(cfg, rand.New(rand.NewSource(42)))

	seen := make(map[*components.Drop]struct{})
	retirements := 0
	for tick := 0; tick < 5000; tick++ {
		res, err := s.Tick(int64(tick*20), rect)
		if err != nil {
			t.Fatal(err)
		}
		retirements += res.Retired
		for _, d := range res.Drops {
			seen[d] = struct{}{}
		}
	}

	if retirements < 100 {
		t.Fatalf("expected many spawn/retire cycles, got %d retirements", retirements)
	}
	if len(seen) > cfg.MaxDrops+1 {
		t.Errorf("expected at most %d distinct drops, saw %d", cfg.MaxDrops+1, len(seen))
	}
	if s.Allocated() > cfg.MaxDrops+1 {
		t.Errorf("expected at most %d allocations, got %d", cfg.MaxDrops+1, s.Allocated())
	}
	if s.PoolLen() > cfg.MaxDrops {
		t.Errorf("pool holds %d drops, capacity %d", s.PoolLen(), cfg.MaxDrops)
	}
}

func TestRainSystemInvertedConfigLeavesStateAlone(t *testing.T) {
	cfg := scenarioConfig()
	cfg.MaxDrops = 3
	s := NewRainSystem(cfg, stubRNG{})

	if _, err := s.Tick(0, scenarioRect); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(50, scenarioRect); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot(nil)

	bad := s.Config()
	bad.MinLength = 50
	bad.MaxLength = 10
	s.SetConfig(bad)

	_, err := s.Tick(100, scenarioRect)
	if !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}

	after := s.Snapshot(nil)
	if len(after) != len(before) {
		t.Fatalf("active count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("drop %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if last, _ := s.gate.LastSpawn(); last != 50 {
		t.Errorf("last spawn time should stay 50, got %d", last)
	}

	// Fixing the configuration resumes normally
	s.SetConfig(scenarioConfig())
	if _, err := s.Tick(110, scenarioRect); err != nil {
		t.Errorf("expected recovery after fix, got %v", err)
	}
}

func TestRainSystemInvertedSpeed(t *testing.T) {
	cfg := scenarioConfig()
	cfg.MinSpeed = 4
	cfg.MaxSpeed = 1
	s := NewRainSystem(cfg, stubRNG{})

	if _, err := s.Tick(0, scenarioRect); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}
	if s.Count() != 0 || s.Allocated() != 0 {
		t.Errorf("fault must not create drops: count=%d allocated=%d", s.Count(), s.Allocated())
	}
}

func TestRainSystemSnapshotIsACopy(t *testing.T) {
	s := NewRainSystem(scenarioConfig(), stubRNG{})
	if _, err := s.Tick(0, scenarioRect); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot(nil)
	snap[0].X = -999
	if s.Drops()[0].X == -999 {
		t.Error("snapshot should not alias engine drops")
	}
}

func TestRainSystemRelease(t *testing.T) {
	cfg := config.DefaultRain()
	cfg.CreationInterval = 0
	s := NewRainSystem(cfg, rand.New(rand.NewSource(1)))
	rect := components.Rect{Left: 0, Top: 0, Right: 40, Bottom: 20}

	for tick := 0; tick < 200; tick++ {
		if _, err := s.Tick(int64(tick), rect); err != nil {
			t.Fatal(err)
		}
	}
	if s.Count() == 0 && s.PoolLen() == 0 {
		t.Fatal("expected drops before release")
	}

	s.Release()
	if s.Count() != 0 || s.PoolLen() != 0 {
		t.Errorf("release left count=%d pool=%d", s.Count(), s.PoolLen())
	}
}

func TestRainSystemShrinkCapacity(t *testing.T) {
	cfg := config.DefaultRain()
	cfg.MaxDrops = 6
	cfg.CreationInterval = 0
	s := NewRainSystem(cfg, rand.New(rand.NewSource(3)))
	rect := components.Rect{Left: 0, Top: 0, Right: 40, Bottom: 20}

	for tick := 0; tick < 10; tick++ {
		if _, err := s.Tick(int64(tick), rect); err != nil {
			t.Fatal(err)
		}
	}

	cfg.MaxDrops = 0
	s.SetConfig(cfg)
	for tick := 10; tick < 500; tick++ {
		res, err := s.Tick(int64(tick), rect)
		if err != nil {
			t.Fatal(err)
		}
		if res.Spawned != nil {
			t.Fatal("no spawns expected with max drops 0")
		}
	}
	if s.Count() != 0 {
		t.Errorf("expected every drop to retire, %d left", s.Count())
	}
	if s.PoolLen() != 0 {
		t.Errorf("pool should respect capacity 0, holds %d", s.PoolLen())
	}
}
