package game

import (
	"testing"

	"github.com/pthm-cable/rainy/config"
)

func newHeadless(t *testing.T, seed int64) *Game {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("config.Init: %v", err)
	}
	g := NewGameWithOptions(Options{Seed: seed, Headless: true, SnapshotDir: t.TempDir()})
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessAdvancesEveryWidget(t *testing.T) {
	g := newHeadless(t, 1)
	if len(g.Views()) != 2 {
		t.Fatalf("views = %d, want 2", len(g.Views()))
	}

	for range 100 {
		g.UpdateHeadless()
	}

	if g.Tick() != 100 {
		t.Errorf("Tick = %d, want 100", g.Tick())
	}
	for _, tr := range g.trackers {
		if tr.ticks != 100 {
			t.Errorf("%s ticked %d times, want 100", tr.view.Name(), tr.ticks)
		}
		if tr.view.Count() == 0 {
			t.Errorf("%s has no drops after 100 ticks", tr.view.Name())
		}
	}
	if !g.Active() || g.Faults() != 0 {
		t.Errorf("Active = %v, Faults = %d; want running without faults", g.Active(), g.Faults())
	}
}

func TestHeadlessIsDeterministic(t *testing.T) {
	a := newHeadless(t, 42)
	b := newHeadless(t, 42)

	for range 250 {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}

	for i := range a.views {
		fa := a.views[i].Frame(nil)
		fb := b.views[i].Frame(nil)
		if len(fa.Drops) != len(fb.Drops) {
			t.Fatalf("widget %d: %d vs %d drops", i, len(fa.Drops), len(fb.Drops))
		}
		for j := range fa.Drops {
			if fa.Drops[j] != fb.Drops[j] {
				t.Errorf("widget %d drop %d differs: %+v vs %+v", i, j, fa.Drops[j], fb.Drops[j])
			}
		}
	}
}

func TestHeadlessFaultStopsWidget(t *testing.T) {
	g := newHeadless(t, 7)
	v := g.views[0]
	v.SetMinLength(80)

	g.UpdateHeadless()

	if v.Running() {
		t.Error("widget with inverted lengths should stop")
	}
	if g.Faults() != 1 {
		t.Errorf("Faults = %d, want 1", g.Faults())
	}
	if !g.views[1].Running() {
		t.Error("other widget should keep running")
	}
}

func TestToggleAll(t *testing.T) {
	g := newHeadless(t, 3)

	g.toggleAll()
	if g.Active() {
		t.Fatal("toggleAll should stop running widgets")
	}
	g.toggleAll()
	for _, v := range g.views {
		if !v.Running() {
			t.Errorf("%s should be running again", v.Name())
		}
	}
}
