package game

import "github.com/pthm-cable/rainy/telemetry"

// UpdateHeadless advances the virtual clock by one step and ticks every
// widget that is due. Nothing sleeps, so a run is as fast as the CPU allows
// and fully determined by the seed.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()

	for _, tr := range g.trackers {
		if tr.next.After(g.clock) {
			continue
		}
		tr.next = tr.next.Add(tr.view.TickInterval())

		g.perfCollector.StartPhase(telemetry.PhaseStep)
		res, err := tr.view.Step(g.clock)

		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		if err != nil {
			g.recordFault(tr, err)
			continue
		}
		if res.Ticked {
			g.record(tr, res)
		}
	}

	g.perfCollector.EndTick()
	g.tick++
	g.flushPerf(g.tick)
	g.clock = g.clock.Add(g.baseTick)
}
