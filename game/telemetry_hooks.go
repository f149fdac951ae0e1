package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
)

// movingSpeed is the barrel speed above which it counts as still sliding.
const movingSpeed = 1e-3

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	onRoad, moving := g.sampleBarrels()
	stats := g.collector.Flush(g.tick, onRoad, moving)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteEvents(g.events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
		g.events = g.events[:0]
	}
}

// sampleBarrels counts barrels still on the road and barrels still sliding.
func (g *Game) sampleBarrels() (onRoad, moving int) {
	g.objects.Each(func(_ int, obj *components.Draggable) {
		if obj.Kind != components.KindBarrel {
			return
		}
		if g.track.OnRoad(obj.Pos) {
			onRoad++
		}
		if r2.Norm(obj.Vel) > movingSpeed {
			moving++
		}
	})
	return onRoad, moving
}
