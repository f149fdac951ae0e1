package game

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/geom"
	"github.com/pthm-cable/donuts/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs the per-phase step timing.
func (g *Game) logPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Tick %d (speed %dx) | FPS: %.0f ===", g.tick, g.stepsPerUpdate, stats.FPS)
	Logf("Avg step time: %s (min %s, max %s)",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MinTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond))

	for _, phase := range telemetry.Phases {
		Logf("  %-12s %10s  %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), stats.PhasePct[phase])
	}
	Logf("")
}

// logWorldState logs the car, the hook and the objects.
func (g *Game) logWorldState() {
	car := &g.car
	Logf("=== Tick %d (%.1fs) ===", g.tick, g.SimTime())
	Logf("Car: pos=(%.2f,%.2f) heading=%.1f° speed=%.4f throttle=%v road=%v",
		car.Pos.X, car.Pos.Y, geom.VecToAngle(car.Dir)*180/math.Pi, car.Speed, car.Throttle.Phase, g.track.OnRoad(car.Pos))

	tip := g.hook.Tip(g.Dock())
	Logf("Hook: %s tip=(%.2f,%.2f)", g.hook.Mode(), tip.X, tip.Y)
	if i, ok := g.hook.Held(); ok {
		obj := g.objects.At(i)
		Logf("  holding %s #%d at (%.2f,%.2f)", obj.Kind, i, obj.Pos.X, obj.Pos.Y)
	}

	onRoad, sliding := g.sampleBarrels()
	Logf("Barrels: %d (on road: %d, sliding: %d) Rocks: %d",
		g.objects.Count(components.KindBarrel), onRoad, sliding, g.objects.Count(components.KindRock))
	Logf("")
}
