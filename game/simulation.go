package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/telemetry"
)

// Step advances the simulation by one tick.
//
// The phase order is fixed: hook, vehicle, objects, fire, collide, contacts. The
// object store never removes or reorders objects, so an index taken from a Can tag or
// from the hook stays valid for the whole tick.
func (g *Game) Step(in Input) {
	g.perfCollector.StartTick()
	now := g.SimTime()

	g.perfCollector.StartPhase(telemetry.PhaseHook)
	g.updateHook(g.Dock(), in.Aim, now)

	g.perfCollector.StartPhase(telemetry.PhaseVehicle)
	g.vehicles.Update(&g.car, systems.VehicleInput{
		Accelerate: in.Accelerate,
		Left:       in.Left,
		Right:      in.Right,
	}, g.track.Friction(g.car.Pos), now)

	g.perfCollector.StartPhase(telemetry.PhaseObjects)
	g.objects.SlideAll(g.track.Friction)

	// The car has moved, everything from here on uses the new dock
	dock := g.Dock()

	g.perfCollector.StartPhase(telemetry.PhaseFire)
	if in.Fire {
		g.fire(dock, now)
	}

	g.perfCollector.StartPhase(telemetry.PhaseCollide)
	g.circles = g.gatherCircles(g.circles[:0])
	g.arena.Collide(g.circles)

	g.perfCollector.StartPhase(telemetry.PhaseContacts)
	contacts := g.arena.DrainContacts()
	g.routeContacts(contacts, dock)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	_, holding := g.hook.Held()
	g.collector.RecordContacts(len(contacts))
	g.collector.RecordTick(g.car.Speed, holding, !g.track.OnRoad(g.car.Pos))

	g.perfCollector.EndTick()

	g.tick++
	g.flushTelemetry()
}

// updateHook runs the per-state hook update.
func (g *Game) updateHook(dock, aim r2.Vec, now float64) {
	switch st := g.hook.State().(type) {
	case systems.HookReady:
		g.hook.Face(dock, aim)
	case systems.HookLaunched:
		g.hook.Fly(dock, now)
		if g.hook.Mode() == systems.ModeRetracting {
			g.recordEvent(telemetry.EventExhaust, -1, g.hook.Tip(dock), st.Speed*g.cfg.Hook.FlightDamping)
		}
	case systems.HookRetracting:
		g.hook.Fly(dock, now)
	case systems.HookLocked:
		g.hook.Drag(dock, g.objects.At(st.Held))
	}
}

// fire handles a trigger press: launch when ready, pull back a flying hook, or let go
// of the held object.
func (g *Game) fire(dock r2.Vec, now float64) {
	switch st := g.hook.State().(type) {
	case systems.HookReady:
		if g.hook.Launch(dock) {
			g.recordEvent(telemetry.EventLaunch, -1, dock, g.cfg.Hook.LaunchSpeed)
		}
	case systems.HookLaunched:
		if g.hook.Retract(now) {
			g.recordEvent(telemetry.EventRetract, -1, st.Pos, st.Speed)
		}
	case systems.HookLocked:
		if g.hook.Release(g.objects.At(st.Held), now) {
			g.recordEvent(telemetry.EventRelease, st.Held, st.End, r2.Norm(st.Vel)*g.cfg.Hook.ReleaseScale)
			slog.Debug("hook released", "object", st.Held, "tick", g.tick)
		}
	}
}

// gatherCircles appends this tick's collision footprints: car, objects, hook tip.
func (g *Game) gatherCircles(dst []systems.Circle) []systems.Circle {
	dst = append(dst, g.vehicles.Circle(&g.car))
	dst = g.objects.Circles(dst)
	if c, ok := g.hook.Circle(); ok {
		dst = append(dst, c)
	}
	return dst
}

// recordEvent counts an event and queues it for events.csv.
func (g *Game) recordEvent(kind telemetry.EventType, object int, pos r2.Vec, amount float64) {
	e := telemetry.NewEvent(kind, g.tick, object, pos, amount)
	g.collector.Record(e)
	if g.outputManager != nil {
		g.events = append(g.events, e)
	}
}
