package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/telemetry"
)

// routeContacts applies the gameplay response for each contact of this tick.
//
//	{Hook, Can(i)}   the hook bites can i
//	{Can(i), Hook}   a slow can gets a light nudge
//	{Can(i), other}  can i is pushed out along the normal by the overlap depth
//
// Every other pairing is ignored. Rocks and the car never move in response.
func (g *Game) routeContacts(contacts []systems.Contact, dock r2.Vec) {
	oc := &g.cfg.Objects
	for _, c := range contacts {
		first, second := c.Members[0], c.Members[1]

		if first.Kind == systems.TagHook && second.Kind == systems.TagCan {
			g.lock(dock, second.Index)
			continue
		}
		if first.Kind != systems.TagCan {
			continue
		}

		obj := g.objects.At(first.Index)
		if second.Kind == systems.TagHook && r2.Norm(obj.Vel) < oc.NudgeThreshold {
			obj.Knockback(r2.Scale(oc.NudgeImpulse, c.Normal))
			g.recordEvent(telemetry.EventNudge, first.Index, obj.Pos, oc.NudgeImpulse)
			continue
		}
		// A fast can grazed by the hook falls through to the depth push
		obj.Knockback(r2.Scale(c.Depth, c.Normal))
		g.recordEvent(telemetry.EventKnockback, first.Index, obj.Pos, c.Depth)
	}
}

// lock latches the hook onto object i if it is still in flight.
func (g *Game) lock(dock r2.Vec, i int) {
	obj := g.objects.At(i)
	if !g.hook.Lock(dock, i, obj) {
		return
	}
	g.recordEvent(telemetry.EventLock, i, obj.Pos, 0)
	slog.Debug("hook locked", "object", i, "kind", obj.Kind.String(), "tick", g.tick)
}
