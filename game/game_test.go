package game

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/telemetry"
)

// newEmptyGame returns a headless game with nothing scattered on the track.
func newEmptyGame(t *testing.T) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Track.Barrels = 0
	cfg.Track.Rocks = 0
	return NewGameWithOptions(Options{Config: cfg, Headless: true, Seed: 1})
}

// ahead returns an aim point straight down the car's nose from the dock.
func ahead(g *Game) r2.Vec {
	return r2.Add(g.Dock(), r2.Scale(10, g.Vehicle().Dir))
}

func vecNear(a, b r2.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func TestNewGameSpawnsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	g := NewGameWithOptions(Options{Config: cfg, Headless: true, Seed: 7})

	if got := g.Objects().Count(components.KindBarrel); got != cfg.Track.Barrels {
		t.Errorf("barrels = %d, want %d", got, cfg.Track.Barrels)
	}
	if got := g.Objects().Count(components.KindRock); got != cfg.Track.Rocks {
		t.Errorf("rocks = %d, want %d", got, cfg.Track.Rocks)
	}
	if !vecNear(g.Vehicle().Pos, g.Track().VehicleSpawn(), 1e-12) {
		t.Errorf("car at %v, want spawn %v", g.Vehicle().Pos, g.Track().VehicleSpawn())
	}
	if g.Hook().Mode() != systems.ModeReady {
		t.Errorf("hook mode = %v, want ready", g.Hook().Mode())
	}
}

func TestStepAdvancesClock(t *testing.T) {
	g := newEmptyGame(t)
	for i := 0; i < 3; i++ {
		g.Step(Input{Aim: ahead(g)})
	}
	if g.Tick() != 3 {
		t.Errorf("tick = %d, want 3", g.Tick())
	}
	if want := 3 * g.Config().Physics.DT; !scalar.EqualWithinAbs(g.SimTime(), want, 1e-12) {
		t.Errorf("sim time = %v, want %v", g.SimTime(), want)
	}
	// Without throttle the car stays put
	if !vecNear(g.Vehicle().Pos, g.Track().VehicleSpawn(), 1e-12) {
		t.Errorf("idle car moved to %v", g.Vehicle().Pos)
	}
}

func TestStepLaunchNudgeAndLock(t *testing.T) {
	g := newEmptyGame(t)
	dock := g.Dock()
	barrel := g.Objects().Spawn(r2.Add(dock, r2.Vec{X: 3}), components.KindBarrel, g.Config().Objects.BarrelRadius)

	g.Step(Input{Fire: true, Aim: ahead(g)})
	if g.Hook().Mode() != systems.ModeLaunched {
		t.Fatalf("after fire mode = %v, want launched", g.Hook().Mode())
	}

	// Tip circle reaches the barrel on the third tick of flight
	g.Step(Input{Aim: ahead(g)})
	if g.Hook().Mode() != systems.ModeLaunched {
		t.Fatalf("after second tick mode = %v, want launched", g.Hook().Mode())
	}
	g.Step(Input{Aim: ahead(g)})

	held, ok := g.Hook().Held()
	if !ok || held != barrel {
		t.Fatalf("held = %d, %v, want %d, true", held, ok, barrel)
	}
	st := g.Hook().State().(systems.HookLocked)
	if !vecNear(st.GripOffset, r2.Vec{X: -g.Config().Hook.GripDepth}, 1e-9) {
		t.Errorf("grip offset = %v, want claw on the near side", st.GripOffset)
	}

	// The resting barrel was also nudged away from the tip in the same tick
	if vel := g.Objects().At(barrel).Vel; !vecNear(vel, r2.Vec{X: g.Config().Objects.NudgeImpulse}, 1e-9) {
		t.Errorf("barrel vel = %v, want nudge along +X", vel)
	}

	stats := g.collector.Flush(g.Tick(), 0, 0)
	if stats.Launches != 1 || stats.Locks != 1 || stats.Nudges != 1 {
		t.Errorf("launches/locks/nudges = %d/%d/%d, want 1/1/1", stats.Launches, stats.Locks, stats.Nudges)
	}
}

func TestFireWhileLaunchedRetracts(t *testing.T) {
	g := newEmptyGame(t)
	g.Step(Input{Fire: true, Aim: ahead(g)})
	g.Step(Input{Fire: true, Aim: ahead(g)})

	if g.Hook().Mode() != systems.ModeRetracting {
		t.Fatalf("mode = %v, want retracting", g.Hook().Mode())
	}

	ticks := int(math.Ceil(g.Config().Hook.RetractSeconds/g.Config().Physics.DT)) + 2
	for i := 0; i < ticks; i++ {
		g.Step(Input{Aim: ahead(g)})
	}
	if g.Hook().Mode() != systems.ModeReady {
		t.Errorf("mode after retract = %v, want ready", g.Hook().Mode())
	}

	stats := g.collector.Flush(g.Tick(), 0, 0)
	if stats.Retracts != 1 || stats.Exhausts != 0 {
		t.Errorf("retracts/exhausts = %d/%d, want 1/0", stats.Retracts, stats.Exhausts)
	}
}

func TestHookExhaustsAndReturns(t *testing.T) {
	g := newEmptyGame(t)
	g.Step(Input{Fire: true, Aim: ahead(g)})

	exhausted := false
	for i := 0; i < 400 && g.Hook().Mode() != systems.ModeReady; i++ {
		g.Step(Input{Aim: ahead(g)})
		if g.Hook().Mode() == systems.ModeRetracting {
			exhausted = true
		}
	}
	if !exhausted {
		t.Fatal("hook never ran out of speed")
	}
	if g.Hook().Mode() != systems.ModeReady {
		t.Fatalf("mode = %v, want ready", g.Hook().Mode())
	}
	if stats := g.collector.Flush(g.Tick(), 0, 0); stats.Exhausts != 1 {
		t.Errorf("exhausts = %d, want 1", stats.Exhausts)
	}
}

func TestReleaseFlingsHeldBarrel(t *testing.T) {
	g := newEmptyGame(t)
	barrel := g.Objects().Spawn(r2.Add(g.Dock(), r2.Vec{X: 3}), components.KindBarrel, g.Config().Objects.BarrelRadius)

	g.Step(Input{Fire: true, Aim: ahead(g)})
	for i := 0; i < 10 && g.Hook().Mode() != systems.ModeLocked; i++ {
		g.Step(Input{Aim: ahead(g)})
	}
	if g.Hook().Mode() != systems.ModeLocked {
		t.Fatalf("mode = %v, want locked", g.Hook().Mode())
	}
	for i := 0; i < 20; i++ {
		g.Step(Input{Aim: ahead(g)})
	}
	g.Step(Input{Fire: true, Aim: ahead(g)})

	if g.Hook().Mode() != systems.ModeRetracting {
		t.Errorf("mode after release = %v, want retracting", g.Hook().Mode())
	}
	if _, ok := g.Hook().Held(); ok {
		t.Error("hook still reports a held object")
	}
	obj := g.Objects().At(barrel)
	if math.IsNaN(obj.Pos.X) || math.IsNaN(obj.Vel.X) {
		t.Errorf("barrel state not finite: pos %v vel %v", obj.Pos, obj.Vel)
	}
	if stats := g.collector.Flush(g.Tick(), 0, 0); stats.Releases != 1 {
		t.Errorf("releases = %d, want 1", stats.Releases)
	}
}

func TestRouteContacts(t *testing.T) {
	normal := r2.Vec{Y: 1}

	tests := []struct {
		name    string
		vel     r2.Vec
		contact systems.Contact
		want    r2.Vec
	}{
		{
			name:    "slow can grazed by hook is nudged",
			contact: systems.Contact{Members: [2]systems.Tag{systems.CanTag(0), systems.HookTag}, Normal: normal, Depth: 0.2},
			want:    r2.Vec{Y: 0.1},
		},
		{
			name:    "fast can grazed by hook is pushed out by depth",
			vel:     r2.Vec{X: 1},
			contact: systems.Contact{Members: [2]systems.Tag{systems.CanTag(0), systems.HookTag}, Normal: normal, Depth: 0.2},
			want:    r2.Vec{X: 1, Y: 0.2},
		},
		{
			name:    "can against vehicle",
			contact: systems.Contact{Members: [2]systems.Tag{systems.CanTag(0), systems.VehicleTag}, Normal: r2.Vec{X: -1}, Depth: 0.3},
			want:    r2.Vec{X: -0.3},
		},
		{
			name:    "can against rock",
			contact: systems.Contact{Members: [2]systems.Tag{systems.CanTag(0), systems.RockTag}, Normal: normal, Depth: 0.4},
			want:    r2.Vec{Y: 0.4},
		},
		{
			name:    "can against can",
			contact: systems.Contact{Members: [2]systems.Tag{systems.CanTag(0), systems.CanTag(1)}, Normal: normal, Depth: 0.25},
			want:    r2.Vec{Y: 0.25},
		},
		{
			name:    "vehicle side is ignored",
			contact: systems.Contact{Members: [2]systems.Tag{systems.VehicleTag, systems.CanTag(0)}, Normal: normal, Depth: 0.3},
		},
		{
			name:    "rock side is ignored",
			contact: systems.Contact{Members: [2]systems.Tag{systems.RockTag, systems.CanTag(0)}, Normal: normal, Depth: 0.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newEmptyGame(t)
			radius := g.Config().Objects.BarrelRadius
			g.Objects().Spawn(r2.Vec{X: 5}, components.KindBarrel, radius)
			g.Objects().Spawn(r2.Vec{X: 6}, components.KindBarrel, radius)
			g.Objects().At(0).Vel = tt.vel

			g.routeContacts([]systems.Contact{tt.contact}, g.Dock())

			if got := g.Objects().At(0).Vel; !vecNear(got, tt.want, 1e-12) {
				t.Errorf("can vel = %v, want %v", got, tt.want)
			}
			if got := g.Objects().At(1).Vel; got != (r2.Vec{}) {
				t.Errorf("other can vel = %v, want untouched", got)
			}
		})
	}
}

func TestRouteHookContactNeedsFlight(t *testing.T) {
	g := newEmptyGame(t)
	g.Objects().Spawn(r2.Vec{X: 5}, components.KindBarrel, g.Config().Objects.BarrelRadius)

	contact := systems.Contact{Members: [2]systems.Tag{systems.HookTag, systems.CanTag(0)}, Normal: r2.Vec{X: -1}, Depth: 0.1}
	g.routeContacts([]systems.Contact{contact}, g.Dock())

	if g.Hook().Mode() != systems.ModeReady {
		t.Errorf("ready hook reacted to a contact: mode %v", g.Hook().Mode())
	}
}

func TestRocksNeverMove(t *testing.T) {
	g := newEmptyGame(t)
	rock := g.Objects().Spawn(r2.Vec{X: 5}, components.KindRock, g.Config().Objects.RockRadius)
	// A barrel sitting on top of the rock
	g.Objects().Spawn(r2.Vec{X: 5.2}, components.KindBarrel, g.Config().Objects.BarrelRadius)

	for i := 0; i < 30; i++ {
		g.Step(Input{Aim: ahead(g)})
	}
	if got := g.Objects().At(rock).Pos; got != (r2.Vec{X: 5}) {
		t.Errorf("rock moved to %v", got)
	}
	if got := g.Objects().At(1).Pos.X; got <= 5.2 {
		t.Errorf("barrel x = %v, want pushed off the rock", got)
	}
}

func TestStatsCallbackPerWindow(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	var windows []telemetry.WindowStats
	g := NewGameWithOptions(Options{
		Config:         cfg,
		Headless:       true,
		Seed:           3,
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].WindowEndTick != 60 || windows[1].WindowEndTick != 120 {
		t.Errorf("window ends = %d, %d, want 60, 120", windows[0].WindowEndTick, windows[1].WindowEndTick)
	}
	if want := cfg.Track.Barrels; windows[1].BarrelsOnRoad > want {
		t.Errorf("barrels on road = %d, more than the %d spawned", windows[1].BarrelsOnRoad, want)
	}
}

func TestAutoPilotRunStaysFinite(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	g := NewGameWithOptions(Options{Config: cfg, Headless: true, Seed: 42, StepsPerUpdate: 10})

	for i := 0; i < 300; i++ {
		g.UpdateHeadless()
	}
	if g.Tick() != 3000 {
		t.Fatalf("tick = %d, want 3000", g.Tick())
	}

	car := g.Vehicle()
	for _, v := range []float64{car.Pos.X, car.Pos.Y, car.Dir.X, car.Dir.Y, car.Speed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("car state not finite: %+v", *car)
		}
	}
	if d := r2.Norm(r2.Sub(car.Pos, g.Track().VehicleSpawn())); d < 1 {
		t.Errorf("autopilot only moved %v from the start", d)
	}
	g.Objects().Each(func(i int, obj *components.Draggable) {
		if math.IsNaN(obj.Pos.X) || math.IsNaN(obj.Pos.Y) {
			t.Errorf("object %d position not finite", i)
		}
	})
}

func TestDebugPanelEditsHookTuning(t *testing.T) {
	g := newEmptyGame(t)
	var launch *float64
	for _, sd := range g.debugPanel.Sections {
		for _, fd := range sd.Fields {
			if fd.Label == "Launch speed" {
				fd.Setter(g, 2)
				launch = &g.Hook().Config().LaunchSpeed
			}
		}
	}
	if launch == nil {
		t.Fatal("no launch speed slider")
	}
	if *launch != 2 {
		t.Errorf("launch speed = %v, want 2", *launch)
	}

	g.Step(Input{Fire: true, Aim: ahead(g)})
	if st := g.Hook().State().(systems.HookLaunched); st.Speed != 2 {
		t.Errorf("launched at %v, want the edited speed 2", st.Speed)
	}
}
