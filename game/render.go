package game

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/geom"
	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/ui"
)

// Palette
var (
	colorGravel     = color.RGBA{R: 196, G: 178, B: 140, A: 255}
	colorRoad       = rl.Gray
	colorRoadEdge   = rl.DarkGray
	colorCentreLine = rl.Yellow
	colorCar        = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	colorBarrel     = color.RGBA{R: 200, G: 60, B: 40, A: 255}
	colorBarrelRim  = color.RGBA{R: 120, G: 30, B: 20, A: 255}
	colorRock       = color.RGBA{R: 90, G: 90, B: 96, A: 255}
	colorChain      = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	colorClaw       = rl.Black
	colorCollision  = rl.Red
)

const (
	roadLip        = 0.175 // Offset of the kerb shadow, world units
	centreDashes   = 50
	centreDashFrac = 0.01 // Fraction of a lap each dash covers
	chainLinkStep  = 0.35
)

// v2 converts a world vector for raylib.
func v2(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

// rlCamera mirrors the chase camera for raylib's 2D mode.
func (g *Game) rlCamera() rl.Camera2D {
	return rl.Camera2D{
		Offset:   rl.Vector2{X: float32(g.camera.ViewportW / 2), Y: float32(g.camera.ViewportH / 2)},
		Target:   v2(g.camera.Target),
		Rotation: float32(g.camera.Rotation),
		Zoom:     float32(g.camera.Zoom),
	}
}

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorGravel)

	dock := g.Dock()

	rl.BeginMode2D(g.rlCamera())
	g.drawTrack()
	g.drawCar()
	g.drawClaw(dock)
	g.drawObjects()
	g.drawChain(dock)
	if g.showCollision {
		g.drawCollision()
	}
	rl.EndMode2D()

	g.drawHUD()
	if g.showDebug {
		g.drawDebugPanel()
	}

	rl.EndDrawing()
}

// drawTrack draws the ring road with its kerb, centre line and start marker.
func (g *Game) drawTrack() {
	outer := float32(g.track.Radius())
	inner := float32(g.track.InnerRadius())

	rl.DrawCircleV(rl.Vector2{Y: -roadLip}, outer, colorRoadEdge)
	rl.DrawCircleV(rl.Vector2{}, outer, colorRoad)
	rl.DrawCircleV(rl.Vector2{}, inner, colorRoadEdge)
	rl.DrawCircleV(rl.Vector2{Y: -roadLip}, inner, colorGravel)

	mid := g.track.MidRadius()
	for i := 0; i < centreDashes; i++ {
		f := float64(i) / centreDashes
		a := r2.Scale(mid, geom.AngleToVec(f*2*math.Pi))
		b := r2.Scale(mid, geom.AngleToVec((f+centreDashFrac)*2*math.Pi))
		rl.DrawLineEx(v2(a), v2(b), 0.2, colorCentreLine)
	}

	spawn := g.track.VehicleSpawn()
	const size = 1.2
	rl.DrawTriangle(
		v2(r2.Add(spawn, r2.Vec{X: size})),
		v2(r2.Add(spawn, r2.Vec{Y: -0.5 * size})),
		v2(r2.Add(spawn, r2.Vec{Y: 0.5 * size})),
		colorCentreLine,
	)
}

// drawCar draws the car body as a rotated box with a windscreen towards the nose.
func (g *Game) drawCar() {
	car := &g.car
	r := float32(g.cfg.Vehicle.Radius)
	deg := float32(geom.VecToAngle(car.Dir) * 180 / math.Pi)

	body := rl.Rectangle{X: float32(car.Pos.X), Y: float32(car.Pos.Y), Width: 2.2 * r, Height: 1.3 * r}
	rl.DrawRectanglePro(body, rl.Vector2{X: body.Width / 2, Y: body.Height / 2}, deg, colorCar)

	screen := r2.Add(car.Pos, r2.Scale(0.35*float64(r), car.Dir))
	glass := rl.Rectangle{X: float32(screen.X), Y: float32(screen.Y), Width: 0.4 * r, Height: 1.0 * r}
	rl.DrawRectanglePro(glass, rl.Vector2{X: glass.Width / 2, Y: glass.Height / 2}, deg, rl.SkyBlue)
}

// drawObjects draws barrels and rocks back to front so nearer objects overlap
// further ones.
func (g *Game) drawObjects() {
	type item struct {
		pos    r2.Vec
		depth  float64
		radius float32
		kind   components.ObjectKind
	}
	items := make([]item, 0, g.objects.Len())
	g.objects.Each(func(i int, obj *components.Draggable) {
		if !g.camera.IsVisible(obj.Pos, g.objects.Radius(i)) {
			return
		}
		items = append(items, item{
			pos:    obj.Pos,
			depth:  g.camera.WorldToScreen(obj.Pos).Y,
			radius: float32(g.objects.Radius(i)),
			kind:   obj.Kind,
		})
	})
	sort.Slice(items, func(a, b int) bool { return items[a].depth < items[b].depth })

	for _, it := range items {
		switch it.kind {
		case components.KindBarrel:
			rl.DrawCircleV(v2(it.pos), it.radius, colorBarrelRim)
			rl.DrawCircleV(v2(it.pos), it.radius*0.8, colorBarrel)
		default:
			rl.DrawCircleV(v2(it.pos), it.radius, colorRock)
		}
	}
}

// drawClaw draws the hook head at its tip, opening towards its facing.
func (g *Game) drawClaw(dock r2.Vec) {
	tip := g.hook.Tip(dock)
	facing := g.hook.Facing()
	side := geom.Rotate(facing, math.Pi/2)

	const prong = 0.35
	left := r2.Add(tip, r2.Scale(prong, r2.Add(facing, side)))
	right := r2.Add(tip, r2.Scale(prong, r2.Sub(facing, side)))
	rl.DrawLineEx(v2(tip), v2(left), 0.12, colorClaw)
	rl.DrawLineEx(v2(tip), v2(right), 0.12, colorClaw)
	rl.DrawCircleV(v2(tip), 0.15, colorClaw)
}

// drawChain draws links from the dock out to the claw.
func (g *Game) drawChain(dock r2.Vec) {
	if g.hook.Mode() == systems.ModeReady {
		return
	}
	tip := g.hook.Tip(dock)
	span := r2.Sub(tip, dock)
	n := int(r2.Norm(span) / chainLinkStep)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		rl.DrawRing(v2(geom.Lerp(dock, tip, t)), 0.06, 0.12, 0, 360, 12, colorChain)
	}
	rl.DrawLineEx(v2(dock), v2(tip), 0.04, colorChain)
}

// drawCollision outlines every circle the arena saw last tick.
func (g *Game) drawCollision() {
	for _, c := range g.arena.Circles() {
		r := float32(c.Radius)
		rl.DrawRing(v2(c.Pos), r-0.05, r, 0, 360, 32, colorCollision)
	}
}

// drawHUD draws the status lines, speed bar and key help.
func (g *Game) drawHUD() {
	mode := g.hook.Mode().String()
	if idx, ok := g.hook.Held(); ok {
		mode = fmt.Sprintf("%s #%d", mode, idx)
	}
	g.hud.Draw(ui.HUDData{
		Title:    "donuts",
		Tick:     g.tick,
		Steps:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Speed:    g.car.Speed,
		MaxSpeed: g.vehicles.MaxSpeed(),
		Throttle: g.car.Throttle.Phase.String(),
		HookMode: mode,
		Offroad:  !g.track.OnRoad(g.car.Pos),
	})
	g.hud.DrawControls(int32(g.screenHeight))
}
