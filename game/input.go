package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Input is the driver's intent for one tick.
type Input struct {
	Accelerate bool
	Left       bool
	Right      bool
	Fire       bool   // trigger pressed this tick (edge, not level)
	Aim        r2.Vec // world position the ready hook turns towards
}

// InputSource produces the driver input for the next tick.
type InputSource interface {
	Poll(g *Game) Input
}

// RaylibInput reads the keyboard and mouse: W to accelerate, A/D to steer, mouse to
// aim and left click to fire.
type RaylibInput struct{}

// Poll implements InputSource.
func (RaylibInput) Poll(g *Game) Input {
	mouse := rl.GetMousePosition()
	return Input{
		Accelerate: rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Left:       rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right:      rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		Fire:       rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Aim:        g.camera.ScreenToWorld(r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)}),
	}
}

// handleInput processes window and debug keys.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyBackslash) {
		g.showDebug = !g.showDebug
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.showCollision = !g.showCollision
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.logWorldState()
		g.logPerfStats()
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}
