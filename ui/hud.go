package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int32
	Steps    int // simulation steps per frame
	FPS      int32
	Paused   bool
	Speed    float64
	MaxSpeed float64
	Throttle string
	HookMode string
	Offroad  bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Steps, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Throttle: %s | Hook: %s", data.Throttle, data.HookMode),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	h.renderer.DrawBar(10, 97, "Speed", float32(data.Speed), FieldRange{Max: float32(data.MaxSpeed)}, 260)
	if data.Offroad {
		rl.DrawText("OFF ROAD", 10, 117, 16, rl.Orange)
	}
}

// FormatControls returns the key help lines shown at the bottom of the screen.
func FormatControls() []string {
	return []string{
		"W accelerate  A/D steer  Mouse aim  Click hook",
		"Space pause  </> speed  \\ debug  C collision  L log  Home reset zoom",
	}
}

// DrawControls draws the key help lines above the bottom edge.
func (h *HUD) DrawControls(screenH int32) {
	lines := FormatControls()
	y := screenH - int32(len(lines))*18 - 8
	for _, line := range lines {
		rl.DrawText(line, 10, y, 14, rl.Gray)
		y += 18
	}
}
