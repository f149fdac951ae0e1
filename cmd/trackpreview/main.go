// Track preview tool: the terrain friction map with sliders for the track tuning and
// an overlay of where barrels and rocks would spawn.
//
// Usage: go run ./cmd/trackpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 200
)

// slider is one labelled track parameter.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*config.TrackConfig) *float64
}

var sliders = []slider{
	{"Radius", 15, 60, "%.1f", func(c *config.TrackConfig) *float64 { return &c.Radius }},
	{"Width", 3, 20, "%.1f", func(c *config.TrackConfig) *float64 { return &c.Width }},
	{"Road friction", 0.8, 1, "%.3f", func(c *config.TrackConfig) *float64 { return &c.RoadFriction }},
	{"Off-road friction", 0.5, 1, "%.3f", func(c *config.TrackConfig) *float64 { return &c.OffroadFriction }},
	{"Gravel scale", 0.01, 0.5, "%.3f", func(c *config.TrackConfig) *float64 { return &c.GravelScale }},
	{"Gravel variation", 0, 0.2, "%.3f", func(c *config.TrackConfig) *float64 { return &c.GravelVariation }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	params := base.Track
	seed := int64(12345)

	rl.InitWindow(windowWidth, windowHeight, "Track Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := make([]float64, gridSize*gridSize)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var (
		track      *systems.Track
		barrels    []rl.Vector2
		rocks      []rl.Vector2
		lo, hi, av float64
		extent     float64
		showSpawns = true
		needsRegen = true
	)

	for !rl.WindowShouldClose() {
		if needsRegen {
			track = systems.NewTrack(params, seed)
			extent = params.Radius + params.Width + 2
			frictionGrid(grid, gridSize, track, extent)
			lo, hi, av = gridStats(grid)
			for i, v := range grid {
				pixels[i] = frictionColor(v, lo, hi)
			}
			rl.UpdateTexture(texture, pixels)

			rng := rand.New(rand.NewSource(seed))
			barrels = toPreview(track.ObjectSpawns(components.KindBarrel, params.Barrels, rng), extent)
			rocks = toPreview(track.ObjectSpawns(components.KindRock, params.Rocks, rng), extent)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		if showSpawns {
			for _, p := range barrels {
				rl.DrawCircleV(p, 3, rl.Red)
			}
			for _, p := range rocks {
				rl.DrawCircleV(p, 3, rl.DarkGray)
			}
			spawn := toPreview([]r2.Vec{track.VehicleSpawn()}, extent)[0]
			rl.DrawCircleV(spawn, 5, rl.Blue)
		}

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Friction min: %.3f  max: %.3f  avg: %.3f", lo, hi, av), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d  Barrels: %d  Rocks: %d", seed, len(barrels), len(rocks)), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Track Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			field := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(s.format, s.min), fmt.Sprintf(s.format, s.max),
				float32(*field), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *field), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*field) {
				*field = float64(next)
				needsRegen = true
			}
			panelY += 35
		}
		// The road must stay an annulus
		if params.Width >= params.Radius-1 {
			params.Width = params.Radius - 1
		}

		panelY += 10
		showSpawns = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Show spawns", showSpawns)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = base.Track
			seed = 12345
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		snippet := trackYAML(params)
		for _, line := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// trackYAML renders params as a track: block ready to paste into config.yaml.
func trackYAML(params config.TrackConfig) string {
	out, err := yaml.Marshal(map[string]config.TrackConfig{"track": params})
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return string(out)
}

// toPreview maps world points onto the preview square.
func toPreview(points []r2.Vec, extent float64) []rl.Vector2 {
	out := make([]rl.Vector2, len(points))
	for i, p := range points {
		v := worldToPreview(p, extent, 10, 10, previewSize)
		out[i] = rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
	}
	return out
}
