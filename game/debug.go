package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/ui"
)

// debugPanel describes the tuning panel toggled with backslash. Sliders write straight
// into the live hook tuning, so changes take effect on the next tick.
func debugPanel() ui.PanelDescriptor {
	game := func(d any) *Game { return d.(*Game) }
	slider := func(label, format string, min, max float32, field func(*config.HookConfig) *float64) ui.FieldDescriptor {
		return ui.FieldDescriptor{
			ID:     label,
			Label:  label,
			Widget: ui.WidgetSlider,
			Format: format,
			Range:  ui.FieldRange{Min: min, Max: max},
			Getter: func(d any) float32 { return float32(*field(game(d).hook.Config())) },
			Setter: func(d any, v float32) { *field(game(d).hook.Config()) = float64(v) },
		}
	}

	return ui.PanelDescriptor{
		ID:     "debug",
		Title:  "Debug",
		Width:  340,
		Anchor: ui.AnchorTopRight,
		Sections: []ui.SectionDescriptor{
			{
				ID:    "car",
				Title: "Car",
				Fields: []ui.FieldDescriptor{
					{Label: "Position", Widget: ui.WidgetText, TextGetter: func(d any) string {
						p := game(d).car.Pos
						return fmt.Sprintf("%.2f, %.2f", p.X, p.Y)
					}},
					{Label: "Speed", Widget: ui.WidgetText, Format: "%.4f", Getter: func(d any) float32 {
						return float32(game(d).car.Speed)
					}},
					{Label: "Throttle", Widget: ui.WidgetText, TextGetter: func(d any) string {
						return game(d).car.Throttle.Phase.String()
					}},
					{Label: "Ramp", Widget: ui.WidgetText, Format: "%.2fs", Getter: func(d any) float32 {
						g := game(d)
						return float32(g.vehicles.RampTime(g.car.Throttle, g.SimTime()))
					}},
					{Label: "Friction", Widget: ui.WidgetText, Format: "%.3f", Getter: func(d any) float32 {
						g := game(d)
						return float32(g.track.Friction(g.car.Pos))
					}},
				},
			},
			{
				ID:    "hook",
				Title: "Hook",
				Fields: []ui.FieldDescriptor{
					{Label: "Mode", Widget: ui.WidgetText, TextGetter: func(d any) string {
						return game(d).hook.Mode().String()
					}},
					{Label: "Held", Widget: ui.WidgetText, TextGetter: func(d any) string {
						if i, ok := game(d).hook.Held(); ok {
							return fmt.Sprintf("#%d", i)
						}
						return "-"
					}},
					{
						Label: "Chain", Widget: ui.WidgetText, Format: "%.2f",
						Visible: func(d any) bool { return game(d).hook.Mode() == systems.ModeLocked },
						Getter: func(d any) float32 {
							st, _ := game(d).hook.State().(systems.HookLocked)
							return float32(st.ChainLength)
						},
					},
				},
			},
			{
				ID:    "tuning",
				Title: "Hook Tuning",
				Fields: []ui.FieldDescriptor{
					slider("Launch speed", "%.2f", 0.2, 3, func(c *config.HookConfig) *float64 { return &c.LaunchSpeed }),
					slider("Flight damping", "%.3f", 0.5, 0.99, func(c *config.HookConfig) *float64 { return &c.FlightDamping }),
					slider("Aim blend", "%.2f", 0.01, 1, func(c *config.HookConfig) *float64 { return &c.AimBlend }),
					slider("Tether damping", "%.3f", 0.8, 1, func(c *config.HookConfig) *float64 { return &c.TetherDamping }),
					slider("Release scale", "%.2f", 0, 3, func(c *config.HookConfig) *float64 { return &c.ReleaseScale }),
				},
			},
			{
				ID:    "view",
				Title: "View",
				Fields: []ui.FieldDescriptor{
					{
						Label:      "Collision circles",
						Widget:     ui.WidgetToggle,
						BoolGetter: func(d any) bool { return game(d).showCollision },
						BoolSetter: func(d any, v bool) { game(d).showCollision = v },
					},
				},
			},
		},
	}
}

// drawDebugPanel draws the tuning panel and the camera reset button under it.
func (g *Game) drawDebugPanel() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	g.uiRenderer.DrawPanel(g.debugPanel, g, w, h)

	height := g.uiRenderer.PanelHeight(g.debugPanel, g)
	x, y := g.uiRenderer.PanelOrigin(g.debugPanel, height, w, h)
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y + height + 6), Width: 120, Height: 26}, "Reset camera") {
		g.camera.Reset()
	}
}
