package game

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/donuts/camera"
	"github.com/pthm-cable/donuts/components"
	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/systems"
	"github.com/pthm-cable/donuts/telemetry"
	"github.com/pthm-cable/donuts/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	// Simulation
	track    *systems.Track
	vehicles *systems.VehicleSystem
	car      components.Vehicle
	hook     *systems.Hook
	objects  *systems.ObjectStore
	arena    *systems.Arena
	circles  []systems.Circle // reused every tick

	// Control
	input          InputSource
	camera         *camera.Camera
	tick           int32
	paused         bool
	stepsPerUpdate int
	headless       bool

	// Debug
	showDebug     bool
	showCollision bool
	hud           *ui.HUD
	uiRenderer    *ui.Renderer
	debugPanel    ui.PanelDescriptor

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	events        []telemetry.Event
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Window dimensions
	screenWidth, screenHeight float64
}

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	AutoPilot      bool // drive with the built-in autopilot even with a window

	// Config overrides the global config.Cfg() when set.
	Config *config.Config

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a new game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		track:          systems.NewTrack(cfg.Track, opts.Seed),
		vehicles:       systems.NewVehicleSystem(cfg.Vehicle),
		hook:           systems.NewHook(cfg.Hook),
		objects:        systems.NewObjectStore(),
		arena:          systems.NewArena(),
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		screenWidth:    float64(cfg.Screen.Width),
		screenHeight:   float64(cfg.Screen.Height),
		hud:            ui.NewHUD(),
		uiRenderer:     ui.NewRenderer(),
		debugPanel:     debugPanel(),
	}

	g.car = components.NewVehicle(g.track.VehicleSpawn())
	g.spawnObjects()

	g.camera = camera.New(g.screenWidth, g.screenHeight, cfg.Screen.Zoom)
	g.followCar()

	if opts.Headless || opts.AutoPilot {
		g.input = NewAutoPilot(g.rng.Int63())
	} else {
		g.input = RaylibInput{}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g
}

// spawnObjects scatters barrels and rocks around the track.
func (g *Game) spawnObjects() {
	oc := g.cfg.Objects
	for _, p := range g.track.ObjectSpawns(components.KindBarrel, g.cfg.Track.Barrels, g.rng) {
		g.objects.Spawn(p, components.KindBarrel, oc.BarrelRadius)
	}
	for _, p := range g.track.ObjectSpawns(components.KindRock, g.cfg.Track.Rocks, g.rng) {
		g.objects.Spawn(p, components.KindRock, oc.RockRadius)
	}
}

// SetInputSource replaces the driver.
func (g *Game) SetInputSource(in InputSource) {
	g.input = in
}

// Update polls input and runs one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		g.followCar()
		return
	}

	in := g.input.Poll(g)
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(in)
		// A click fires once per frame, not once per step
		in.Fire = false
	}
	g.followCar()
}

// UpdateHeadless runs simulation steps without any raylib calls.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.input.Poll(g))
	}
}

// followCar keeps the camera on the car with its nose up the screen.
func (g *Game) followCar() {
	g.camera.Follow(g.car.Pos, systems.CameraRotation(&g.car))
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.WriteEvents(g.events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
		g.events = g.events[:0]
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulation clock in seconds.
func (g *Game) SimTime() float64 {
	return float64(g.tick) * g.cfg.Physics.DT
}

// Config returns the tuning the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Vehicle returns the car.
func (g *Game) Vehicle() *components.Vehicle {
	return &g.car
}

// Dock returns the hook mount point on the car.
func (g *Game) Dock() r2.Vec {
	return g.vehicles.Dock(&g.car)
}

// Hook returns the grapple.
func (g *Game) Hook() *systems.Hook {
	return g.hook
}

// Objects returns the barrel and rock store.
func (g *Game) Objects() *systems.ObjectStore {
	return g.objects
}

// Arena returns the collision arena, holding the circles of the last tick.
func (g *Game) Arena() *systems.Arena {
	return g.arena
}

// Track returns the terrain.
func (g *Game) Track() *systems.Track {
	return g.track
}

// Camera returns the chase camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}
