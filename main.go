package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/game"
)

func main() {
	var (
		configPath = flag.String("config", "", "Tuning overrides in YAML (empty = embedded defaults)")
		headless   = flag.Bool("headless", false, "No window; the autopilot drives")
		autopilot  = flag.Bool("autopilot", false, "Autopilot drives the windowed game")
		logStats   = flag.Bool("log-stats", false, "Log window stats and perf via slog")
		debug      = flag.Bool("debug", false, "Enable debug logging (hook transitions)")
		window     = flag.Float64("stats-window", 0, "Stats window in seconds (0 = telemetry.stats_window)")
		outputDir  = flag.String("output-dir", "", "Write telemetry/perf/events CSV and the tuning used here")
		seed       = flag.Int64("seed", 0, "Spawn seed (0 = current time)")
		maxTicks   = flag.Int("max-ticks", 0, "Exit after this many ticks (0 = run forever)")
		steps      = flag.Int("steps-per-update", 1, "Ticks per Update call")
	)
	flag.Parse()

	slog.SetDefault(newLogger(*debug))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *window,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *steps,
		AutoPilot:      *autopilot,
	}

	if *headless {
		runHeadless(opts, int32(*maxTicks))
		return
	}
	runWindowed(config.Cfg().Screen, opts, int32(*maxTicks))
}

// newLogger writes JSON lines to stdout.
func newLogger(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// done reports whether a tick limit is set and reached.
func done(g *game.Game, maxTicks int32) bool {
	return maxTicks > 0 && g.Tick() >= maxTicks
}

func runHeadless(opts game.Options, maxTicks int32) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)
	for !done(g, maxTicks) {
		g.UpdateHeadless()
	}
	slog.Info("max ticks reached", "tick", g.Tick(), "sim_time", g.SimTime())
}

func runWindowed(screen config.ScreenConfig, opts game.Options, maxTicks int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(screen.Width), int32(screen.Height), "donuts")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() && !done(g, maxTicks) {
		g.Update()
		g.Draw()
	}
}
