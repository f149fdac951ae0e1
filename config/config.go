// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Track     TrackConfig     `yaml:"track"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Hook      HookConfig      `yaml:"hook"`
	Objects   ObjectsConfig   `yaml:"objects"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Zoom      float64 `yaml:"zoom"`
}

// PhysicsConfig holds the simulation clock.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// TrackConfig describes the ring track and what is scattered on it.
type TrackConfig struct {
	Radius          float64 `yaml:"radius"`
	Width           float64 `yaml:"width"`
	RoadFriction    float64 `yaml:"road_friction"`
	OffroadFriction float64 `yaml:"offroad_friction"`
	GravelScale     float64 `yaml:"gravel_scale"`     // Noise frequency for off-road grip
	GravelVariation float64 `yaml:"gravel_variation"` // +/- friction swing off-road
	Barrels         int     `yaml:"barrels"`
	Rocks           int     `yaml:"rocks"`
}

// VehicleConfig holds the throttle ramp and steering parameters.
type VehicleConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Thrust         float64 `yaml:"thrust"`
	AlignThreshold float64 `yaml:"align_threshold"` // Vel·Dir below this gives zero speed
	AlignWindow    float64 `yaml:"align_window"`
	SteerStep      float64 `yaml:"steer_step"` // Radians per tick at full speed
	ZeroToPlateau  float64 `yaml:"zero_to_plateau"`
	Plateau        float64 `yaml:"plateau"`
	MaxStart       float64 `yaml:"max_start"`
	PlateauToMax   float64 `yaml:"plateau_to_max"`
	RampMemory     float64 `yaml:"ramp_memory"`
	CoastRate      float64 `yaml:"coast_rate"`
	DockOffset     float64 `yaml:"dock_offset"`
	Radius         float64 `yaml:"radius"`
}

// HookConfig holds grapple tuning.
type HookConfig struct {
	LaunchSpeed    float64 `yaml:"launch_speed"`
	FlightDamping  float64 `yaml:"flight_damping"`
	ExhaustSpeed   float64 `yaml:"exhaust_speed"`
	AimBlend       float64 `yaml:"aim_blend"`
	RetractSeconds float64 `yaml:"retract_seconds"`
	GripDepth      float64 `yaml:"grip_depth"`
	ChainSlack     float64 `yaml:"chain_slack"`
	ChainFloor     float64 `yaml:"chain_floor"`
	TetherDamping  float64 `yaml:"tether_damping"`
	ReleaseScale   float64 `yaml:"release_scale"`
	TipReach       float64 `yaml:"tip_reach"`
	TipRadius      float64 `yaml:"tip_radius"`
}

// ObjectsConfig holds barrel and rock parameters.
type ObjectsConfig struct {
	BarrelRadius   float64 `yaml:"barrel_radius"`
	RockRadius     float64 `yaml:"rock_radius"`
	NudgeThreshold float64 `yaml:"nudge_threshold"` // Below this speed a hook graze nudges
	NudgeImpulse   float64 `yaml:"nudge_impulse"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	InnerRadius      float64 // Track.Radius - Track.Width
	MidRadius        float64 // Centre line of the road
	TicksPerSecond   float64
	StatsWindowTicks int32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects tunings that would stall the clock or make the hook fly forever.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Hook.FlightDamping <= 0 || c.Hook.FlightDamping >= 1 {
		return fmt.Errorf("hook.flight_damping must be in (0, 1), got %v", c.Hook.FlightDamping)
	}
	if c.Hook.ExhaustSpeed <= 0 {
		return fmt.Errorf("hook.exhaust_speed must be positive, got %v", c.Hook.ExhaustSpeed)
	}
	if c.Hook.RetractSeconds <= 0 {
		return fmt.Errorf("hook.retract_seconds must be positive, got %v", c.Hook.RetractSeconds)
	}
	if c.Track.Width <= 0 || c.Track.Width >= c.Track.Radius {
		return fmt.Errorf("track.width must be in (0, radius), got %v", c.Track.Width)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.InnerRadius = c.Track.Radius - c.Track.Width
	c.Derived.MidRadius = c.Track.Radius - c.Track.Width/2
	c.Derived.TicksPerSecond = 1 / c.Physics.DT

	ticks := int32(math.Round(c.Telemetry.StatsWindow / c.Physics.DT))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.StatsWindowTicks = ticks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
