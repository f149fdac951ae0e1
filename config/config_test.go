package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Hook.LaunchSpeed != 1.25 {
		t.Errorf("hook.launch_speed = %v, want 1.25", cfg.Hook.LaunchSpeed)
	}
	if cfg.Hook.GripDepth != 0.88 {
		t.Errorf("hook.grip_depth = %v, want 0.88", cfg.Hook.GripDepth)
	}
	if cfg.Derived.InnerRadius != cfg.Track.Radius-cfg.Track.Width {
		t.Errorf("derived inner radius = %v", cfg.Derived.InnerRadius)
	}
	if math.Abs(cfg.Derived.TicksPerSecond-60) > 0.01 {
		t.Errorf("ticks per second = %v, want ~60", cfg.Derived.TicksPerSecond)
	}
	if cfg.Derived.StatsWindowTicks < 1 {
		t.Errorf("stats window ticks = %d, want >= 1", cfg.Derived.StatsWindowTicks)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("hook:\n  launch_speed: 2.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Hook.LaunchSpeed != 2.0 {
		t.Errorf("launch_speed = %v, want 2.0", cfg.Hook.LaunchSpeed)
	}
	if cfg.Hook.FlightDamping != 0.82 {
		t.Errorf("flight_damping = %v, want default 0.82", cfg.Hook.FlightDamping)
	}
}

func TestLoadRejectsRunawayHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("hook:\n  flight_damping: 1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for flight_damping = 1")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Vehicle.MaxSpeed = 0.1

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Vehicle.MaxSpeed != 0.1 {
		t.Errorf("max_speed after reload = %v, want 0.1", back.Vehicle.MaxSpeed)
	}
}
