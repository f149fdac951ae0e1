package main

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/telemetry"
)

func TestDefaultsMatchEmbeddedConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s default = %v, config has %v", spec.Path, spec.Default, got[i])
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if !scalar.EqualWithinAbs(back[i], raw[i], 1e-12) {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyClampsToBounds(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pv := NewParamVector()
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 100
	}
	pv.ApplyToConfig(cfg, values)
	for i, v := range pv.ExtractFromConfig(cfg) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s = %v, want clamped to %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestFlightReach(t *testing.T) {
	// 1.25 * 0.82 / 0.18
	if got := FlightReach(1.25, 0.82); !scalar.EqualWithinAbs(got, 5.694444444, 1e-6) {
		t.Errorf("FlightReach = %v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := summarize([]telemetry.WindowStats{
		{Launches: 4, Locks: 2, HeldFraction: 0.2},
		{Launches: 4, Locks: 2, HeldFraction: 0.4},
	})
	if s.Launches != 8 || s.Locks != 4 {
		t.Errorf("launches/locks = %v/%v, want 8/4", s.Launches, s.Locks)
	}
	if s.LockRate != 0.5 {
		t.Errorf("lock rate = %v, want 0.5", s.LockRate)
	}
	if !scalar.EqualWithinAbs(s.HeldFraction, 0.3, 1e-12) {
		t.Errorf("held fraction = %v, want 0.3", s.HeldFraction)
	}
	if s.LocksCV != 0 {
		t.Errorf("locks cv = %v, want 0 for identical windows", s.LocksCV)
	}

	if empty := summarize(nil); empty != (runSummary{}) {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestQualityRewardsLocking(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 36000, []int64{1}, cfg, 10)

	idle := fe.computeQuality(runSummary{})
	missing := fe.computeQuality(runSummary{Launches: 50, Locks: 0})
	good := fe.computeQuality(runSummary{Launches: 50, Locks: 40, LockRate: 0.8, HeldFraction: 0.3})

	if idle != 0 {
		t.Errorf("no launches scored %v, want 0", idle)
	}
	if !(good > missing) {
		t.Errorf("locking run %v should beat missing run %v", good, missing)
	}
	if good > 1 || math.IsNaN(good) {
		t.Errorf("quality %v out of range", good)
	}
}

func TestReachScorePeaksAtTarget(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 1, nil, cfg, FlightReach(1.25, 0.82))
	if got := fe.reachScore(cfg); !scalar.EqualWithinAbs(got, 1, 1e-12) {
		t.Errorf("reach score at target = %v, want 1", got)
	}
	cfg.Hook.LaunchSpeed = 3
	if got := fe.reachScore(cfg); got >= 0.5 {
		t.Errorf("reach score far past target = %v, want well below 1", got)
	}
}
