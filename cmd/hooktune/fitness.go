package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/donuts/config"
	"github.com/pthm-cable/donuts/game"
	"github.com/pthm-cable/donuts/telemetry"
)

// FitnessEvaluator runs headless autopilot sessions and scores the hook tuning.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64
	targetReach float64

	mu          sync.Mutex
	lastQuality float64
	lastSummary runSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetReach float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
		targetReach: targetReach,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSummary returns the seed-averaged totals from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// runSummary totals the windows of one or more runs.
type runSummary struct {
	Launches     float64
	Locks        float64
	Releases     float64
	LockRate     float64
	HeldFraction float64
	LocksCV      float64 // spread of locks across windows
}

// summarize totals the hook activity over a run's windows.
func summarize(windows []telemetry.WindowStats) runSummary {
	var s runSummary
	if len(windows) == 0 {
		return s
	}
	locks := make([]float64, len(windows))
	held := make([]float64, len(windows))
	for i, w := range windows {
		s.Launches += float64(w.Launches)
		s.Locks += float64(w.Locks)
		s.Releases += float64(w.Releases)
		locks[i] = float64(w.Locks)
		held[i] = w.HeldFraction
	}
	if s.Launches > 0 {
		s.LockRate = s.Locks / s.Launches
	}
	s.HeldFraction = stat.Mean(held, nil)
	if mean, std := stat.MeanStdDev(locks, nil); mean > 0 && !math.IsNaN(std) {
		s.LocksCV = std / mean
	}
	return s
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	summaries := make([]runSummary, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			summaries[idx] = summarize(fe.runSimulation(x, s))
		}(i, seed)
	}
	wg.Wait()

	var avg runSummary
	var totalQuality float64
	for _, s := range summaries {
		totalQuality += fe.computeQuality(s)
		avg.Launches += s.Launches
		avg.Locks += s.Locks
		avg.Releases += s.Releases
		avg.LockRate += s.LockRate
		avg.HeldFraction += s.HeldFraction
		avg.LocksCV += s.LocksCV
	}
	n := float64(len(fe.seeds))
	avg.Launches /= n
	avg.Locks /= n
	avg.Releases /= n
	avg.LockRate /= n
	avg.HeldFraction /= n
	avg.LocksCV /= n

	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	quality := totalQuality / n
	fitness := -(quality * fe.reachScore(cfg))

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.lastSummary = avg
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless autopilot run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig returns an independent copy of the base config. Config holds only
// values, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Quality component weights.
const (
	qualityWeightLockRate  = 0.40
	qualityWeightActivity  = 0.25
	qualityWeightHeld      = 0.20
	qualityWeightStability = 0.15

	heldTarget = 0.3 // share of time spent towing that feels right
	heldWidth  = 0.2
)

// computeQuality scores one run's hook play in [0, 1].
func (fe *FitnessEvaluator) computeQuality(s runSummary) float64 {
	if s.Launches == 0 {
		return 0
	}
	minutes := float64(fe.maxTicks) * fe.baseConfig.Physics.DT / 60
	locksPerMinute := s.Locks / math.Max(minutes, 1e-9)

	activity := 1 - math.Exp(-locksPerMinute/4)
	held := math.Exp(-math.Pow((s.HeldFraction-heldTarget)/heldWidth, 2))
	stability := math.Exp(-s.LocksCV * s.LocksCV)

	quality := qualityWeightLockRate*s.LockRate +
		qualityWeightActivity*activity +
		qualityWeightHeld*held +
		qualityWeightStability*stability
	return clamp01(quality)
}

// reachScore is 1 when the hook's free flight covers the target distance and falls
// off as it over- or undershoots.
func (fe *FitnessEvaluator) reachScore(cfg *config.Config) float64 {
	if fe.targetReach <= 0 {
		return 1
	}
	reach := FlightReach(cfg.Hook.LaunchSpeed, cfg.Hook.FlightDamping)
	e := (reach - fe.targetReach) / (0.3 * fe.targetReach)
	return math.Exp(-e * e)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
