// Package main searches hook tuning that makes the autopilot's grapple play land
// often and tow for a satisfying share of the time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/donuts/config"
)

// Trial is one row of trials.csv.
type Trial struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	Quality       float64 `csv:"quality"`
	Launches      float64 `csv:"launches"`
	Locks         float64 `csv:"locks"`
	LockRate      float64 `csv:"lock_rate"`
	HeldFraction  float64 `csv:"held_fraction"`
	Reach         float64 `csv:"reach"`
	LaunchSpeed   float64 `csv:"launch_speed"`
	FlightDamping float64 `csv:"flight_damping"`
	ChainSlack    float64 `csv:"chain_slack"`
	TetherDamping float64 `csv:"tether_damping"`
	ReleaseScale  float64 `csv:"release_scale"`
	TipReach      float64 `csv:"tip_reach"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 36000, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	method := flag.String("method", "cmaes", "Search method: cmaes or neldermead")
	targetReach := flag.Float64("target-reach", 10, "Free flight distance to aim for (0 = ignore)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg, *targetReach)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	var searcher optimize.Method
	switch *method {
	case "cmaes":
		searcher = &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}
	case "neldermead":
		searcher = &optimize.NelderMead{SimplexSize: 0.2}
	default:
		log.Fatalf("unknown method %q", *method)
	}

	var (
		trials      []*Trial
		evalCount   int
		bestFitness = 1e9
		bestParams  []float64
		startTime   = time.Now()
	)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			cfg := *baseCfg
			params.ApplyToConfig(&cfg, clamped)
			sum := evaluator.LastSummary()
			trials = append(trials, &Trial{
				Eval:          evalCount,
				Fitness:       fitness,
				Quality:       evaluator.LastQuality(),
				Launches:      sum.Launches,
				Locks:         sum.Locks,
				LockRate:      sum.LockRate,
				HeldFraction:  sum.HeldFraction,
				Reach:         FlightReach(cfg.Hook.LaunchSpeed, cfg.Hook.FlightDamping),
				LaunchSpeed:   cfg.Hook.LaunchSpeed,
				FlightDamping: cfg.Hook.FlightDamping,
				ChainSlack:    cfg.Hook.ChainSlack,
				TetherDamping: cfg.Hook.TetherDamping,
				ReleaseScale:  cfg.Hook.ReleaseScale,
				TipReach:      cfg.Hook.TipReach,
			})

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: lock_rate=%.2f locks=%.1f quality=%.2f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, sum.LockRate, sum.Locks, evaluator.LastQuality(), bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	fmt.Printf("Starting %s search over %d hook parameters, max_evals=%d\n", *method, dim, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, searcher)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	trialsPath := filepath.Join(*outputDir, "trials.csv")
	if err := writeTrials(trialsPath, trials); err != nil {
		log.Printf("failed to write trials: %v", err)
	} else {
		fmt.Printf("Trials saved to: %s\n", trialsPath)
	}

	if bestParams == nil {
		return
	}
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// writeTrials writes every evaluation to path as CSV.
func writeTrials(path string, trials []*Trial) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&trials, f)
}
