package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Hook events during window
	Launches int     `csv:"launches"`
	Locks    int     `csv:"locks"`
	Releases int     `csv:"releases"`
	Retracts int     `csv:"retracts"` // Early retracts by the driver
	Exhausts int     `csv:"exhausts"` // Flights that ran out of speed
	LockRate float64 `csv:"lock_rate"`

	// Collisions
	Contacts   int `csv:"contacts"`
	Knockbacks int `csv:"knockbacks"`
	Nudges     int `csv:"nudges"`

	// Vehicle speed distribution (sampled every tick)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	HeldFraction    float64 `csv:"held_fraction"`    // Share of ticks spent dragging
	OffroadFraction float64 `csv:"offroad_fraction"` // Share of ticks spent on gravel

	// Objects at window end
	BarrelsOnRoad int `csv:"barrels_on_road"`
	BarrelsMoving int `csv:"barrels_moving"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("launches", s.Launches),
		slog.Int("locks", s.Locks),
		slog.Int("releases", s.Releases),
		slog.Int("retracts", s.Retracts),
		slog.Int("exhausts", s.Exhausts),
		slog.Float64("lock_rate", s.LockRate),
		slog.Int("contacts", s.Contacts),
		slog.Int("knockbacks", s.Knockbacks),
		slog.Int("nudges", s.Nudges),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("held_fraction", s.HeldFraction),
		slog.Float64("offroad_fraction", s.OffroadFraction),
		slog.Int("barrels_on_road", s.BarrelsOnRoad),
		slog.Int("barrels_moving", s.BarrelsMoving),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
