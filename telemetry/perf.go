package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of the simulation step.
type Phase uint8

const (
	PhaseHook Phase = iota
	PhaseVehicle
	PhaseObjects
	PhaseFire
	PhaseCollide
	PhaseContacts
	PhaseTelemetry

	phaseCount
)

// Phases lists the step phases in execution order.
var Phases = [phaseCount]Phase{
	PhaseHook, PhaseVehicle, PhaseObjects, PhaseFire,
	PhaseCollide, PhaseContacts, PhaseTelemetry,
}

func (p Phase) String() string {
	switch p {
	case PhaseHook:
		return "hook"
	case PhaseVehicle:
		return "vehicle"
	case PhaseObjects:
		return "objects"
	case PhaseFire:
		return "fire"
	case PhaseCollide:
		return "collide"
	case PhaseContacts:
		return "contacts"
	case PhaseTelemetry:
		return "telemetry"
	default:
		return "unknown"
	}
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	Tick   time.Duration
	Phases [phaseCount]time.Duration
}

// PerfCollector keeps a ring of per-tick step timings.
type PerfCollector struct {
	samples []PerfSample
	next    int
	count   int

	cur        PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		now:     time.Now,
	}
}

// SetClock replaces the time source.
func (p *PerfCollector) SetClock(now func() time.Time) {
	p.now = now
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = PerfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick closes the last phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.Tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordFrame marks a rendered frame for FPS tracking.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P99TickDuration time.Duration

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64 // share of the average tick

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the ring.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	ticks := make([]float64, p.count)
	var total time.Duration
	var phaseSum [phaseCount]time.Duration
	for i, smp := range p.samples[:p.count] {
		ticks[i] = float64(smp.Tick)
		total += smp.Tick
		for ph, d := range smp.Phases {
			phaseSum[ph] += d
		}
	}
	sort.Float64s(ticks)

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	s.MinTickDuration = time.Duration(ticks[0])
	s.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	s.P99TickDuration = time.Duration(stat.Quantile(0.99, stat.Empirical, ticks, nil))

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p99_tick_us", s.P99TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P99TickUS    int64   `csv:"p99_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	HookPct      float64 `csv:"hook_pct"`
	VehiclePct   float64 `csv:"vehicle_pct"`
	ObjectsPct   float64 `csv:"objects_pct"`
	FirePct      float64 `csv:"fire_pct"`
	CollidePct   float64 `csv:"collide_pct"`
	ContactsPct  float64 `csv:"contacts_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P99TickUS:    s.P99TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		HookPct:      s.PhasePct[PhaseHook],
		VehiclePct:   s.PhasePct[PhaseVehicle],
		ObjectsPct:   s.PhasePct[PhaseObjects],
		FirePct:      s.PhasePct[PhaseFire],
		CollidePct:   s.PhasePct[PhaseCollide],
		ContactsPct:  s.PhasePct[PhaseContacts],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
