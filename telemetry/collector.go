package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	launches   int
	locks      int
	releases   int
	retracts   int
	exhausts   int
	contacts   int
	knockbacks int
	nudges     int

	// Per-tick samples for current window
	speeds       []float64
	heldTicks    int
	offroadTicks int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventLaunch:
		c.launches++
	case EventLock:
		c.locks++
	case EventRelease:
		c.releases++
	case EventRetract:
		c.retracts++
	case EventExhaust:
		c.exhausts++
	case EventKnockback:
		c.knockbacks++
	case EventNudge:
		c.nudges++
	}
}

// RecordContacts adds the number of contacts drained this tick.
func (c *Collector) RecordContacts(n int) {
	c.contacts += n
}

// RecordTick samples the vehicle once per tick.
func (c *Collector) RecordTick(speed float64, holding, offroad bool) {
	c.speeds = append(c.speeds, speed)
	if holding {
		c.heldTicks++
	}
	if offroad {
		c.offroadTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// barrelsOnRoad and barrelsMoving are sampled by the caller at window end.
func (c *Collector) Flush(currentTick int32, barrelsOnRoad, barrelsMoving int) WindowStats {
	var lockRate, heldFrac, offroadFrac float64
	if c.launches > 0 {
		lockRate = float64(c.locks) / float64(c.launches)
	}
	if n := len(c.speeds); n > 0 {
		heldFrac = float64(c.heldTicks) / float64(n)
		offroadFrac = float64(c.offroadTicks) / float64(n)
	}

	speedMean, speedP10, speedP50, speedP90 := ComputeDistribution(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Launches:   c.launches,
		Locks:      c.locks,
		Releases:   c.releases,
		Retracts:   c.retracts,
		Exhausts:   c.exhausts,
		LockRate:   lockRate,
		Contacts:   c.contacts,
		Knockbacks: c.knockbacks,
		Nudges:     c.nudges,

		SpeedMean: speedMean,
		SpeedP10:  speedP10,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,

		HeldFraction:    heldFrac,
		OffroadFraction: offroadFrac,

		BarrelsOnRoad: barrelsOnRoad,
		BarrelsMoving: barrelsMoving,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.launches = 0
	c.locks = 0
	c.releases = 0
	c.retracts = 0
	c.exhausts = 0
	c.contacts = 0
	c.knockbacks = 0
	c.nudges = 0
	c.speeds = c.speeds[:0]
	c.heldTicks = 0
	c.offroadTicks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
