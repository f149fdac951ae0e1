package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.25)
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("window = %d ticks, want 4", c.WindowDurationTicks())
	}

	c.Record(NewEvent(EventLaunch, 0, -1, r2.Vec{}, 1.25))
	c.Record(NewEvent(EventLaunch, 1, -1, r2.Vec{}, 1.25))
	c.Record(NewEvent(EventLock, 1, 3, r2.Vec{X: 1}, 0))
	c.Record(NewEvent(EventNudge, 2, 3, r2.Vec{X: 1}, 0.1))
	c.RecordContacts(6)

	speeds := []float64{0, 0.02, 0.04, 0.06}
	for i, s := range speeds {
		c.RecordTick(s, i >= 2, i == 3)
	}

	if c.ShouldFlush(3) {
		t.Error("ShouldFlush true before the window elapsed")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush false at window end")
	}

	stats := c.Flush(4, 10, 2)
	if stats.Launches != 2 || stats.Locks != 1 || stats.Nudges != 1 || stats.Contacts != 6 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.LockRate != 0.5 {
		t.Errorf("lock rate = %v, want 0.5", stats.LockRate)
	}
	if stats.HeldFraction != 0.5 || stats.OffroadFraction != 0.25 {
		t.Errorf("held = %v offroad = %v, want 0.5 and 0.25", stats.HeldFraction, stats.OffroadFraction)
	}
	if math.Abs(stats.SpeedMean-0.03) > 1e-12 {
		t.Errorf("speed mean = %v, want 0.03", stats.SpeedMean)
	}
	if stats.SimTimeSec != 1 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}
	if stats.BarrelsOnRoad != 10 || stats.BarrelsMoving != 2 {
		t.Errorf("barrels = %d/%d, want 10/2", stats.BarrelsOnRoad, stats.BarrelsMoving)
	}

	next := c.Flush(8, 0, 0)
	if next.Launches != 0 || next.SpeedMean != 0 || next.WindowStartTick != 4 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorWindowRoundsToWholeTicks(t *testing.T) {
	c := NewCollector(1, 0.0166666667)
	if got := c.WindowDurationTicks(); got != 60 {
		t.Errorf("window = %d ticks, want 60", got)
	}
}
