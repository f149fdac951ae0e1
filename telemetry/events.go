// Package telemetry provides run statistics, hook event logs and performance tracking.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// EventType identifies hook and contact events.
type EventType uint8

const (
	EventLaunch EventType = iota
	EventLock
	EventRelease
	EventRetract
	EventExhaust
	EventKnockback
	EventNudge
)

func (t EventType) String() string {
	switch t {
	case EventLaunch:
		return "launch"
	case EventLock:
		return "lock"
	case EventRelease:
		return "release"
	case EventRetract:
		return "retract"
	case EventExhaust:
		return "exhaust"
	case EventKnockback:
		return "knockback"
	case EventNudge:
		return "nudge"
	default:
		return "unknown"
	}
}

// MarshalCSV lets gocsv write the event name instead of its number.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event is a single row of events.csv.
type Event struct {
	Type   EventType `csv:"type"`
	Tick   int32     `csv:"tick"`
	Object int       `csv:"object"` // object index, -1 when none is involved
	X      float64   `csv:"x"`
	Y      float64   `csv:"y"`
	Amount float64   `csv:"amount"` // speed or impulse magnitude
}

// NewEvent creates an event at pos.
func NewEvent(kind EventType, tick int32, object int, pos r2.Vec, amount float64) Event {
	return Event{
		Type:   kind,
		Tick:   tick,
		Object: object,
		X:      pos.X,
		Y:      pos.Y,
		Amount: amount,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
		slog.Int("object", e.Object),
		slog.Float64("x", e.X),
		slog.Float64("y", e.Y),
		slog.Float64("amount", e.Amount),
	)
}
