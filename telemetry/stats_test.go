package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPercentileInterpolates(t *testing.T) {
	speeds := []float64{0, 0.01, 0.02, 0.04, 0.075}
	tests := []struct {
		p, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.01},
		{0.5, 0.02},
		{0.625, 0.03},
		{1, 0.075},
		{2, 0.075},
	}
	for _, tt := range tests {
		if got := Percentile(speeds, tt.p); !scalar.EqualWithinAbs(got, tt.want, 1e-12) {
			t.Errorf("Percentile(p=%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile of nothing = %v, want 0", got)
	}
}

func TestComputeDistributionOfSpeeds(t *testing.T) {
	// A car that idles for half the window and cruises at 0.06 for the rest
	speeds := make([]float64, 0, 20)
	for i := 0; i < 10; i++ {
		speeds = append(speeds, 0.06, 0)
	}
	mean, p10, p50, p90 := ComputeDistribution(speeds)

	if !scalar.EqualWithinAbs(mean, 0.03, 1e-12) {
		t.Errorf("mean = %v, want 0.03", mean)
	}
	if p10 != 0 || p90 != 0.06 {
		t.Errorf("p10/p90 = %v/%v, want 0/0.06", p10, p90)
	}
	if !scalar.EqualWithinAbs(p50, 0.03, 1e-12) {
		t.Errorf("p50 = %v, want 0.03 between the two clusters", p50)
	}
	if speeds[0] != 0.06 || speeds[1] != 0 {
		t.Error("input was reordered")
	}

	if m, a, b, c := ComputeDistribution(nil); m != 0 || a != 0 || b != 0 || c != 0 {
		t.Error("empty input should give zeros")
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("stats", "window", WindowStats{WindowEndTick: 600, Launches: 4, Locks: 3, LockRate: 0.75})

	var line struct {
		Window map[string]any `json:"window"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decoding log line: %v\n%s", err, buf.String())
	}
	if line.Window["window_end"] != float64(600) || line.Window["lock_rate"] != 0.75 {
		t.Errorf("window group = %v", line.Window)
	}
}
