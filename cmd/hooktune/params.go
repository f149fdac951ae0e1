package main

import (
	"math"

	"github.com/pthm-cable/donuts/config"
)

// ParamSpec defines a single tunable hook parameter.
type ParamSpec struct {
	Name     string // trials.csv column
	Path     string // YAML key, for logs
	Min, Max float64
	Default  float64
}

// ParamVector is the ordered set of tuned parameters. Vectors passed to its methods
// follow Specs order.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of hook parameters. Defaults follow the
// embedded config so the search starts from the shipped tuning.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "launch_speed", Path: "hook.launch_speed", Min: 0.4, Max: 3.0, Default: 1.25},
			{Name: "flight_damping", Path: "hook.flight_damping", Min: 0.6, Max: 0.95, Default: 0.82},
			{Name: "chain_slack", Path: "hook.chain_slack", Min: 0.0, Max: 2.0, Default: 0.5},
			{Name: "tether_damping", Path: "hook.tether_damping", Min: 0.85, Max: 0.999, Default: 0.98},
			{Name: "release_scale", Path: "hook.release_scale", Min: 0.5, Max: 3.0, Default: 1.4},
			{Name: "tip_reach", Path: "hook.tip_reach", Min: 0.2, Max: 1.5, Default: 0.75},
		},
	}
}

// span is the width of the search range.
func (s ParamSpec) span() float64 { return s.Max - s.Min }

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// mapEach applies f to every spec and its matching value.
func (pv *ParamVector) mapEach(in []float64, f func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = f(spec, in[i])
	}
	return out
}

// DefaultVector returns the shipped tuning as a raw vector.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.mapEach(make([]float64, len(pv.Specs)), func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values onto the unit cube the optimizer searches.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.mapEach(raw, func(s ParamSpec, v float64) float64 { return (v - s.Min) / s.span() })
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.mapEach(unit, func(s ParamSpec, v float64) float64 { return s.Min + v*s.span() })
}

// Clamp pulls every value into its [Min, Max] range.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.mapEach(v, func(s ParamSpec, x float64) float64 { return math.Max(s.Min, math.Min(s.Max, x)) })
}

// fields returns pointers to the config values in Specs order.
func (pv *ParamVector) fields(cfg *config.Config) []*float64 {
	h := &cfg.Hook
	return []*float64{
		&h.LaunchSpeed,
		&h.FlightDamping,
		&h.ChainSlack,
		&h.TetherDamping,
		&h.ReleaseScale,
		&h.TipReach,
	}
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, f := range pv.fields(cfg) {
		*f = clamped[i]
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	fields := pv.fields(cfg)
	out := make([]float64, len(fields))
	for i, f := range fields {
		out[i] = *f
	}
	return out
}

// FlightReach returns how far a hook launched at speed with the given per-tick
// damping travels before it stops: the sum of speed*damping^k for k >= 1.
func FlightReach(speed, damping float64) float64 {
	return speed * damping / (1 - damping)
}
