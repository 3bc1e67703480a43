package main

import (
	"github.com/pthm-cable/ringfield/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Sweep trigger and timing
			{Name: "threshold", Path: "ripple.threshold", Min: 0.05, Max: 0.95},
			{Name: "movement_speed", Path: "ripple.movement_speed", Min: 0.005, Max: 0.05},
			{Name: "wait_time", Path: "ripple.wait_time", Min: 0.0, Max: 0.5},
			// Spring
			{Name: "spring_k", Path: "spring.k", Min: 0.001, Max: 0.2},
			{Name: "spring_drag", Path: "spring.drag", Min: 0.7, Max: 0.99},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Ripple.Threshold = c[0]
	cfg.Ripple.MovementSpeed = c[1]
	cfg.Ripple.WaitTime = c[2]
	cfg.Spring.K = c[3]
	cfg.Spring.Drag = c[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Ripple.Threshold,
		cfg.Ripple.MovementSpeed,
		cfg.Ripple.WaitTime,
		cfg.Spring.K,
		cfg.Spring.Drag,
	}
}
