// Package audio supplies per-band energy buffers to the field animators.
package audio

import "math"

// Source produces a band energy buffer that advances with simulation time.
type Source interface {
	// Advance moves the source forward by dt seconds.
	Advance(dt float64) error
	// Bands returns the current band energies. The slice is owned by the
	// source and valid until the next Advance.
	Bands() []float64
}

// Energy returns bands[idx] clamped to [0,1]. A missing band or a NaN value
// reads as silence.
func Energy(bands []float64, idx int) float64 {
	if idx < 0 || idx >= len(bands) {
		return 0
	}
	v := bands[idx]
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Static is a Source whose bands never change.
type Static []float64

// Advance does nothing.
func (s Static) Advance(float64) error { return nil }

// Bands returns s.
func (s Static) Bands() []float64 { return s }
