package audio

import (
	"fmt"
	"math"
)

// PulseSource is a synthetic beat: every interval seconds the focus band
// jumps to 1, then decays by a factor of decay per second. Other bands
// carry half the focus energy.
type PulseSource struct {
	interval float64
	decay    float64
	focus    int

	bands   []float64
	energy  float64
	elapsed float64
}

// NewPulseSource creates a pulse source with numBands bands.
func NewPulseSource(numBands, focus int, interval, decay float64) (*PulseSource, error) {
	if numBands < 1 {
		return nil, fmt.Errorf("band count must be at least 1, got %d", numBands)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("pulse interval must be positive, got %g", interval)
	}
	if decay < 0 || decay >= 1 {
		return nil, fmt.Errorf("pulse decay must be in [0,1), got %g", decay)
	}
	return &PulseSource{
		interval: interval,
		decay:    decay,
		focus:    focus,
		bands:    make([]float64, numBands),
		// first Advance fires a beat
		elapsed: interval,
	}, nil
}

// Advance decays the current beat and fires a new one on schedule.
func (p *PulseSource) Advance(dt float64) error {
	p.energy *= math.Pow(p.decay, dt)
	p.elapsed += dt
	if p.elapsed >= p.interval {
		p.elapsed = math.Mod(p.elapsed, p.interval)
		p.energy = 1
	}

	for i := range p.bands {
		p.bands[i] = p.energy / 2
	}
	if p.focus >= 0 && p.focus < len(p.bands) {
		p.bands[p.focus] = p.energy
	}
	return nil
}

// Bands returns the current band energies.
func (p *PulseSource) Bands() []float64 {
	return p.bands
}
