// Package field computes the concentric ring layout and owns the flat
// particle buffer that every animator writes into.
package field

import (
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/ringfield/components"
)

// Params describes the ring geometry.
type Params struct {
	StartingRadius    float64
	RadiusOffset      float64
	StartingParticles int
	RingCount         int
	Resolution        float64 // arc length per particle
	CenterX, CenterZ  float64
}

// RingSpec is one ring of the layout. Its particles occupy the flat index
// range [Start, Start+Count).
type RingSpec struct {
	Index  int
	Radius float64
	Count  int
	Start  int
}

// End returns the exclusive end of the ring's flat index range.
func (r RingSpec) End() int {
	return r.Start + r.Count
}

// Layout is the immutable result of ComputeLayout.
type Layout struct {
	Rings   []RingSpec
	Total   int
	Clamped []int // rings whose computed particle count was raised to 1

	centerX, centerZ float64
}

// ComputeLayout expands the parameters into rings. Ring 0 holds
// StartingParticles; every later ring holds floor(2π·radius/Resolution)
// particles, never fewer than one.
func ComputeLayout(p Params) (Layout, error) {
	if err := p.validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{
		Rings:   make([]RingSpec, p.RingCount),
		centerX: p.CenterX,
		centerZ: p.CenterZ,
	}

	start := 0
	for i := 0; i < p.RingCount; i++ {
		radius := p.StartingRadius + float64(i)*p.RadiusOffset

		count := p.StartingParticles
		if i > 0 {
			count = int(math.Floor(2 * math.Pi * radius / p.Resolution))
			if count < 1 {
				count = 1
				l.Clamped = append(l.Clamped, i)
			}
		}

		l.Rings[i] = RingSpec{Index: i, Radius: radius, Count: count, Start: start}
		start += count
	}
	l.Total = start

	return l, nil
}

func (p Params) validate() error {
	switch {
	case p.RingCount < 1:
		return fmt.Errorf("%w: ring count must be at least 1, got %d", ErrConfiguration, p.RingCount)
	case p.Resolution <= 0 || math.IsNaN(p.Resolution):
		return fmt.Errorf("%w: resolution must be positive, got %g", ErrConfiguration, p.Resolution)
	case p.StartingParticles < 1:
		return fmt.Errorf("%w: starting particles must be at least 1, got %d", ErrConfiguration, p.StartingParticles)
	case p.StartingRadius < 0:
		return fmt.Errorf("%w: starting radius must not be negative, got %g", ErrConfiguration, p.StartingRadius)
	case p.RadiusOffset < 0:
		return fmt.Errorf("%w: radius offset must not be negative, got %g", ErrConfiguration, p.RadiusOffset)
	}
	return nil
}

// RingCount returns the number of rings.
func (l Layout) RingCount() int {
	return len(l.Rings)
}

// Ring returns the spec of ring i.
func (l Layout) Ring(i int) (RingSpec, error) {
	if i < 0 || i >= len(l.Rings) {
		return RingSpec{}, fmt.Errorf("%w: ring %d of %d", ErrIndexOutOfRange, i, len(l.Rings))
	}
	return l.Rings[i], nil
}

// RingOf returns the ring owning flat index i.
func (l Layout) RingOf(i int) (int, error) {
	if i < 0 || i >= l.Total {
		return 0, fmt.Errorf("%w: particle %d of %d", ErrIndexOutOfRange, i, l.Total)
	}
	// First ring whose range ends past i
	r := sort.Search(len(l.Rings), func(k int) bool {
		return l.Rings[k].End() > i
	})
	return r, nil
}

// Positions returns the initial particle positions of ring i, evenly spaced
// around the center at height 0.
func (l Layout) Positions(i int) ([]components.Position, error) {
	ring, err := l.Ring(i)
	if err != nil {
		return nil, err
	}

	out := make([]components.Position, ring.Count)
	theta := 2 * math.Pi / float64(ring.Count)
	for j := range out {
		a := theta * float64(j)
		out[j] = components.Position{
			X: float32(l.centerX + ring.Radius*math.Cos(a)),
			Y: 0,
			Z: float32(l.centerZ + ring.Radius*math.Sin(a)),
		}
	}
	return out, nil
}

// Center returns the ground-plane center of the rings.
func (l Layout) Center() (x, z float64) {
	return l.centerX, l.centerZ
}

// Attenuation returns the (1 - i/ringCount) falloff applied to ring i.
func (l Layout) Attenuation(i int) float64 {
	return Attenuation(i, len(l.Rings))
}

// Attenuation returns 1 - ring/ringCount. ringCount must be positive.
func Attenuation(ring, ringCount int) float64 {
	return 1 - float64(ring)/float64(ringCount)
}
