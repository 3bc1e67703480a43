package systems

import (
	"fmt"

	"github.com/pthm-cable/ringfield/field"
)

// SpringOscillator is a single damped spring on ring 0's height whose
// velocity is broadcast to every ring, attenuated outward.
type SpringOscillator struct {
	k, drag float64
	rest    float64

	displacement float64
	velocity     float64
}

// NewSpringOscillator returns a spring with stiffness k and per-tick drag
// multiplier. Drag outside (0,1) grows without bound or never moves.
func NewSpringOscillator(k, drag, rest float64) (*SpringOscillator, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: spring constant must not be negative, got %g", field.ErrConfiguration, k)
	}
	if !(drag > 0 && drag < 1) {
		return nil, fmt.Errorf("%w: drag must be in (0,1), got %g", field.ErrConfiguration, drag)
	}
	return &SpringOscillator{k: k, drag: drag, rest: rest}, nil
}

// Impulse adds v to the spring velocity.
func (s *SpringOscillator) Impulse(v float64) {
	s.velocity += v
}

// Velocity returns the current velocity.
func (s *SpringOscillator) Velocity() float64 {
	return s.velocity
}

// Displacement returns ring 0's offset from rest as of the last Update.
func (s *SpringOscillator) Displacement() float64 {
	return s.displacement
}

// Update advances the spring by one tick and offsets every ring's height
// by velocity·(1 - i/ringCount).
func (s *SpringOscillator) Update(buf *field.ParticleBuffer) error {
	h, err := buf.RingHeight(0)
	if err != nil {
		return fmt.Errorf("spring: %w", err)
	}

	s.displacement = float64(h) - s.rest
	s.velocity += -s.k * s.displacement
	s.velocity *= s.drag

	if s.velocity == 0 {
		return nil
	}
	layout := buf.Layout()
	for i := range layout.Rings {
		dy := s.velocity * layout.Attenuation(i)
		if err := buf.AddRingHeight(i, float32(dy)); err != nil {
			return fmt.Errorf("spring ring %d: %w", i, err)
		}
	}
	return nil
}
