package systems

import (
	"fmt"

	"github.com/charmbracelet/harmonica"

	"github.com/pthm-cable/ringfield/field"
)

// BusyRings reports rings another animator currently owns.
type BusyRings interface {
	Busy(ring int) bool
}

// Settler eases idle rings toward their target heights, one damped spring
// per ring.
type Settler struct {
	spring  harmonica.Spring
	targets []float64
	vel     []float64
}

// NewSettler returns a settler stepping at fps ticks per second.
func NewSettler(fps int, frequency, damping float64, targets []float64) (*Settler, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: settle fps must be positive, got %d", field.ErrConfiguration, fps)
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: settle frequency must be positive, got %g", field.ErrConfiguration, frequency)
	}
	if damping < 0 {
		return nil, fmt.Errorf("%w: settle damping must not be negative, got %g", field.ErrConfiguration, damping)
	}
	t := make([]float64, len(targets))
	copy(t, targets)
	return &Settler{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		targets: t,
		vel:     make([]float64, len(targets)),
	}, nil
}

// Update moves every ring not owned by busy one spring step toward its
// target. Busy rings have their settle velocity cleared so they resume
// from rest.
func (s *Settler) Update(buf *field.ParticleBuffer, busy BusyRings) error {
	n := buf.Layout().RingCount()
	if n > len(s.targets) {
		n = len(s.targets)
	}
	for i := 0; i < n; i++ {
		if busy != nil && busy.Busy(i) {
			s.vel[i] = 0
			continue
		}
		h, err := buf.RingHeight(i)
		if err != nil {
			return fmt.Errorf("settle ring %d: %w", i, err)
		}
		pos, vel := s.spring.Update(float64(h), s.vel[i], s.targets[i])
		s.vel[i] = vel
		if err := buf.SetRingHeight(i, float32(pos)); err != nil {
			return fmt.Errorf("settle ring %d: %w", i, err)
		}
	}
	return nil
}
