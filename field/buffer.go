package field

import (
	"fmt"

	"github.com/pthm-cable/ringfield/components"
)

// ParticleBuffer is the flat position array shared by all animators.
// Its size is fixed by the layout; rings own disjoint index ranges, so
// writers working on different rings never touch the same particle.
type ParticleBuffer struct {
	layout    Layout
	positions []components.Position
}

// NewParticleBuffer allocates a buffer sized to the layout total.
func NewParticleBuffer(l Layout) *ParticleBuffer {
	return &ParticleBuffer{
		layout:    l,
		positions: make([]components.Position, l.Total),
	}
}

// Layout returns the layout the buffer was allocated for.
func (b *ParticleBuffer) Layout() Layout {
	return b.layout
}

// Len returns the number of particles.
func (b *ParticleBuffer) Len() int {
	return len(b.positions)
}

// Populate writes the initial ring geometry for every ring.
func (b *ParticleBuffer) Populate() error {
	for i := range b.layout.Rings {
		pos, err := b.layout.Positions(i)
		if err != nil {
			return err
		}
		if err := b.SetRingPositions(i, pos); err != nil {
			return err
		}
	}
	return nil
}

// SetRingPositions overwrites ring i with positions, which must match the
// ring's particle count.
func (b *ParticleBuffer) SetRingPositions(ring int, positions []components.Position) error {
	spec, err := b.layout.Ring(ring)
	if err != nil {
		return err
	}
	if len(positions) != spec.Count {
		return fmt.Errorf("%w: ring %d holds %d particles, got %d", ErrIndexOutOfRange, ring, spec.Count, len(positions))
	}
	copy(b.positions[spec.Start:spec.End()], positions)
	return nil
}

// Ring returns a view of ring i's particles.
func (b *ParticleBuffer) Ring(ring int) ([]components.Position, error) {
	spec, err := b.layout.Ring(ring)
	if err != nil {
		return nil, err
	}
	return b.positions[spec.Start:spec.End():spec.End()], nil
}

// At returns the position of flat index i.
func (b *ParticleBuffer) At(i int) (components.Position, error) {
	if err := b.check(i); err != nil {
		return components.Position{}, err
	}
	return b.positions[i], nil
}

// Height returns the height of flat index i.
func (b *ParticleBuffer) Height(i int) (float32, error) {
	if err := b.check(i); err != nil {
		return 0, err
	}
	return b.positions[i].Y, nil
}

// SetHeight sets the height of flat index i.
func (b *ParticleBuffer) SetHeight(i int, y float32) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.positions[i].Y = y
	return nil
}

// RingHeight returns the height of the first particle of ring i.
func (b *ParticleBuffer) RingHeight(ring int) (float32, error) {
	spec, err := b.layout.Ring(ring)
	if err != nil {
		return 0, err
	}
	return b.positions[spec.Start].Y, nil
}

// SetRingHeight sets every particle of ring i to height y.
func (b *ParticleBuffer) SetRingHeight(ring int, y float32) error {
	p, err := b.Ring(ring)
	if err != nil {
		return err
	}
	for j := range p {
		p[j].Y = y
	}
	return nil
}

// AddRingHeight offsets every particle of ring i by dy.
func (b *ParticleBuffer) AddRingHeight(ring int, dy float32) error {
	p, err := b.Ring(ring)
	if err != nil {
		return err
	}
	for j := range p {
		p[j].Y += dy
	}
	return nil
}

// Load replaces the buffer contents with a backend snapshot. The snapshot
// length must equal the layout total.
func (b *ParticleBuffer) Load(snapshot []components.Position) error {
	if len(snapshot) != len(b.positions) {
		return fmt.Errorf("%w: snapshot holds %d particles, layout needs %d", ErrIndexOutOfRange, len(snapshot), len(b.positions))
	}
	copy(b.positions, snapshot)
	return nil
}

// Commit returns the buffer contents for handing to the rendering backend.
// The slice aliases the buffer and is valid until the next write.
func (b *ParticleBuffer) Commit() []components.Position {
	return b.positions
}

func (b *ParticleBuffer) check(i int) error {
	if i < 0 || i >= len(b.positions) {
		return fmt.Errorf("%w: particle %d of %d", ErrIndexOutOfRange, i, len(b.positions))
	}
	return nil
}
