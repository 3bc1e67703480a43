// Package backend stores emitted particles for rendering.
package backend

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ringfield/components"
)

// ErrLength is returned when a bulk write does not match the particle count.
var ErrLength = errors.New("particle count mismatch")

// Backend accepts emitted particles and exposes them for bulk read and write.
type Backend interface {
	// Emit appends one particle.
	Emit(p components.Position)
	// Len returns the number of emitted particles.
	Len() int
	// Particles copies up to len(dst) particles in emit order into dst and
	// returns the total particle count.
	Particles(dst []components.Position) int
	// SetParticles overwrites every particle in emit order.
	SetParticles(src []components.Position) error
}

// ECS is a Backend holding one ark entity per particle.
type ECS struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Particle]
	filter *ecs.Filter2[components.Position, components.Particle]
	posMap *ecs.Map1[components.Position]

	order []ecs.Entity
}

// NewECS creates an empty particle world.
func NewECS() *ECS {
	world := ecs.NewWorld()
	return &ECS{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Particle](world),
		filter: ecs.NewFilter2[components.Position, components.Particle](world),
		posMap: ecs.NewMap1[components.Position](world),
	}
}

// World returns the underlying ECS world.
func (b *ECS) World() *ecs.World {
	return b.world
}

// Emit creates a particle entity.
func (b *ECS) Emit(p components.Position) {
	tag := components.Particle{Index: int32(len(b.order))}
	e := b.mapper.NewEntity(&p, &tag)
	b.order = append(b.order, e)
}

// Len returns the number of emitted particles.
func (b *ECS) Len() int {
	return len(b.order)
}

// Particles copies particle positions into dst by emit index.
func (b *ECS) Particles(dst []components.Position) int {
	query := b.filter.Query()
	for query.Next() {
		pos, tag := query.Get()
		if i := int(tag.Index); i < len(dst) {
			dst[i] = *pos
		}
	}
	return len(b.order)
}

// SetParticles writes src back to the entities in emit order.
func (b *ECS) SetParticles(src []components.Position) error {
	if len(src) != len(b.order) {
		return fmt.Errorf("%w: got %d, have %d", ErrLength, len(src), len(b.order))
	}
	for i, e := range b.order {
		*b.posMap.Get(e) = src[i]
	}
	return nil
}

// Reset removes every particle.
func (b *ECS) Reset() {
	for _, e := range b.order {
		b.world.RemoveEntity(e)
	}
	b.order = b.order[:0]
}
