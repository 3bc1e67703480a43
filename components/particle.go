// Package components defines ECS components for the particle field.
package components

// Position represents a particle's world position.
// X and Z are fixed by the ring geometry; Y carries the animated height.
type Position struct {
	X, Y, Z float32
}

// Particle tags an emitted particle with its flat index in emit order.
type Particle struct {
	Index int32
}
