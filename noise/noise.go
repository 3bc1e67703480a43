// Package noise produces smooth per-ring target heights from a 1D noise walk.
package noise

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source samples a continuous noise function. Sample returns values in [0,1].
type Source interface {
	Sample(x float64) float64
}

// Perlin is a 1D Perlin noise source.
type Perlin struct {
	p    *perlin.Perlin
	norm float64 // sum of octave amplitudes, maps the raw sum to [-1,1]
}

// NewPerlin creates a Perlin source. alpha divides the amplitude and beta
// multiplies the frequency of each successive octave.
func NewPerlin(alpha, beta float64, octaves int32, seed int64) *Perlin {
	norm := 0.0
	amp := 1.0
	for i := int32(0); i < octaves; i++ {
		norm += amp
		amp /= alpha
	}
	if norm == 0 {
		norm = 1
	}
	return &Perlin{
		p:    perlin.NewPerlin(alpha, beta, octaves, seed),
		norm: norm,
	}
}

// Sample returns the noise value at x mapped into [0,1].
func (n *Perlin) Sample(x float64) float64 {
	v := n.p.Noise1D(x) / n.norm
	return clamp01((v + 1) / 2)
}

// Simplex is an OpenSimplex source sampled along the y=0 line.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates a simplex source with the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Sample returns the noise value at x in [0,1].
func (n *Simplex) Sample(x float64) float64 {
	return clamp01(n.n.Eval2(x, 0))
}

// Options selects and shapes a noise source.
type Options struct {
	Kind    string // "perlin" or "simplex"
	Seed    int64
	Alpha   float64
	Beta    float64
	Octaves int32
}

// New builds the source named by opts.Kind.
func New(opts Options) (Source, error) {
	switch opts.Kind {
	case "perlin":
		if opts.Octaves < 1 {
			return nil, fmt.Errorf("perlin octaves must be at least 1, got %d", opts.Octaves)
		}
		if opts.Alpha <= 0 {
			return nil, fmt.Errorf("perlin alpha must be positive, got %g", opts.Alpha)
		}
		return NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, opts.Seed), nil
	case "simplex":
		return NewSimplex(opts.Seed), nil
	default:
		return nil, fmt.Errorf("unknown noise source %q", opts.Kind)
	}
}

// TargetHeights samples src at seedValue + i·step for each ring, remaps the
// [0,1] sample to [-1,1] and scales it by amplitude.
func TargetHeights(src Source, ringCount int, seedValue, step, amplitude float64) []float64 {
	if ringCount < 0 {
		ringCount = 0
	}
	heights := make([]float64, ringCount)
	x := seedValue
	for i := range heights {
		h := Remap(src.Sample(x), 0, 1, -1, 1)
		heights[i] = h * amplitude
		x += step
	}
	return heights
}

// Remap maps v from [fromA, toA] onto [fromB, toB]. v is clamped to the
// source range first.
func Remap(v, fromA, toA, fromB, toB float64) float64 {
	return lerp(fromB, toB, inverseLerp(fromA, toA, v))
}

func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return clamp01((v - a) / (b - a))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
