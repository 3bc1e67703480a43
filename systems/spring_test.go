package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/ringfield/field"
)

func springBuffer(t *testing.T) *field.ParticleBuffer {
	t.Helper()
	l, err := field.ComputeLayout(field.Params{RadiusOffset: 1.5, StartingParticles: 1, RingCount: 3, Resolution: 1})
	if err != nil {
		t.Fatal(err)
	}
	buf := field.NewParticleBuffer(l)
	if err := buf.Populate(); err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestSpringVelocityDecaysWithoutForce(t *testing.T) {
	s, err := NewSpringOscillator(0, 0.9, 0)
	if err != nil {
		t.Fatal(err)
	}
	buf := springBuffer(t)
	s.Impulse(1)

	prev := math.Abs(s.Velocity())
	for i := 0; i < 200; i++ {
		if err := s.Update(buf); err != nil {
			t.Fatal(err)
		}
		v := math.Abs(s.Velocity())
		if v > prev {
			t.Fatalf("tick %d: |v| grew from %v to %v", i, prev, v)
		}
		prev = v
	}
	if prev > 1e-6 {
		t.Errorf("velocity did not converge, |v| = %v", prev)
	}
}

func TestSpringConvergesToRest(t *testing.T) {
	s, err := NewSpringOscillator(0.05, 0.9, 0)
	if err != nil {
		t.Fatal(err)
	}
	buf := springBuffer(t)
	s.Impulse(0.5)

	for i := 0; i < 2000; i++ {
		if err := s.Update(buf); err != nil {
			t.Fatal(err)
		}
	}
	h, _ := buf.RingHeight(0)
	if math.Abs(float64(h)) > 1e-3 {
		t.Errorf("ring 0 height = %v, want near rest", h)
	}
}

func TestSpringAttenuatesOutward(t *testing.T) {
	s, err := NewSpringOscillator(0, 0.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	buf := springBuffer(t)
	s.Impulse(1.2)
	if err := s.Update(buf); err != nil {
		t.Fatal(err)
	}

	// v = 1.2 * 0.5 = 0.6; rings get 0.6, 0.4, 0.2
	want := []float64{0.6, 0.4, 0.2}
	for ring, w := range want {
		h, _ := buf.RingHeight(ring)
		if math.Abs(float64(h)-w) > 1e-6 {
			t.Errorf("ring %d height = %v, want %v", ring, h, w)
		}
	}

	// Every particle of a ring moves together
	p, _ := buf.Ring(2)
	for j := range p {
		if math.Abs(float64(p[j].Y)-0.2) > 1e-6 {
			t.Fatalf("ring 2 particle %d height = %v", j, p[j].Y)
		}
	}
}

func TestSpringUsesRestHeight(t *testing.T) {
	s, err := NewSpringOscillator(0.1, 0.5, 2)
	if err != nil {
		t.Fatal(err)
	}
	buf := springBuffer(t)
	if err := s.Update(buf); err != nil {
		t.Fatal(err)
	}
	if got := s.Displacement(); got != -2 {
		t.Errorf("displacement = %v, want -2", got)
	}
	// v = (0 + 0.1*2) * 0.5
	if got := s.Velocity(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("velocity = %v, want 0.1", got)
	}
}

func TestNewSpringOscillatorRejects(t *testing.T) {
	tests := []struct {
		name    string
		k, drag float64
	}{
		{"drag one", 0.01, 1},
		{"drag above one", 0.01, 1.5},
		{"drag zero", 0.01, 0},
		{"drag NaN", 0.01, math.NaN()},
		{"negative k", -1, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSpringOscillator(tt.k, tt.drag, 0); !errors.Is(err, field.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
