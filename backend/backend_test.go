package backend

import (
	"errors"
	"testing"

	"github.com/pthm-cable/ringfield/components"
)

func TestECSRoundTrip(t *testing.T) {
	b := NewECS()
	for i := 0; i < 10; i++ {
		b.Emit(components.Position{X: float32(i), Z: float32(-i)})
	}
	if b.Len() != 10 {
		t.Fatalf("Len = %d, want 10", b.Len())
	}

	snap := make([]components.Position, 10)
	if n := b.Particles(snap); n != 10 {
		t.Fatalf("Particles returned %d, want 10", n)
	}
	for i, p := range snap {
		if p.X != float32(i) || p.Z != float32(-i) {
			t.Errorf("particle %d = %+v, out of emit order", i, p)
		}
	}

	for i := range snap {
		snap[i].Y = float32(i) * 0.5
	}
	if err := b.SetParticles(snap); err != nil {
		t.Fatal(err)
	}

	got := make([]components.Position, 10)
	b.Particles(got)
	for i := range got {
		if got[i] != snap[i] {
			t.Errorf("particle %d = %+v, want %+v", i, got[i], snap[i])
		}
	}
}

func TestECSParticlesShortDst(t *testing.T) {
	b := NewECS()
	for i := 0; i < 5; i++ {
		b.Emit(components.Position{X: float32(i)})
	}
	dst := make([]components.Position, 2)
	if n := b.Particles(dst); n != 5 {
		t.Errorf("Particles returned %d, want 5", n)
	}
	if dst[1].X != 1 {
		t.Errorf("dst[1] = %+v", dst[1])
	}
}

func TestECSSetParticlesLengthMismatch(t *testing.T) {
	b := NewECS()
	b.Emit(components.Position{})
	err := b.SetParticles(make([]components.Position, 3))
	if !errors.Is(err, ErrLength) {
		t.Errorf("expected ErrLength, got %v", err)
	}
}

func TestECSReset(t *testing.T) {
	b := NewECS()
	b.Emit(components.Position{X: 1})
	b.Emit(components.Position{X: 2})
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len after reset = %d", b.Len())
	}
	b.Emit(components.Position{X: 7})
	dst := make([]components.Position, 1)
	if n := b.Particles(dst); n != 1 || dst[0].X != 7 {
		t.Errorf("after reset got n=%d dst=%+v", n, dst)
	}
}
