package field

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestComputeLayoutCounts(t *testing.T) {
	l, err := ComputeLayout(Params{
		StartingRadius:    0,
		RadiusOffset:      1.5,
		StartingParticles: 1,
		RingCount:         3,
		Resolution:        1.0,
	})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}

	wantRadii := []float64{0, 1.5, 3.0}
	wantCounts := []int{1, 9, 18}
	wantStarts := []int{0, 1, 10}

	for i, r := range l.Rings {
		if math.Abs(r.Radius-wantRadii[i]) > 1e-12 {
			t.Errorf("ring %d radius = %v, want %v", i, r.Radius, wantRadii[i])
		}
		if r.Count != wantCounts[i] {
			t.Errorf("ring %d count = %d, want %d", i, r.Count, wantCounts[i])
		}
		if r.Start != wantStarts[i] {
			t.Errorf("ring %d start = %d, want %d", i, r.Start, wantStarts[i])
		}
	}
	if l.Total != 28 {
		t.Errorf("total = %d, want 28", l.Total)
	}
	if len(l.Clamped) != 0 {
		t.Errorf("expected no clamped rings, got %v", l.Clamped)
	}
}

func TestComputeLayoutPartitions(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"defaults", Params{RadiusOffset: 1.5, StartingParticles: 1, RingCount: 5, Resolution: 0.5}},
		{"wide spacing", Params{StartingRadius: 2, RadiusOffset: 3, StartingParticles: 6, RingCount: 10, Resolution: 1.2}},
		{"coarse resolution", Params{RadiusOffset: 0.1, StartingParticles: 1, RingCount: 8, Resolution: 50}},
		{"single ring", Params{RadiusOffset: 1, StartingParticles: 4, RingCount: 1, Resolution: 1}},
		{"zero offset", Params{StartingRadius: 1, RadiusOffset: 0, StartingParticles: 3, RingCount: 4, Resolution: 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ComputeLayout(tt.params)
			if err != nil {
				t.Fatalf("ComputeLayout: %v", err)
			}

			sum := 0
			next := 0
			for i, r := range l.Rings {
				if r.Index != i {
					t.Errorf("ring %d has index %d", i, r.Index)
				}
				if r.Count < 1 {
					t.Errorf("ring %d has %d particles", i, r.Count)
				}
				if r.Start != next {
					t.Errorf("ring %d starts at %d, want %d (gap or overlap)", i, r.Start, next)
				}
				next = r.End()
				sum += r.Count
			}
			if sum != l.Total || next != l.Total {
				t.Errorf("sum=%d end=%d total=%d", sum, next, l.Total)
			}

			// Every flat index maps back to the ring that owns it
			for i := 0; i < l.Total; i++ {
				ring, err := l.RingOf(i)
				if err != nil {
					t.Fatalf("RingOf(%d): %v", i, err)
				}
				r := l.Rings[ring]
				if i < r.Start || i >= r.End() {
					t.Fatalf("RingOf(%d) = %d with range [%d,%d)", i, ring, r.Start, r.End())
				}
			}
		})
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	p := Params{StartingRadius: 0.3, RadiusOffset: 0.7, StartingParticles: 2, RingCount: 12, Resolution: 0.33}

	a, err := ComputeLayout(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeLayout(p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different layouts")
	}

	for i := range a.Rings {
		pa, _ := a.Positions(i)
		pb, _ := b.Positions(i)
		if !reflect.DeepEqual(pa, pb) {
			t.Errorf("ring %d positions differ", i)
		}
	}
}

func TestComputeLayoutClampsDegenerateRings(t *testing.T) {
	// 2π·0.1/50 rounds down to zero
	l, err := ComputeLayout(Params{RadiusOffset: 0.1, StartingParticles: 1, RingCount: 3, Resolution: 50})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 3; i++ {
		if l.Rings[i].Count != 1 {
			t.Errorf("ring %d count = %d, want clamp to 1", i, l.Rings[i].Count)
		}
	}
	if !reflect.DeepEqual(l.Clamped, []int{1, 2}) {
		t.Errorf("clamped = %v, want [1 2]", l.Clamped)
	}
}

func TestComputeLayoutRejects(t *testing.T) {
	base := Params{RadiusOffset: 1, StartingParticles: 1, RingCount: 3, Resolution: 1}

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero rings", func(p *Params) { p.RingCount = 0 }},
		{"negative rings", func(p *Params) { p.RingCount = -2 }},
		{"zero resolution", func(p *Params) { p.Resolution = 0 }},
		{"negative resolution", func(p *Params) { p.Resolution = -0.5 }},
		{"no starting particles", func(p *Params) { p.StartingParticles = 0 }},
		{"negative offset", func(p *Params) { p.RadiusOffset = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if _, err := ComputeLayout(p); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestPositionsOnRing(t *testing.T) {
	l, err := ComputeLayout(Params{
		StartingRadius: 0, RadiusOffset: 2, StartingParticles: 1, RingCount: 2, Resolution: 1,
		CenterX: 5, CenterZ: -3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cx, cz := l.Center(); cx != 5 || cz != -3 {
		t.Errorf("Center() = (%v, %v), want (5, -3)", cx, cz)
	}

	pos, err := l.Positions(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pos) != l.Rings[1].Count {
		t.Fatalf("got %d positions, want %d", len(pos), l.Rings[1].Count)
	}

	for j, p := range pos {
		dx := float64(p.X) - 5
		dz := float64(p.Z) + 3
		if r := math.Hypot(dx, dz); math.Abs(r-2) > 1e-5 {
			t.Errorf("particle %d at radius %v, want 2", j, r)
		}
		if p.Y != 0 {
			t.Errorf("particle %d height %v, want 0", j, p.Y)
		}
	}

	// First particle sits at theta 0
	if math.Abs(float64(pos[0].X)-7) > 1e-5 || math.Abs(float64(pos[0].Z)+3) > 1e-5 {
		t.Errorf("first particle at (%v, %v), want (7, -3)", pos[0].X, pos[0].Z)
	}
}

func TestRingOfOutOfRange(t *testing.T) {
	l, _ := ComputeLayout(Params{RadiusOffset: 1, StartingParticles: 1, RingCount: 2, Resolution: 1})
	for _, i := range []int{-1, l.Total} {
		if _, err := l.RingOf(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RingOf(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}
