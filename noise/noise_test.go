package noise

import (
	"math"
	"testing"
)

func sources(t *testing.T) map[string]Source {
	t.Helper()
	out := map[string]Source{}
	for _, kind := range []string{"perlin", "simplex"} {
		src, err := New(Options{Kind: kind, Seed: 7, Alpha: 2, Beta: 2, Octaves: 3})
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		out[kind] = src
	}
	return out
}

func TestTargetHeightsLength(t *testing.T) {
	for name, src := range sources(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 5, 64} {
				h := TargetHeights(src, n, 1.1, 0.1, 1.5)
				if len(h) != n {
					t.Errorf("ringCount %d: got %d heights", n, len(h))
				}
			}
		})
	}
}

func TestTargetHeightsBounded(t *testing.T) {
	const amplitude = 2.5
	for name, src := range sources(t) {
		t.Run(name, func(t *testing.T) {
			for i, h := range TargetHeights(src, 500, 0.37, 0.173, amplitude) {
				if math.Abs(h) > amplitude+1e-9 {
					t.Fatalf("ring %d height %v exceeds amplitude %v", i, h, amplitude)
				}
			}
		})
	}
}

func TestTargetHeightsContinuous(t *testing.T) {
	const amplitude = 1.0
	// Adjacent rings must differ by at most a constant times the step.
	for name, src := range sources(t) {
		for _, step := range []float64{0.001, 0.01, 0.05} {
			h := TargetHeights(src, 400, 1.1, step, amplitude)
			bound := 20 * step * amplitude
			for i := 1; i < len(h); i++ {
				if d := math.Abs(h[i] - h[i-1]); d > bound {
					t.Fatalf("%s step %v: |h[%d]-h[%d]| = %v exceeds %v", name, step, i, i-1, d, bound)
				}
			}
		}
	}
}

func TestTargetHeightsDeterministic(t *testing.T) {
	a := TargetHeights(NewPerlin(2, 2, 3, 99), 32, 1.1, 0.1, 1.5)
	b := TargetHeights(NewPerlin(2, 2, 3, 99), 32, 1.1, 0.1, 1.5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ring %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestTargetHeightsVary(t *testing.T) {
	for name, src := range sources(t) {
		h := TargetHeights(src, 100, 0.5, 0.137, 1)
		lo, hi := h[0], h[0]
		for _, v := range h {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi-lo < 0.05 {
			t.Errorf("%s: heights nearly flat (range %v)", name, hi-lo)
		}
	}
}

func TestRemap(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{0, -1},
		{0.5, 0},
		{1, 1},
		{0.75, 0.5},
		{-3, -1}, // clamped
		{4, 1},   // clamped
	}
	for _, tt := range tests {
		if got := Remap(tt.v, 0, 1, -1, 1); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Remap(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestNewUnknownSource(t *testing.T) {
	if _, err := New(Options{Kind: "white"}); err == nil {
		t.Error("expected error for unknown source")
	}
	if _, err := New(Options{Kind: "perlin", Alpha: 2, Octaves: 0}); err == nil {
		t.Error("expected error for zero octaves")
	}
}

// constSource lets the remap path be checked independently of any noise.
type constSource float64

func (c constSource) Sample(float64) float64 { return float64(c) }

func TestTargetHeightsScale(t *testing.T) {
	h := TargetHeights(constSource(0.75), 3, 0, 1, 4)
	for i, v := range h {
		if math.Abs(v-2) > 1e-12 {
			t.Errorf("ring %d = %v, want 2", i, v)
		}
	}
}
