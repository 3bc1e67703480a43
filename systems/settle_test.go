package systems

import (
	"math"
	"testing"
)

type busySet map[int]bool

func (b busySet) Busy(ring int) bool { return b[ring] }

func TestSettlerReachesTargets(t *testing.T) {
	buf := springBuffer(t)
	targets := []float64{0.5, -0.25, 1}
	s, err := NewSettler(60, 6, 1, targets)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 600; i++ {
		if err := s.Update(buf, nil); err != nil {
			t.Fatal(err)
		}
	}
	for ring, want := range targets {
		h, _ := buf.RingHeight(ring)
		if math.Abs(float64(h)-want) > 1e-3 {
			t.Errorf("ring %d height = %v, want %v", ring, h, want)
		}
	}
}

func TestSettlerSkipsBusyRings(t *testing.T) {
	buf := springBuffer(t)
	if err := buf.SetRingHeight(1, 2); err != nil {
		t.Fatal(err)
	}
	s, err := NewSettler(60, 6, 1, []float64{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		if err := s.Update(buf, busySet{1: true}); err != nil {
			t.Fatal(err)
		}
	}
	if h, _ := buf.RingHeight(1); h != 2 {
		t.Errorf("busy ring moved to %v", h)
	}
	if h, _ := buf.RingHeight(0); h == 0 {
		t.Error("idle ring did not move")
	}
}

func TestNewSettlerRejects(t *testing.T) {
	if _, err := NewSettler(0, 4, 0.6, nil); err == nil {
		t.Error("expected error for zero fps")
	}
	if _, err := NewSettler(60, 0, 0.6, nil); err == nil {
		t.Error("expected error for zero frequency")
	}
}
