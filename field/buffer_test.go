package field

import (
	"errors"
	"testing"

	"github.com/pthm-cable/ringfield/components"
)

func newTestBuffer(t *testing.T) *ParticleBuffer {
	t.Helper()
	l, err := ComputeLayout(Params{RadiusOffset: 1.5, StartingParticles: 1, RingCount: 3, Resolution: 1})
	if err != nil {
		t.Fatal(err)
	}
	b := NewParticleBuffer(l)
	if err := b.Populate(); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return b
}

func TestBufferSizedToLayout(t *testing.T) {
	b := newTestBuffer(t)
	if b.Len() != 28 {
		t.Errorf("len = %d, want 28", b.Len())
	}
	if len(b.Commit()) != 28 {
		t.Errorf("commit len = %d, want 28", len(b.Commit()))
	}
}

func TestBufferOutOfRange(t *testing.T) {
	b := newTestBuffer(t)

	for _, i := range []int{-1, 28, 1000} {
		if err := b.SetHeight(i, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetHeight(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := b.Height(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Height(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if err := b.SetRingHeight(3, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetRingHeight(3): expected ErrIndexOutOfRange, got %v", err)
	}
	if err := b.SetRingPositions(1, make([]components.Position, 4)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("short ring write: expected ErrIndexOutOfRange, got %v", err)
	}
	if err := b.Load(make([]components.Position, 27)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("short snapshot: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRingWritesStayInsideRing(t *testing.T) {
	b := newTestBuffer(t)

	if err := b.SetRingHeight(1, 2.5); err != nil {
		t.Fatal(err)
	}
	if err := b.AddRingHeight(2, -1); err != nil {
		t.Fatal(err)
	}

	l := b.Layout()
	for i, p := range b.Commit() {
		ring, _ := l.RingOf(i)
		want := float32(0)
		switch ring {
		case 1:
			want = 2.5
		case 2:
			want = -1
		}
		if p.Y != want {
			t.Errorf("particle %d (ring %d) height %v, want %v", i, ring, p.Y, want)
		}
	}
}

func TestRingViewCannotGrowIntoNeighbour(t *testing.T) {
	b := newTestBuffer(t)
	view, err := b.Ring(1)
	if err != nil {
		t.Fatal(err)
	}
	if cap(view) != len(view) {
		t.Errorf("ring view cap %d exceeds len %d", cap(view), len(view))
	}
}

func TestSetHeightKeepsGeometry(t *testing.T) {
	b := newTestBuffer(t)
	before, _ := b.At(5)

	if err := b.SetHeight(5, 3); err != nil {
		t.Fatal(err)
	}
	after, _ := b.At(5)
	if after.X != before.X || after.Z != before.Z {
		t.Errorf("x/z changed: %v -> %v", before, after)
	}
	if after.Y != 3 {
		t.Errorf("height = %v, want 3", after.Y)
	}
	// RingHeight samples the ring's first particle (index 1), not particle 5
	if h, _ := b.RingHeight(1); h != 0 {
		t.Errorf("ring 1 height = %v, want 0", h)
	}
}
