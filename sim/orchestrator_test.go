package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/ringfield/audio"
	"github.com/pthm-cable/ringfield/backend"
	"github.com/pthm-cable/ringfield/components"
	"github.com/pthm-cable/ringfield/config"
	"github.com/pthm-cable/ringfield/field"
	"github.com/pthm-cable/ringfield/telemetry"
)

const dt = 1.0 / 60

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Layout = config.LayoutConfig{
		StartingRadius:    0,
		RadiusOffset:      1.5,
		StartingParticles: 1,
		RingCount:         3,
		Resolution:        1,
	}
	cfg.Audio.FocusBand = 1
	cfg.Ripple.Threshold = 0.5
	return cfg
}

func TestNewEmitsLayout(t *testing.T) {
	be := backend.NewECS()
	o, err := New(testConfig(t), be, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if be.Len() != 28 {
		t.Errorf("backend holds %d particles, want 28", be.Len())
	}
	if got := len(o.Targets()); got != 3 {
		t.Errorf("got %d target heights, want 3", got)
	}
	for i, h := range o.Targets() {
		if math.Abs(h) > testConfig(t).Noise.Scale {
			t.Errorf("target %d = %v exceeds scale", i, h)
		}
	}
}

func TestTickTriggersAboveThreshold(t *testing.T) {
	tests := []struct {
		energy float64
		want   bool
	}{
		{0.6, true},
		{0.4, false},
	}
	for _, tt := range tests {
		o, err := New(testConfig(t), backend.NewECS(), audio.Static{0, tt.energy})
		if err != nil {
			t.Fatal(err)
		}
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
		s := o.LastStats()
		if s.Triggered != tt.want || s.Moving != tt.want {
			t.Errorf("energy %v: triggered=%v moving=%v, want %v", tt.energy, s.Triggered, s.Moving, tt.want)
		}
		if s.Energy != tt.energy {
			t.Errorf("energy = %v, want %v", s.Energy, tt.energy)
		}
	}
}

func TestTickMissingBandIsSilence(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audio.FocusBand = 7
	o, err := New(cfg, backend.NewECS(), audio.Static{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Tick(dt, Input{}); err != nil {
		t.Fatal(err)
	}
	if s := o.LastStats(); s.Energy != 0 || s.Triggered {
		t.Errorf("missing band gave energy %v triggered %v", s.Energy, s.Triggered)
	}
}

type failingSource struct{}

func (failingSource) Advance(float64) error { return errors.New("device gone") }
func (failingSource) Bands() []float64      { return []float64{1, 1} }

func TestTickSurvivesAudioFailure(t *testing.T) {
	o, err := New(testConfig(t), backend.NewECS(), failingSource{})
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Tick(dt, Input{}); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s := o.LastStats(); s.Energy != 0 || s.Triggered {
		t.Errorf("failed source gave energy %v", s.Energy)
	}
}

func TestTickCommitsToBackend(t *testing.T) {
	be := backend.NewECS()
	o, err := New(testConfig(t), be, audio.Static{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
	}

	got := make([]components.Position, be.Len())
	be.Particles(got)
	want := o.Particles()
	moved := false
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("particle %d: backend %+v, buffer %+v", i, got[i], want[i])
		}
		if got[i].Y != 0 {
			moved = true
		}
	}
	if !moved {
		t.Error("expected the sweep to lift some particles")
	}
}

func TestTickGateHoldsUnderSustainedEnergy(t *testing.T) {
	o, err := New(testConfig(t), backend.NewECS(), audio.Static{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	triggers, gated := 0, 0
	for i := 0; i < 30; i++ {
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
		if o.LastStats().Triggered {
			triggers++
		}
		if o.LastStats().Gated {
			gated++
		}
	}
	if triggers != 1 {
		t.Errorf("triggers = %d, want 1 while the sweep is in flight", triggers)
	}
	if gated != 29 {
		t.Errorf("gated = %d, want 29", gated)
	}
}

func TestImpulseBobsField(t *testing.T) {
	o, err := New(testConfig(t), backend.NewECS(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Tick(dt, Input{Impulse: true}); err != nil {
		t.Fatal(err)
	}
	s := o.LastStats()
	if !s.Impulse || s.SpringVelocity <= 0 {
		t.Fatalf("impulse not applied: %+v", s)
	}
	h := o.RingHeights()
	if !(h[0] > h[1] && h[1] > h[2] && h[2] > 0) {
		t.Errorf("expected outward attenuation, got %v", h)
	}
}

func TestSettleApproachesTargets(t *testing.T) {
	cfg := testConfig(t)
	cfg.Settle.Enabled = true
	cfg.Settle.Frequency = 6
	cfg.Settle.Damping = 1
	cfg.Spring.K = 0
	o, err := New(cfg, backend.NewECS(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 600; i++ {
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
	}
	for i, h := range o.RingHeights() {
		if math.Abs(h-o.Targets()[i]) > 1e-3 {
			t.Errorf("ring %d height %v, target %v", i, h, o.Targets()[i])
		}
	}
}

func TestPerfCollectorTimesPhases(t *testing.T) {
	o, err := New(testConfig(t), backend.NewECS(), audio.Static{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	pc := telemetry.NewPerfCollector(10)
	o.SetPerfCollector(pc)
	for i := 0; i < 3; i++ {
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
	}
	stats := pc.Stats()
	for _, phase := range []string{telemetry.PhaseAudio, telemetry.PhaseRipple, telemetry.PhaseCommit} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %s not timed", phase)
		}
	}
}

func TestOnTickHookSeesEveryTick(t *testing.T) {
	o, err := New(testConfig(t), backend.NewECS(), audio.Static{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	pc := telemetry.NewPerfCollector(10)
	o.SetPerfCollector(pc)

	var seen []TickStats
	o.OnTick(func(s TickStats) { seen = append(seen, s) })
	for i := 0; i < 4; i++ {
		if err := o.Tick(dt, Input{}); err != nil {
			t.Fatal(err)
		}
	}

	if len(seen) != 4 {
		t.Fatalf("hook ran %d times, want 4", len(seen))
	}
	for i, s := range seen {
		if s.Tick != int32(i+1) {
			t.Errorf("call %d saw tick %d", i, s.Tick)
		}
	}
	if !seen[0].Triggered || seen[1].Triggered {
		t.Errorf("trigger flags = %v, %v; want true, false", seen[0].Triggered, seen[1].Triggered)
	}
	if _, ok := pc.Stats().PhaseAvg[telemetry.PhaseTelemetry]; !ok {
		t.Error("telemetry phase not timed")
	}
}

// shortBackend drops every particle after the first.
type shortBackend struct{ backend.ECS }

func (b *shortBackend) Particles(dst []components.Position) int {
	b.ECS.Particles(dst)
	return 1
}

func TestNewRejectsShortSnapshot(t *testing.T) {
	be := &shortBackend{ECS: *backend.NewECS()}
	if _, err := New(testConfig(t), be, nil); !errors.Is(err, ErrSnapshot) {
		t.Errorf("expected ErrSnapshot, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"drag one", func(c *config.Config) { c.Spring.Drag = 1 }},
		{"no rings", func(c *config.Config) { c.Layout.RingCount = 0 }},
		{"zero speed", func(c *config.Config) { c.Ripple.MovementSpeed = 0 }},
		{"bad curve", func(c *config.Config) { c.Ripple.CurveKeys = [][]float64{{0, 1}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			if _, err := New(cfg, backend.NewECS(), nil); !errors.Is(err, field.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
