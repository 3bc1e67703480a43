// Package sim drives the ring field one tick at a time.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/ringfield/audio"
	"github.com/pthm-cable/ringfield/backend"
	"github.com/pthm-cable/ringfield/components"
	"github.com/pthm-cable/ringfield/config"
	"github.com/pthm-cable/ringfield/field"
	"github.com/pthm-cable/ringfield/noise"
	"github.com/pthm-cable/ringfield/systems"
	"github.com/pthm-cable/ringfield/telemetry"
)

// ErrSnapshot is returned when the backend does not hand back exactly the
// particles that were emitted.
var ErrSnapshot = errors.New("backend snapshot mismatch")

// Input carries per-tick external requests.
type Input struct {
	Impulse bool // add the configured spring impulse
}

// TickStats describes what the last tick did.
type TickStats struct {
	Tick           int32
	Energy         float64
	Triggered      bool
	Gated          bool
	Impulse        bool
	Moving         bool
	ActiveRings    int
	Amplitude      float64
	Ring0Height    float64
	SpringVelocity float64
}

// Sample converts the stats for the telemetry collector.
func (s TickStats) Sample() telemetry.TickSample {
	return telemetry.TickSample{
		Tick:           s.Tick,
		Energy:         s.Energy,
		Triggered:      s.Triggered,
		Gated:          s.Gated,
		Impulse:        s.Impulse,
		Moving:         s.Moving,
		ActiveRings:    s.ActiveRings,
		Amplitude:      s.Amplitude,
		Ring0Height:    s.Ring0Height,
		SpringVelocity: s.SpringVelocity,
	}
}

// Orchestrator owns the particle buffer and the animators, and commits the
// buffer to the backend once per tick.
type Orchestrator struct {
	cfg     *config.Config
	layout  field.Layout
	buf     *field.ParticleBuffer
	backend backend.Backend
	source  audio.Source
	targets []float64

	ripple  *systems.RippleAnimator
	spring  *systems.SpringOscillator
	settler *systems.Settler // nil unless settle is enabled

	perf   *telemetry.PerfCollector
	onTick func(TickStats)

	tick int32
	last TickStats
}

// New runs setup: layout, buffer population, emission to the backend,
// snapshot read-back and target heights.
func New(cfg *config.Config, be backend.Backend, source audio.Source) (*Orchestrator, error) {
	layout, err := field.ComputeLayout(field.Params{
		StartingRadius:    cfg.Layout.StartingRadius,
		RadiusOffset:      cfg.Layout.RadiusOffset,
		StartingParticles: cfg.Layout.StartingParticles,
		RingCount:         cfg.Layout.RingCount,
		Resolution:        cfg.Layout.Resolution,
		CenterX:           cfg.Layout.CenterX,
		CenterZ:           cfg.Layout.CenterZ,
	})
	if err != nil {
		return nil, fmt.Errorf("computing layout: %w", err)
	}
	if len(layout.Clamped) > 0 {
		slog.Warn("ring particle count clamped to 1",
			"rings", layout.Clamped,
			"resolution", cfg.Layout.Resolution,
		)
	}

	buf := field.NewParticleBuffer(layout)
	if err := buf.Populate(); err != nil {
		return nil, fmt.Errorf("populating buffer: %w", err)
	}
	for _, p := range buf.Commit() {
		be.Emit(p)
	}

	snapshot := make([]components.Position, layout.Total)
	if n := be.Particles(snapshot); n != layout.Total {
		return nil, fmt.Errorf("%w: backend holds %d particles, layout has %d", ErrSnapshot, n, layout.Total)
	}
	if err := buf.Load(snapshot); err != nil {
		return nil, err
	}

	src, err := noise.New(noise.Options{
		Kind:    cfg.Noise.Source,
		Seed:    cfg.Noise.Seed,
		Alpha:   cfg.Noise.Alpha,
		Beta:    cfg.Noise.Beta,
		Octaves: cfg.Noise.Octaves,
	})
	if err != nil {
		return nil, fmt.Errorf("noise source: %w", err)
	}
	targets := noise.TargetHeights(src, layout.RingCount(), cfg.Noise.Offset, cfg.Noise.Speed, cfg.Noise.Scale)

	curve, err := systems.CurveFromConfig(cfg.Ripple.Curve, cfg.Ripple.CurveKeys)
	if err != nil {
		return nil, fmt.Errorf("%w: ripple curve: %v", field.ErrConfiguration, err)
	}
	ripple, err := systems.NewRippleAnimator(layout.RingCount(), systems.RippleConfig{
		Threshold:     cfg.Ripple.Threshold,
		WaitTime:      cfg.Ripple.WaitTime,
		MovementSpeed: cfg.Ripple.MovementSpeed,
		OffsetScale:   cfg.Ripple.OffsetScale,
		Curve:         curve,
		React:         cfg.React.Enabled,
		MinSpeed:      cfg.React.MinSpeed,
		MaxSpeed:      cfg.React.MaxSpeed,
		HeightScale:   cfg.React.HeightScale,
	})
	if err != nil {
		return nil, err
	}
	spring, err := systems.NewSpringOscillator(cfg.Spring.K, cfg.Spring.Drag, cfg.Spring.RestHeight)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:     cfg,
		layout:  layout,
		buf:     buf,
		backend: be,
		source:  source,
		targets: targets,
		ripple:  ripple,
		spring:  spring,
	}
	if cfg.Settle.Enabled {
		o.settler, err = systems.NewSettler(cfg.Screen.TargetFPS, cfg.Settle.Frequency, cfg.Settle.Damping, targets)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("field ready",
		"rings", layout.RingCount(),
		"particles", layout.Total,
		"noise", cfg.Noise.Source,
		"settle", cfg.Settle.Enabled,
		"react", cfg.React.Enabled,
	)
	return o, nil
}

// SetPerfCollector enables phase timing of Tick.
func (o *Orchestrator) SetPerfCollector(p *telemetry.PerfCollector) {
	o.perf = p
}

// OnTick registers fn to run at the end of every successful Tick. Its time
// is recorded under the telemetry phase.
func (o *Orchestrator) OnTick(fn func(TickStats)) {
	o.onTick = fn
}

func (o *Orchestrator) phase(name string) {
	if o.perf != nil {
		o.perf.StartPhase(name)
	}
}

// Tick advances the field by dt seconds: impulse, audio poll, sweep
// trigger, ripple, spring, optional settle, commit.
func (o *Orchestrator) Tick(dt float64, in Input) error {
	if o.perf != nil {
		o.perf.StartTick()
		defer o.perf.EndTick()
	}
	o.tick++
	stats := TickStats{Tick: o.tick}

	if in.Impulse {
		o.spring.Impulse(o.cfg.Spring.Impulse)
		stats.Impulse = true
	}

	o.phase(telemetry.PhaseAudio)
	var bands []float64
	if o.source != nil {
		if err := o.source.Advance(dt); err != nil {
			slog.Error("audio source failed", "tick", o.tick, "error", err)
		} else {
			bands = o.source.Bands()
		}
	}
	stats.Energy = audio.Energy(bands, o.cfg.Audio.FocusBand)

	o.phase(telemetry.PhaseTrigger)
	_, gatedBefore := o.ripple.Counts()
	stats.Triggered = o.ripple.TryTrigger(stats.Energy)
	_, gatedAfter := o.ripple.Counts()
	stats.Gated = gatedAfter > gatedBefore

	o.phase(telemetry.PhaseRipple)
	if err := o.ripple.Update(dt, o.buf); err != nil {
		return err
	}

	o.phase(telemetry.PhaseSpring)
	if err := o.spring.Update(o.buf); err != nil {
		return err
	}

	if o.settler != nil {
		o.phase(telemetry.PhaseSettle)
		if err := o.settler.Update(o.buf, o.ripple); err != nil {
			return err
		}
	}

	o.phase(telemetry.PhaseCommit)
	if err := o.backend.SetParticles(o.buf.Commit()); err != nil {
		return fmt.Errorf("committing particles: %w", err)
	}

	stats.Moving = o.ripple.Moving()
	stats.ActiveRings = o.ripple.Active()
	stats.Amplitude = o.ripple.Amplitude()
	stats.SpringVelocity = o.spring.Velocity()
	if h, err := o.buf.RingHeight(0); err == nil {
		stats.Ring0Height = float64(h)
	}
	o.last = stats

	if o.onTick != nil {
		o.phase(telemetry.PhaseTelemetry)
		o.onTick(stats)
	}
	return nil
}

// TriggerSweep starts a sweep regardless of audio energy. It returns false
// while a sweep is in flight.
func (o *Orchestrator) TriggerSweep() bool {
	return o.ripple.Start()
}

// LastStats returns the stats of the most recent tick.
func (o *Orchestrator) LastStats() TickStats {
	return o.last
}

// TickCount returns the number of completed ticks.
func (o *Orchestrator) TickCount() int32 {
	return o.tick
}

// Layout returns the ring layout.
func (o *Orchestrator) Layout() field.Layout {
	return o.layout
}

// Targets returns the precomputed per-ring target heights.
func (o *Orchestrator) Targets() []float64 {
	return o.targets
}

// Particles returns the committed particle positions. The slice is valid
// until the next Tick.
func (o *Orchestrator) Particles() []components.Position {
	return o.buf.Commit()
}

// RingHeights returns the current height of every ring.
func (o *Orchestrator) RingHeights() []float64 {
	out := make([]float64, o.layout.RingCount())
	for i := range out {
		if h, err := o.buf.RingHeight(i); err == nil {
			out[i] = float64(h)
		}
	}
	return out
}

// Ripple exposes the sweep animator for tuning.
func (o *Orchestrator) Ripple() *systems.RippleAnimator {
	return o.ripple
}
