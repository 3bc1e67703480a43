// Package systems contains the per-tick animators that write particle heights.
package systems

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/ringfield/field"
)

// RingPhase is the sweep state of a single ring.
type RingPhase uint8

const (
	PhaseIdle     RingPhase = iota // not animating
	PhasePending                   // triggered, waiting for its staggered launch
	PhaseSweeping                  // following the easing curve
	PhaseWaiting                   // sweep done, holding for WaitTime
)

func (p RingPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSweeping:
		return "sweeping"
	case PhaseWaiting:
		return "waiting"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// RippleConfig holds the sweep parameters.
type RippleConfig struct {
	Threshold     float64 // focus band energy that starts a sweep
	WaitTime      float64 // seconds between ring launches and after each sweep
	MovementSpeed float64 // progress added per tick
	OffsetScale   float64 // sweep height amplitude
	Curve         *Curve

	// React mode derives the amplitude from the triggering energy instead of
	// OffsetScale: lerp(MinSpeed, MaxSpeed, Curve(energy)) * HeightScale.
	React       bool
	MinSpeed    float64
	MaxSpeed    float64
	HeightScale float64
}

// ringSweep is the resumable state of one ring's sweep task.
type ringSweep struct {
	phase    RingPhase
	launchAt float64 // clock time the ring leaves PhasePending
	progress float64
	waitLeft float64
}

// RippleAnimator lifts each ring along the easing curve after a beat.
// Every ring is its own state machine; Update resumes them once per tick.
//
// The moving gate is cleared only when the outermost ring finishes its
// sweep and trailing wait, so inner rings go idle while the gate still
// blocks new triggers.
type RippleAnimator struct {
	cfg       RippleConfig
	ringCount int
	rings     []ringSweep

	moving    bool
	fresh     bool    // triggered this tick; the clock starts on the next one
	clock     float64 // seconds since the current trigger
	amplitude float64

	triggers int
	gated    int
}

// NewRippleAnimator creates an animator for ringCount rings.
func NewRippleAnimator(ringCount int, cfg RippleConfig) (*RippleAnimator, error) {
	if ringCount < 1 {
		return nil, fmt.Errorf("%w: ripple needs at least 1 ring, got %d", field.ErrConfiguration, ringCount)
	}
	if cfg.MovementSpeed <= 0 {
		return nil, fmt.Errorf("%w: movement speed must be positive, got %g", field.ErrConfiguration, cfg.MovementSpeed)
	}
	if cfg.WaitTime < 0 {
		return nil, fmt.Errorf("%w: wait time must not be negative, got %g", field.ErrConfiguration, cfg.WaitTime)
	}
	if cfg.Curve == nil {
		return nil, fmt.Errorf("%w: ripple needs an easing curve", field.ErrConfiguration)
	}
	return &RippleAnimator{
		cfg:       cfg,
		ringCount: ringCount,
		rings:     make([]ringSweep, ringCount),
	}, nil
}

// Config returns the current sweep parameters.
func (r *RippleAnimator) Config() RippleConfig {
	return r.cfg
}

// Tune replaces the threshold, offset scale and movement speed. Values
// take effect on the next trigger or tick; a non-positive speed is ignored.
func (r *RippleAnimator) Tune(threshold, offsetScale, movementSpeed float64) {
	r.cfg.Threshold = threshold
	r.cfg.OffsetScale = offsetScale
	if movementSpeed > 0 {
		r.cfg.MovementSpeed = movementSpeed
	}
}

// Moving reports whether the gate is closed.
func (r *RippleAnimator) Moving() bool {
	return r.moving
}

// Amplitude returns the height scale of the current or last sweep.
func (r *RippleAnimator) Amplitude() float64 {
	return r.amplitude
}

// Phase returns ring i's phase.
func (r *RippleAnimator) Phase(i int) RingPhase {
	if i < 0 || i >= len(r.rings) {
		return PhaseIdle
	}
	return r.rings[i].phase
}

// Progress returns ring i's sweep progress.
func (r *RippleAnimator) Progress(i int) float64 {
	if i < 0 || i >= len(r.rings) {
		return 0
	}
	return r.rings[i].progress
}

// Busy reports whether ring i is under the animator's control.
func (r *RippleAnimator) Busy(i int) bool {
	return r.Phase(i) != PhaseIdle
}

// Active returns the number of rings not idle.
func (r *RippleAnimator) Active() int {
	n := 0
	for i := range r.rings {
		if r.rings[i].phase != PhaseIdle {
			n++
		}
	}
	return n
}

// Counts returns how many sweeps were started and how many threshold
// crossings were ignored because the gate was closed.
func (r *RippleAnimator) Counts() (triggers, gated int) {
	return r.triggers, r.gated
}

// TryTrigger starts a sweep when energy exceeds the threshold and no sweep
// is in flight. It returns true if a sweep was started.
func (r *RippleAnimator) TryTrigger(energy float64) bool {
	if !(energy > r.cfg.Threshold) {
		return false
	}
	if r.moving {
		r.gated++
		return false
	}
	r.start(energy)
	return true
}

// Start begins a sweep regardless of energy. It is a no-op while the gate
// is closed.
func (r *RippleAnimator) Start() bool {
	if r.moving {
		r.gated++
		return false
	}
	r.start(1)
	return true
}

func (r *RippleAnimator) start(energy float64) {
	r.moving = true
	r.fresh = true
	r.clock = 0
	r.amplitude = r.amplitudeFor(energy)
	r.triggers++

	for i := range r.rings {
		r.rings[i] = ringSweep{
			phase:    PhasePending,
			launchAt: float64(i) * r.cfg.WaitTime,
		}
	}

	slog.Debug("ripple started",
		"energy", energy,
		"amplitude", r.amplitude,
		"rings", r.ringCount,
	)
}

func (r *RippleAnimator) amplitudeFor(energy float64) float64 {
	if !r.cfg.React {
		return r.cfg.OffsetScale
	}
	t := r.cfg.Curve.Evaluate(clamp01(energy))
	return (r.cfg.MinSpeed + (r.cfg.MaxSpeed-r.cfg.MinSpeed)*t) * r.cfg.HeightScale
}

// Update resumes every ring's sweep by one tick of dt seconds and writes
// the heights of sweeping rings into buf. Progress advances by
// MovementSpeed per call, so sweep duration depends on the tick rate;
// only the waits are measured in seconds.
func (r *RippleAnimator) Update(dt float64, buf *field.ParticleBuffer) error {
	if !r.moving {
		return nil
	}
	if r.fresh {
		r.fresh = false
	} else {
		r.clock += dt
	}

	last := len(r.rings) - 1
	for i := range r.rings {
		s := &r.rings[i]

		switch s.phase {
		case PhasePending:
			if r.clock < s.launchAt {
				continue
			}
			s.phase = PhaseSweeping
			s.progress = 0
			fallthrough

		case PhaseSweeping:
			h := r.cfg.Curve.Evaluate(clamp01(s.progress)) * r.amplitude * field.Attenuation(i, r.ringCount)
			if err := buf.SetRingHeight(i, float32(h)); err != nil {
				return fmt.Errorf("ripple ring %d: %w", i, err)
			}
			s.progress += r.cfg.MovementSpeed
			if s.progress >= 1 {
				s.phase = PhaseWaiting
				s.waitLeft = r.cfg.WaitTime
				if s.waitLeft <= 0 {
					r.finish(i, last)
				}
			}

		case PhaseWaiting:
			s.waitLeft -= dt
			if s.waitLeft <= 0 {
				r.finish(i, last)
			}
		}
	}
	return nil
}

// finish moves ring i to idle and releases the gate after the outermost ring.
func (r *RippleAnimator) finish(i, last int) {
	r.rings[i].phase = PhaseIdle
	r.rings[i].waitLeft = 0
	if i == last {
		r.moving = false
		slog.Debug("ripple finished", "elapsed", r.clock)
	}
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
