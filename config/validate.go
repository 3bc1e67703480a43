package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every configuration validation error.
var ErrInvalid = errors.New("invalid configuration")

// Error describes a single rejected configuration field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Validate checks the parameters that would make the animation undefined.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &Error{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	l := c.Layout
	if l.RingCount < 1 {
		fail("layout.ring_count", "must be at least 1, got %d", l.RingCount)
	}
	if l.Resolution <= 0 {
		fail("layout.resolution", "must be positive, got %g", l.Resolution)
	}
	if l.StartingParticles < 1 {
		fail("layout.starting_particles", "must be at least 1, got %d", l.StartingParticles)
	}
	if l.StartingRadius < 0 {
		fail("layout.starting_radius", "must not be negative, got %g", l.StartingRadius)
	}
	if l.RadiusOffset < 0 {
		fail("layout.radius_offset", "must not be negative, got %g", l.RadiusOffset)
	}

	switch c.Noise.Source {
	case "perlin", "simplex":
	default:
		fail("noise.source", "unknown source %q", c.Noise.Source)
	}
	if c.Noise.Source == "perlin" {
		if c.Noise.Octaves < 1 {
			fail("noise.octaves", "must be at least 1, got %d", c.Noise.Octaves)
		}
		if c.Noise.Alpha <= 0 {
			fail("noise.alpha", "must be positive, got %g", c.Noise.Alpha)
		}
	}

	if c.Spring.Drag <= 0 || c.Spring.Drag >= 1 {
		fail("spring.drag", "must be in (0,1), got %g", c.Spring.Drag)
	}
	if c.Spring.K < 0 {
		fail("spring.k", "must not be negative, got %g", c.Spring.K)
	}

	if c.Ripple.MovementSpeed <= 0 {
		fail("ripple.movement_speed", "must be positive, got %g", c.Ripple.MovementSpeed)
	}
	if c.Ripple.WaitTime < 0 {
		fail("ripple.wait_time", "must not be negative, got %g", c.Ripple.WaitTime)
	}
	for i, k := range c.Ripple.CurveKeys {
		if len(k) != 2 {
			fail("ripple.curve_keys", "key %d needs [t, value], got %d numbers", i, len(k))
		}
	}

	if c.Settle.Enabled && c.Settle.Frequency <= 0 {
		fail("settle.frequency", "must be positive, got %g", c.Settle.Frequency)
	}

	if c.Audio.Bands < 1 {
		fail("audio.bands", "must be at least 1, got %d", c.Audio.Bands)
	}
	if c.Audio.FFTSize < 2 || c.Audio.FFTSize&(c.Audio.FFTSize-1) != 0 {
		fail("audio.fft_size", "must be a power of two, got %d", c.Audio.FFTSize)
	}
	if c.Audio.Decay < 0 || c.Audio.Decay >= 1 {
		fail("audio.decay", "must be in [0,1), got %g", c.Audio.Decay)
	}

	return errors.Join(errs...)
}
