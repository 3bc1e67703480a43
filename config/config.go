// Package config provides configuration loading and access for the ring field.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all ring field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Layout    LayoutConfig    `yaml:"layout"`
	Noise     NoiseConfig     `yaml:"noise"`
	Spring    SpringConfig    `yaml:"spring"`
	Ripple    RippleConfig    `yaml:"ripple"`
	React     ReactConfig     `yaml:"react"`
	Settle    SettleConfig    `yaml:"settle"`
	Audio     AudioConfig     `yaml:"audio"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// LayoutConfig holds ring generation parameters.
type LayoutConfig struct {
	StartingRadius    float64 `yaml:"starting_radius"`    // Radius of ring 0
	RadiusOffset      float64 `yaml:"radius_offset"`      // Radial spacing between rings
	StartingParticles int     `yaml:"starting_particles"` // Particle count of ring 0
	RingCount         int     `yaml:"ring_count"`
	Resolution        float64 `yaml:"resolution"` // Arc length per particle
	CenterX           float64 `yaml:"center_x"`
	CenterZ           float64 `yaml:"center_z"`
}

// NoiseConfig holds target height field parameters.
type NoiseConfig struct {
	Source  string  `yaml:"source"` // "perlin" or "simplex"
	Seed    int64   `yaml:"seed"`
	Offset  float64 `yaml:"offset"` // Noise coordinate of ring 0
	Speed   float64 `yaml:"speed"`  // Coordinate step per ring
	Scale   float64 `yaml:"scale"`  // Amplitude of the remapped [-1,1] value
	Alpha   float64 `yaml:"alpha"`  // Perlin octave amplitude divisor
	Beta    float64 `yaml:"beta"`   // Perlin octave frequency multiplier
	Octaves int32   `yaml:"octaves"`
}

// SpringConfig holds the Hooke's law oscillator parameters.
type SpringConfig struct {
	K          float64 `yaml:"k"`
	Drag       float64 `yaml:"drag"`        // Velocity multiplier per tick, must be in (0,1)
	Impulse    float64 `yaml:"impulse"`     // Velocity added by the input trigger
	RestHeight float64 `yaml:"rest_height"` // Height of ring 0 at rest
}

// RippleConfig holds the beat-triggered sweep parameters.
type RippleConfig struct {
	Threshold     float64     `yaml:"threshold"`      // Focus band energy that starts a sweep
	WaitTime      float64     `yaml:"wait_time"`      // Seconds between ring launches and after each sweep
	MovementSpeed float64     `yaml:"movement_speed"` // Progress added per tick
	OffsetScale   float64     `yaml:"offset_scale"`   // Sweep height amplitude
	Curve         string      `yaml:"curve"`          // Preset name used when CurveKeys is empty
	CurveKeys     [][]float64 `yaml:"curve_keys"`     // Optional [t, value] keyframes
}

// ReactConfig scales sweep amplitude by the triggering beat strength.
type ReactConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	HeightScale float64 `yaml:"height_scale"`
}

// SettleConfig eases idle rings toward their noise target heights.
type SettleConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Frequency float64 `yaml:"frequency"` // Angular frequency of the settle spring
	Damping   float64 `yaml:"damping"`   // Damping ratio of the settle spring
}

// AudioConfig holds band analysis parameters.
type AudioConfig struct {
	FocusBand     int     `yaml:"focus_band"`
	Bands         int     `yaml:"bands"`
	FFTSize       int     `yaml:"fft_size"`
	Decay         float64 `yaml:"decay"`          // Exponential smoothing of band magnitudes
	PulseInterval float64 `yaml:"pulse_interval"` // Seconds between synthetic beats (no audio file)
	PulseDecay    float64 `yaml:"pulse_decay"`    // Energy multiplier per second after a synthetic beat
}

// CameraConfig holds the orbit camera defaults.
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Fovy     float64 `yaml:"fovy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT        float64 // Seconds per tick at the target frame rate
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
