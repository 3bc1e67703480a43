// Package game wires the field simulation to raylib input, drawing and
// telemetry, in graphical or headless mode.
package game

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfield/audio"
	"github.com/pthm-cable/ringfield/backend"
	"github.com/pthm-cable/ringfield/camera"
	"github.com/pthm-cable/ringfield/config"
	"github.com/pthm-cable/ringfield/renderer"
	"github.com/pthm-cable/ringfield/sim"
	"github.com/pthm-cable/ringfield/systems"
	"github.com/pthm-cable/ringfield/telemetry"
	"github.com/pthm-cable/ringfield/ui"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config
	Seed           int64  // overrides the noise seed when non-zero
	AudioPath      string // WAV file; empty uses the synthetic pulse
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int

	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game owns the field orchestrator and everything around it.
type Game struct {
	cfg      *config.Config
	headless bool
	paused   bool
	steps    int

	backend *backend.ECS
	field   *sim.Orchestrator
	source  audio.Source
	closer  io.Closer
	label   string

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	triggers      int

	// Graphics (nil in headless mode)
	camera        *camera.Camera
	fieldRenderer *renderer.FieldRenderer
	hud           *ui.HUD
	tuning        *ui.TuningPanel
	perfPanel     *ui.PerfPanel

	// Per-frame input
	pendingImpulse bool
	screenW        int32
	screenH        int32
}

// NewGameWithOptions builds the field and, unless headless, its renderers.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if opts.Seed != 0 {
		c := *cfg
		c.Noise.Seed = opts.Seed
		cfg = &c
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:           cfg,
		headless:      opts.Headless,
		backend:       backend.NewECS(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		steps:         steps,
		screenW:       int32(cfg.Screen.Width),
		screenH:       int32(cfg.Screen.Height),
	}

	if err := g.openAudio(opts.AudioPath); err != nil {
		return nil, err
	}

	field, err := sim.New(cfg, g.backend, g.source)
	if err != nil {
		g.closeAudio()
		return nil, fmt.Errorf("building field: %w", err)
	}
	field.SetPerfCollector(g.perfCollector)
	field.OnTick(g.recordTelemetry)
	g.field = field

	window := opts.StatsWindowSec
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(window, cfg.Derived.DT)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.closeAudio()
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !g.headless {
		g.initGraphics()
	}
	return g, nil
}

func (g *Game) openAudio(path string) error {
	if path == "" {
		p, err := audio.NewPulseSource(g.cfg.Audio.Bands, g.cfg.Audio.FocusBand, g.cfg.Audio.PulseInterval, g.cfg.Audio.PulseDecay)
		if err != nil {
			return fmt.Errorf("pulse source: %w", err)
		}
		g.source = p
		g.label = fmt.Sprintf("pulse %.2fs", g.cfg.Audio.PulseInterval)
		return nil
	}

	f, err := audio.OpenFile(path, g.cfg.Audio.FFTSize, g.cfg.Audio.Bands, g.cfg.Audio.Decay)
	if err != nil {
		return err
	}
	g.source = f
	g.closer = f
	g.label = filepath.Base(path)
	return nil
}

func (g *Game) closeAudio() {
	if g.closer == nil {
		return
	}
	if err := g.closer.Close(); err != nil {
		slog.Error("failed to close audio", "error", err)
	}
	g.closer = nil
}

func (g *Game) initGraphics() {
	c := g.cfg.Camera
	g.camera = camera.New(float32(c.Distance), float32(c.Yaw), float32(c.Pitch), float32(c.Fovy))
	layout := g.field.Layout()
	cx, cz := layout.Center()
	g.camera.TargetX, g.camera.TargetZ = float32(cx), float32(cz)
	if n := len(layout.Rings); n > 0 {
		g.camera.Fit(float32(layout.Rings[n-1].Radius))
	}

	heightRange := g.cfg.Ripple.OffsetScale
	if g.cfg.React.Enabled {
		heightRange = g.cfg.React.MaxSpeed * g.cfg.React.HeightScale
	}
	g.fieldRenderer = renderer.NewFieldRenderer(float32(heightRange))
	g.hud = ui.NewHUD()
	g.tuning = ui.NewTuningPanel(float32(g.screenW)-270, 20, 250)
	g.perfPanel = ui.NewPerfPanel(10, 110, 300, systems.NewSystemRegistry())
}

// Update handles input and runs one tick at the frame time.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()
	if g.paused {
		return
	}
	dt := float64(rl.GetFrameTime())
	if dt <= 0 || dt > 0.25 {
		dt = g.cfg.Derived.DT
	}
	g.step(dt)
}

// UpdateHeadless runs StepsPerUpdate ticks at the configured fixed timestep.
func (g *Game) UpdateHeadless() {
	for range g.steps {
		g.step(g.cfg.Derived.DT)
	}
}

// step advances the field. Telemetry runs from the tick hook.
func (g *Game) step(dt float64) {
	in := sim.Input{Impulse: g.pendingImpulse}
	g.pendingImpulse = false

	if err := g.field.Tick(dt, in); err != nil {
		slog.Error("tick failed", "tick", g.field.TickCount(), "error", err)
	}
}

// Impulse queues a spring impulse for the next tick.
func (g *Game) Impulse() {
	g.pendingImpulse = true
}

// Draw renders the field and overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 22, A: 255})

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	g.fieldRenderer.Draw(g.field.Particles(), g.field.Layout(), g.field.Targets())
	rl.EndMode3D()

	stats := g.field.LastStats()
	ripple := g.field.Ripple().Config()
	g.hud.Draw(ui.HUDData{
		Title:       "Ring Field",
		Tick:        stats.Tick,
		FPS:         rl.GetFPS(),
		Rings:       g.field.Layout().RingCount(),
		Particles:   g.field.Layout().Total,
		Energy:      stats.Energy,
		Threshold:   ripple.Threshold,
		Moving:      stats.Moving,
		ActiveRings: stats.ActiveRings,
		Triggers:    g.triggers,
		Velocity:    stats.SpringVelocity,
		Paused:      g.paused,
		AudioLabel:  g.label,
	})

	tuned, changed, sweep := g.tuning.Draw(ui.Tuning{
		Threshold:     ripple.Threshold,
		OffsetScale:   ripple.OffsetScale,
		MovementSpeed: ripple.MovementSpeed,
	})
	if changed {
		g.field.Ripple().Tune(tuned.Threshold, tuned.OffsetScale, tuned.MovementSpeed)
	}
	if sweep {
		g.field.TriggerSweep()
	}
	g.perfPanel.Draw(g.perfCollector.Stats())

	g.hud.DrawControls(g.screenH, "Space: impulse | Enter: sweep | P: pause | Drag: orbit | Wheel: zoom | G: guides | T: targets | Tab: panel | F3: perf | Home: reset")
	rl.EndDrawing()
}

// Unload closes telemetry output and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.closeAudio()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.field.TickCount()
}

// Field returns the orchestrator.
func (g *Game) Field() *sim.Orchestrator {
	return g.field
}
