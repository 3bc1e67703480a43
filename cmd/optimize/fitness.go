package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/ringfield/config"
	"github.com/pthm-cable/ringfield/game"
	"github.com/pthm-cable/ringfield/telemetry"
)

// Settle detection: ring 0 counts as settled once velocity and
// displacement both stay under settleEpsilon for settleHoldTicks.
const (
	settleEpsilon   = 1e-3
	settleHoldTicks = 30
)

// Targets are what the optimizer steers toward.
type Targets struct {
	SweepRate  float64 // sweeps per second
	SettleTime float64 // seconds from impulse to rest
}

// FitnessEvaluator runs headless fields and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	intervals  []float64 // pulse intervals, one scenario each
	audioPath  string    // when set, replaces the pulse scenarios
	baseConfig *config.Config
	targets    Targets

	mu         sync.Mutex
	lastRate   float64
	lastSettle float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, intervals []float64, audioPath string, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		intervals:  intervals,
		audioPath:  audioPath,
		baseConfig: baseCfg,
		targets:    targets,
	}
}

// Last returns the mean sweep rate and the settle time of the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (rate, settle float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRate, fe.lastSettle
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// squared relative error of the sweep rate plus that of the settle time.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	scenarios := fe.intervals
	if fe.audioPath != "" {
		scenarios = []float64{0}
	}

	// Rate scenarios and the settle run are independent
	rates := make([]float64, len(scenarios))
	var settle float64
	var wg sync.WaitGroup
	for i, interval := range scenarios {
		wg.Add(1)
		go func(idx int, iv float64) {
			defer wg.Done()
			rates[idx] = fe.sweepRate(cfg, iv)
		}(i, interval)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		settle = fe.settleTime(cfg)
	}()
	wg.Wait()

	var rateErr, meanRate float64
	for _, r := range rates {
		rateErr += relErrSq(r, fe.targets.SweepRate)
		meanRate += r
	}
	n := float64(len(rates))
	rateErr /= n
	meanRate /= n

	fe.mu.Lock()
	fe.lastRate = meanRate
	fe.lastSettle = settle
	fe.mu.Unlock()

	return rateErr + relErrSq(settle, fe.targets.SettleTime)
}

// sweepRate runs the field against one audio scenario and returns sweeps
// per simulated second. interval 0 uses the audio file.
func (fe *FitnessEvaluator) sweepRate(base *config.Config, interval float64) float64 {
	cfg := *base
	path := fe.audioPath
	if interval > 0 {
		cfg.Audio.PulseInterval = interval
		path = ""
	}

	var triggers int
	g, err := game.NewGameWithOptions(game.Options{
		Config:         &cfg,
		AudioPath:      path,
		Headless:       true,
		StatsWindowSec: 1.0,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			triggers += stats.Triggers
		},
	})
	if err != nil {
		slog.Error("scenario failed", "interval", interval, "error", err)
		return 0
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	simSec := float64(g.Tick()) * cfg.Derived.DT
	if simSec <= 0 {
		return 0
	}
	return float64(triggers) / simSec
}

// settleTime applies one impulse to a silent field and returns the seconds
// until ring 0 comes to rest, or the full run length if it never does.
func (fe *FitnessEvaluator) settleTime(base *config.Config) float64 {
	cfg := *base
	cfg.Settle.Enabled = false
	cfg.Ripple.Threshold = 1 // pulse energy never exceeds 1

	g, err := game.NewGameWithOptions(game.Options{
		Config:         &cfg,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		slog.Error("settle run failed", "error", err)
		return math.Inf(1)
	}
	defer g.Unload()

	g.Impulse()
	held := 0
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
		s := g.Field().LastStats()
		if math.Abs(s.SpringVelocity) < settleEpsilon && math.Abs(s.Ring0Height-cfg.Spring.RestHeight) < settleEpsilon {
			held++
			if held >= settleHoldTicks {
				return float64(g.Tick()-int32(settleHoldTicks)) * cfg.Derived.DT
			}
			continue
		}
		held = 0
	}
	return float64(fe.maxTicks) * cfg.Derived.DT
}

// copyConfig creates a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Ripple.CurveKeys = append([][]float64(nil), fe.baseConfig.Ripple.CurveKeys...)
	return &cfg
}

func relErrSq(got, want float64) float64 {
	if want == 0 {
		return got * got
	}
	e := (got - want) / want
	return e * e
}
