package telemetry

import "math"

// TickSample is what one field tick reports to the collector.
type TickSample struct {
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

// Collector accumulates tick samples within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	ticks       int
	triggers    int
	gated       int
	impulses    int
	energySum   float64
	energyMax   float64
	movingTicks int
	activeSum   int
	ring0Min    float64
	ring0Max    float64
	velMaxAbs   float64

	events []Event
}

// NewCollector creates a collector flushing every windowDurationSec of
// simulation time at dt seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	c := &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
	c.reset(0)
	return c
}

// Record adds one tick to the current window.
func (c *Collector) Record(s TickSample) {
	c.ticks++
	c.energySum += s.Energy
	c.energyMax = math.Max(c.energyMax, s.Energy)
	if s.Moving {
		c.movingTicks++
	}
	c.activeSum += s.ActiveRings
	c.ring0Min = math.Min(c.ring0Min, s.Ring0Height)
	c.ring0Max = math.Max(c.ring0Max, s.Ring0Height)
	c.velMaxAbs = math.Max(c.velMaxAbs, math.Abs(s.SpringVelocity))

	simTime := float64(s.Tick) * c.dt
	if s.Triggered {
		c.triggers++
		c.events = append(c.events, NewTriggerEvent(s.Tick, simTime, s.Energy, s.Amplitude))
	}
	if s.Gated {
		c.gated++
		c.events = append(c.events, NewGatedEvent(s.Tick, simTime, s.Energy))
	}
	if s.Impulse {
		c.impulses++
		c.events = append(c.events, NewImpulseEvent(s.Tick, simTime, s.SpringVelocity))
	}
}

// DrainEvents returns and clears the events recorded since the last drain.
func (c *Collector) DrainEvents() []Event {
	out := c.events
	c.events = nil
	return out
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the recorded ticks and the ring heights
// at window end, then starts a new window.
func (c *Collector) Flush(currentTick int32, ringHeights []float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Triggers:        c.triggers,
		Gated:           c.gated,
		Impulses:        c.impulses,
		EnergyMax:       c.energyMax,
		VelocityMaxAbs:  c.velMaxAbs,
	}
	if c.ticks > 0 {
		n := float64(c.ticks)
		stats.EnergyMean = c.energySum / n
		stats.MovingFrac = float64(c.movingTicks) / n
		stats.ActiveRingsMean = float64(c.activeSum) / n
		stats.Ring0Min = c.ring0Min
		stats.Ring0Max = c.ring0Max
	}
	stats.HeightMean, stats.HeightStd, stats.HeightP10, stats.HeightP50, stats.HeightP90 = ComputeHeightStats(ringHeights)

	c.reset(currentTick)
	return stats
}

func (c *Collector) reset(tick int32) {
	c.windowStartTick = tick
	c.ticks = 0
	c.triggers = 0
	c.gated = 0
	c.impulses = 0
	c.energySum = 0
	c.energyMax = 0
	c.movingTicks = 0
	c.activeSum = 0
	c.ring0Min = math.Inf(1)
	c.ring0Max = math.Inf(-1)
	c.velMaxAbs = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
