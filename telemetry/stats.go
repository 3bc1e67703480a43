package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated field statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Sweeps during window
	Triggers int `csv:"triggers"`
	Gated    int `csv:"gated"`
	Impulses int `csv:"impulses"`

	// Focus band energy
	EnergyMean float64 `csv:"energy_mean"`
	EnergyMax  float64 `csv:"energy_max"`

	// Share of ticks with the sweep gate closed
	MovingFrac      float64 `csv:"moving_frac"`
	ActiveRingsMean float64 `csv:"active_rings_mean"`

	// Ring 0 height and spring velocity over the window
	Ring0Min       float64 `csv:"ring0_min"`
	Ring0Max       float64 `csv:"ring0_max"`
	VelocityMaxAbs float64 `csv:"velocity_max_abs"`

	// Ring height distribution at window end
	HeightMean float64 `csv:"height_mean"`
	HeightStd  float64 `csv:"height_std"`
	HeightP10  float64 `csv:"height_p10"`
	HeightP50  float64 `csv:"height_p50"`
	HeightP90  float64 `csv:"height_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeHeightStats returns mean, population std and percentiles of values.
func ComputeHeightStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("triggers", s.Triggers),
		slog.Int("gated", s.Gated),
		slog.Int("impulses", s.Impulses),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_max", s.EnergyMax),
		slog.Float64("moving_frac", s.MovingFrac),
		slog.Float64("active_rings_mean", s.ActiveRingsMean),
		slog.Float64("ring0_min", s.Ring0Min),
		slog.Float64("ring0_max", s.Ring0Max),
		slog.Float64("velocity_max_abs", s.VelocityMaxAbs),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_std", s.HeightStd),
		slog.Float64("height_p50", s.HeightP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"triggers", s.Triggers,
		"gated", s.Gated,
		"impulses", s.Impulses,
		"energy_mean", s.EnergyMean,
		"energy_max", s.EnergyMax,
		"moving_frac", s.MovingFrac,
		"ring0_min", s.Ring0Min,
		"ring0_max", s.Ring0Max,
		"height_mean", s.HeightMean,
		"height_std", s.HeightStd,
	)
}
