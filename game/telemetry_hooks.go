package game

import (
	"log/slog"

	"github.com/pthm-cable/ringfield/sim"
)

// recordTelemetry feeds one tick into the collector and flushes when due.
func (g *Game) recordTelemetry(stats sim.TickStats) {
	if stats.Triggered {
		g.triggers++
	}
	g.collector.Record(stats.Sample())
	g.flushTelemetry(stats.Tick)
}

// flushTelemetry writes events every tick and window stats when the
// window closes.
func (g *Game) flushTelemetry(tick int32) {
	if events := g.collector.DrainEvents(); len(events) > 0 {
		if g.logStats {
			for _, e := range events {
				slog.Info("event", "type", e.Type, "tick", e.Tick, "energy", e.Energy)
			}
		}
		if err := g.outputManager.WriteEvents(events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}

	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.field.RingHeights())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
