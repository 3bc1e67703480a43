package ui

import (
	"fmt"

	"github.com/pthm-cable/ringfield/systems"
	"github.com/pthm-cable/ringfield/telemetry"
)

// PerfPanel shows the per-system share of the average tick.
type PerfPanel struct {
	r        *Renderer
	registry *systems.SystemRegistry
	x, y     int32
	width    int32
	visible  bool
}

// NewPerfPanel creates a hidden panel anchored at (x, y).
func NewPerfPanel(x, y, width int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		r:        NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	if !p.visible {
		return
	}
	ids := p.registry.IDs()
	lh := p.r.Theme.LineHeight
	height := p.r.Theme.Padding*2 + lh*4 + int32(len(ids))*(lh+2)
	p.r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + p.r.Theme.Padding
	y := p.y + p.r.Theme.Padding
	y = p.r.DrawSectionHeader(x, y, "Performance")
	y = p.r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%dus avg (%d-%d)",
		stats.AvgTickDuration.Microseconds(),
		stats.MinTickDuration.Microseconds(),
		stats.MaxTickDuration.Microseconds()))
	y = p.r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", stats.FPS))
	y += lh / 2

	for _, id := range ids {
		y = p.r.DrawPercentBar(x, y, p.registry.GetName(id), stats.PhasePct[id], 50, p.width-2*p.r.Theme.Padding)
	}
}
