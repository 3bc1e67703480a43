package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the sweep parameters editable at runtime.
type Tuning struct {
	Threshold     float64
	OffsetScale   float64
	MovementSpeed float64
}

// TuningPanel renders raygui sliders for the sweep parameters.
type TuningPanel struct {
	x, y, width float32
	visible     bool
}

// NewTuningPanel creates a panel anchored at (x, y).
func NewTuningPanel(x, y, width float32) *TuningPanel {
	return &TuningPanel{x: x, y: y, width: width, visible: true}
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the sliders and returns the edited values and whether any
// value changed, plus whether the manual sweep button was pressed.
func (p *TuningPanel) Draw(t Tuning) (out Tuning, changed, sweep bool) {
	out = t
	if !p.visible {
		return out, false, false
	}

	x, y := p.x, p.y
	rl.DrawRectangle(int32(x-10), int32(y-10), int32(p.width+20), 190, rl.Fade(rl.Black, 0.5))
	rl.DrawText("Sweep", int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	slider := func(label, format string, value, min, max float32) float32 {
		rl.DrawText(label, int32(x), int32(y), 14, rl.LightGray)
		y += 16
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: p.width - 60, Height: 16},
			"", "",
			value, min, max,
		)
		rl.DrawText(fmt.Sprintf(format, v), int32(x+p.width-52), int32(y), 14, rl.RayWhite)
		y += 26
		return v
	}

	threshold := slider("Threshold", "%.2f", float32(t.Threshold), 0, 1)
	offset := slider("Offset scale", "%.2f", float32(t.OffsetScale), 0, 5)
	speed := slider("Movement speed", "%.3f", float32(t.MovementSpeed), 0.001, 0.1)

	if threshold != float32(t.Threshold) {
		out.Threshold = float64(threshold)
		changed = true
	}
	if offset != float32(t.OffsetScale) {
		out.OffsetScale = float64(offset)
		changed = true
	}
	if speed != float32(t.MovementSpeed) {
		out.MovementSpeed = float64(speed)
		changed = true
	}

	sweep = gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 24}, "Sweep now")
	return out, changed, sweep
}
