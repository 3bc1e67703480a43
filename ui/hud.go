// Package ui draws the heads-up display and tuning panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Title       string
	Tick        int32
	FPS         int32
	Rings       int
	Particles   int
	Energy      float64
	Threshold   float64
	Moving      bool
	ActiveRings int
	Triggers    int
	Velocity    float64
	Paused      bool
	AudioLabel  string
}

// HUD renders the heads-up display.
type HUD struct {
	FontSize int32
}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{FontSize: 16}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(d HUDData) {
	rl.DrawText(d.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Rings: %d | Particles: %d", d.Tick, d.FPS, d.Rings, d.Particles),
		10, 35, h.FontSize, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Audio: %s | Sweeps: %d | Spring v: %+.3f", d.AudioLabel, d.Triggers, d.Velocity),
		10, 55, h.FontSize, rl.LightGray,
	)

	h.drawEnergyMeter(10, 78, 220, 12, d.Energy, d.Threshold)

	status := "Idle"
	color := rl.Gray
	if d.Moving {
		status = fmt.Sprintf("Sweeping (%d rings)", d.ActiveRings)
		color = rl.Yellow
	}
	if d.Paused {
		status = "PAUSED"
		color = rl.Orange
	}
	rl.DrawText(status, 240, 76, h.FontSize, color)
}

// drawEnergyMeter draws the focus band energy with a threshold tick.
func (h *HUD) drawEnergyMeter(x, y, w, hgt int32, energy, threshold float64) {
	rl.DrawRectangle(x, y, w, hgt, rl.Fade(rl.DarkGray, 0.6))
	fill := int32(float64(w) * clamp01(energy))
	color := rl.SkyBlue
	if energy > threshold {
		color = rl.Gold
	}
	rl.DrawRectangle(x, y, fill, hgt, color)
	tx := x + int32(float64(w)*clamp01(threshold))
	rl.DrawLine(tx, y-2, tx, y+hgt+2, rl.Red)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
