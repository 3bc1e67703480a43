package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.Impulse()
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		g.field.TriggerSweep()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.fieldRenderer.ShowGuides = !g.fieldRenderer.ShowGuides
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.fieldRenderer.ShowTargets = !g.fieldRenderer.ShowTargets
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.perfPanel.Toggle()
	}

	g.handleCameraInput()
}

// handleResize tracks the window size for HUD placement.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenW = int32(rl.GetScreenWidth())
	g.screenH = int32(rl.GetScreenHeight())
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Right mouse drag orbits; the left button is left to the panel
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Rotate(d.X*0.005, d.Y*0.005)
	}

	const keyRate = 0.02
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Rotate(keyRate, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Rotate(-keyRate, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Rotate(0, keyRate)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Rotate(0, -keyRate)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 - wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
