// Package renderer draws the ring field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfield/camera"
	"github.com/pthm-cable/ringfield/components"
	"github.com/pthm-cable/ringfield/field"
)

// FieldRenderer draws particles as small cubes tinted by height.
type FieldRenderer struct {
	PointSize   float32
	Low, High   rl.Color
	ShowGuides  bool // ring outlines on the ground plane
	ShowTargets bool // noise target height markers
	HeightRange float32
}

// NewFieldRenderer creates a renderer with default colors.
func NewFieldRenderer(heightRange float32) *FieldRenderer {
	if heightRange <= 0 {
		heightRange = 1
	}
	return &FieldRenderer{
		PointSize:   0.12,
		Low:         rl.Color{R: 40, G: 90, B: 200, A: 255},
		High:        rl.Color{R: 255, G: 210, B: 90, A: 255},
		ShowGuides:  true,
		HeightRange: heightRange,
	}
}

// Camera3D converts the orbit camera for raylib.
func Camera3D(c *camera.Camera) rl.Camera3D {
	x, y, z := c.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(x, y, z),
		Target:     rl.NewVector3(c.TargetX, c.TargetY, c.TargetZ),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the field. Must be called between BeginMode3D and EndMode3D.
func (r *FieldRenderer) Draw(particles []components.Position, layout field.Layout, targets []float64) {
	if r.ShowGuides {
		cx, cz := layout.Center()
		center := rl.NewVector3(float32(cx), 0, float32(cz))
		for _, ring := range layout.Rings {
			if ring.Radius <= 0 {
				continue
			}
			rl.DrawCircle3D(center, float32(ring.Radius), rl.NewVector3(1, 0, 0), 90, rl.Fade(rl.Gray, 0.25))
		}
	}

	size := rl.NewVector3(r.PointSize, r.PointSize, r.PointSize)
	for _, p := range particles {
		rl.DrawCubeV(rl.NewVector3(p.X, p.Y, p.Z), size, r.colorFor(p.Y))
	}

	if r.ShowTargets {
		for i, ring := range layout.Rings {
			if i >= len(targets) || ring.Start >= len(particles) {
				continue
			}
			first := particles[ring.Start]
			rl.DrawSphere(rl.NewVector3(first.X, float32(targets[i]), first.Z), r.PointSize*0.8, rl.Red)
		}
	}
}

// colorFor blends Low to High across [-HeightRange, HeightRange].
func (r *FieldRenderer) colorFor(y float32) rl.Color {
	t := (y/r.HeightRange + 1) / 2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return rl.Color{
		R: lerp8(r.Low.R, r.High.R, t),
		G: lerp8(r.Low.G, r.High.G, t),
		B: lerp8(r.Low.B, r.High.B, t),
		A: lerp8(r.Low.A, r.High.A, t),
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t)
}
