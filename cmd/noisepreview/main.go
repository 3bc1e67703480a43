// Target height preview tool - interactive view of the per-ring noise walk.
//
// Usage: go run ./cmd/noisepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ringfield/config"
	"github.com/pthm-cable/ringfield/noise"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	chartWidth   = 620
	chartHeight  = 420
	panelWidth   = windowWidth - chartWidth - 40
)

// previewParams holds the editable noise parameters.
type previewParams struct {
	Simplex bool
	Seed    int64
	Offset  float32
	Speed   float32
	Scale   float32
	Alpha   float32
	Beta    float32
	Octaves int32
	Rings   int32
}

func paramsFromConfig(cfg *config.Config) previewParams {
	return previewParams{
		Simplex: cfg.Noise.Source == "simplex",
		Seed:    cfg.Noise.Seed,
		Offset:  float32(cfg.Noise.Offset),
		Speed:   float32(cfg.Noise.Speed),
		Scale:   float32(cfg.Noise.Scale),
		Alpha:   float32(cfg.Noise.Alpha),
		Beta:    float32(cfg.Noise.Beta),
		Octaves: cfg.Noise.Octaves,
		Rings:   int32(cfg.Layout.RingCount),
	}
}

func (p previewParams) sourceName() string {
	if p.Simplex {
		return "simplex"
	}
	return "perlin"
}

func (p previewParams) yaml() string {
	return fmt.Sprintf(`noise:
  source: %s
  seed: %d
  offset: %.3f
  speed: %.3f
  scale: %.2f
  alpha: %.2f
  beta: %.2f
  octaves: %d`,
		p.sourceName(), p.Seed, p.Offset, p.Speed, p.Scale, p.Alpha, p.Beta, p.Octaves)
}

// heights samples the target heights for the current parameters.
func (p previewParams) heights() ([]float64, error) {
	src, err := noise.New(noise.Options{
		Kind:    p.sourceName(),
		Seed:    p.Seed,
		Alpha:   float64(p.Alpha),
		Beta:    float64(p.Beta),
		Octaves: p.Octaves,
	})
	if err != nil {
		return nil, err
	}
	return noise.TargetHeights(src, int(p.Rings), float64(p.Offset), float64(p.Speed), float64(p.Scale)), nil
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Target Height Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := paramsFromConfig(cfg)
	params := defaults
	heights, genErr := params.heights()
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			heights, genErr = params.heights()
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawChart(10, 10, heights, params.Scale)
		if genErr != nil {
			rl.DrawText(genErr.Error(), 15, chartHeight+25, 16, rl.Red)
		} else {
			minH, maxH := extent(heights)
			rl.DrawText(fmt.Sprintf("Rings: %d  Min: %.3f  Max: %.3f", len(heights), minH, maxH), 15, chartHeight+25, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(chartWidth + 30)
		panelY := float32(10)

		rl.DrawText("Target Height Noise", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, min, max float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				value, min, max,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		if v := slider("Offset (noise coordinate of ring 0)", "%.2f", params.Offset, 0, 100); v != params.Offset {
			params.Offset = v
			needsRegen = true
		}
		if v := slider("Speed (coordinate step per ring)", "%.3f", params.Speed, 0.001, 1); v != params.Speed {
			params.Speed = v
			needsRegen = true
		}
		if v := slider("Scale (height amplitude)", "%.2f", params.Scale, 0, 5); v != params.Scale {
			params.Scale = v
			needsRegen = true
		}
		if v := slider("Rings", "%.0f", float32(params.Rings), 1, 200); int32(v) != params.Rings {
			params.Rings = int32(v)
			needsRegen = true
		}

		if !params.Simplex {
			if v := slider("Alpha (octave amplitude divisor)", "%.2f", params.Alpha, 1, 4); v != params.Alpha {
				params.Alpha = v
				needsRegen = true
			}
			if v := slider("Beta (octave frequency multiplier)", "%.2f", params.Beta, 1, 4); v != params.Beta {
				params.Beta = v
				needsRegen = true
			}
			if v := slider("Octaves", "%.0f", float32(params.Octaves), 1, 8); int32(v) != params.Octaves {
				params.Octaves = int32(v)
				needsRegen = true
			}
		}

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Source: "+params.sourceName()) {
			params.Simplex = !params.Simplex
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX+130), int32(panelY+8), 16, rl.DarkGray)
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(params.yaml(), int32(panelX), int32(panelY+22), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.yaml())
		}

		rl.EndDrawing()
	}
}

// drawChart draws one bar per ring around a zero line, scaled to ±scale.
func drawChart(x, y int32, heights []float64, scale float32) {
	rl.DrawRectangle(x, y, chartWidth, chartHeight, rl.Color{R: 24, G: 28, B: 40, A: 255})
	mid := y + chartHeight/2
	rl.DrawLine(x, mid, x+chartWidth, mid, rl.Gray)
	if len(heights) == 0 || scale <= 0 {
		return
	}

	barW := float32(chartWidth) / float32(len(heights))
	half := float32(chartHeight/2 - 10)
	for i, h := range heights {
		frac := float32(h) / scale
		bh := int32(frac * half)
		bx := x + int32(float32(i)*barW)
		bw := int32(barW) - 1
		if bw < 1 {
			bw = 1
		}
		color := rl.SkyBlue
		if bh < 0 {
			color = rl.Orange
			rl.DrawRectangle(bx, mid, bw, -bh, color)
			continue
		}
		rl.DrawRectangle(bx, mid-bh, bw, bh, color)
	}
	rl.DrawRectangleLines(x, y, chartWidth, chartHeight, rl.DarkGray)
}

func extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
