package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/palette"
)

func vec(p dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

// drawCanvas recomputes the anchor from the canvas rect and draws the chain:
// segments first so the discs sit on top of the joints.
func (a *App) drawCanvas(r rl.Rectangle) {
	c := a.Sim.Chain()
	c.Anchor = dynamo.V(float64(r.X+r.Width/2), float64(r.Y)+anchorInset)

	rl.DrawCircleV(vec(c.Anchor), 3, ColAccent)

	last := c.Anchor
	for i, arm := range c.Arms {
		rl.DrawLineEx(vec(last), vec(arm.Pos), 2, palette.RGBA(i))
		last = arm.Pos
	}
	for i, arm := range c.Arms {
		rl.DrawCircleV(vec(arm.Pos), float32(math.Sqrt(arm.Mass)), palette.RGBA(i))
	}

	a.drawTelemetry(r)

	status, col := "RUNNING", ColSelect
	if a.Sim.Paused() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, int(r.X)+20, int(r.Y+r.Height)-30, 14, col)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int(r.X)+120, int(r.Y+r.Height)-30, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [A] ADD  [Q] QUIT", int(r.X+r.Width)-300, int(r.Y+r.Height)-30, 14, ColTextDim)
}

// drawTelemetry plots recent total energy in the canvas corner.
func (a *App) drawTelemetry(r rl.Rectangle) {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := r.X+20, r.Y+r.Height-110
	width, height := float32(300), float32(60)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + (float32(i)/float32(len(a.Telemetry)))*width
		norm := (val - minVal) / (maxVal - minVal)
		py := rectY + height - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2f", a.Telemetry[len(a.Telemetry)-1]), int(rectX+width)+10, int(rectY+height)-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
