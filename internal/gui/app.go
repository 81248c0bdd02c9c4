package gui

import (
	"fmt"
	"log"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/palette"
	"github.com/san-kum/pendulum/internal/sim"
)

// Theme Colors
var (
	ColBg        = rl.NewColor(27, 27, 27, 255)
	ColPanel     = rl.NewColor(20, 20, 20, 255)
	ColAccent    = rl.NewColor(180, 180, 180, 255)
	ColSelect    = rl.NewColor(240, 240, 240, 255)
	ColText      = rl.NewColor(160, 160, 160, 255)
	ColTextDim   = rl.NewColor(80, 80, 80, 255)
	ColGrid      = rl.NewColor(50, 50, 50, 255)
	ColWidget    = rl.NewColor(45, 45, 45, 255)
	ColWidgetHot = rl.NewColor(70, 70, 70, 255)
)

const (
	anchorInset    = 40
	gravitySpeed   = 0.01
	lengthSpeed    = 1.0
	massSpeed      = 0.5
	dragSpeed      = 0.01
	telemetryLimit = 300
	scrollSpeed    = 30
)

type App struct {
	Sim       *sim.Simulator
	Rng       *rand.Rand
	Cfg       *config.Config
	Font      rl.Font
	Telemetry []float64

	panel  *panel
	scroll float32
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "Pendulum")
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, s *sim.Simulator, rng *rand.Rand) *App {
	font := rl.GetFontDefault()
	return &App{
		Sim:       s,
		Rng:       rng,
		Cfg:       cfg,
		Font:      font,
		Telemetry: make([]float64, 0, telemetryLimit),
		panel:     newPanel(font),
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, s *sim.Simulator, rng *rand.Rand) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, s, rng)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

// Update runs the physics for this frame.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Sim.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.addArm()
	}

	if a.Sim.Frame() {
		a.Telemetry = append(a.Telemetry, a.Sim.Chain().TotalEnergy())
		if len(a.Telemetry) > telemetryLimit {
			a.Telemetry = a.Telemetry[1:]
		}
	}
}

func (a *App) addArm() {
	arm := a.Sim.Chain().AddArm(a.Rng)
	log.Printf("gui: added arm %d at %v", a.Sim.Chain().Len()-1, arm.Pos)
}

func (a *App) layout() (canvas, side rl.Rectangle) {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	pw := float32(a.Cfg.Window.PanelWidth)
	if pw > w/2 {
		pw = w / 2
	}
	return rl.NewRectangle(0, 0, w-pw, h), rl.NewRectangle(w-pw, 0, pw, h)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	canvas, side := a.layout()
	a.drawPanel(side)
	a.drawCanvas(canvas)

	rl.EndDrawing()
}

// drawPanel draws the side panel and applies its edits to the chain.
func (a *App) drawPanel(r rl.Rectangle) {
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
		a.scroll -= rl.GetMouseWheelMove() * scrollSpeed
		if a.scroll < 0 {
			a.scroll = 0
		}
	}

	p := a.panel
	p.begin(r, a.scroll)
	c := a.Sim.Chain()

	p.heading("Simulation")
	paused := a.Sim.Paused()
	if p.checkbox(&paused, "Pause") {
		a.Sim.SetPaused(paused)
	}
	p.newline()
	p.label("Gravity")
	if g, ok := p.dragValue("gravity", c.Gravity, gravitySpeed); ok {
		c.Gravity = g
	}
	p.newline()
	p.separator()

	ke, pe := c.KineticEnergy(), c.PotentialEnergy()
	p.label(fmt.Sprintf("Potential energy: %.2f", pe))
	p.newline()
	p.label(fmt.Sprintf("Kinetic energy: %.2f", ke))
	p.newline()
	p.label(fmt.Sprintf("Total energy: %.2f", pe+ke))
	p.newline()
	p.separator()

	p.heading("Pendulums")
	if p.button("add", "Add pendulum") {
		a.addArm()
	}
	p.newline()

	remove := -1
	for i := range c.Arms {
		arm := c.Arms[i]
		rl.DrawRectangleRec(rl.NewRectangle(p.x, p.y+6, 4, rowHeight-12), palette.RGBA(i))
		p.x += 4 + padX

		p.label("L")
		if v, ok := p.dragValue(fmt.Sprintf("len%d", i), arm.Length, lengthSpeed); ok {
			a.edit(c.SetLength(i, v))
		}
		p.label("M")
		if v, ok := p.dragValue(fmt.Sprintf("mass%d", i), arm.Mass, massSpeed); ok {
			a.edit(c.SetMass(i, v))
		}
		p.label("D")
		if v, ok := p.dragValue(fmt.Sprintf("drag%d", i), arm.Drag, dragSpeed); ok {
			a.edit(c.SetDrag(i, v))
		}
		if p.button(fmt.Sprintf("remove%d", i), "x") {
			remove = i
		}
		p.newline()
	}

	p.end()

	if remove >= 0 && c.RemoveArm(remove) {
		log.Printf("gui: removed arm %d", remove)
	}
}

// edit drops rejected values; the widget keeps showing the last valid one.
func (a *App) edit(err error) {
	if err != nil {
		log.Printf("gui: %v", err)
	}
}
