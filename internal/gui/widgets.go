package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	rowHeight  = 26
	fontSize   = 18
	padX       = 8
	dragBoxW   = 64
	checkBoxSz = 16
)

// input is the mouse state for one frame, polled once in begin.
type input struct {
	mouse    rl.Vector2
	down     bool
	pressed  bool
	released bool
	dx       float32
}

func pollInput() input {
	return input{
		mouse:    rl.GetMousePosition(),
		down:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		dx:       rl.GetMouseDelta().X,
	}
}

func contains(r rl.Rectangle, p rl.Vector2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// panel is a tiny immediate-mode widget layer: widgets are laid out left to
// right until newline and report interaction in the same call that draws them.
//
// A widget owns the mouse from the press that started on it until the end of
// the frame the button is released in, so a release never counts for a
// different widget than the press.
type panel struct {
	font   rl.Font
	bounds rl.Rectangle
	x, y   float32
	in     input
	active string // drag value being dragged
	armed  string // button the press started on
}

func newPanel(font rl.Font) *panel {
	return &panel{font: font}
}

// begin polls input, resets the cursor to the top-left of bounds and draws
// the panel background.
func (p *panel) begin(bounds rl.Rectangle, scroll float32) {
	p.start(bounds, scroll, pollInput())
	rl.DrawRectangleRec(bounds, ColPanel)
	rl.DrawLineEx(rl.NewVector2(bounds.X, bounds.Y), rl.NewVector2(bounds.X, bounds.Y+bounds.Height), 1, ColGrid)
}

func (p *panel) start(bounds rl.Rectangle, scroll float32, in input) {
	p.bounds = bounds
	p.x = bounds.X + padX
	p.y = bounds.Y + padX - scroll
	p.in = in
}

// end releases mouse ownership once the button is up.
func (p *panel) end() {
	if !p.in.down {
		p.active = ""
		p.armed = ""
	}
}

func (p *panel) free() bool { return p.active == "" && p.armed == "" }

func (p *panel) newline() {
	p.x = p.bounds.X + padX
	p.y += rowHeight
}

func (p *panel) text(s string, size float32, col rl.Color) {
	rl.DrawTextEx(p.font, s, rl.NewVector2(p.x, p.y+(rowHeight-size)/2), size, 1, col)
	w := rl.MeasureTextEx(p.font, s, size, 1).X
	p.x += w + padX
}

func (p *panel) heading(s string) {
	p.text(s, fontSize+6, ColSelect)
	p.newline()
}

func (p *panel) label(s string) {
	p.text(s, fontSize, ColText)
}

func (p *panel) separator() {
	y := p.y + rowHeight/2
	rl.DrawLineEx(rl.NewVector2(p.bounds.X+padX, y), rl.NewVector2(p.bounds.X+p.bounds.Width-padX, y), 1, ColGrid)
	p.newline()
}

// click reports a release over r when the press also started on id.
func (p *panel) click(id string, r rl.Rectangle) bool {
	over := contains(r, p.in.mouse)
	if p.in.pressed && over && p.free() {
		p.armed = id
	}
	return p.in.released && over && p.armed == id
}

// drag reports the horizontal mouse movement while id owns the mouse.
func (p *panel) drag(id string, r rl.Rectangle) (float32, bool) {
	if p.in.pressed && contains(r, p.in.mouse) && p.free() {
		p.active = id
	}
	if p.active != id || !p.in.down || p.in.dx == 0 {
		return 0, false
	}
	return p.in.dx, true
}

func (p *panel) hot(id string, r rl.Rectangle) bool {
	return p.active == id || p.armed == id || (p.free() && contains(r, p.in.mouse))
}

// button draws a labelled button; id must be unique within the panel.
func (p *panel) button(id, s string) bool {
	w := rl.MeasureTextEx(p.font, s, fontSize, 1).X + 2*padX
	r := rl.NewRectangle(p.x, p.y+2, w, rowHeight-4)
	clicked := p.click(id, r)

	bg := ColWidget
	if p.hot(id, r) {
		bg = ColWidgetHot
	}
	rl.DrawRectangleRec(r, bg)
	rl.DrawTextEx(p.font, s, rl.NewVector2(r.X+padX, r.Y+(r.Height-fontSize)/2), fontSize, 1, ColSelect)
	p.x += w + padX

	return clicked
}

func (p *panel) checkbox(v *bool, s string) bool {
	box := rl.NewRectangle(p.x, p.y+(rowHeight-checkBoxSz)/2, checkBoxSz, checkBoxSz)
	hit := rl.NewRectangle(box.X, p.y, checkBoxSz+padX+rl.MeasureTextEx(p.font, s, fontSize, 1).X, rowHeight)
	toggled := p.click("check:"+s, hit)
	if toggled {
		*v = !*v
	}

	rl.DrawRectangleLinesEx(box, 1, ColAccent)
	if *v {
		rl.DrawRectangleRec(rl.NewRectangle(box.X+3, box.Y+3, box.Width-6, box.Height-6), ColSelect)
	}
	p.x += checkBoxSz + padX
	p.label(s)
	return toggled
}

// dragValue shows v in a box; press and drag horizontally to change it by
// speed per pixel. It returns the proposed value and whether it changed.
func (p *panel) dragValue(id string, v, speed float64) (float64, bool) {
	s := fmt.Sprintf("%.2f", v)
	r := rl.NewRectangle(p.x, p.y+2, dragBoxW, rowHeight-4)
	dx, moved := p.drag(id, r)

	bg := ColWidget
	if p.hot(id, r) {
		bg = ColWidgetHot
	}
	rl.DrawRectangleRec(r, bg)
	tw := rl.MeasureTextEx(p.font, s, fontSize, 1).X
	rl.DrawTextEx(p.font, s, rl.NewVector2(r.X+(r.Width-tw)/2, r.Y+(r.Height-fontSize)/2), fontSize, 1, ColSelect)
	p.x += dragBoxW + padX

	if !moved {
		return v, false
	}
	return v + float64(dx)*speed, true
}
