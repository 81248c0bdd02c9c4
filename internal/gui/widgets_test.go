package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	testBounds = rl.NewRectangle(0, 0, 400, 600)
	dragBox    = rl.NewRectangle(10, 10, dragBoxW, rowHeight)
	removeBox  = rl.NewRectangle(80, 10, 20, rowHeight)
	otherBox   = rl.NewRectangle(80, 40, 20, rowHeight)
)

func at(r rl.Rectangle) rl.Vector2 {
	return rl.NewVector2(r.X+r.Width/2, r.Y+r.Height/2)
}

// frame runs one panel frame with a drag value and two buttons and reports
// what fired.
func frame(p *panel, in input) (dx float32, dragged, removed, other bool) {
	p.start(testBounds, 0, in)
	dx, dragged = p.drag("drag0", dragBox)
	removed = p.click("remove0", removeBox)
	other = p.click("remove1", otherBox)
	p.end()
	return
}

func TestPanel_ClickFiresOnPressAndReleaseOverButton(t *testing.T) {
	p := &panel{}
	if _, _, removed, _ := frame(p, input{mouse: at(removeBox), down: true, pressed: true}); removed {
		t.Error("button fired on press")
	}
	if _, _, removed, _ := frame(p, input{mouse: at(removeBox), released: true}); !removed {
		t.Error("expected button to fire on release")
	}
	if p.armed != "" || p.active != "" {
		t.Errorf("expected mouse released, got armed=%q active=%q", p.armed, p.active)
	}
}

func TestPanel_DragEndingOverButtonDoesNotClick(t *testing.T) {
	p := &panel{}

	frame(p, input{mouse: at(dragBox), down: true, pressed: true})
	if p.active != "drag0" {
		t.Fatalf("expected drag0 active, got %q", p.active)
	}

	dx, dragged, removed, _ := frame(p, input{mouse: at(removeBox), down: true, dx: 70})
	if !dragged || dx != 70 {
		t.Errorf("expected drag of 70, got %v %v", dx, dragged)
	}
	if removed {
		t.Error("button fired mid drag")
	}

	_, dragged, removed, _ = frame(p, input{mouse: at(removeBox), released: true})
	if removed {
		t.Error("releasing a drag over a button must not click it")
	}
	if dragged {
		t.Error("no movement expected on release")
	}
	if p.active != "" {
		t.Errorf("expected drag to end, got %q", p.active)
	}
}

func TestPanel_ReleaseOverDifferentButton(t *testing.T) {
	p := &panel{}
	frame(p, input{mouse: at(removeBox), down: true, pressed: true})
	_, _, removed, other := frame(p, input{mouse: at(otherBox), released: true})
	if removed || other {
		t.Errorf("press and release on different buttons fired: remove0=%v remove1=%v", removed, other)
	}
}

func TestPanel_DragIgnoresPressOutside(t *testing.T) {
	p := &panel{}
	frame(p, input{mouse: rl.NewVector2(300, 300), down: true, pressed: true})
	if _, dragged, _, _ := frame(p, input{mouse: at(dragBox), down: true, dx: 5}); dragged {
		t.Error("drag started from a press outside the box")
	}
}
