package viz

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/sim"
)

func newTestModel() Model {
	c := physics.NewChain(dynamo.V(0, 0), physics.DefaultGravity)
	s := sim.New(c, sim.StepsPerFrame)
	return NewModel(s, rand.New(rand.NewSource(1)), "test", 30)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelAnchor(t *testing.T) {
	m := newTestModel()
	want := dynamo.V(float64(width*2)*worldPerDot/2, anchorInset)
	if got := m.sim.Chain().Anchor; got != want {
		t.Errorf("anchor = %v, want %v", got, want)
	}
}

func TestModelAddRemove(t *testing.T) {
	m := send(newTestModel(), runeKey('a'), runeKey('a'), runeKey('a'))
	c := m.sim.Chain()
	if c.Len() != 3 {
		t.Fatalf("expected 3 arms, got %d", c.Len())
	}
	if m.selected != 2 {
		t.Errorf("expected last arm selected, got %d", m.selected)
	}

	c.Arms[0].Mass, c.Arms[1].Mass, c.Arms[2].Mass = 1, 2, 3
	m = send(m, tea.KeyMsg{Type: tea.KeyUp}, runeKey('x'))
	if c.Len() != 2 || c.Arms[0].Mass != 1 || c.Arms[1].Mass != 3 {
		t.Errorf("unexpected chain after delete: %+v", c.Arms)
	}

	m = send(m, runeKey('x'), runeKey('x'), runeKey('x'))
	if c.Len() != 0 || m.selected != 0 {
		t.Errorf("expected empty chain, got %d arms, selected %d", c.Len(), m.selected)
	}
}

func TestModelPauseAndTick(t *testing.T) {
	m := send(newTestModel(), runeKey('a'))
	before := m.sim.Chain().Positions()[0]

	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg(time.Now()))
	if !m.sim.Paused() {
		t.Fatal("expected pause")
	}
	if m.sim.Chain().Positions()[0] != before {
		t.Error("chain moved while paused")
	}
	if len(m.energyHistory) != 0 {
		t.Error("expected no energy sample while paused")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg(time.Now()))
	if len(m.energyHistory) != 1 || len(m.kineticHist) != 1 {
		t.Error("expected one energy sample after resuming")
	}
}

func TestModelAdjustFields(t *testing.T) {
	m := send(newTestModel(), runeKey('a'))
	c := m.sim.Chain()

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	if c.Arms[0].Length != 55 {
		t.Errorf("expected length 55, got %f", c.Arms[0].Length)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})
	if c.Arms[0].Mass != 24 {
		t.Errorf("expected mass 24, got %f", c.Arms[0].Mass)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})
	if c.Arms[0].Drag != 0 {
		t.Errorf("expected drag to stay 0, got %f", c.Arms[0].Drag)
	}
	if m.status == "" {
		t.Error("expected rejected edit to be reported")
	}

	m = send(m, runeKey('+'), runeKey('+'), runeKey('-'))
	if d := c.Gravity - (physics.DefaultGravity + gravityStep); d > 1e-12 || d < -1e-12 {
		t.Errorf("unexpected gravity %f", c.Gravity)
	}
}

func TestModelResize(t *testing.T) {
	m := send(newTestModel(), tea.WindowSizeMsg{Width: 154, Height: 44})
	if m.canvas.Width != 100 || m.canvas.Height != 40 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
	if m.sim.Chain().Anchor.X != 300 {
		t.Errorf("expected anchor x 300, got %f", m.sim.Chain().Anchor.X)
	}
}

func TestModelView(t *testing.T) {
	m := send(newTestModel(), runeKey('a'), TickMsg(time.Now()), TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("expected non-empty view")
	}
}

func TestModelQuit(t *testing.T) {
	_, cmd := newTestModel().Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
