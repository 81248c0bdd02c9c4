package viz

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	// worldPerDot is how many world units one braille dot covers.
	worldPerDot = 3.0
	anchorInset = 12.0
	gravityStep = 0.01
)

type field int

const (
	fieldLength field = iota
	fieldMass
	fieldDrag
	fieldCount
)

var fieldNames = [fieldCount]string{"length", "mass", "drag"}

// fieldSteps are the left/right increments per field.
var fieldSteps = [fieldCount]float64{5, 1, 0.01}

type TickMsg time.Time

// Model is the bubbletea model: the simulator plus terminal UI state.
type Model struct {
	sim           *sim.Simulator
	rng           *rand.Rand
	canvas        *Canvas
	name          string
	fps           int
	selected      int
	field         field
	energyHistory []float64
	kineticHist   []float64
	status        string
}

func NewModel(s *sim.Simulator, rng *rand.Rand, name string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		sim:           s,
		rng:           rng,
		canvas:        NewCanvas(width, height),
		name:          name,
		fps:           fps,
		energyHistory: make([]float64, 0, historyCapacity),
		kineticHist:   make([]float64, 0, historyCapacity),
	}
	m.placeAnchor()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.TogglePause()
		case "a":
			m.addArm()
		case "x", "delete":
			m.removeSelected()
		case "up", "k":
			m.moveSelection(-1)
		case "down", "j":
			m.moveSelection(1)
		case "tab":
			m.field = (m.field + 1) % fieldCount
		case "right", "l":
			m.adjustField(1)
		case "left", "h":
			m.adjustField(-1)
		case "+", "=":
			m.sim.Chain().Gravity += gravityStep
		case "-", "_":
			m.sim.Chain().Gravity -= gravityStep
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-54, 20)
		h := max(msg.Height-4, 8)
		m.canvas = NewCanvas(w, h)
		m.placeAnchor()
	case TickMsg:
		m.placeAnchor()
		if m.sim.Frame() {
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

// placeAnchor recomputes the anchor from the canvas geometry: centre-top.
func (m *Model) placeAnchor() {
	m.sim.Chain().Anchor = dynamo.V(float64(m.canvas.DotsX())*worldPerDot/2, anchorInset)
}

func (m *Model) record() {
	c := m.sim.Chain()
	m.energyHistory = appendCapped(m.energyHistory, c.TotalEnergy())
	m.kineticHist = appendCapped(m.kineticHist, c.KineticEnergy())
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) addArm() {
	arm := m.sim.Chain().AddArm(m.rng)
	m.selected = m.sim.Chain().Len() - 1
	log.Printf("tui: added arm %d at %v", m.selected, arm.Pos)
}

func (m *Model) removeSelected() {
	c := m.sim.Chain()
	if !c.RemoveArm(m.selected) {
		return
	}
	log.Printf("tui: removed arm %d", m.selected)
	if m.selected >= c.Len() {
		m.selected = max(c.Len()-1, 0)
	}
}

func (m *Model) moveSelection(d int) {
	n := m.sim.Chain().Len()
	if n == 0 {
		return
	}
	m.selected = (m.selected + d + n) % n
}

func (m *Model) adjustField(dir float64) {
	c := m.sim.Chain()
	if m.selected >= c.Len() {
		return
	}
	arm := c.Arms[m.selected]
	step := dir * fieldSteps[m.field]

	var err error
	switch m.field {
	case fieldLength:
		err = c.SetLength(m.selected, arm.Length+step)
	case fieldMass:
		err = c.SetMass(m.selected, arm.Mass+step)
	case fieldDrag:
		err = c.SetDrag(m.selected, arm.Drag+step)
	}
	if err != nil {
		m.status = err.Error()
	}
}

// maxDot bounds dot coordinates so runaway positions stay well inside int.
const maxDot = 1 << 20

func toDot(v float64) int {
	if math.IsNaN(v) {
		return -maxDot
	}
	return int(math.Round(math.Max(-maxDot, math.Min(maxDot, v/worldPerDot))))
}

func (m *Model) toDots(p dynamo.Vec2) (int, int) {
	return toDot(p.X), toDot(p.Y)
}

func (m *Model) draw() {
	m.canvas.Clear()
	c := m.sim.Chain()

	ax, ay := m.toDots(c.Anchor)
	m.canvas.DrawDisc(ax, ay, 1)

	lx, ly := ax, ay
	for _, arm := range c.Arms {
		x, y := m.toDots(arm.Pos)
		m.canvas.DrawLine(lx, ly, x, y)
		lx, ly = x, y
	}
	for _, arm := range c.Arms {
		x, y := m.toDots(arm.Pos)
		m.canvas.DrawDisc(x, y, toDot(math.Sqrt(arm.Mass)))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	c := m.sim.Chain()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	if m.sim.Paused() {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	}

	ke, pe := c.KineticEnergy(), c.PotentialEnergy()
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(fmt.Sprintf("%.2f", c.Gravity)) + "\n")
	s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.2f", pe)) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.2f", ke)) + "\n")
	s.WriteString(labelStyle.Render("Total") + valueStyle.Render(fmt.Sprintf("%.2f", ke+pe)) + "\n")
	s.WriteString(labelStyle.Render("Motion") + armStyle(0).Render(Sparkline(m.kineticHist, 30)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nPENDULUMS\n")
	if c.Len() == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for i, arm := range c.Arms {
		vals := [fieldCount]float64{arm.Length, arm.Mass, arm.Drag}
		cells := make([]string, fieldCount)
		for f := field(0); f < fieldCount; f++ {
			cell := fmt.Sprintf("%s %.2f", fieldNames[f][:1], vals[f])
			if i == m.selected && f == m.field {
				cell = activeFieldStyle.Render(cell)
			}
			cells[f] = cell
		}
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		s.WriteString(marker + armStyle(i).Render("●") + " " + strings.Join(cells, "  ") + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause A:Add X:Delete Q:Quit\n↑↓:Select TAB:Field ←→:Tune +-:Gravity"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the terminal front end and blocks until quit.
func Run(s *sim.Simulator, rng *rand.Rand, name string, fps int) error {
	p := tea.NewProgram(NewModel(s, rng, name, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
