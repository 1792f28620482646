package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
	plotLength   = 120
	minSpeed     = 1e-3
)

type TickMsg time.Time

// Model is the live view of one driver. It is the only caller of
// Driver.Tick while the program runs.
type Model[V vmath.Vector[V]] struct {
	scene   string
	driver  *sim.Driver[V]
	names   map[int]string
	fps     int
	history *sim.OrbitHistory[V]
	metrics *metrics.Set[V]
	energy  *metrics.EnergyDrift[V]
	canvas  *Canvas
	view    Viewport

	// selected indexes the body shown in the pair panel.
	selected int

	frame  sim.Frame
	slowed []float64
	err    error
}

// NewModel builds a view over d. names labels bodies by ID; a missing name
// is shown as "#id".
func NewModel[V vmath.Vector[V]](scene string, d *sim.Driver[V], names map[int]string, fps, trail int) Model[V] {
	if fps <= 0 {
		fps = 60
	}
	energy := metrics.NewEnergyDrift[V]()
	set := metrics.NewSet[V](
		energy,
		metrics.NewMomentumDrift[V](),
		metrics.NewAngularMomentumDrift[V](),
		metrics.NewStability[V](),
	)

	m := Model[V]{
		scene:   scene,
		driver:  d,
		names:   names,
		fps:     fps,
		history: sim.NewOrbitHistory[V](trail),
		metrics: set,
		energy:  energy,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
	if len(d.Simulator().Bodies()) > 1 {
		m.selected = 1
	}
	m.fit()
	return m
}

func (m Model[V]) Init() tea.Cmd {
	return m.tick()
}

func (m Model[V]) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model[V]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.err != nil {
			// stay stopped after a solver failure
			return m, nil
		}
		m.driver.SetPaused(!m.driver.Paused())
	case "+", "=":
		m.driver.SetSpeed(m.driver.Speed() * 2)
	case "-", "_":
		speed := m.driver.Speed() / 2
		if speed > -minSpeed && speed < minSpeed {
			return m, nil
		}
		m.driver.SetSpeed(speed)
	case "r":
		m.driver.SetSpeed(-m.driver.Speed())
	case "b":
		m.driver.Simulator().ResetToBarycenter()
		m.history.Clear()
		m.metrics.Reset()
		m.fit()
	case "f":
		m.fit()
	case "c":
		m.history.Clear()
	case "tab":
		if n := len(m.driver.Simulator().Bodies()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	}
	return m, nil
}

// step runs one driver frame and feeds the result to the trails and
// metrics. A solver error pauses the driver.
func (m *Model[V]) step() {
	frame, err := m.driver.Tick()
	m.frame = frame
	if err != nil {
		m.err = err
		m.driver.SetPaused(true)
	}

	bodies := m.driver.Simulator().Bodies()
	m.metrics.Observe(bodies, frame)
	if frame.Paused {
		return
	}
	m.history.Record(bodies)

	slowed := 0.0
	if frame.Slowed {
		slowed = 1
	}
	m.slowed = append(m.slowed, slowed)
	if len(m.slowed) > plotLength {
		m.slowed = m.slowed[len(m.slowed)-plotLength:]
	}
}

// fit frames the current bodies.
func (m *Model[V]) fit() {
	bodies := m.driver.Simulator().Bodies()
	xs := make([]float64, len(bodies))
	ys := make([]float64, len(bodies))
	for i, b := range bodies {
		xs[i], ys[i] = b.Position.XY()
	}
	w, h := m.canvas.PixelSize()
	m.view = FitViewport(xs, ys, w, h)
}

func (m Model[V]) View() string {
	header := headerStyle.Render(fmt.Sprintf("orbitsim  %s", m.scene))

	canvasView := panelStyle.Render(m.drawScene())
	statsView := panelStyle.Render(m.statsPanel())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	help := helpStyle.Render("space pause · +/- speed · r reverse · b barycenter · f fit · c clear · tab pair · q quit")

	parts := []string{header, main}
	if m.err != nil {
		parts = append(parts, statusError.Render("error: "+m.err.Error()))
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model[V]) drawScene() string {
	m.canvas.Clear()

	for _, o := range m.history.Orbits() {
		prevX, prevY, prevOK := 0, 0, false
		for _, p := range o.Points {
			x, y, ok := m.view.Project(p.XY())
			if ok && prevOK {
				m.canvas.DrawLine(prevX, prevY, x, y)
			} else if ok {
				m.canvas.Set(x, y)
			}
			prevX, prevY, prevOK = x, y, ok
		}
	}

	for _, b := range m.driver.Simulator().Bodies() {
		if x, y, ok := m.view.Project(b.Position.XY()); ok {
			m.canvas.Dot(x, y, 1)
		}
	}

	bx, by := m.driver.Simulator().Barycenter().XY()
	if x, y, ok := m.view.Project(bx, by); ok {
		m.canvas.Set(x, y)
	}
	return m.canvas.String()
}

func (m Model[V]) status() string {
	switch {
	case m.err != nil:
		return statusError.Render("FAILED")
	case m.driver.Paused():
		return statusPaused.Render("PAUSED")
	case m.driver.Slowed():
		return statusSlowed.Render("SLOWED")
	default:
		return statusRunning.Render("RUNNING")
	}
}

func (m Model[V]) statsPanel() string {
	var b strings.Builder
	stats := m.driver.Stats()

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", label)) + valueStyle.Render(value) + "\n")
	}

	row("Status", m.status())
	row("Date", m.driver.Simulator().Timestamp().UTC().Format("2006-01-02 15:04:05"))
	row("Speed", fmt.Sprintf("%.4gx", m.driver.Speed()))
	row("Frames", fmt.Sprintf("%d", stats.Frames))
	row("Simulated", formatSeconds(stats.SimulatedTime))
	row("Last frame", fmt.Sprintf("%s / %s", formatSeconds(m.frame.Actual), formatSeconds(m.frame.Target)))

	values := m.metrics.Values()
	for _, name := range m.metrics.Names() {
		row(name, fmt.Sprintf("%.3e", values[name]))
	}

	b.WriteString("\n")
	b.WriteString(m.bodiesList())
	b.WriteString(m.pairPanel())

	if hist := m.energy.History(); len(hist) > 1 {
		if len(hist) > plotLength {
			hist = hist[len(hist)-plotLength:]
		}
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("energy drift")))
		b.WriteString("\n")
	}

	b.WriteString("\n" + subtle.Render("slowed ") + Sparkline(m.slowed, 30))
	return b.String()
}

func (m Model[V]) bodiesList() string {
	var b strings.Builder
	bodies := m.driver.Simulator().Bodies()
	for i, body := range bodies {
		marker := "●"
		if i == m.selected {
			marker = "◉"
		}
		b.WriteString(fmt.Sprintf("%s %s |v|=%.3g\n",
			bodyStyle.Render(marker), m.name(body.ID), body.Velocity.Len()))
	}
	if len(bodies) > 1 {
		c := physics.MaxDistance(bodies)
		b.WriteString(subtle.Render(fmt.Sprintf("extent %.3g m", c)) + "\n")
	}
	return b.String()
}

func (m Model[V]) name(id int) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

// pairPanel compares the selected body with the heaviest other body.
func (m Model[V]) pairPanel() string {
	bodies := m.driver.Simulator().Bodies()
	if len(bodies) < 2 || m.selected >= len(bodies) {
		return ""
	}
	target := bodies[m.selected]
	ref := -1
	for i, b := range bodies {
		if i != m.selected && (ref < 0 || b.Mass > bodies[ref].Mass) {
			ref = i
		}
	}
	c := physics.Compare(target, bodies[ref])

	bound := "unbound"
	if c.Bound {
		bound = "bound"
	}
	period := "-"
	if !math.IsNaN(c.OrbitalPeriod) {
		period = formatSeconds(c.OrbitalPeriod)
	}

	var b strings.Builder
	b.WriteString("\n" + subtle.Render(fmt.Sprintf("%s around %s", m.name(target.ID), m.name(bodies[ref].ID))) + "\n")
	b.WriteString(fmt.Sprintf("d=%.3g m  v=%.3g m/s  %s\n", c.Distance, c.RelativeVelocity.Len(), bound))
	b.WriteString(fmt.Sprintf("esc=%.3g m/s  e=%.3g  T=%s\n", c.EscapeVelocity, c.Eccentricity, period))
	b.WriteString(fmt.Sprintf("|a|=%.3g m/s²\n", physics.AccelerationOn(target, bodies).Len()))
	return b.String()
}

func formatSeconds(s float64) string {
	const day = 86400
	switch {
	case s < 0:
		return "-" + formatSeconds(-s)
	case s >= day:
		return fmt.Sprintf("%.2f d", s/day)
	default:
		return (time.Duration(s * float64(time.Second))).Round(time.Millisecond).String()
	}
}
