// Package tui is a terminal observer of a running simulation. It polls a
// snapshot receiver at its own frame rate, draws the bodies on a braille
// canvas through a rotatable camera and sends key presses to the driver as
// commands.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/input"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/watch"
	"github.com/san-kum/orbsim/internal/world"
)

const (
	width           = 60
	height          = 22
	panelWidth      = 44
	trailLength     = 120
	historyCapacity = 120
	metresPerAU     = 1.495978707e11
)

type TickMsg time.Time

type insetTickMsg time.Time

type Options struct {
	// FPS is how often the view polls for a new snapshot.
	FPS int

	// BaseTimeScale is multiplied by the 1/2/3 keys.
	BaseTimeScale float64

	// Focus names the body the camera starts on. Empty picks the first
	// body by name.
	Focus string

	// Inset, when set, opens a second window below the main one. It reads
	// its own receiver at InsetFPS and stays on InsetFocus.
	Inset      *watch.Receiver[world.Snapshot]
	InsetFocus string
	InsetFPS   int
}

// window is a fixed camera on its own receiver, refreshed at its own rate.
type window struct {
	rx     *watch.Receiver[world.Snapshot]
	fps    int
	snap   world.Snapshot
	camera *Camera
	canvas *Canvas
}

func (w *window) origin() body.Vec3 {
	if b, ok := w.snap.Body(w.camera.Focus); ok {
		return b.Position()
	}
	return body.Vec3{}
}

func (w *window) fit() {
	pw, ph := w.canvas.Pixels()
	w.camera.Fit(neighbourhood(w.snap, w.camera.Focus), w.origin(), pw, ph)
}

// Model is the bubbletea model of the live view.
type Model struct {
	rx   *watch.Receiver[world.Snapshot]
	sink input.Sink
	fps  int
	base float64

	snap     world.Snapshot
	names    []string
	focus    int
	camera   *Camera
	canvas   *Canvas
	trails   map[string][]body.Vec3
	energy   []float64
	altitude []float64
	altOver  string
	inset    *window
	frames   *sim.Meter
	uiFPS    int
	stopped  bool
	showHelp bool
	message  string
}

func NewModel(rx *watch.Receiver[world.Snapshot], sink input.Sink, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	m := Model{
		rx:     rx,
		sink:   sink,
		fps:    opts.FPS,
		base:   opts.BaseTimeScale,
		camera: NewCamera(opts.Focus, 1),
		canvas: NewCanvas(width, height),
		trails: make(map[string][]body.Vec3),
		energy: make([]float64, 0, historyCapacity),
		frames: &sim.Meter{},
	}
	m.accept(rx.Borrow())
	if opts.Focus != "" {
		for i, name := range m.names {
			if name == opts.Focus {
				m.focus = i
			}
		}
	}
	m.camera.Focus = m.focusName()
	m.altitude, m.altOver = nil, ""
	m.recordAltitude()

	if opts.Inset != nil {
		if opts.InsetFPS <= 0 {
			opts.InsetFPS = 5
		}
		m.inset = &window{
			rx:     opts.Inset,
			fps:    opts.InsetFPS,
			snap:   opts.Inset.Borrow(),
			camera: NewCamera(opts.InsetFocus, 1),
			canvas: NewCanvas(width, height/2),
		}
		m.inset.fit()
	}
	m.fit()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.inset != nil {
		return tea.Batch(m.tick(), m.insetTick())
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) insetTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.inset.fps), func(t time.Time) tea.Msg { return insetTickMsg(t) })
}

// Update handles key presses, resizes and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if n, updated := m.frames.Tick(time.Time(msg)); updated {
			m.uiFPS = n
		}
		changed, err := m.rx.HasChanged()
		if changed {
			m.accept(m.rx.Borrow())
		}
		if errors.Is(err, watch.ErrClosed) {
			m.stopped = true
			return m, tea.Quit
		}
		return m, m.tick()

	case insetTickMsg:
		if m.inset == nil {
			return m, nil
		}
		changed, err := m.inset.rx.HasChanged()
		if changed {
			m.inset.snap = m.inset.rx.Borrow()
		}
		if errors.Is(err, watch.ErrClosed) {
			return m, nil
		}
		return m, m.insetTick()

	case tea.WindowSizeMsg:
		cols, rows := msg.Width-panelWidth-4, msg.Height-2
		if m.inset != nil {
			// one row for the inset title
			small := rows / 3
			m.inset.canvas.Resize(cols, small)
			m.inset.fit()
			rows -= small + 1
		}
		m.canvas.Resize(cols, rows)
		m.fit()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "+", "=":
		m.camera.ZoomIn()
		return m, nil
	case "-", "_":
		m.camera.ZoomOut()
		return m, nil
	case "left":
		m.camera.RotateLeft()
		return m, nil
	case "right":
		m.camera.RotateRight()
		return m, nil
	case "w":
		m.camera.TiltUp()
		return m, nil
	case "s":
		m.camera.TiltDown()
		return m, nil
	case "0":
		m.camera.ResetView()
		return m, nil
	case "f":
		m.fit()
		if m.inset != nil {
			m.inset.fit()
		}
		return m, nil
	case "c":
		clear(m.trails)
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	c, ok := KeyCommand(key, m.base, m.focusName())
	if !ok {
		return m, nil
	}
	if err := m.sink.TrySend(c); err != nil {
		m.message = err.Error()
	} else {
		m.message = ""
	}
	if _, quit := c.(command.Shutdown); quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) accept(snap world.Snapshot) {
	m.snap = snap
	bodies := snap.Bodies()
	if len(bodies) != len(m.names) {
		current := m.focusName()
		m.names = m.names[:0]
		for _, b := range bodies {
			m.names = append(m.names, b.Name())
		}
		m.focus = 0
		for i, name := range m.names {
			if name == current {
				m.focus = i
			}
		}
		m.camera.Focus = m.focusName()
	}
	for _, b := range bodies {
		trail := append(m.trails[b.Name()], b.Position())
		if len(trail) > trailLength {
			trail = trail[1:]
		}
		m.trails[b.Name()] = trail
	}

	m.energy = append(m.energy, physics.Energy(snap.Celestials()))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
	m.recordAltitude()
}

// recordAltitude appends the focused body's height above its primary. The
// history restarts whenever the primary changes.
func (m *Model) recordAltitude() {
	alt, over, ok := altitude(m.snap, m.focusName())
	if !ok {
		m.altitude, m.altOver = nil, ""
		return
	}
	if over != m.altOver {
		m.altitude, m.altOver = nil, over
	}
	m.altitude = append(m.altitude, alt)
	if len(m.altitude) > historyCapacity {
		m.altitude = m.altitude[1:]
	}
}

func (m *Model) cycleFocus(step int) {
	if len(m.names) == 0 {
		return
	}
	m.focus = (m.focus + step + len(m.names)) % len(m.names)
	m.camera.Focus = m.focusName()
	m.altitude, m.altOver = nil, ""
	m.recordAltitude()
	m.fit()
}

func (m Model) focusName() string {
	if m.focus < len(m.names) {
		return m.names[m.focus]
	}
	return ""
}

func (m Model) origin() body.Vec3 {
	if b, ok := m.snap.Body(m.camera.Focus); ok {
		return b.Position()
	}
	return body.Vec3{}
}

// fit zooms the camera so every body is on the canvas.
func (m Model) fit() {
	bodies := m.snap.Bodies()
	if len(bodies) == 0 {
		return
	}
	points := make([]body.Vec3, len(bodies))
	for i, b := range bodies {
		points[i] = b.Position()
	}
	w, h := m.canvas.Pixels()
	m.camera.Fit(points, m.origin(), w, h)
}

func (m Model) draw() {
	drawScene(m.canvas, m.camera, m.snap, m.origin(), m.trails)
	if m.inset != nil {
		drawScene(m.inset.canvas, m.inset.camera, m.inset.snap, m.inset.origin(), nil)
	}
}

func drawScene(canvas *Canvas, camera *Camera, snap world.Snapshot, origin body.Vec3, trails map[string][]body.Vec3) {
	canvas.Clear()
	w, h := canvas.Pixels()

	for _, trail := range trails {
		px, py, prev := 0, 0, false
		for _, p := range trail {
			x, y, ok := camera.Project(p, origin, w, h)
			if ok && prev {
				canvas.DrawLine(px, py, x, y)
			}
			px, py, prev = x, y, ok
		}
	}
	for _, b := range snap.Bodies() {
		x, y, ok := camera.Project(b.Position(), origin, w, h)
		if !ok {
			continue
		}
		switch b := b.(type) {
		case body.CelestialBody:
			canvas.Disc(x, y, max(1, int(b.Radius()/camera.Scale)))
		case body.Spacecraft:
			canvas.Set(x, y)
		}
	}
}

// View renders the canvas beside the status panel.
func (m Model) View() string {
	if m.showHelp {
		return helpView
	}
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())
	if m.inset != nil {
		title := labelStyle.UnsetWidth().Render(fmt.Sprintf("%s · %s", m.inset.camera.Focus, FormatSimTime(m.inset.snap.SimTime())))
		canvasView = lipgloss.JoinVertical(lipgloss.Left, canvasView, canvasStyle.Render(title+"\n"+m.inset.canvas.String()))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBSIM") + "\n")
	switch {
	case m.stopped:
		s.WriteString(statusStopped.Render("STOPPED") + "\n\n")
	case m.snap.TimeScale() == 0:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Sim time", FormatSimTime(m.snap.SimTime()))
	row("Tick", fmt.Sprintf("%d", m.snap.Tick()))
	row("Time scale", fmt.Sprintf("×%g", m.snap.TimeScale()))
	row("Sim TPS", fmt.Sprintf("%d", m.snap.TicksPerSecond()))
	row("View FPS", fmt.Sprintf("%d", m.uiFPS))
	row("Scale", FormatDistance(m.camera.Scale)+"/px")

	if len(m.energy) > 1 && m.energy[0] != 0 {
		rel := make([]float64, len(m.energy))
		for i, e := range m.energy {
			rel[i] = (e - m.energy[0]) / math.Abs(m.energy[0])
		}
		chart := asciigraph.Plot(rel, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("Energy drift"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if len(m.altitude) > 1 {
		km := make([]float64, len(m.altitude))
		for i, a := range m.altitude {
			km[i] = a / 1000
		}
		caption := fmt.Sprintf("Altitude over %s (km)", m.altOver)
		chart := asciigraph.Plot(km, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption(caption))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nBODIES\n")
	origin := m.origin()
	for i, b := range m.snap.Bodies() {
		line := fmt.Sprintf("%-10s %s", b.Name(), FormatDistance(b.Position().Sub(origin).Norm()))
		switch {
		case i == m.focus:
			s.WriteString(focusStyle.Render("> "+line) + "\n")
		case isCraft(b):
			s.WriteString("  " + craftStyle.Render(line) + "\n")
		default:
			s.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}
	if m.message != "" {
		s.WriteString("\n" + statusMessage.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause 1/2/3:Speed ↑↓:Boost\nTab:Focus +/-:Zoom ←→:Rotate\nQ:Quit ?:Help"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func isCraft(b body.Body) bool {
	_, ok := b.(body.Spacecraft)
	return ok
}

const helpView = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause (time scale 0)     ║
║  1 2 3    - Time scale ×1 ×200 ×500  ║
║  Up/Down  - Speed up / slow focus    ║
║  X        - Halt focused body        ║
║  Tab      - Cycle focus              ║
║  + / -    - Zoom                     ║
║  ← / →    - Rotate                   ║
║  W / S    - Tilt                     ║
║  0        - Reset rotation           ║
║  F        - Fit view                 ║
║  C        - Clear trails             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

// FormatSimTime renders simulated seconds as days and clock time.
func FormatSimTime(sec float64) string {
	if math.Abs(sec) >= math.MaxInt64/float64(time.Second) {
		return fmt.Sprintf("%.3gs", sec)
	}
	d := time.Duration(sec * float64(time.Second))
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// FormatDistance picks AU for large distances and km otherwise.
func FormatDistance(m float64) string {
	switch {
	case m >= 0.01*metresPerAU:
		return fmt.Sprintf("%.3f AU", m/metresPerAU)
	case m >= 1000:
		return fmt.Sprintf("%.0f km", m/1000)
	default:
		return fmt.Sprintf("%.0f m", m)
	}
}

// Run shows the live view until the user quits, the snapshot channel
// closes or ctx is done.
func Run(ctx context.Context, rx *watch.Receiver[world.Snapshot], sink input.Sink, opts Options) error {
	p := tea.NewProgram(NewModel(rx, sink, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
