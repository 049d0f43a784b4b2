// Package tui shows every view of a viewer as braille panels in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/frustumview/internal/config"
	"github.com/Faultbox/frustumview/internal/engine/renderer"
	"github.com/Faultbox/frustumview/internal/engine/term"
	"github.com/Faultbox/frustumview/internal/viewer"
)

var (
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	activeStyle = panelStyle.BorderForeground(lipgloss.Color("86"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	dim         = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Default panel size in terminal cells.
const (
	DefaultCols = 40
	DefaultRows = 20
)

// step is how far one key press drags, in viewport dots.
const step = 10

// NewViewer builds a viewer whose views are braille grids of cols x rows
// cells. Viewport size overrides in cfg are dropped.
func NewViewer(cfg *config.Config, cols, rows int) (*viewer.Viewer, error) {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	cfg.Window.Width, cfg.Window.Height = cols*2, rows*4
	for i := range cfg.Viewports {
		cfg.Viewports[i].Width, cfg.Viewports[i].Height = 0, 0
	}
	return viewer.New(cfg, func(_, w, h int) renderer.Surface {
		return term.NewBraille(w/2, h/4)
	})
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model. Arrows pan, shift+arrows rotate, +/- zoom.
type Model struct {
	viewer   *viewer.Viewer
	interval time.Duration
	paused   bool
	status   string

	width  int
	height int
}

// New creates the model and draws the first frame.
func New(v *viewer.Viewer) Model {
	v.RenderFrame()
	return Model{
		viewer:   v,
		interval: v.Config().Render.Interval,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd { return tick(m.interval) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused {
			m.viewer.RenderFrame()
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.viewer.Session()

	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "r":
		m.viewer.Reset()
		m.status = "camera reset"
	case "c":
		m.viewer.ClearSelection()
		m.status = ""
	case "left", "right", "up", "down":
		if s != nil {
			dx, dy := direction(key)
			s.Translate(dx*step, dy*step)
		}
	case "shift+left", "shift+right", "shift+up", "shift+down":
		if s != nil {
			dx, dy := direction(strings.TrimPrefix(key, "shift+"))
			s.Rotate(0, 0, dx*step, dy*step)
		}
	case "+", "=":
		if s != nil {
			s.Zoom(step)
		}
	case "-", "_":
		if s != nil {
			s.Zoom(-step)
		}
	case "enter":
		m.pickCentre()
	}
	return m, nil
}

// direction maps an arrow key to a drag in centred coordinates, +y up.
func direction(key string) (float64, float64) {
	switch key {
	case "left":
		return -1, 0
	case "right":
		return 1, 0
	case "up":
		return 0, 1
	default:
		return 0, -1
	}
}

// pickCentre selects the object under the centre of the interactive view.
func (m *Model) pickCentre() {
	i := m.viewer.Active()
	if i < 0 {
		return
	}
	w, h := m.viewer.Views()[i].Renderer.Surface().Size()
	if obj, ok := m.viewer.Pick(i, float64(w)/2, float64(h)/2); ok {
		m.status = "picked " + obj.Name()
	} else {
		m.status = "nothing picked"
	}
}

// Paused reports whether frame updates are suspended.
func (m Model) Paused() bool { return m.paused }

func (m Model) View() string {
	views := m.viewer.Views()
	panels := make([]string, len(views))
	for i, view := range views {
		body := ""
		if b, ok := view.Renderer.Surface().(*term.Braille); ok {
			body = b.Render()
		}
		style := panelStyle
		if i == m.viewer.Active() {
			style = activeStyle
		}
		panels[i] = style.Render(titleStyle.Render(view.Title) + "\n" + body)
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	sb.WriteString("\n")

	state := fmt.Sprintf("frame %d", m.viewer.Frames())
	if m.paused {
		state += " (paused)"
	}
	if sess := m.viewer.Session(); sess != nil {
		e := sess.Camera().Eye()
		state += fmt.Sprintf("  eye (%.2f, %.2f, %.2f)", e.X, e.Y, e.Z)
	}
	sb.WriteString(dim.Render(state))
	if m.status != "" {
		sb.WriteString("  " + yellow.Render(m.status))
	}
	sb.WriteString("\n" + dim.Render("←↑→↓ pan  shift+←↑→↓ rotate  +/- zoom  enter pick  c clear  r reset  space pause  q quit"))
	return sb.String()
}
