// ABOUTME: Bubbletea model for the full-screen clock
// ABOUTME: Renders the display surface and routes keys to preferences
package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/twtime/twclock/internal/display"
	"github.com/twtime/twclock/internal/prefs"
)

const (
	// ControlsTimeout hides the controls after the last key or mouse motion
	ControlsTimeout = 5 * time.Second

	// MessageFadeDelay and MessageRemoveDelay time the startup hint
	MessageFadeDelay   = 5 * time.Second
	MessageRemoveDelay = 6 * time.Second

	startupMessage = "Press c/f/d/r to customize, F for fullscreen, q to quit"
)

type messageState int

const (
	messageShown messageState = iota
	messageFaded
	messageRemoved
)

// FrameMsg tells the model the surface changed
type FrameMsg struct{}

type hideControlsMsg struct{ gen int }
type fadeMessageMsg struct{}
type removeMessageMsg struct{}

// Model represents the TUI state
type Model struct {
	surface *display.Surface
	prefs   *prefs.Store

	// Controls auto-hide; gen invalidates stale hide timers
	showControls bool
	controlsGen  int

	message    messageState
	fullscreen bool

	// Dimensions
	width  int
	height int
}

// NewModel creates a model over a surface and preference store
func NewModel(surface *display.Surface, store *prefs.Store, fullscreen bool) Model {
	surface.SetFullscreen(fullscreen)
	return Model{
		surface:      surface,
		prefs:        store,
		showControls: true,
		fullscreen:   fullscreen,
	}
}

// Init starts the startup message and controls timers
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		hideControlsAfter(m.controlsGen),
		tea.Tick(MessageFadeDelay, func(time.Time) tea.Msg { return fadeMessageMsg{} }),
		tea.Tick(MessageRemoveDelay, func(time.Time) tea.Msg { return removeMessageMsg{} }),
	)
}

func hideControlsAfter(gen int) tea.Cmd {
	return tea.Tick(ControlsTimeout, func(time.Time) tea.Msg {
		return hideControlsMsg{gen: gen}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			return m.revealControls()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case FrameMsg:
		m.prefs.RefreshDate()
	case hideControlsMsg:
		if msg.gen == m.controlsGen {
			m.showControls = false
		}
	case fadeMessageMsg:
		if m.message == messageShown {
			m.message = messageFaded
		}
	case removeMessageMsg:
		m.message = messageRemoved
	}

	return m, nil
}

// revealControls shows the controls and restarts the hide timer
func (m Model) revealControls() (Model, tea.Cmd) {
	m.showControls = true
	m.controlsGen++
	return m, hideControlsAfter(m.controlsGen)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c":
		err = m.prefs.SetColor(prefs.NextColor(m.surface.Snapshot().ColorPicker))
	case "f":
		err = m.prefs.SetFont(prefs.NextFont(m.surface.Snapshot().FontPicker).ID)
	case "d":
		err = m.prefs.ToggleDateVisibility()
	case "r":
		err = m.prefs.Reset()
	case "F":
		m.fullscreen = !m.fullscreen
		m.surface.SetFullscreen(m.fullscreen)
		next, cmd := m.revealControls()
		if next.fullscreen {
			return next, tea.Batch(cmd, tea.EnterAltScreen)
		}
		return next, tea.Batch(cmd, tea.ExitAltScreen)
	}

	if err != nil {
		log.Printf("Preference update failed: %v", err)
	}

	return m.revealControls()
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.surface.Snapshot()
	rows := make([]string, m.height)

	block := m.renderClock(snap)
	blockWidth := 0
	for _, line := range block {
		if w := lipgloss.Width(line); w > blockWidth {
			blockWidth = w
		}
	}

	dx, dy := snap.Shift.Cells(m.width, m.height)
	left := clamp((m.width-blockWidth)/2+dx, 0, m.width)
	top := clamp((m.height-len(block))/2+dy, 0, m.height)

	for i, line := range block {
		if top+i >= m.height {
			break
		}
		pad := left + (blockWidth-lipgloss.Width(line))/2
		rows[top+i] = strings.Repeat(" ", pad) + line
	}

	if m.message != messageRemoved && m.height > 2 {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		if m.message == messageFaded {
			style = style.Faint(true)
		}
		rows[0] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, style.Render(startupMessage))
	}

	if m.showControls && m.height > 1 {
		rows[m.height-1] = m.renderControls(snap)
	}

	return strings.Join(rows, "\n")
}

// renderClock renders the time and, when visible, the date
func (m Model) renderClock(snap display.Snapshot) []string {
	font, _ := prefs.LookupFont(snap.FontPicker)
	lit := lipgloss.NewStyle().Foreground(lipgloss.Color(snap.Color))

	var dim *lipgloss.Style
	if tint, ok := glowTint(snap.Glow); ok {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(tint))
		dim = &s
	}

	width := pixelWidth(snap.FontSize)
	block := bigText(snap.Text, pixelFor(font.ID), width, &lit, dim)
	if width > 1 && lipgloss.Width(block[0]) > m.width {
		block = bigText(snap.Text, pixelFor(font.ID), 1, &lit, dim)
	}
	if lipgloss.Width(block[0]) > m.width {
		block = []string{lit.Bold(true).Render(snap.Text)}
	}

	if snap.DateVisible && snap.DateText != "" {
		date := lipgloss.NewStyle().
			Foreground(lipgloss.Color(snap.DateColor)).
			Bold(snap.DateBold).
			Render(snap.DateText)
		block = append(block, "", date)
	}

	return block
}

// renderControls renders the customization panel
func (m Model) renderControls(snap display.Snapshot) string {
	key := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(snap.ColorPicker)).Render("■")

	items := []string{
		key.Render("c") + value.Render(fmt.Sprintf(" color %s ", snap.ColorPicker)) + swatch,
		key.Render("f") + value.Render(" font "+snap.FontPicker),
		key.Render("d") + value.Render(" date "+snap.DateToggleIcon),
		key.Render("r") + value.Render(" reset"),
		key.Render("F") + value.Render(" "+snap.FullscreenIcon),
		key.Render("q") + value.Render(" quit"),
	}

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(items, "  "))
}

// glowTint picks a dim terminal color from the first glow layer
func glowTint(glow prefs.Glow) (string, bool) {
	if len(glow) == 0 {
		return "", false
	}

	c, alpha, ok := parseGlowColor(glow[0].Color)
	if !ok {
		return "", false
	}

	black := colorful.Color{}
	return black.BlendRgb(c, alpha*0.35).Clamped().Hex(), true
}

func parseGlowColor(s string) (colorful.Color, float64, bool) {
	if c, err := colorful.Hex(s); err == nil {
		return c, 1, true
	}

	var r, g, b int
	var a float64
	if n, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err == nil && n == 4 {
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, a, true
	}
	return colorful.Color{}, 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
