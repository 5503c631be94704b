// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and bridges clock frames into it
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/display"
	"github.com/twtime/twclock/internal/prefs"
)

// Target writes clock frames to the surface and asks the program to repaint
type Target struct {
	surface *display.Surface
	send    func(tea.Msg)
}

// NewTarget creates a clock target; send is usually (*tea.Program).Send
func NewTarget(surface *display.Surface, send func(tea.Msg)) *Target {
	return &Target{surface: surface, send: send}
}

// SetText implements clock.Target
func (t *Target) SetText(text string) {
	t.surface.SetText(text)
	t.notify()
}

// SetShift implements clock.Target
func (t *Target) SetShift(offset clock.Offset) {
	t.surface.SetShift(offset)
	t.notify()
}

func (t *Target) notify() {
	if t.send != nil {
		t.send(FrameMsg{})
	}
}

var _ clock.Target = (*Target)(nil)

// Run creates the TUI program in fullscreen with mouse motion reporting
func Run(surface *display.Surface, store *prefs.Store) (*tea.Program, error) {
	p := tea.NewProgram(
		NewModel(surface, store, true),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	return p, nil
}
