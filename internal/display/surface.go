// ABOUTME: In-process render surface shared by the clock engine and preferences
// ABOUTME: Records the time element, the date element and control state
package display

import (
	"sync"

	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/prefs"
)

// Fullscreen toggle icons
const (
	IconFullscreen     = "fullscreen"
	IconFullscreenExit = "fullscreen_exit"
)

// Snapshot is a copy of everything a renderer needs
type Snapshot struct {
	Text       string
	Color      string
	Glow       prefs.Glow
	FontFamily string
	FontSize   prefs.SizeRule
	Shift      clock.Offset

	DateText    string
	DateVisible bool
	DateFamily  string
	DateColor   string
	DateBold    bool

	ColorPicker    string
	FontPicker     string
	DateToggleIcon string
	FullscreenIcon string
}

// Surface is the time display target. Writes may come from the clock
// runner goroutine and the UI at the same time.
type Surface struct {
	mu sync.RWMutex
	s  Snapshot
}

// NewSurface creates a surface showing the default style
func NewSurface() *Surface {
	font := prefs.DefaultFont()
	return &Surface{s: Snapshot{
		Color:          prefs.DefaultColor,
		Glow:           prefs.DefaultGlow(),
		FontFamily:     font.Family,
		FontSize:       font.Size,
		DateFamily:     font.Family,
		DateColor:      prefs.ResetDateColor,
		DateBold:       prefs.ResetDateBold,
		ColorPicker:    prefs.DefaultColor,
		FontPicker:     font.ID,
		DateToggleIcon: prefs.IconDateHidden,
		FullscreenIcon: IconFullscreen,
	}}
}

// Snapshot returns a copy of the current state
func (d *Surface) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := d.s
	out.Glow = append(prefs.Glow(nil), d.s.Glow...)
	return out
}

func (d *Surface) update(fn func(s *Snapshot)) {
	d.mu.Lock()
	fn(&d.s)
	d.mu.Unlock()
}

// clock.Target

func (d *Surface) SetText(text string) { d.update(func(s *Snapshot) { s.Text = text }) }
func (d *Surface) SetShift(offset clock.Offset) { d.update(func(s *Snapshot) { s.Shift = offset }) }

// prefs.Target

func (d *Surface) SetColor(color string) { d.update(func(s *Snapshot) { s.Color = color }) }
func (d *Surface) SetGlow(glow prefs.Glow) {
	g := append(prefs.Glow(nil), glow...)
	d.update(func(s *Snapshot) { s.Glow = g })
}
func (d *Surface) SetFontFamily(family string) { d.update(func(s *Snapshot) { s.FontFamily = family }) }
func (d *Surface) SetFontSize(size prefs.SizeRule) { d.update(func(s *Snapshot) { s.FontSize = size }) }

// prefs.DateTarget

func (d *Surface) SetDateText(text string) { d.update(func(s *Snapshot) { s.DateText = text }) }
func (d *Surface) SetDateVisible(visible bool) { d.update(func(s *Snapshot) { s.DateVisible = visible }) }
func (d *Surface) SetDateFontFamily(family string) { d.update(func(s *Snapshot) { s.DateFamily = family }) }
func (d *Surface) SetDateStyle(color string, bold bool) {
	d.update(func(s *Snapshot) {
		s.DateColor = color
		s.DateBold = bold
	})
}

// prefs.Controls

func (d *Surface) SetColorPicker(color string) { d.update(func(s *Snapshot) { s.ColorPicker = color }) }
func (d *Surface) SetFontPicker(fontID string) { d.update(func(s *Snapshot) { s.FontPicker = fontID }) }
func (d *Surface) SetDateToggleIcon(icon string) { d.update(func(s *Snapshot) { s.DateToggleIcon = icon }) }

// SetFullscreen updates the fullscreen toggle icon
func (d *Surface) SetFullscreen(on bool) {
	icon := IconFullscreen
	if on {
		icon = IconFullscreenExit
	}
	d.update(func(s *Snapshot) { s.FullscreenIcon = icon })
}

var (
	_ clock.Target     = (*Surface)(nil)
	_ prefs.Target     = (*Surface)(nil)
	_ prefs.DateTarget = (*Surface)(nil)
	_ prefs.Controls   = (*Surface)(nil)
)
