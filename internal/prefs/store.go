// ABOUTME: Preference store for clock display settings
// ABOUTME: Loads, applies and persists color, font and date visibility
package prefs

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/twtime/twclock/internal/kv"
)

// Persisted literals for the date visibility flag
const (
	DateShown  = "visible"
	DateHidden = "hidden"
)

// Toggle icons for the date control
const (
	IconDateShown  = "calendar_today"
	IconDateHidden = "event_busy"
)

// Date display style forced by Reset
const (
	ResetDateColor = "#FFFFFF"
	ResetDateBold  = true
)

// ErrNoTarget is returned when the time display is missing
var ErrNoTarget = errors.New("prefs: display target unavailable")

// Target is the styleable time display
type Target interface {
	SetColor(color string)
	SetGlow(glow Glow)
	SetFontFamily(family string)
	SetFontSize(size SizeRule)
}

// DateTarget is the secondary date display
type DateTarget interface {
	SetDateText(text string)
	SetDateVisible(visible bool)
	SetDateFontFamily(family string)
	SetDateStyle(color string, bold bool)
}

// Controls reflect the current preferences back to the user
type Controls interface {
	SetColorPicker(color string)
	SetFontPicker(fontID string)
	SetDateToggleIcon(icon string)
}

// DisplayPreferences is the user's display configuration.
// Empty Color or Font means unset.
type DisplayPreferences struct {
	Color       string
	Font        string
	DateVisible bool
}

// Option configures a Store
type Option func(*Store)

// WithDateTarget attaches the secondary date display
func WithDateTarget(d DateTarget) Option {
	return func(s *Store) { s.date = d }
}

// WithControls attaches picker and toggle controls
func WithControls(c Controls) Option {
	return func(s *Store) { s.controls = c }
}

// Store applies preferences to a display and keeps them in a kv.Store
type Store struct {
	kv       kv.Store
	clock    clockwork.Clock
	target   Target
	date     DateTarget
	controls Controls

	prefs DisplayPreferences
}

// New creates a preference store; clk may be nil for the real clock
func New(store kv.Store, clk clockwork.Clock, target Target, opts ...Option) (*Store, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if store == nil {
		store = kv.NewMemory()
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	s := &Store{kv: store, clock: clk, target: target}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Preferences returns the preferences as last loaded or set
func (s *Store) Preferences() DisplayPreferences {
	return s.prefs
}

// LoadAndApply reads persisted preferences and applies the ones present.
// Malformed values are skipped so the display keeps its defaults.
func (s *Store) LoadAndApply() {
	if color, ok := s.kv.Get(kv.KeyTimeColor); ok {
		if ValidColor(color) {
			s.applyColor(color)
			s.prefs.Color = color
			if s.controls != nil {
				s.controls.SetColorPicker(color)
			}
		} else {
			log.Printf("Ignoring malformed %s=%q", kv.KeyTimeColor, color)
		}
	}

	if name, ok := s.kv.Get(kv.KeyTimeFont); ok && name != "" {
		font, _ := LookupFont(name)
		s.applyFont(font)
		s.prefs.Font = font.ID
		if s.controls != nil {
			s.controls.SetFontPicker(font.ID)
		}
	}

	flag, _ := s.kv.Get(kv.KeyDateVisibility)
	s.prefs.DateVisible = flag == DateShown
	s.applyDateVisibility()
}

// SetColor applies color and its glow, then persists it
func (s *Store) SetColor(color string) error {
	if !ValidColor(color) {
		log.Printf("Ignoring invalid color %q", color)
		return nil
	}

	s.applyColor(color)
	s.prefs.Color = color
	if s.controls != nil {
		s.controls.SetColorPicker(color)
	}

	if err := s.kv.Set(kv.KeyTimeColor, color); err != nil {
		return fmt.Errorf("failed to persist color: %w", err)
	}
	return nil
}

// SetFont applies a font and its size rule, then persists it
func (s *Store) SetFont(name string) error {
	font, _ := LookupFont(name)

	s.applyFont(font)
	s.prefs.Font = font.ID
	if s.controls != nil {
		s.controls.SetFontPicker(font.ID)
	}

	if err := s.kv.Set(kv.KeyTimeFont, font.ID); err != nil {
		return fmt.Errorf("failed to persist font: %w", err)
	}
	return nil
}

// Reset restores the default color and font and persists them.
// The date display is forced to its fixed style regardless of the accent color.
func (s *Store) Reset() error {
	font := DefaultFont()

	s.target.SetColor(DefaultColor)
	s.target.SetGlow(DefaultGlow())
	s.applyFont(font)

	s.prefs.Color = DefaultColor
	s.prefs.Font = font.ID

	if s.controls != nil {
		s.controls.SetColorPicker(DefaultColor)
		s.controls.SetFontPicker(font.ID)
	}
	if s.date != nil {
		s.date.SetDateStyle(ResetDateColor, ResetDateBold)
	}

	if err := s.kv.Set(kv.KeyTimeColor, DefaultColor); err != nil {
		return fmt.Errorf("failed to persist color: %w", err)
	}
	if err := s.kv.Set(kv.KeyTimeFont, font.ID); err != nil {
		return fmt.Errorf("failed to persist font: %w", err)
	}

	log.Printf("Display preferences reset to defaults")
	return nil
}

// ToggleDateVisibility flips the date display and persists the new state
func (s *Store) ToggleDateVisibility() error {
	s.prefs.DateVisible = !s.prefs.DateVisible
	s.applyDateVisibility()

	flag := DateHidden
	if s.prefs.DateVisible {
		flag = DateShown
	}
	if err := s.kv.Set(kv.KeyDateVisibility, flag); err != nil {
		return fmt.Errorf("failed to persist date visibility: %w", err)
	}
	return nil
}

// RefreshDate re-renders the date text if the date is shown
func (s *Store) RefreshDate() {
	if s.prefs.DateVisible && s.date != nil {
		s.date.SetDateText(FormatDate(s.clock.Now()))
	}
}

// FormatDate renders a calendar date as YYYY/M/D without padding
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

func (s *Store) applyColor(color string) {
	s.target.SetColor(color)
	s.target.SetGlow(GlowFor(color))
}

func (s *Store) applyFont(font Font) {
	s.target.SetFontFamily(font.Family)
	s.target.SetFontSize(font.Size)
	if s.date != nil {
		s.date.SetDateFontFamily(font.Family)
	}
}

func (s *Store) applyDateVisibility() {
	icon := IconDateHidden
	if s.prefs.DateVisible {
		icon = IconDateShown
	}

	if s.date != nil {
		s.RefreshDate()
		s.date.SetDateVisible(s.prefs.DateVisible)
	}
	if s.controls != nil {
		s.controls.SetDateToggleIcon(icon)
	}
}
