// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests key routing, control auto-hide, startup message and rendering
package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/display"
	"github.com/twtime/twclock/internal/kv"
	"github.com/twtime/twclock/internal/prefs"
)

func newTestModel(t *testing.T) (Model, *display.Surface, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	surface := display.NewSurface()
	p, err := prefs.New(store, clockwork.NewFakeClockAt(time.Date(2024, 3, 7, 8, 0, 0, 0, time.Local)),
		surface, prefs.WithDateTarget(surface), prefs.WithControls(surface))
	if err != nil {
		t.Fatal(err)
	}
	p.LoadAndApply()
	return NewModel(surface, p, true), surface, store
}

func key(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModel(t *testing.T) {
	model, surface, _ := newTestModel(t)

	if !model.showControls {
		t.Error("expected controls shown initially")
	}
	if model.message != messageShown {
		t.Error("expected startup message shown initially")
	}
	if !model.fullscreen || surface.Snapshot().FullscreenIcon != display.IconFullscreenExit {
		t.Error("expected fullscreen state reflected on the surface")
	}
	if model.View() != "Loading..." {
		t.Error("expected loading view before the first window size")
	}
}

func TestColorKeyCyclesPalette(t *testing.T) {
	model, surface, store := newTestModel(t)

	model, _ = update(model, key("c"))

	snap := surface.Snapshot()
	if snap.Color != prefs.Palette[1] {
		t.Errorf("expected %s, got %s", prefs.Palette[1], snap.Color)
	}
	if v, _ := store.Get(kv.KeyTimeColor); v != prefs.Palette[1] {
		t.Errorf("expected color persisted, got %q", v)
	}

	update(model, key("c"))
	if got := surface.Snapshot().Color; got != prefs.Palette[2] {
		t.Errorf("expected %s after second press, got %s", prefs.Palette[2], got)
	}
}

func TestFontKeyAppliesSizeRule(t *testing.T) {
	model, surface, _ := newTestModel(t)

	update(model, key("f"))

	snap := surface.Snapshot()
	if snap.FontPicker != "Sixtyfour" {
		t.Errorf("expected Sixtyfour after default, got %q", snap.FontPicker)
	}
	if snap.FontSize.CSS() != "10vw" {
		t.Errorf("expected 10vw, got %q", snap.FontSize.CSS())
	}
}

func TestDateAndResetKeys(t *testing.T) {
	model, surface, store := newTestModel(t)
	model, _ = update(model, tea.WindowSizeMsg{Width: 120, Height: 30})

	model, _ = update(model, key("d"))
	if snap := surface.Snapshot(); !snap.DateVisible || snap.DateText != "2024/3/7" {
		t.Errorf("expected date shown, got %v %q", snap.DateVisible, snap.DateText)
	}
	if !strings.Contains(model.View(), "2024/3/7") {
		t.Error("expected date in view")
	}

	model, _ = update(model, key("c"))
	update(model, key("r"))

	snap := surface.Snapshot()
	if snap.Color != prefs.DefaultColor || snap.DateColor != prefs.ResetDateColor || !snap.DateBold {
		t.Errorf("reset did not restore styles: %+v", snap)
	}
	if v, _ := store.Get(kv.KeyTimeFont); v != prefs.DefaultFont().ID {
		t.Errorf("expected default font persisted, got %q", v)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		model, _, _ := newTestModel(t)
		_, cmd := update(model, key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestFullscreenToggle(t *testing.T) {
	model, surface, _ := newTestModel(t)

	model, cmd := update(model, key("F"))
	if model.fullscreen {
		t.Error("expected fullscreen off")
	}
	if cmd == nil {
		t.Error("expected alt screen command")
	}
	if surface.Snapshot().FullscreenIcon != display.IconFullscreen {
		t.Error("expected fullscreen icon after leaving fullscreen")
	}

	model, _ = update(model, key("F"))
	if !model.fullscreen || surface.Snapshot().FullscreenIcon != display.IconFullscreenExit {
		t.Error("expected fullscreen restored")
	}
}

func TestControlsAutoHide(t *testing.T) {
	model, _, _ := newTestModel(t)

	// Activity restarts the timer, so the first timer is stale
	stale := model.controlsGen
	model, cmd := update(model, tea.MouseMsg{Action: tea.MouseActionMotion})
	if cmd == nil {
		t.Fatal("expected hide timer after mouse motion")
	}

	model, _ = update(model, hideControlsMsg{gen: stale})
	if !model.showControls {
		t.Error("stale hide timer should not hide the controls")
	}

	model, _ = update(model, hideControlsMsg{gen: model.controlsGen})
	if model.showControls {
		t.Error("current hide timer should hide the controls")
	}

	model, _ = update(model, key("x"))
	if !model.showControls {
		t.Error("any key should reveal the controls")
	}
}

func TestStartupMessageLifecycle(t *testing.T) {
	model, _, _ := newTestModel(t)
	model, _ = update(model, tea.WindowSizeMsg{Width: 120, Height: 30})

	if !strings.Contains(model.View(), startupMessage) {
		t.Error("expected startup message")
	}

	model, _ = update(model, fadeMessageMsg{})
	if model.message != messageFaded || !strings.Contains(model.View(), startupMessage) {
		t.Error("faded message should still render")
	}

	model, _ = update(model, removeMessageMsg{})
	if strings.Contains(model.View(), startupMessage) {
		t.Error("removed message should not render")
	}

	// A late fade does not bring it back
	model, _ = update(model, fadeMessageMsg{})
	if model.message != messageRemoved {
		t.Error("fade after removal should be ignored")
	}
}

func TestViewRendersClockCentered(t *testing.T) {
	model, surface, _ := newTestModel(t)
	model, _ = update(model, tea.WindowSizeMsg{Width: 120, Height: 30})

	target := NewTarget(surface, nil)
	target.SetText(clock.Format(1000 * 3661))
	target.SetShift(clock.Offset{})

	view := model.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(lines))
	}
	if !strings.Contains(view, "█") {
		t.Error("expected pixel glyphs in view")
	}
}

func TestViewFallsBackToTextWhenNarrow(t *testing.T) {
	model, surface, _ := newTestModel(t)
	model, _ = update(model, tea.WindowSizeMsg{Width: 12, Height: 10})

	surface.SetText("01：01：01")

	if !strings.Contains(model.View(), "01：01：01") {
		t.Error("expected plain text clock on a narrow terminal")
	}
}

func TestTargetNotifiesProgram(t *testing.T) {
	surface := display.NewSurface()
	var sent []tea.Msg
	target := NewTarget(surface, func(msg tea.Msg) { sent = append(sent, msg) })

	target.SetText("12：00：00")
	target.SetShift(clock.Offset{DX: 1})

	if len(sent) != 2 {
		t.Fatalf("expected 2 repaint messages, got %d", len(sent))
	}
	if surface.Snapshot().Text != "12：00：00" {
		t.Error("text not written to surface")
	}
}

func TestBigTextWidth(t *testing.T) {
	plain := lipgloss.NewStyle()
	rows := bigText("01：01：01", "#", 1, &plain, nil)

	if len(rows) != glyphRows {
		t.Fatalf("expected %d rows, got %d", glyphRows, len(rows))
	}
	// six 3-wide digits, two 1-wide colons, seven gaps
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 27 {
			t.Errorf("row %d: width %d, expected 27", i, w)
		}
	}

	wide := bigText("00", "#", 2, &plain, nil)
	if w := lipgloss.Width(wide[0]); w != 14 {
		t.Errorf("expected double width 14, got %d", w)
	}
}

func TestPixelWidth(t *testing.T) {
	if pixelWidth(prefs.SizeRegular) != 2 {
		t.Errorf("expected 2 cells for 15vw, got %d", pixelWidth(prefs.SizeRegular))
	}
	if pixelWidth(prefs.SizeWide) != 1 {
		t.Errorf("expected 1 cell for 10vw, got %d", pixelWidth(prefs.SizeWide))
	}
	if pixelWidth(prefs.SizeRule{}) != 1 {
		t.Error("expected at least one cell per pixel")
	}
}

func TestGlowTint(t *testing.T) {
	if _, ok := glowTint(nil); ok {
		t.Error("no glow should give no tint")
	}
	if _, ok := glowTint(prefs.DefaultGlow()); !ok {
		t.Error("expected tint for the default rgba glow")
	}
	if _, ok := glowTint(prefs.GlowFor("#00BFFF")); !ok {
		t.Error("expected tint for a hex glow")
	}
	if _, ok := glowTint(prefs.Glow{{Blur: 5, Color: "transparent"}}); ok {
		t.Error("unparseable glow color should give no tint")
	}
}
