// ABOUTME: Tests for the render surface
// ABOUTME: Wires a real clock engine and preference store to one surface
package display

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/kv"
	"github.com/twtime/twclock/internal/prefs"
)

func TestNewSurfaceDefaults(t *testing.T) {
	snap := NewSurface().Snapshot()

	if snap.Color != prefs.DefaultColor {
		t.Errorf("expected default color, got %q", snap.Color)
	}
	if snap.FontSize.CSS() != "15vw" {
		t.Errorf("expected 15vw, got %q", snap.FontSize.CSS())
	}
	if snap.FullscreenIcon != IconFullscreen {
		t.Errorf("expected %q, got %q", IconFullscreen, snap.FullscreenIcon)
	}
	if snap.DateVisible {
		t.Error("date should start hidden")
	}
}

func TestSurfaceDrivenByEngineAndStore(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set(kv.KeyTZOffset, "0")
	_ = store.Set(kv.KeyTimeFont, "Sixtyfour")

	surface := NewSurface()
	p, err := prefs.New(store, clockwork.NewFakeClockAt(time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)),
		surface, prefs.WithDateTarget(surface), prefs.WithControls(surface))
	if err != nil {
		t.Fatal(err)
	}
	p.LoadAndApply()

	engine := clock.New(store)
	frame, offset := engine.Start(1000 * 3661)
	surface.SetText(frame.Text)
	surface.SetShift(offset)

	_ = p.ToggleDateVisibility()

	snap := surface.Snapshot()
	if snap.Text != "01：01：01" {
		t.Errorf("unexpected text %q", snap.Text)
	}
	if snap.FontSize.CSS() != "10vw" || snap.FontPicker != "Sixtyfour" {
		t.Errorf("font not applied: %q %q", snap.FontSize.CSS(), snap.FontPicker)
	}
	if snap.DateFamily != snap.FontFamily {
		t.Errorf("date family %q does not follow %q", snap.DateFamily, snap.FontFamily)
	}
	if !snap.DateVisible || snap.DateText != "2024/3/7" {
		t.Errorf("expected visible date 2024/3/7, got %v %q", snap.DateVisible, snap.DateText)
	}
	if !snap.Shift.InBounds() {
		t.Errorf("shift %+v out of bounds", snap.Shift)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	surface := NewSurface()
	snap := surface.Snapshot()
	snap.Glow[0].Color = "mutated"

	if surface.Snapshot().Glow[0].Color == "mutated" {
		t.Error("snapshot shares glow storage with the surface")
	}
}

func TestFullscreenIcon(t *testing.T) {
	surface := NewSurface()
	surface.SetFullscreen(true)
	if got := surface.Snapshot().FullscreenIcon; got != IconFullscreenExit {
		t.Errorf("expected %q, got %q", IconFullscreenExit, got)
	}
	surface.SetFullscreen(false)
	if got := surface.Snapshot().FullscreenIcon; got != IconFullscreen {
		t.Errorf("expected %q, got %q", IconFullscreen, got)
	}
}

func TestConcurrentWriters(t *testing.T) {
	surface := NewSurface()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			surface.SetText(clock.Format(int64(i) * 1000))
			surface.SetShift(clock.Offset{DX: 1, DY: -1})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			surface.SetColor(prefs.NextColor(surface.Snapshot().Color))
			surface.SetGlow(prefs.GlowFor("#FFFFFF"))
		}
	}()
	wg.Wait()

	if surface.Snapshot().Text != clock.Format(199000) {
		t.Errorf("unexpected final text %q", surface.Snapshot().Text)
	}
}
