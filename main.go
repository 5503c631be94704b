// ABOUTME: Entry point for the full-screen terminal clock
// ABOUTME: Parses CLI flags, loads preferences and runs the clock
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/twtime/twclock/internal/clock"
	"github.com/twtime/twclock/internal/display"
	"github.com/twtime/twclock/internal/kv"
	"github.com/twtime/twclock/internal/prefs"
	"github.com/twtime/twclock/internal/ui"
)

var (
	prefsPath  = flag.String("prefs", "", "Preferences file (default: user config dir/twclock/prefs.yaml)")
	ephemeral  = flag.Bool("ephemeral", false, "Keep preferences in memory only")
	tzOffset   = flag.Duration("tz-offset", 0, "Store this timezone offset (e.g. 8h, -5h30m) before starting")
	logFile    = flag.String("log-file", "twclock.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, stream the time to the log instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	useTUI := !(*noTUI || *streamLogs)

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("Failed to open preferences: %v", err)
	}

	if flagSet("tz-offset") {
		if err := store.Set(kv.KeyTZOffset, strconv.FormatInt(tzOffset.Milliseconds(), 10)); err != nil {
			log.Fatalf("Failed to store timezone offset: %v", err)
		}
	}

	surface := display.NewSurface()
	preferences, err := prefs.New(store, nil, surface,
		prefs.WithDateTarget(surface),
		prefs.WithControls(surface),
	)
	if err != nil {
		log.Fatalf("Failed to create preference store: %v", err)
	}
	preferences.LoadAndApply()

	engine := clock.New(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if !useTUI {
		runStreaming(ctx, engine, surface, sigChan)
		return
	}

	tuiProg, err := ui.Run(surface, preferences)
	if err != nil {
		log.Fatalf("Failed to start TUI: %v", err)
	}

	runner, err := clock.NewRunner(engine, ui.NewTarget(surface, tuiProg.Send), nil)
	if err != nil {
		log.Fatalf("Failed to start clock: %v", err)
	}
	go runner.Run(ctx)

	go func() {
		sig := <-sigChan
		log.Printf("Received %v signal, shutting down", sig)
		tuiProg.Quit()
	}()

	if _, err := tuiProg.Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	log.Printf("Clock stopped")
}

// openStore picks the preferences backend from flags
func openStore() (kv.Store, error) {
	if *ephemeral {
		return kv.NewMemory(), nil
	}

	path := *prefsPath
	if path == "" {
		p, err := kv.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	log.Printf("Loading preferences from %s", path)
	return kv.OpenFile(path)
}

// runStreaming logs each rendered second until a signal arrives
func runStreaming(ctx context.Context, engine *clock.Engine, surface *display.Surface, sigChan <-chan os.Signal) {
	snap := surface.Snapshot()
	log.Printf("Starting clock: color=%s font=%s size=%s", snap.Color, snap.FontPicker, snap.FontSize.CSS())

	runner, err := clock.NewRunner(engine, logTarget{surface: surface}, nil)
	if err != nil {
		log.Fatalf("Failed to start clock: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	sig := <-sigChan
	log.Printf("Received %v signal, shutting down", sig)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
	}
}

// logTarget renders to the log and keeps the surface current
type logTarget struct {
	surface *display.Surface
}

func (t logTarget) SetText(text string) {
	t.surface.SetText(text)
	snap := t.surface.Snapshot()
	if snap.DateVisible {
		log.Printf("%s  %s", text, snap.DateText)
		return
	}
	log.Printf("%s", text)
}

func (t logTarget) SetShift(offset clock.Offset) {
	t.surface.SetShift(offset)
	log.Printf("Burn-in shift: %s", offset.CSS())
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
