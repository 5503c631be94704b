// ABOUTME: Host loop driving the clock engine with real or fake timers
// ABOUTME: One-shot second-aligned render timer plus an independent burn-in ticker
package clock

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrNoTarget is returned when a runner has nowhere to render
var ErrNoTarget = errors.New("clock: render target unavailable")

// Target receives rendered time text and burn-in offsets.
// The two are written to disjoint properties, so their order does not matter.
type Target interface {
	SetText(text string)
	SetShift(offset Offset)
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithBurnInInterval overrides the burn-in cadence
func WithBurnInInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// Runner schedules engine ticks on a clockwork clock
type Runner struct {
	engine   *Engine
	target   Target
	clock    clockwork.Clock
	interval time.Duration
}

// NewRunner creates a runner; clk may be nil for the real clock
func NewRunner(engine *Engine, target Target, clk clockwork.Clock, opts ...RunnerOption) (*Runner, error) {
	if engine == nil || target == nil {
		return nil, ErrNoTarget
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	r := &Runner{
		engine:   engine,
		target:   target,
		clock:    clk,
		interval: BurnInInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run renders until ctx is cancelled
func (r *Runner) Run(ctx context.Context) {
	frame, offset := r.engine.Start(r.clock.Now().UnixMilli())
	r.target.SetText(frame.Text)
	r.target.SetShift(offset)

	timer := r.clock.NewTimer(frame.Next)
	defer timer.Stop()

	burnIn := r.clock.NewTicker(r.interval)
	defer burnIn.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Clock runner stopped at %s", frame.Text)
			return
		case <-timer.Chan():
			frame = r.engine.Tick(r.clock.Now().UnixMilli())
			r.target.SetText(frame.Text)
			timer.Reset(frame.Next)
		case <-burnIn.Chan():
			r.target.SetShift(r.engine.Shift())
		}
	}
}
