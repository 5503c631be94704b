// ABOUTME: Clock engine with second-aligned rendering and burn-in shifting
// ABOUTME: Pure tick transitions; hosts supply the actual timers
package clock

import (
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/twtime/twclock/internal/kv"
)

const (
	// DefaultOffset is used when no timezone offset has been persisted (UTC+8)
	DefaultOffset = 8 * time.Hour

	// BurnInDistance bounds each axis of the shift, in viewport units
	BurnInDistance = 1.5

	// BurnInInterval is the cadence of the burn-in shift
	BurnInInterval = 10 * time.Second

	// Separator between the time fields (full-width colon)
	Separator = "："

	millisPerSecond = 1000
	millisPerDay    = 24 * 3600 * 1000
)

// State is the engine lifecycle state
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// ClockState is the time-keeping state of one clock instance
type ClockState struct {
	TimezoneOffsetMillis int64
	NTPDeltaMillis       int64 // reserved for a future time-correction input; always 0
	LastRenderedSecond   int64 // adjusted Unix seconds of the last render
}

// Frame is the result of one render tick
type Frame struct {
	Text   string        // hh：mm：ss
	Second int           // seconds field of Text
	At     int64         // adjusted instant in milliseconds
	Next   time.Duration // delay until the next adjusted second boundary
}

// Source supplies uniform samples in [0, 1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Option configures an Engine
type Option func(*Engine)

// WithSource sets the random source used for burn-in shifts
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// Engine renders the time of day and generates burn-in offsets
type Engine struct {
	mu    sync.Mutex
	state State
	cs    ClockState
	src   Source
}

// New creates an engine, loading the timezone offset from store
func New(store kv.Store, opts ...Option) *Engine {
	e := &Engine{
		cs:  ClockState{TimezoneOffsetMillis: LoadOffset(store)},
		src: globalSource{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadOffset reads the persisted timezone offset in milliseconds.
// An absent value is replaced by DefaultOffset and written back;
// a value that is not an integer yields DefaultOffset and is left untouched.
func LoadOffset(store kv.Store) int64 {
	def := DefaultOffset.Milliseconds()

	raw, ok := store.Get(kv.KeyTZOffset)
	if !ok || raw == "" {
		if err := store.Set(kv.KeyTZOffset, strconv.FormatInt(def, 10)); err != nil {
			log.Printf("Failed to persist default timezone offset: %v", err)
		}
		return def
	}

	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Printf("Ignoring malformed %s=%q, using default %dms", kv.KeyTZOffset, raw, def)
		return def
	}
	return v
}

// Start moves the engine to running and performs the first render and shift
func (e *Engine) Start(nowMillis int64) (Frame, Offset) {
	e.mu.Lock()
	if e.state == StateIdle {
		log.Printf("Clock started: tz_offset=%dms", e.cs.TimezoneOffsetMillis)
	}
	e.state = StateRunning
	e.mu.Unlock()

	return e.Tick(nowMillis), e.Shift()
}

// Tick renders the wall-clock instant nowMillis and computes the delay to
// the next adjusted second boundary. Firing the next tick after Frame.Next
// keeps renders aligned no matter how late this one ran.
func (e *Engine) Tick(nowMillis int64) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	adj := nowMillis + e.cs.NTPDeltaMillis + e.cs.TimezoneOffsetMillis
	drift := floorMod(adj, millisPerSecond)

	e.cs.LastRenderedSecond = floorDiv(adj, millisPerSecond)

	return Frame{
		Text:   Format(adj),
		Second: int(floorMod(e.cs.LastRenderedSecond, 60)),
		At:     adj,
		Next:   time.Duration(millisPerSecond-drift) * time.Millisecond,
	}
}

// Shift samples a new burn-in offset, each axis uniform in [-D, D]
func (e *Engine) Shift() Offset {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Offset{
		DX: sampleAxis(e.src.Float64()),
		DY: sampleAxis(e.src.Float64()),
	}
}

// State returns the engine lifecycle state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ClockState returns a copy of the time-keeping state
func (e *Engine) ClockState() ClockState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cs
}

// Format renders an already-offset instant as hh：mm：ss using UTC arithmetic
func Format(adjMillis int64) string {
	ms := floorMod(adjMillis, millisPerDay)
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60

	var b strings.Builder
	b.Grow(12)
	b.WriteString(pad2(h))
	b.WriteString(Separator)
	b.WriteString(pad2(m))
	b.WriteString(Separator)
	b.WriteString(pad2(s))
	return b.String()
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

func sampleAxis(u float64) float64 {
	v := (u*2 - 1) * BurnInDistance
	if v > BurnInDistance {
		return BurnInDistance
	}
	if v < -BurnInDistance {
		return -BurnInDistance
	}
	return v
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
