// Package segmux drives multi-digit seven-segment LED displays by
// multiplexing their digits over GPIO pins (using periph.io).
package segmux // import "github.com/DrJosh9000/segmux"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

const (
	// MaxDigits is the largest number of digits one Multiplexer can drive.
	MaxDigits = 8

	// DefaultStrobeTicks is used when Config.StrobeTicks is zero.
	DefaultStrobeTicks = 4

	// Common-cathode wiring: a lit segment is driven high and the selected
	// digit's common is pulled low.
	segmentOn    = gpio.High
	segmentOff   = gpio.Low
	commonActive = gpio.Low
	commonIdle   = gpio.High
)

var (
	// ErrTooManyDigits is returned by New when Config.Digits exceeds
	// MaxDigits.
	ErrTooManyDigits = errors.New("segmux: too many digits")

	// ErrNegativeDigits is returned by New when Config.Digits is negative.
	ErrNegativeDigits = errors.New("segmux: negative digit count")

	// ErrMissingCommon is returned by New when a digit has no common pin.
	ErrMissingCommon = errors.New("segmux: missing common pin")

	// ErrBadStrobeTicks is returned by New when Config.StrobeTicks is
	// negative.
	ErrBadStrobeTicks = errors.New("segmux: strobe ticks must be positive")
)

// Pins maps the display's physical pins. Segment pins are in a..g, dp order;
// any of them may be nil if not connected (dp usually is not). Commons holds
// one pin per digit position, leftmost first.
type Pins struct {
	Segments [8]gpio.PinOut
	Commons  []gpio.PinOut
}

// Config configures a Multiplexer.
type Config struct {
	// Digits is the number of digit positions. 0 means 1.
	Digits int

	// StrobeTicks is the number of ticks each digit stays lit before the
	// next one is selected. 0 means DefaultStrobeTicks.
	StrobeTicks int

	// Logger receives state transitions at debug level and pin errors.
	// Optional, uses logrus.StandardLogger() if nil.
	Logger *logrus.Logger
}

// State is a state of the multiplexing state machine.
type State int

const (
	// Init is the state after New, left on the first tick.
	Init State = iota

	// Idle counts ticks on the active digit, waiting for a redraw or for
	// the strobe period to run out.
	Idle

	// Print draws the active digit.
	Print

	// NextDigit selects the next digit, wrapping after the last.
	NextDigit
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case Idle:
		return "Idle"
	case Print:
		return "Print"
	case NextDigit:
		return "NextDigit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Multiplexer shows one digit at a time, selecting the next digit every few
// calls to Tick. SetDigit may be called concurrently with Tick.
type Multiplexer struct {
	segments [8]gpio.PinOut
	commons  [MaxDigits]gpio.PinOut
	n        int
	strobe   int
	log      *logrus.Logger

	mu      sync.Mutex
	values  [MaxDigits]Value
	pending bool
	state   State
	active  int
	counter int
}

// New configures every connected pin as an output, with the display dark,
// and returns a Multiplexer showing Blank on every digit. The first call to
// Tick draws digit 0.
func New(pins Pins, cfg Config) (*Multiplexer, error) {
	n := cfg.Digits
	if n == 0 {
		n = 1
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDigits, n)
	}
	if n > MaxDigits {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyDigits, n, MaxDigits)
	}
	if len(pins.Commons) < n {
		return nil, fmt.Errorf("%w: have %d for %d digits", ErrMissingCommon, len(pins.Commons), n)
	}
	strobe := cfg.StrobeTicks
	if strobe == 0 {
		strobe = DefaultStrobeTicks
	}
	if strobe < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadStrobeTicks, strobe)
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := &Multiplexer{
		segments: pins.Segments,
		n:        n,
		strobe:   strobe,
		log:      log,
		pending:  true,
		state:    Init,
	}
	for i := 0; i < n; i++ {
		if pins.Commons[i] == nil {
			return nil, fmt.Errorf("%w: digit %d", ErrMissingCommon, i)
		}
		m.commons[i] = pins.Commons[i]
		m.values[i] = Blank
	}

	for _, p := range m.segments {
		if p == nil {
			continue
		}
		if err := p.Out(segmentOff); err != nil {
			return nil, fmt.Errorf("segmux: configuring segment %s: %w", p, err)
		}
	}
	for _, p := range m.commons[:n] {
		if err := p.Out(commonIdle); err != nil {
			return nil, fmt.Errorf("segmux: configuring common %s: %w", p, err)
		}
	}
	return m, nil
}

// Digits returns the number of digit positions.
func (m *Multiplexer) Digits() int { return m.n }

// State returns the current state of the state machine.
func (m *Multiplexer) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetDigit sets the value shown at position i (0 is leftmost). It does
// nothing if i is out of range or v is greater than Blank. The new value is
// drawn on the next tick if i is the active digit.
func (m *Multiplexer) SetDigit(i int, v Value) {
	if i < 0 || i >= m.n || v > Blank {
		return
	}
	m.mu.Lock()
	m.values[i] = v
	m.pending = true
	m.mu.Unlock()
}

// Clear sets every digit to Blank.
func (m *Multiplexer) Clear() {
	m.mu.Lock()
	for i := 0; i < m.n; i++ {
		m.values[i] = Blank
	}
	m.pending = true
	m.mu.Unlock()
}

// Tick advances the state machine by one time step. It should be called at
// a fixed rate. Each pass computes the transition out of the current state
// and then performs the action of the new state; passes repeat until Idle
// has counted the tick, so a digit selected by NextDigit is drawn in the
// same tick.
func (m *Multiplexer) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		prev := m.state
		m.state = m.transition()
		if m.state != prev && m.log.IsLevelEnabled(logrus.DebugLevel) {
			m.log.WithField("digit", m.active).Debugf("segmux: %v -> %v", prev, m.state)
		}
		if m.act(prev) {
			return
		}
	}
}

func (m *Multiplexer) transition() State {
	switch m.state {
	case Init:
		return Idle
	case Idle:
		switch {
		case m.pending:
			return Print
		case m.counter >= m.strobe:
			return NextDigit
		}
		return Idle
	case Print:
		return Idle
	case NextDigit:
		return Print
	}
	return Init
}

// act performs the action of the current state, having come from prev. It
// reports whether the tick has been spent: every tick ends with one count in
// Idle, except that leaving Init is free so the first tick can draw.
func (m *Multiplexer) act(prev State) bool {
	switch m.state {
	case Idle:
		if prev == Init {
			return false
		}
		m.counter++
		return true
	case Print:
		m.pending = false
		m.draw()
	case NextDigit:
		m.counter = 0
		m.active = (m.active + 1) % m.n
	}
	return false
}

// draw shows the active digit. The previous common is released before the
// segments change so that no digit briefly shows another's pattern.
func (m *Multiplexer) draw() {
	for i, p := range m.commons[:m.n] {
		if i != m.active {
			m.out(p, commonIdle)
		}
	}
	pat := Encode(m.values[m.active])
	for i, p := range m.segments {
		if p == nil {
			continue
		}
		l := segmentOff
		if pat[i] {
			l = segmentOn
		}
		m.out(p, l)
	}
	m.out(m.commons[m.active], commonActive)
}

func (m *Multiplexer) out(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil {
		m.log.WithError(err).WithField("pin", p.String()).Warn("segmux: pin write failed")
	}
}

// Halt turns the whole display off. A later Tick redraws it only once a
// digit changes or the next digit is selected.
func (m *Multiplexer) Halt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.commons[:m.n] {
		m.out(p, commonIdle)
	}
	for _, p := range m.segments {
		if p != nil {
			m.out(p, segmentOff)
		}
	}
}

// Run calls Tick every period until ctx is done, then turns the display off.
func (m *Multiplexer) Run(ctx context.Context, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.Tick()
		case <-ctx.Done():
			m.Halt()
			return
		}
	}
}

// StrobeTicks returns how many ticks of length tick fit in one strobe
// period, and at least 1.
func StrobeTicks(strobe, tick time.Duration) int {
	if tick <= 0 {
		return 1
	}
	n := int(strobe / tick)
	if n < 1 {
		return 1
	}
	return n
}
