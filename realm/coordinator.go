package realm

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrReentry          = errors.New("realm: transition already in flight")
	ErrNothingToAbort   = errors.New("realm: no transition in flight")
	ErrParticipantPanic = errors.New("realm: participant panicked")
)

// DefaultDuration is the transition length used when none is configured.
const DefaultDuration = 1.5

// Diagnostics receives participant failures isolated during a broadcast.
type Diagnostics interface {
	ParticipantFailed(op string, p Participant, err error)
}

// LogDiagnostics reports failures through a standard logger.
type LogDiagnostics struct {
	Logger *log.Logger
}

func (d LogDiagnostics) ParticipantFailed(op string, p Participant, err error) {
	logf(d.Logger, "realm: %s failed for %T: %v", op, p, err)
}

func logf(l *log.Logger, format string, args ...any) {
	if l == nil {
		log.Printf(format, args...)
		return
	}
	l.Printf(format, args...)
}

// Coordinator fans begin/abort requests out to every registered participant
// and owns the single process-wide transition clock.
//
// The coordinator is owned by the top-level game; participants keep a
// non-owning reference to read the shared duration.
type Coordinator struct {
	registry Registry
	diag     Diagnostics
	logger   *log.Logger

	duration float64
	active   bool
	elapsed  float64
	// flight is the duration the transition in flight started with.
	flight float64
}

func NewCoordinator(registry Registry, duration float64) *Coordinator {
	c := &Coordinator{registry: registry, diag: LogDiagnostics{}}
	c.SetDuration(duration)
	return c
}

// SetDiagnostics replaces the failure sink. A nil sink restores logging.
func (c *Coordinator) SetDiagnostics(d Diagnostics) {
	if d == nil {
		d = LogDiagnostics{Logger: c.logger}
	}
	c.diag = d
}

// SetLogger routes coordinator logging through l.
func (c *Coordinator) SetLogger(l *log.Logger) {
	c.logger = l
	if ld, ok := c.diag.(LogDiagnostics); ok {
		ld.Logger = l
		c.diag = ld
	}
}

// SetRegistry swaps the participant source.
func (c *Coordinator) SetRegistry(r Registry) {
	c.registry = r
}

// Duration is the shared transition length every participant times against.
func (c *Coordinator) Duration() float64 {
	if c == nil || c.duration <= 0 {
		return DefaultDuration
	}
	return c.duration
}

// SetDuration changes the shared transition length. Transitions already in
// flight keep the duration they started with.
func (c *Coordinator) SetDuration(d float64) {
	if d <= 0 {
		d = DefaultDuration
	}
	c.duration = d
}

// Active reports whether the global clock is running.
func (c *Coordinator) Active() bool {
	return c != nil && c.active
}

// Progress is the fraction of the global clock elapsed, 0 when idle.
func (c *Coordinator) Progress() float64 {
	if !c.Active() {
		return 0
	}
	p := c.elapsed / c.flight
	if p > 1 {
		return 1
	}
	return p
}

// Broadcast delivers kind to every participant that currently exists and
// returns how many were notified. It returns an error only when the request
// is rejected as a whole (re-entry, or abort with nothing in flight).
func (c *Coordinator) Broadcast(kind Kind) (int, error) {
	if c == nil {
		return 0, nil
	}
	switch kind {
	case Begin:
		if c.active {
			logf(c.logger, "realm: ignoring begin: %v", ErrReentry)
			return 0, ErrReentry
		}
		c.active = true
		c.elapsed = 0
		c.flight = c.Duration()
	case Abort:
		if !c.active {
			return 0, ErrNothingToAbort
		}
		c.active = false
		c.elapsed = 0
	default:
		return 0, fmt.Errorf("realm: unknown broadcast kind %d", kind)
	}

	notified := 0
	for _, p := range c.participants() {
		if !alive(p) {
			continue
		}
		var call func()
		if kind == Begin {
			call = p.BeginTransition
		} else {
			call = p.AbortTransition
		}
		if c.invoke(kind.String(), p, call) {
			notified++
		}
	}
	return notified, nil
}

// Tick advances the global clock and every ticking participant by dt seconds.
func (c *Coordinator) Tick(dt float64) {
	if c == nil {
		return
	}
	for _, p := range c.participants() {
		if !alive(p) {
			continue
		}
		t, ok := p.(Ticker)
		if !ok {
			continue
		}
		c.invoke("tick", p, func() { t.TickTransition(dt) })
	}
	if c.active {
		c.elapsed += dt
		if c.elapsed >= c.flight {
			c.active = false
			c.elapsed = 0
		}
	}
}

// Admit brings a participant created while a transition is in flight into
// that transition, timed so it completes on the same tick as the global
// clock. It reports whether the participant joined.
func (c *Coordinator) Admit(p Participant) bool {
	if !c.Active() || !alive(p) {
		return false
	}
	if l, ok := p.(Latecomer); ok {
		elapsed, flight := c.elapsed, c.flight
		return c.invoke("join", p, func() { l.JoinTransition(elapsed, flight) })
	}
	return c.invoke(Begin.String(), p, p.BeginTransition)
}

func (c *Coordinator) participants() []Participant {
	if c.registry == nil {
		return nil
	}
	return c.registry.Participants()
}

func (c *Coordinator) invoke(op string, p Participant, call func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if c.diag != nil {
				c.diag.ParticipantFailed(op, p, fmt.Errorf("%w: %v", ErrParticipantPanic, r))
			}
		}
	}()
	call()
	return true
}
