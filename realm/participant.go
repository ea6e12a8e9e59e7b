// Package realm implements the dual-world transition protocol: a shared
// realm token, the participant contract every realm-reactive object follows,
// and the coordinator that broadcasts begin/abort requests and owns the
// transition clock.
package realm

// Participant is anything that reacts to a realm swap.
//
// BeginTransition is ignored while a transition is already in flight.
// AbortTransition must leave the participant fully in its old realm,
// reverting any interpolated state synchronously. CompleteTransition flips
// the participant's realm and runs its one-shot realm-entry effects.
type Participant interface {
	BeginTransition()
	AbortTransition()
	CompleteTransition()
}

// Ticker is implemented by participants with a timed sub-task. TickTransition
// advances it and completes the participant when the timer runs out.
type Ticker interface {
	TickTransition(dt float64)
}

// Latecomer is implemented by participants that can join a transition
// already in flight, picking up its elapsed time and duration.
type Latecomer interface {
	JoinTransition(elapsed, duration float64)
}

// Admitter lets newly created participants join the transition in flight.
// *Coordinator implements it.
type Admitter interface {
	Admit(p Participant) bool
}

// Liveness is implemented by participants that can be destroyed while still
// referenced by a registry snapshot.
type Liveness interface {
	Alive() bool
}

// Registry yields the participants that currently exist. It is queried fresh
// on every broadcast and tick.
type Registry interface {
	Participants() []Participant
}

// Kind is the broadcast request type.
type Kind int

const (
	Begin Kind = iota
	Abort
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

func alive(p Participant) bool {
	if p == nil {
		return false
	}
	if l, ok := p.(Liveness); ok {
		return l.Alive()
	}
	return true
}
