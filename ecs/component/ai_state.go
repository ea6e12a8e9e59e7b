package component

import "github.com/milk9111/spiritfox/common"

// StateID identifies a ghoul FSM state.
type StateID string

const (
	StateIdle      StateID = "idle"
	StateWandering StateID = "wandering"
	StateSearching StateID = "searching"
	StateChasing   StateID = "chasing"
	StateAttacking StateID = "attacking"
	StateDying     StateID = "dying"
)

// AIState is the single driving state of an agent. Elapsed counts seconds
// since the current Step started; Step indexes the suspension point reached
// inside the state.
type AIState struct {
	Current     StateID
	Elapsed     float64
	Step        int
	Destination common.Vec3
	// Transitions counts state changes. Tests use it to check that
	// terminal states stay put.
	Transitions int
}

// AIContext stores per-agent memory that survives state changes.
type AIContext struct {
	Anchor       common.Vec3
	Target       uint64
	LastKnown    common.Vec3
	HasLastKnown bool
	Visible      bool
}

// Perception is the agent's static view cone.
type Perception struct {
	HalfAngle float64
	Radius    float64
}

var AIStateComponent = NewComponent[AIState]()
var AIContextComponent = NewComponent[AIContext]()
var PerceptionComponent = NewComponent[Perception]()
