package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventGhoulDied     = "ghoul_died"
	EventPlayerHit     = "player_hit"
	EventAttackLanded  = "attack_landed"
	EventBindweedGrown = "bindweed_grown"
	// EventEncounterCleared and EventEncounterCancelled carry the spawner
	// entity.
	EventEncounterCleared   = "encounter_cleared"
	EventEncounterCancelled = "encounter_cancelled"
)

// DamageEvent is the payload of EventPlayerHit and EventAttackLanded.
type DamageEvent struct {
	Source Entity
	Target Entity
	Amount float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
