package component

import "github.com/milk9111/spiritfox/realm"

// RealmComponent stores an entity's own view of the active realm.
var RealmComponent = NewComponent[realm.Toggle]()

// RealmParticipant attaches the behavior that reacts to realm broadcasts.
// The registry collects these fresh on every broadcast, so spawning or
// destroying the entity is all it takes to join or leave.
type RealmParticipant struct {
	Participant realm.Participant
}

var RealmParticipantComponent = NewComponent[RealmParticipant]()
