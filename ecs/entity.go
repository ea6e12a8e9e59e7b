package ecs

import "fmt"

// Entity is a generational handle. The low 32 bits hold the slot id, the high
// 32 bits the generation, so a handle to a destroyed entity never aliases the
// entity that later reuses its slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

// NoEntity is the zero handle. It is never alive.
const NoEntity Entity = 0

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

// Valid reports whether the handle could refer to an entity at all. It does
// not check liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}
