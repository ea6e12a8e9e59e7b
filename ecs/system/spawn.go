package system

import (
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

// SpawnFunc builds a prefab at pos and returns the new entity.
type SpawnFunc func(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error)

// SpawnSystem runs encounters: it releases a spawner's wave when the player
// walks into its trigger, and removes the spawner once the wave is dead or
// the player reaches its limit. New entities join realm broadcasts through
// their participant component, including a swap already in flight.
type SpawnSystem struct {
	Spawn SpawnFunc
	Rand  *rand.Rand
}

func NewSpawnSystem(spawn SpawnFunc, rng *rand.Rand) *SpawnSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SpawnSystem{Spawn: spawn, Rand: rng}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil || s.Spawn == nil {
		return
	}
	playerPos, hasPlayer := playerPosition(w)

	var finished []ecs.Entity
	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		if hasPlayer && sp.Limit.Contains(playerPos) {
			s.cancel(w, e, sp)
			finished = append(finished, e)
			return
		}
		if !sp.Started {
			if sp.Trigger.Empty() || (hasPlayer && sp.Trigger.Contains(playerPos)) {
				s.release(w, e, sp)
			}
			return
		}
		if cleared(w, sp) {
			w.Events().Push(ecs.Event{Type: ecs.EventEncounterCleared, Data: e})
			finished = append(finished, e)
		}
	})

	for _, e := range finished {
		ecs.DestroyEntity(w, e)
	}
}

// release spawns the wave. The first ghouls take the points in order, any
// extras pick a point at random.
func (s *SpawnSystem) release(w *ecs.World, e ecs.Entity, sp *component.Spawner) {
	sp.Started = true
	if len(sp.Points) == 0 {
		return
	}
	n := sp.Quantity
	if n <= 0 {
		n = len(sp.Points)
	}
	for i := 0; i < n; i++ {
		var p common.Vec3
		if i < len(sp.Points) {
			p = sp.Points[i]
		} else {
			p = sp.Points[s.Rand.Intn(len(sp.Points))]
		}
		p = p.Add(s.jitter(sp.Jitter))
		g, err := s.Spawn(w, sp.Prefab, p)
		if err != nil {
			log.Printf("spawn: spawner=%s %s at %v: %v", e, sp.Prefab, p, err)
			continue
		}
		sp.Spawned = append(sp.Spawned, uint64(g))
	}
}

// cancel removes whatever the encounter still has standing.
func (s *SpawnSystem) cancel(w *ecs.World, e ecs.Entity, sp *component.Spawner) {
	for _, g := range sp.Spawned {
		ecs.DestroyEntity(w, ecs.Entity(g))
	}
	sp.Spawned = nil
	w.Events().Push(ecs.Event{Type: ecs.EventEncounterCancelled, Data: e})
}

// jitter is a random offset inside a disc of the given radius.
func (s *SpawnSystem) jitter(radius float64) common.Vec3 {
	if radius <= 0 {
		return common.Vec3{}
	}
	r := radius * math.Sqrt(s.Rand.Float64())
	a := s.Rand.Float64() * 2 * math.Pi
	return common.V3(r*math.Cos(a), 0, r*math.Sin(a))
}

func cleared(w *ecs.World, sp *component.Spawner) bool {
	for _, g := range sp.Spawned {
		if ecs.IsAlive(w, ecs.Entity(g)) {
			return false
		}
	}
	return true
}

func playerPosition(w *ecs.World) (common.Vec3, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	return tr.Position, true
}
