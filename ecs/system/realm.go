package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/realm"
)

// RealmRegistry exposes the world's participant entities to a coordinator.
// Nothing is cached: every broadcast sees the entities alive at that moment.
type RealmRegistry struct {
	World *ecs.World
}

func (r RealmRegistry) Participants() []realm.Participant {
	if r.World == nil {
		return nil
	}
	var out []realm.Participant
	ecs.ForEach(r.World, component.RealmParticipantComponent.Kind(), func(_ ecs.Entity, rp *component.RealmParticipant) {
		if rp.Participant != nil {
			out = append(out, rp.Participant)
		}
	})
	return out
}

// RealmSystem advances the coordinator's clock and every participant's timer
// once per tick.
type RealmSystem struct {
	Coordinator *realm.Coordinator
}

func NewRealmSystem(c *realm.Coordinator) *RealmSystem {
	return &RealmSystem{Coordinator: c}
}

func (s *RealmSystem) Update(w *ecs.World) {
	if s == nil || s.Coordinator == nil || w == nil {
		return
	}
	s.Coordinator.Tick(w.DeltaTime())
}

// SpiritRealm reads the authoritative realm. Worlds without an authority are
// in the normal realm.
func SpiritRealm(w *ecs.World) bool {
	e, ok := ecs.First(w, component.RealmAuthorityComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.RealmComponent.Kind())
	return ok && t.Spirit
}

// entityParticipant is the shared plumbing of every ECS-backed participant:
// a non-owning handle to its entity and the clock that sets its duration.
type entityParticipant struct {
	w     *ecs.World
	e     ecs.Entity
	clock realm.Clock
}

func (p entityParticipant) Alive() bool {
	return p.w.IsAlive(p.e)
}

func (p entityParticipant) toggle() *realm.Toggle {
	t, ok := ecs.Get(p.w, p.e, component.RealmComponent.Kind())
	if !ok {
		return nil
	}
	return t
}

func (p entityParticipant) duration() float64 {
	if p.clock == nil {
		return realm.DefaultDuration
	}
	return p.clock.Duration()
}

// beginView resyncs a non-authoritative view from the authority and starts it.
func (p entityParticipant) beginView() (*realm.Toggle, bool) {
	t := p.toggle()
	if t == nil || !t.BeginFrom(SpiritRealm(p.w)) {
		return t, false
	}
	t.Duration = p.duration()
	return t, true
}

// joinView starts a view that was created mid-swap, part way through so it
// lands with everyone else.
func (p entityParticipant) joinView(elapsed, duration float64) (*realm.Toggle, bool) {
	t := p.toggle()
	if t == nil || !t.BeginFrom(SpiritRealm(p.w)) {
		return t, false
	}
	t.Duration = duration
	t.Elapsed = elapsed
	return t, true
}

// advance ticks the toggle and reports whether the caller should complete.
func (p entityParticipant) advance(dt float64) (*realm.Toggle, bool) {
	t := p.toggle()
	if t == nil || !t.OnTransition {
		return t, false
	}
	return t, t.Advance(dt)
}

// Attach wires a participant to its entity so the registry can find it.
func Attach(w *ecs.World, e ecs.Entity, p realm.Participant) error {
	return ecs.Add(w, e, component.RealmParticipantComponent.Kind(), &component.RealmParticipant{Participant: p})
}
