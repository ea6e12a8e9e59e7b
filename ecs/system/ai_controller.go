package system

import (
	"log"
	"math"
	"math/rand"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/perception"
	"github.com/milk9111/spiritfox/port"
)

// arriveDistance is how close a wandering ghoul must get to its point.
const arriveDistance = 0.1

// AISystem drives every ghoul's state machine one tick at a time. Each state
// handler returns early at its suspension points; the next tick resumes from
// AIState.Step.
type AISystem struct {
	Spatial   port.Spatial
	Navigator port.Navigator
	Presenter port.Presenter
	Rand      *rand.Rand
	// Debug logs every state change.
	Debug bool
}

func NewAISystem(spatial port.Spatial, nav port.Navigator, presenter port.Presenter, rng *rand.Rand) *AISystem {
	if nav == nil {
		nav = port.Nop{}
	}
	if presenter == nil {
		presenter = port.Nop{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &AISystem{
		Spatial:   spatial,
		Navigator: nav,
		Presenter: presenter,
		Rand:      rng,
	}
}

// aiTick bundles what a state handler may read and write for one agent.
type aiTick struct {
	w   *ecs.World
	e   ecs.Entity
	ai  *component.AI
	st  *component.AIState
	ctx *component.AIContext
	tr  *component.Transform

	target    ecs.Entity
	targetPos common.Vec3
	hasTarget bool
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	target, targetPos, hasTarget := findTarget(w)

	ecs.ForEach4(w,
		component.AIComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.AIContextComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, ai *component.AI, st *component.AIState, ctx *component.AIContext, tr *component.Transform) {
			if st.Current == "" {
				ctx.Anchor = tr.Position
				enterState(w, e, component.StateIdle, tr.Position)
			}
			if st.Current == component.StateDying {
				return
			}
			st.Elapsed += dt

			t := &aiTick{w: w, e: e, ai: ai, st: st, ctx: ctx, tr: tr, target: target, targetPos: targetPos, hasTarget: hasTarget}
			if hasTarget {
				ctx.Target = uint64(target)
			} else {
				ctx.Target = 0
			}
			ctx.Visible = hasTarget && s.perceives(t)

			prev := st.Current
			s.step(t)
			if s.Debug && st.Current != prev {
				log.Printf("ai: entity=%s %s -> %s", e, prev, st.Current)
			}
		})
}

func (s *AISystem) step(t *aiTick) {
	switch t.st.Current {
	case component.StateIdle:
		s.idle(t)
	case component.StateWandering:
		s.wandering(t)
	case component.StateSearching:
		s.searching(t)
	case component.StateChasing:
		s.chasing(t)
	case component.StateAttacking:
		s.attacking(t)
	}
}

// findTarget returns the player if it is alive and standing.
func findTarget(w *ecs.World) (ecs.Entity, common.Vec3, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return ecs.NoEntity, common.Vec3{}, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return ecs.NoEntity, common.Vec3{}, false
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Current <= 0 {
		return ecs.NoEntity, common.Vec3{}, false
	}
	return e, tr.Position, true
}

// perceptionActive reports whether the agent's realm view lets it see. Only
// the settled realm counts, so a swap that is later aborted never blinds it.
// Agents without a realm view always perceive.
func perceptionActive(w *ecs.World, e ecs.Entity) bool {
	t, ok := ecs.Get(w, e, component.RealmComponent.Kind())
	if !ok {
		return true
	}
	return t.Spirit
}

func (s *AISystem) perceives(t *aiTick) bool {
	if !perceptionActive(t.w, t.e) {
		return false
	}
	pc, ok := ecs.Get(t.w, t.e, component.PerceptionComponent.Kind())
	if !ok {
		return false
	}
	return perception.CanSee(
		perception.Observer{Position: t.tr.Position, Forward: t.tr.Forward},
		perception.Cone{HalfAngle: pc.HalfAngle, Radius: pc.Radius},
		perception.Target{Entity: t.target, Position: t.targetPos},
		s.Spatial,
	)
}

func (s *AISystem) steer(t *aiTick, dest common.Vec3, speed float64) {
	if nav, ok := ecs.Get(t.w, t.e, component.NavAgentComponent.Kind()); ok {
		nav.Speed = speed
	}
	s.Navigator.SetDestination(t.e, dest)
}

func (s *AISystem) stop(t *aiTick) {
	s.steer(t, t.tr.Position, 0)
}

func (s *AISystem) face(t *aiTick, p common.Vec3) {
	dir := p.Sub(t.tr.Position).Flat()
	if dir.Len() == 0 {
		return
	}
	t.tr.Forward = dir.Normalize()
}

// wanderPoint picks a uniformly random point in the anchor's wander disc and
// snaps it onto walkable ground.
func (s *AISystem) wanderPoint(t *aiTick) common.Vec3 {
	angle := s.Rand.Float64() * 2 * math.Pi
	dist := math.Sqrt(s.Rand.Float64()) * t.ai.WanderDistance
	p := t.ctx.Anchor.Add(common.V3(math.Cos(angle)*dist, 0, math.Sin(angle)*dist))
	if s.Spatial != nil {
		p = s.Spatial.SampleWalkable(p, t.ai.WanderDistance)
	}
	return p
}

// hitboxOverlaps tests the agent's attack sphere against the target's hurtbox.
func (s *AISystem) hitboxOverlaps(t *aiTick) bool {
	hb, ok := ecs.Get(t.w, t.e, component.HitboxComponent.Kind())
	if !ok {
		return false
	}
	var radius float64
	if hurt, ok := ecs.Get(t.w, t.target, component.HurtboxComponent.Kind()); ok {
		radius = hurt.Radius
	}
	a := port.Sphere{Center: t.tr.Position.Add(t.tr.Forward.Normalize().Scale(hb.Reach)), Radius: hb.Radius}
	b := port.Sphere{Center: t.targetPos, Radius: radius}
	if s.Spatial != nil {
		return s.Spatial.SphereOverlap(a, b)
	}
	return port.SpheresOverlap(a, b)
}

// enterState replaces the agent's driving state in one step. Dying is
// terminal: once entered nothing leaves it.
func enterState(w *ecs.World, e ecs.Entity, next component.StateID, dest common.Vec3) bool {
	st, ok := ecs.Get(w, e, component.AIStateComponent.Kind())
	if !ok || st.Current == component.StateDying {
		return false
	}
	st.Current = next
	st.Elapsed = 0
	st.Step = 0
	st.Destination = dest
	st.Transitions++
	return true
}

// nextStep moves to the following suspension point and restarts its timer.
func nextStep(st *component.AIState) {
	st.Step++
	st.Elapsed = 0
}

func lastKnown(w *ecs.World, e ecs.Entity, ctx *component.AIContext) common.Vec3 {
	if ctx != nil && ctx.HasLastKnown {
		return ctx.LastKnown
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return tr.Position
	}
	return common.Vec3{}
}
