package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

func (s *AISystem) idle(t *aiTick) {
	if t.ctx.Visible {
		enterState(t.w, t.e, component.StateChasing, t.targetPos)
		return
	}
	if t.st.Elapsed < t.ai.IdleTime {
		return
	}
	enterState(t.w, t.e, component.StateWandering, s.wanderPoint(t))
}

func (s *AISystem) wandering(t *aiTick) {
	if t.ctx.Visible {
		enterState(t.w, t.e, component.StateChasing, t.targetPos)
		return
	}
	if t.st.Step == 0 {
		s.face(t, t.st.Destination)
		s.steer(t, t.st.Destination, t.ai.WalkSpeed)
		t.st.Step = 1
	}
	if t.tr.Position.Flat().Dist(t.st.Destination.Flat()) < arriveDistance {
		s.stop(t)
		enterState(t.w, t.e, component.StateIdle, t.tr.Position)
		return
	}
	if t.ai.WanderTimeout > 0 && t.st.Elapsed >= t.ai.WanderTimeout {
		s.stop(t)
		enterState(t.w, t.e, component.StateIdle, t.tr.Position)
	}
}

// searching walks to the last known position for SearchTime, then stands
// still for another SearchTime before heading home.
func (s *AISystem) searching(t *aiTick) {
	if t.ctx.Visible {
		enterState(t.w, t.e, component.StateChasing, t.targetPos)
		return
	}
	switch t.st.Step {
	case 0:
		s.face(t, t.st.Destination)
		s.steer(t, t.st.Destination, t.ai.WalkSpeed)
		t.st.Step = 1
		fallthrough
	case 1:
		if t.st.Elapsed < t.ai.SearchTime {
			return
		}
		s.stop(t)
		nextStep(t.st)
	case 2:
		if t.st.Elapsed < t.ai.SearchTime {
			return
		}
		enterState(t.w, t.e, component.StateWandering, t.ctx.Anchor)
	}
}

func (s *AISystem) chasing(t *aiTick) {
	if !t.hasTarget {
		enterState(t.w, t.e, component.StateSearching, lastKnown(t.w, t.e, t.ctx))
		return
	}
	s.face(t, t.targetPos)
	if t.tr.Position.Dist(t.targetPos) < t.ai.AttackDistance && s.hitboxOverlaps(t) {
		t.ctx.LastKnown = t.targetPos
		t.ctx.HasLastKnown = true
		s.stop(t)
		enterState(t.w, t.e, component.StateAttacking, t.targetPos)
		return
	}
	if !t.ctx.Visible {
		enterState(t.w, t.e, component.StateSearching, lastKnown(t.w, t.e, t.ctx))
		return
	}
	t.ctx.LastKnown = t.targetPos
	t.ctx.HasLastKnown = true
	s.steer(t, t.targetPos, t.ai.ChaseSpeed)
}

// attacking winds up for AttackDelay, strikes once if the target is still in
// reach, then recovers for AttackCooldown.
func (s *AISystem) attacking(t *aiTick) {
	if !t.hasTarget {
		enterState(t.w, t.e, component.StateSearching, lastKnown(t.w, t.e, t.ctx))
		return
	}
	switch t.st.Step {
	case 0:
		s.stop(t)
		s.Presenter.Play(t.e, "attack_windup")
		t.st.Step = 1
		fallthrough
	case 1:
		if t.st.Elapsed < t.ai.AttackDelay {
			return
		}
		if s.hitboxOverlaps(t) {
			s.strike(t)
		}
		nextStep(t.st)
	case 2:
		if t.st.Elapsed < t.ai.AttackCooldown {
			return
		}
		enterState(t.w, t.e, component.StateSearching, t.targetPos)
	}
}

func (s *AISystem) strike(t *aiTick) {
	s.Presenter.Play(t.e, "attack")
	if !TakeDamage(t.w, t.target, t.ai.AttackDamage, t.tr.Position) {
		return
	}
	t.w.Events().Push(ecs.Event{
		Type: ecs.EventAttackLanded,
		Data: ecs.DamageEvent{Source: t.e, Target: t.target, Amount: t.ai.AttackDamage},
	})
}
