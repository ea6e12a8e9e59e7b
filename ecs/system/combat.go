package system

import (
	"log"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
)

// TakeDamage applies amount to e. It is a no-op for entities without health
// and for ones already dead or dying. A hit that empties the health bar
// forces a ghoul into Dying; any other hit flashes the entity and startles an
// idle or wandering ghoul toward from.
func TakeDamage(w *ecs.World, e ecs.Entity, amount float64, from common.Vec3) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Current <= 0 {
		return false
	}
	st, hasState := ecs.Get(w, e, component.AIStateComponent.Kind())
	if hasState && st.Current == component.StateDying {
		return false
	}

	h.Current -= amount
	if pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		pl.Hurt = true
		w.Events().Push(ecs.Event{
			Type: ecs.EventPlayerHit,
			Data: ecs.DamageEvent{Target: e, Amount: amount},
		})
	}
	if h.Current <= 0 {
		h.Current = 0
		if hasState {
			kill(w, e)
		}
		return true
	}

	startFlash(w, e)
	if hasState && (st.Current == component.StateIdle || st.Current == component.StateWandering) {
		enterState(w, e, component.StateWandering, from)
	}
	return true
}

// kill forces Dying and hands the entity to the fade-out.
func kill(w *ecs.World, e ecs.Entity) {
	enterState(w, e, component.StateDying, common.Vec3{})
	if nav, ok := ecs.Get(w, e, component.NavAgentComponent.Kind()); ok {
		nav.HasDestination = false
		nav.Speed = 0
	}
	ecs.Remove(w, e, component.HitFlashComponent.Kind())
	// the fade always runs its full length, even from a half-blended ghoul
	if vis, ok := ecs.Get(w, e, component.VisibilityComponent.Kind()); ok {
		vis.Opacity = 1
	} else {
		_ = ecs.Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Opacity: 1})
	}
	if err := ecs.Add(w, e, component.FadeComponent.Kind(), &component.Fade{Rate: 1}); err != nil {
		log.Printf("combat: entity=%s fade: %v", e, err)
	}
}

func startFlash(w *ecs.World, e ecs.Entity) {
	var d float64
	if ai, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
		d = ai.FlashTime
	} else if pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		d = pl.FlashTime
	}
	if d <= 0 {
		return
	}
	_ = ecs.Add(w, e, component.HitFlashComponent.Kind(), &component.HitFlash{Remaining: d, Duration: d})
}

// inArc reports whether p is within reach of origin and inside the arc of
// halfAngle degrees around forward. Used for melee strikes.
func inArc(origin, forward, p common.Vec3, reach, halfAngle float64) bool {
	to := p.Sub(origin).Flat()
	if to.Len() > reach {
		return false
	}
	if to.Len() == 0 {
		return true
	}
	return common.AngleBetween(forward.Flat(), to) <= halfAngle
}
