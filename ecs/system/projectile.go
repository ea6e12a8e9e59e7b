package system

import (
	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

// ProjectileSystem flies spirit balls. A ball is spent when it strikes a
// ghoul, meets a wall, runs out of range or the world leaves the spirit
// realm.
type ProjectileSystem struct {
	Spatial   port.Spatial
	Presenter port.Presenter
}

func NewProjectileSystem(spatial port.Spatial, presenter port.Presenter) *ProjectileSystem {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &ProjectileSystem{Spatial: spatial, Presenter: presenter}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	spirit := SpiritRealm(w)

	var spent []ecs.Entity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pr *component.Projectile, tr *component.Transform) {
		if !spirit {
			spent = append(spent, e)
			return
		}

		step := pr.Velocity.Scale(dt)
		dist := step.Len()
		if dist > pr.Range {
			step = step.Scale(pr.Range / dist)
			dist = pr.Range
		}
		if s.Spatial != nil && dist > 0 {
			if hit, ok := s.Spatial.Raycast(tr.Position, step.Normalize(), dist); ok && hit.Tag == TagWall {
				s.Presenter.Play(e, "spirit_ball_hit")
				spent = append(spent, e)
				return
			}
		}
		tr.Position = tr.Position.Add(step)
		pr.Range -= dist

		if g, ok := struckGhoul(w, tr.Position, pr.Radius); ok {
			if TakeDamage(w, g, pr.Damage, tr.Position) {
				w.Events().Push(ecs.Event{
					Type: ecs.EventAttackLanded,
					Data: ecs.DamageEvent{Source: ecs.Entity(pr.Source), Target: g, Amount: pr.Damage},
				})
			}
			s.Presenter.Play(e, "spirit_ball_hit")
			spent = append(spent, e)
			return
		}
		if pr.Range <= 0 {
			spent = append(spent, e)
		}
	})

	for _, e := range spent {
		ecs.DestroyEntity(w, e)
	}
}

// struckGhoul returns the first living ghoul whose hurtbox overlaps a ball at
// pos. Dying ghouls let balls pass through.
func struckGhoul(w *ecs.World, pos common.Vec3, radius float64) (ecs.Entity, bool) {
	ball := port.Sphere{Center: pos.Flat(), Radius: radius}
	for _, g := range w.Query(component.GhoulTagComponent.Kind(), component.HurtboxComponent.Kind(), component.TransformComponent.Kind()) {
		if st, ok := ecs.Get(w, g, component.AIStateComponent.Kind()); ok && st.Current == component.StateDying {
			continue
		}
		hb, _ := ecs.Get(w, g, component.HurtboxComponent.Kind())
		tr, _ := ecs.Get(w, g, component.TransformComponent.Kind())
		if port.SpheresOverlap(ball, port.Sphere{Center: tr.Position.Flat(), Radius: hb.Radius}) {
			return g, true
		}
	}
	return ecs.NoEntity, false
}
