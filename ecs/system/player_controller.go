package system

import (
	"errors"
	"log"

	"github.com/milk9111/spiritfox/common"
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
	"github.com/milk9111/spiritfox/realm"
)

// PlayerControllerSystem turns the player's input into movement, spirit ball
// shots, melee strikes and realm swaps.
type PlayerControllerSystem struct {
	Coordinator *realm.Coordinator
	Spatial     port.Spatial
	Presenter   port.Presenter
}

func NewPlayerControllerSystem(c *realm.Coordinator, spatial port.Spatial, presenter port.Presenter) *PlayerControllerSystem {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &PlayerControllerSystem{Coordinator: c, Spatial: spatial, Presenter: presenter}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, pl *component.Player, in *component.Input, tr *component.Transform) {
			if pl.Hurt {
				pl.Hurt = false
				p.abort()
				if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Current <= 0 {
					_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
					return
				}
			}
			if ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
				return
			}

			if in.Toggle {
				p.toggle()
			}
			p.move(e, pl, in, tr, dt)
			p.recharge(e, pl, dt)

			if pl.Cooldown > 0 {
				pl.Cooldown -= dt
			}
			if in.Attack && pl.Cooldown <= 0 {
				pl.Cooldown = pl.AttackCooldown
				if SpiritRealm(w) && pl.Balls > 0 {
					p.shoot(w, e, pl, tr)
				} else {
					p.attack(w, e, pl, tr)
				}
			}
		})
}

// toggle starts a swap, or cancels the one in flight.
func (p *PlayerControllerSystem) toggle() {
	if p.Coordinator.Active() {
		p.abort()
		return
	}
	if _, err := p.Coordinator.Broadcast(realm.Begin); err != nil {
		log.Printf("player: begin shift: %v", err)
	}
}

func (p *PlayerControllerSystem) abort() {
	if !p.Coordinator.Active() {
		return
	}
	if _, err := p.Coordinator.Broadcast(realm.Abort); err != nil && !errors.Is(err, realm.ErrNothingToAbort) {
		log.Printf("player: abort shift: %v", err)
	}
}

func (p *PlayerControllerSystem) move(e ecs.Entity, pl *component.Player, in *component.Input, tr *component.Transform, dt float64) {
	dir := common.V3(in.Horizontal, 0, in.Vertical)
	if dir.Len() == 0 {
		return
	}
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	speed := pl.MoveSpeed
	if pl.Form == component.FormFox && pl.FoxSpeed > 0 {
		speed = pl.FoxSpeed
	}
	step := speed * dt * dir.Len()
	forward := dir.Normalize()
	tr.Forward = forward
	if blocked(p.Spatial, e, tr.Position, forward, step+pl.Radius) {
		return
	}
	tr.Position = tr.Position.Add(forward.Scale(step))
}

// recharge counts down spent spirit balls and hands each back when its timer
// runs out.
func (p *PlayerControllerSystem) recharge(e ecs.Entity, pl *component.Player, dt float64) {
	if len(pl.Respawns) == 0 {
		return
	}
	pending := pl.Respawns[:0]
	returned := false
	for _, left := range pl.Respawns {
		left -= dt
		if left > 0 {
			pending = append(pending, left)
			continue
		}
		if pl.Balls < pl.SpiritBalls {
			pl.Balls++
			returned = true
		}
	}
	pl.Respawns = pending
	if returned {
		p.Presenter.SetParam(e, "spirit_balls", float64(pl.Balls))
	}
}

// shoot fires the last spirit ball straight ahead.
func (p *PlayerControllerSystem) shoot(w *ecs.World, e ecs.Entity, pl *component.Player, tr *component.Transform) {
	forward := tr.Forward.Flat().Normalize()
	if forward.Len() == 0 {
		forward = common.V3(0, 0, 1)
	}
	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{
		Position: tr.Position.Add(forward.Scale(pl.Radius)),
		Forward:  forward,
	}); err != nil {
		log.Printf("player: spirit ball transform: %v", err)
		ecs.DestroyEntity(w, ball)
		return
	}
	if err := ecs.Add(w, ball, component.ProjectileComponent.Kind(), &component.Projectile{
		Source:   uint64(e),
		Velocity: forward.Scale(pl.ShotSpeed),
		Radius:   pl.ShotRadius,
		Damage:   pl.ShotDamage,
		Range:    pl.ShotRange,
	}); err != nil {
		log.Printf("player: spirit ball: %v", err)
		ecs.DestroyEntity(w, ball)
		return
	}
	pl.Balls--
	pl.Respawns = append(pl.Respawns, pl.SpiritRespawnTime)
	p.Presenter.Play(e, "shoot")
	p.Presenter.SetParam(e, "spirit_balls", float64(pl.Balls))
}

// attack strikes every ghoul in the arc in front of the player. Ghouls can
// only be touched from the spirit realm.
func (p *PlayerControllerSystem) attack(w *ecs.World, e ecs.Entity, pl *component.Player, tr *component.Transform) {
	p.Presenter.Play(e, "attack")
	if !SpiritRealm(w) {
		return
	}
	ecs.ForEach2(w, component.GhoulTagComponent.Kind(), component.TransformComponent.Kind(), func(g ecs.Entity, _ *component.GhoulTag, gt *component.Transform) {
		if !inArc(tr.Position, tr.Forward, gt.Position, pl.AttackReach, pl.AttackAngle) {
			return
		}
		if !TakeDamage(w, g, pl.AttackDamage, tr.Position) {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventAttackLanded,
			Data: ecs.DamageEvent{Source: e, Target: g, Amount: pl.AttackDamage},
		})
	})
}
