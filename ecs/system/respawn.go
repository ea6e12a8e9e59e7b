package system

import (
	"github.com/milk9111/spiritfox/ecs"
	"github.com/milk9111/spiritfox/ecs/component"
	"github.com/milk9111/spiritfox/port"
)

type RespawnSystem struct {
	Presenter port.Presenter
}

func NewRespawnSystem(presenter port.Presenter) *RespawnSystem {
	if presenter == nil {
		presenter = port.Nop{}
	}
	return &RespawnSystem{Presenter: presenter}
}

// Update returns downed players to their spawn point with full health.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			return
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = pl.Spawn
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.Current = h.Max
		}
		ecs.Remove(w, e, component.HitFlashComponent.Kind())
		s.Presenter.Play(e, "respawn")
	})
}
